package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/pqops/relsnap/pkg/domain/model"
)

func TestSourceConfig_IsValid(t *testing.T) {
	tests := []struct {
		name string
		cfg  *model.SourceConfig
		want bool
	}{
		{
			name: "valid config",
			cfg:  &model.SourceConfig{BaseURL: "http://q.example", TargetID: "comp-1"},
			want: true,
		},
		{
			name: "valid https with path",
			cfg:  &model.SourceConfig{BaseURL: "https://jira.example.com/cloud", TargetID: "42"},
			want: true,
		},
		{
			name: "nil config",
			cfg:  nil,
			want: false,
		},
		{
			name: "empty base URL",
			cfg:  &model.SourceConfig{BaseURL: "", TargetID: "comp-1"},
			want: false,
		},
		{
			name: "relative base URL",
			cfg:  &model.SourceConfig{BaseURL: "q.example/sonar", TargetID: "comp-1"},
			want: false,
		},
		{
			name: "scheme without host",
			cfg:  &model.SourceConfig{BaseURL: "http://", TargetID: "comp-1"},
			want: false,
		},
		{
			name: "missing target",
			cfg:  &model.SourceConfig{BaseURL: "http://q.example"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.cfg.IsValid()).Equal(tt.want)
		})
	}
}
