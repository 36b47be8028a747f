package model

import "github.com/pqops/relsnap/pkg/domain/types"

// Product is a tracked product as resolved from the product directory.
// Either source config may be nil when the owner never configured that
// source; a nil config is an intentional "absent" contribution, not an
// error.
type Product struct {
	ID        types.ProductID `json:"id" firestore:"id"`
	Name      string          `json:"name" firestore:"name"`
	Sonarqube *SourceConfig   `json:"sonarqube,omitempty" firestore:"sonarqube,omitempty"`
	Jira      *SourceConfig   `json:"jira,omitempty" firestore:"jira,omitempty"`
}

// HasValidSonarqubeConfig reports whether the quality-analysis source
// should be queried for this product.
func (p *Product) HasValidSonarqubeConfig() bool {
	return p.Sonarqube.IsValid()
}

// HasValidJiraConfig reports whether the sprint-tracking source should be
// queried for this product.
func (p *Product) HasValidJiraConfig() bool {
	return p.Jira.IsValid()
}
