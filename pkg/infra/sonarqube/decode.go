package sonarqube

import (
	"encoding/json"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
)

// measuresResponse mirrors the SonarQube measures API body:
// { "component": { "measures": [ {"metric": ..., "value": ...}, ... ] } }
type measuresResponse struct {
	Component struct {
		Key      string    `json:"key"`
		Measures []measure `json:"measures"`
	} `json:"component"`
}

type measure struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// decodeMeasures turns a raw measures payload into a complete MetricSet.
// Every required metric key must be present with a numeric value; a
// missing, non-numeric, or conflicting duplicate key fails decoding with
// the offending keys attached. A decode failure signals schema drift with
// the source API and is a hard error, not absent data.
func decodeMeasures(body []byte) (*model.MetricSet, error) {
	var resp measuresResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(types.ErrPayloadDecode, "response body is not a measures document",
			goerr.T(types.TagDecodeFailure))
	}

	values := make(map[string]float64, len(model.RequiredMetricKeys))
	bad := map[string]bool{}

	for _, m := range resp.Component.Measures {
		v, err := strconv.ParseFloat(m.Value, 64)
		if err != nil {
			bad[m.Metric] = true
			continue
		}
		if prev, ok := values[m.Metric]; ok && prev != v {
			bad[m.Metric] = true
			continue
		}
		values[m.Metric] = v
	}

	var badKeys []string
	for _, key := range model.RequiredMetricKeys {
		if _, ok := values[key]; bad[key] || !ok {
			badKeys = append(badKeys, key)
		}
	}

	if len(badKeys) > 0 {
		return nil, goerr.Wrap(types.ErrPayloadDecode, "measures payload is missing or malformed",
			goerr.T(types.TagDecodeFailure),
			goerr.V("metric_keys", badKeys))
	}

	return &model.MetricSet{
		SecurityRating:        values[model.MetricSecurityRating],
		ReliabilityRating:     values[model.MetricReliabilityRating],
		MaintainabilityRating: values[model.MetricMaintainabilityRating],
		Vulnerabilities:       values[model.MetricVulnerabilities],
		Bugs:                  values[model.MetricBugs],
		DebtMinutes:           values[model.MetricDebt],
		CodeSmells:            values[model.MetricCodeSmells],
	}, nil
}
