package model

// Metric keys requested from the quality-analysis source. The decoder
// requires every one of them to be present in a response.
const (
	MetricSecurityRating        = "security_rating"
	MetricReliabilityRating     = "reliability_rating"
	MetricMaintainabilityRating = "sqale_rating"
	MetricVulnerabilities       = "vulnerabilities"
	MetricBugs                  = "bugs"
	MetricDebt                  = "sqale_index"
	MetricCodeSmells            = "code_smells"
)

// RequiredMetricKeys lists the metric keys in request order.
var RequiredMetricKeys = []string{
	MetricSecurityRating,
	MetricReliabilityRating,
	MetricMaintainabilityRating,
	MetricVulnerabilities,
	MetricBugs,
	MetricDebt,
	MetricCodeSmells,
}

// MetricSet is one complete set of quality measures for a component.
// It is only ever constructed complete: a payload missing any of the
// seven keys fails decoding instead of producing a partial set.
type MetricSet struct {
	SecurityRating        float64 `json:"security_rating" firestore:"security_rating"`
	ReliabilityRating     float64 `json:"reliability_rating" firestore:"reliability_rating"`
	MaintainabilityRating float64 `json:"maintainability_rating" firestore:"maintainability_rating"`
	Vulnerabilities       float64 `json:"vulnerabilities" firestore:"vulnerabilities"`
	Bugs                  float64 `json:"bugs" firestore:"bugs"`
	DebtMinutes           float64 `json:"debt_minutes" firestore:"debt_minutes"`
	CodeSmells            float64 `json:"code_smells" firestore:"code_smells"`
}

// Quality level formula weights. The formula is a versioned contract:
// changing it breaks comparability of historical snapshots.
const (
	ratingWeight = 0.6
	issueWeight  = 0.4

	// One working day of remediation effort in minutes, used to scale
	// sqale_index into the same order of magnitude as issue counts.
	debtDayMinutes = 480
)

// ComputeQualityLevel derives the overall quality level in [0,1] from a
// metric set. A nil set (source not configured) yields 0.
//
// Ratings are on the 1 (best) to 5 (worst) scale and map linearly to
// [0,1] via (5-r)/4, averaged over the three rating metrics. Issue counts
// contribute 1/(1+vulnerabilities+bugs+smells/100+debt/480). The two
// components are combined 0.6/0.4 and clamped to [0,1].
func ComputeQualityLevel(m *MetricSet) float64 {
	if m == nil {
		return 0
	}

	ratings := (ratingScore(m.SecurityRating) +
		ratingScore(m.ReliabilityRating) +
		ratingScore(m.MaintainabilityRating)) / 3

	issues := 1 / (1 +
		m.Vulnerabilities +
		m.Bugs +
		m.CodeSmells/100 +
		m.DebtMinutes/debtDayMinutes)

	level := ratingWeight*ratings + issueWeight*issues
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}

func ratingScore(r float64) float64 {
	if r < 1 {
		r = 1
	}
	if r > 5 {
		r = 5
	}
	return (5 - r) / 4
}
