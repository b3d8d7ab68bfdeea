package advisor

import "errors"

// ErrAdvisoryUnavailable signals that every provider in the fallback chain
// failed or timed out. Callers must treat it as non-fatal and continue with
// the unadjusted prediction.
var ErrAdvisoryUnavailable = errors.New("all advisory providers unavailable")

// Kind discriminates how an Advice was obtained.
type Kind string

const (
	// KindStructured: provider returned schema-valid JSON.
	KindStructured Kind = "structured"
	// KindFreeText: structured decoding failed, numeric fields were scraped
	// from the raw text (or defaulted).
	KindFreeText Kind = "freetext"
	// KindFallback: the whole chain failed, deterministic degraded values.
	KindFallback Kind = "fallback"
)

// Advice is the bounded adjustment a provider suggests applying to the
// persistence prediction.
type Advice struct {
	Adjustment         float64  `json:"adjustment"`
	Reasoning          string   `json:"reasoning"`
	Confidence         float64  `json:"confidence"`
	RiskFactors        []string `json:"riskFactors"`
	OpportunityFactors []string `json:"opportunityFactors"`

	Kind   Kind   `json:"-"`
	Source string `json:"-"` // provider id, empty for fallback
}

// Fallback is the deterministic degraded advice used when no provider can
// be reached: no adjustment, middling confidence.
func Fallback(reason string) Advice {
	if reason == "" {
		reason = "advisory providers unavailable; using unadjusted model output"
	}
	return Advice{
		Adjustment: 0,
		Confidence: 0.5,
		Reasoning:  reason,
		Kind:       KindFallback,
	}
}
