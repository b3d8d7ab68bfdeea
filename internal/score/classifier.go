package score

// Strength categories, ordered weakest to strongest.
const (
	StrengthWeak       = "weak"
	StrengthModerate   = "moderate"
	StrengthStrong     = "strong"
	StrengthVeryStrong = "very_strong"
)

// Classify maps a composite technical score to its ordinal category. Total
// and deterministic; increasing the score never lowers the category.
func Classify(composite float64) string {
	switch {
	case composite < 0.3:
		return StrengthWeak
	case composite < 0.6:
		return StrengthModerate
	case composite < 0.8:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// ClassifySignal labels a caller-supplied signal strength on the prediction
// path. Unlike Classify it keeps 0.8 inside "strong", matching how the
// persistence output has always labeled a 0.8 input.
func ClassifySignal(strength float64) string {
	switch {
	case strength < 0.3:
		return StrengthWeak
	case strength < 0.6:
		return StrengthModerate
	case strength <= 0.8:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}
