package shield

import "strings"

// fallbackKeywords contained in a message, two or more of them make it spam
var fallbackKeywords = []string{"win", "free", "click", "prize", "verify", "account", "urgent", "buy now", "click here"}

// Fallback is a keyword rule used when no trained model is available. Zero value uses defaults.
type Fallback struct {
	SpamProbability float64 // probability reported for spam, 0.9 if not set
	HamProbability  float64 // probability reported for ham, 0.8 if not set
}

// Predict counts fallback keywords contained in text, case-insensitive.
// Two or more keywords make it spam. Never fails.
func (f Fallback) Predict(text string) Prediction {
	lowered := strings.ToLower(text)
	hits := 0
	for _, kw := range fallbackKeywords {
		if strings.Contains(lowered, kw) {
			hits++
		}
	}
	if hits >= 2 {
		return Prediction{Label: Spam, Probability: orDefault(f.SpamProbability, 0.9)}
	}
	return Prediction{Label: Ham, Probability: orDefault(f.HamProbability, 0.8)}
}

func orDefault(v, def float64) float64 {
	if v <= 0 || v > 1 {
		return def
	}
	return v
}
