package shield

import (
	"fmt"
	"strings"
)

var platformAdvice = map[string]string{
	"email":     "Be especially cautious with email attachments and links, even from known senders.",
	"sms":       "Never reply to suspicious text messages or call numbers provided in them.",
	"instagram": "Watch out for fake profiles and don't engage with suspicious direct messages.",
	"telegram":  "Be wary of unsolicited messages in groups or from unknown contacts.",
}

const genericAdvice = "Always verify the authenticity of messages on this platform."

// Explainer makes human-readable explanations of predictions
type Explainer struct {
	Extractor *Extractor // used to compute features if not provided, zero Extractor if nil
}

// Explain returns a multi-line explanation of the spam/ham decision for text.
// Features computed from text if f is nil.
func (e Explainer) Explain(text, platform string, spam bool, f *Features) string {
	if f == nil {
		extracted := e.Extractor.Extract(text, platform)
		f = &extracted
	}

	parts := []string{}
	if spam {
		parts = append(parts, "🚨 This message was classified as SPAM because it contains multiple characteristics commonly found in spam messages.")
		indicators := []string{}
		if f.HasURL {
			indicators = append(indicators, "Contains suspicious links")
		}
		if f.HasPhone {
			indicators = append(indicators, "Contains phone numbers (common in scams)")
		}
		if f.SpamKeywords > 0 {
			indicators = append(indicators, fmt.Sprintf("Contains %d spam-related keywords", f.SpamKeywords))
		}
		if f.UppercaseRatio > 0.3 {
			indicators = append(indicators, "Uses excessive uppercase letters (common in spam)")
		}
		if f.Sentiment > 0.5 {
			indicators = append(indicators, "Uses overly positive language (common in prize scams)")
		}
		if f.GrammarErrors > 5 {
			indicators = append(indicators, "Contains multiple grammatical errors (common in spam)")
		}
		parts = appendIndicators(parts, "\n🔍 Specific indicators detected:", indicators)
		parts = append(parts, "\n⚠️ Be cautious: This message may be attempting to trick you into revealing personal information or making unwanted payments.")
	} else {
		parts = append(parts, "✅ This message appears to be legitimate (HAM) and doesn't contain obvious spam characteristics.")
		indicators := []string{}
		if f.Sentiment >= -0.3 {
			indicators = append(indicators, "Uses neutral or positive language")
		}
		if f.GrammarErrors <= 2 {
			indicators = append(indicators, "Contains few grammatical errors")
		}
		if !f.HasURL {
			indicators = append(indicators, "No suspicious links detected")
		}
		parts = appendIndicators(parts, "\n🔍 Legitimacy indicators:", indicators)
		parts = append(parts, "\n💡 Tip: Always verify the identity of the sender before sharing sensitive information.")
	}

	parts = append(parts, fmt.Sprintf("\n📱 Platform-specific advice for %s:", platform), PlatformAdvice(platform))
	return strings.Join(parts, "\n")
}

// PlatformAdvice returns the advice sentence for the platform, generic advice for unknown platforms
func PlatformAdvice(platform string) string {
	if advice, ok := platformAdvice[platform]; ok {
		return advice
	}
	return genericAdvice
}

func appendIndicators(parts []string, header string, indicators []string) []string {
	if len(indicators) == 0 {
		return parts
	}
	parts = append(parts, header)
	for _, ind := range indicators {
		parts = append(parts, "• "+ind)
	}
	return parts
}
