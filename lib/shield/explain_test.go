package shield

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback_Predict(t *testing.T) {
	tests := []struct {
		text string
		want Prediction
	}{
		{"Click here to claim prize", Prediction{Label: Spam, Probability: 0.9}},
		{"WIN a FREE trip", Prediction{Label: Spam, Probability: 0.9}},
		{"click here", Prediction{Label: Spam, Probability: 0.9}}, // "click" and "click here"
		{"free lunch today", Prediction{Label: Ham, Probability: 0.8}},
		{"see you tomorrow", Prediction{Label: Ham, Probability: 0.8}},
		{"", Prediction{Label: Ham, Probability: 0.8}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Fallback{}.Predict(tt.text))
			assert.Equal(t, tt.want, Fallback{}.Predict(tt.text), "deterministic")
		})
	}

	t.Run("custom probabilities", func(t *testing.T) {
		f := Fallback{SpamProbability: 0.75, HamProbability: 0.6}
		assert.Equal(t, Prediction{Label: Spam, Probability: 0.75}, f.Predict("urgent: verify"))
		assert.Equal(t, Prediction{Label: Ham, Probability: 0.6}, f.Predict("hello"))
	})
}

func TestExplainer_Explain(t *testing.T) {
	e := Explainer{}

	t.Run("spam with all indicators", func(t *testing.T) {
		f := &Features{HasURL: true, HasPhone: true, SpamKeywords: 2, UppercaseRatio: 0.5, Sentiment: 0.6, GrammarErrors: 6}
		want := strings.Join([]string{
			"🚨 This message was classified as SPAM because it contains multiple characteristics commonly found in spam messages.",
			"\n🔍 Specific indicators detected:",
			"• Contains suspicious links",
			"• Contains phone numbers (common in scams)",
			"• Contains 2 spam-related keywords",
			"• Uses excessive uppercase letters (common in spam)",
			"• Uses overly positive language (common in prize scams)",
			"• Contains multiple grammatical errors (common in spam)",
			"\n⚠️ Be cautious: This message may be attempting to trick you into revealing personal information or making unwanted payments.",
			"\n📱 Platform-specific advice for email:",
			"Be especially cautious with email attachments and links, even from known senders.",
		}, "\n")
		assert.Equal(t, want, e.Explain("anything", "email", true, f))
	})

	t.Run("spam without indicators", func(t *testing.T) {
		res := e.Explain("", "sms", true, &Features{})
		assert.NotContains(t, res, "Specific indicators")
		assert.Contains(t, res, "Be cautious")
		assert.Contains(t, res, "Never reply to suspicious text messages or call numbers provided in them.")
	})

	t.Run("ham without indicators, unknown platform", func(t *testing.T) {
		f := &Features{Sentiment: -0.5, GrammarErrors: 3, HasURL: true}
		want := strings.Join([]string{
			"✅ This message appears to be legitimate (HAM) and doesn't contain obvious spam characteristics.",
			"\n💡 Tip: Always verify the identity of the sender before sharing sensitive information.",
			"\n📱 Platform-specific advice for fax:",
			"Always verify the authenticity of messages on this platform.",
		}, "\n")
		assert.Equal(t, want, e.Explain("whatever", "fax", false, f))
	})

	t.Run("ham computed from text", func(t *testing.T) {
		res := e.Explain("Hi, are we still meeting tomorrow at 5pm?", "sms", false, nil)
		assert.Contains(t, res, "\n🔍 Legitimacy indicators:\n• Uses neutral or positive language\n• Contains few grammatical errors\n• No suspicious links detected")
		assert.Contains(t, res, "Platform-specific advice for sms:\nNever reply to suspicious text messages")
	})

	t.Run("spam computed from text", func(t *testing.T) {
		res := e.Explain("Click here to claim prize http://x.example", "telegram", true, nil)
		assert.Contains(t, res, "• Contains suspicious links")
		assert.Contains(t, res, "• Contains 4 spam-related keywords") // click, claim, prize, http
		assert.Contains(t, res, "Be wary of unsolicited messages in groups or from unknown contacts.")
	})
}

func TestPlatformAdvice(t *testing.T) {
	assert.Equal(t, "Watch out for fake profiles and don't engage with suspicious direct messages.", PlatformAdvice("instagram"))
	assert.Equal(t, "Always verify the authenticity of messages on this platform.", PlatformAdvice(""))
}
