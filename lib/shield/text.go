package shield

import (
	"regexp"
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

var (
	// whitespace includes unicode separators, e.g. non-breaking space
	reURL        = regexp.MustCompile(`http[^\s\p{Z}]+`)
	reNonLetters = regexp.MustCompile(`[^a-zA-Z\s\p{Z}]`)
	reSpaces     = regexp.MustCompile(`[\s\p{Z}]+`)
	rePhone      = regexp.MustCompile(`(\+\d{1,3}[-.\s]??\d{1,4}[-.\s]??\d{1,4}[-.\s]??\d{1,4})|` +
		`(\(\d{3}\)\s*\d{3}[-.\s]??\d{4})|(\d{3}[-.\s]??\d{3}[-.\s]??\d{4})`)
)

// spamVocabulary is a list of words and phrases typical for urgency, financial, prize and phishing messages
var spamVocabulary = []string{
	"win", "free", "prize", "reward", "claim", "click", "urgent", "verify",
	"account", "security", "limited", "offer", "discount", "winner", "selected",
	"congratulations", "lottery", "gift", "card", "voucher", "http", "www",
	"password", "login", "confirm", "update", "information", "personal",
	"bank", "payment", "money", "cash", "transfer", "inheritance", "million",
	"billion", "dollar", "euro", "pound", "bitcoin", "crypto", "investment",
	"opportunity", "risk-free", "guaranteed", "act now", "limited time",
	"expire", "trial", "subscription", "membership", "exclusive", "secret",
	"miracle", "cure", "weight loss", "diet", "pills", "viagra", "casino",
	"betting", "gambling", "loan", "credit", "debt", "mortgage", "insurance",
}

// Clean lowercases text, removes urls and everything except latin letters and whitespace,
// and collapses whitespace runs to a single space.
func Clean(text string) string {
	res := strings.ToLower(text)
	res = reURL.ReplaceAllString(res, "")
	res = reNonLetters.ReplaceAllString(res, "")
	// removal of non-letters can glue a new url-like token, e.g. "h.t.t.p.x"
	res = reURL.ReplaceAllString(res, "")
	res = reSpaces.ReplaceAllString(res, " ")
	return strings.TrimSpace(res)
}

// HasURL checks if the original text contains an url (http/https followed by non-space characters)
func HasURL(text string) bool {
	return reURL.MatchString(text)
}

// HasPhone checks if the original text contains something shaped like a phone number
func HasPhone(text string) bool {
	return rePhone.MatchString(text)
}

// SpamKeywordCount returns the number of distinct spam vocabulary keywords contained in text, case-insensitive
func SpamKeywordCount(text string) int {
	return spamKeywords.count(text)
}

// keywordMatcher counts distinct dictionary entries contained in a text.
// ahocorasick.Matcher keeps per-match state, so Match calls are serialized.
type keywordMatcher struct {
	matcher *ahocorasick.Matcher
	size    int
	mu      sync.Mutex
}

var spamKeywords = newKeywordMatcher(spamVocabulary)

func newKeywordMatcher(words []string) *keywordMatcher {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			lowered = append(lowered, w)
		}
	}
	return &keywordMatcher{matcher: ahocorasick.NewStringMatcher(lowered), size: len(lowered)}
}

func (k *keywordMatcher) count(text string) int {
	if k == nil || k.size == 0 || text == "" {
		return 0
	}
	k.mu.Lock()
	hits := k.matcher.Match([]byte(strings.ToLower(text)))
	k.mu.Unlock()

	seen := make(map[int]struct{}, len(hits))
	for _, h := range hits {
		if h >= 0 && h < k.size {
			seen[h] = struct{}{}
		}
	}
	return len(seen)
}
