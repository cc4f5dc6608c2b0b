package shield

import (
	_ "embed"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

//go:embed data/stopwords.txt
var stopWordsList string

var stopWords = func() map[string]struct{} {
	res := map[string]struct{}{}
	for _, w := range strings.Fields(stopWordsList) {
		res[w] = struct{}{}
	}
	return res
}()

// numeric features scaled by the vectorizer, in column order
var scaledFeatures = []func(f Features) float64{
	func(f Features) float64 { return float64(f.TextLength) },
	func(f Features) float64 { return float64(f.WordCount) },
	func(f Features) float64 { return f.Sentiment },
	func(f Features) float64 { return float64(f.GrammarErrors) },
}

// vectorizer turns Features into a dense numeric row. Column layout is
// [tf-idf terms][platform one-hot][scaled numeric][has_url, has_phone].
// Fitted vectorizer is read-only and safe for concurrent use.
type vectorizer struct {
	Terms     []string  `json:"terms"`     // vocabulary, sorted
	IDF       []float64 `json:"idf"`       // idf weight per term
	NGrams    int       `json:"ngrams"`    // max n-gram size
	Platforms []string  `json:"platforms"` // known platforms, sorted
	Means     []float64 `json:"means"`     // scaler means
	Scales    []float64 `json:"scales"`    // scaler std deviations, 1 for constant columns

	once      sync.Once
	termIndex map[string]int
	platIndex map[string]int
}

// fitVectorizer learns vocabulary, idf weights, platforms and scaler parameters.
// Vocabulary keeps up to maxTerms most frequent terms, ties broken alphabetically.
func fitVectorizer(rows []Features, maxTerms, ngrams int) *vectorizer {
	if ngrams < 1 {
		ngrams = 1
	}
	freq := map[string]int{}
	docFreq := map[string]int{}
	for _, r := range rows {
		seen := map[string]struct{}{}
		for _, term := range terms(r.CleanedText, ngrams) {
			freq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	vocab := make([]string, 0, len(freq))
	for term := range freq {
		vocab = append(vocab, term)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if freq[vocab[i]] != freq[vocab[j]] {
			return freq[vocab[i]] > freq[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if maxTerms > 0 && len(vocab) > maxTerms {
		vocab = vocab[:maxTerms]
	}
	sort.Strings(vocab)

	n := float64(len(rows))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	platforms := []string{}
	seenPlat := map[string]struct{}{}
	for _, r := range rows {
		if _, ok := seenPlat[r.Platform]; !ok {
			seenPlat[r.Platform] = struct{}{}
			platforms = append(platforms, r.Platform)
		}
	}
	sort.Strings(platforms)

	means := make([]float64, len(scaledFeatures))
	scales := make([]float64, len(scaledFeatures))
	for i, fn := range scaledFeatures {
		var sum float64
		for _, r := range rows {
			sum += fn(r)
		}
		mean := sum / math.Max(1, n)
		var sq float64
		for _, r := range rows {
			d := fn(r) - mean
			sq += d * d
		}
		std := math.Sqrt(sq / math.Max(1, n))
		if std == 0 {
			std = 1
		}
		means[i], scales[i] = mean, std
	}

	return &vectorizer{Terms: vocab, IDF: idf, NGrams: ngrams, Platforms: platforms, Means: means, Scales: scales}
}

// width returns the number of columns produced by transform
func (v *vectorizer) width() int {
	return len(v.Terms) + len(v.Platforms) + len(scaledFeatures) + 2
}

// transform makes a dense row. Unknown terms and platforms are ignored.
func (v *vectorizer) transform(f Features) []float64 {
	v.once.Do(v.buildIndex)
	row := make([]float64, v.width())

	var norm float64
	for _, term := range terms(f.CleanedText, v.NGrams) {
		if i, ok := v.termIndex[term]; ok {
			row[i] += v.IDF[i]
		}
	}
	for i := range v.Terms {
		norm += row[i] * row[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range v.Terms {
			row[i] /= norm
		}
	}

	offset := len(v.Terms)
	if i, ok := v.platIndex[f.Platform]; ok {
		row[offset+i] = 1
	}
	offset += len(v.Platforms)
	for i, fn := range scaledFeatures {
		row[offset+i] = (fn(f) - v.Means[i]) / v.Scales[i]
	}
	offset += len(scaledFeatures)
	if f.HasURL {
		row[offset] = 1
	}
	if f.HasPhone {
		row[offset+1] = 1
	}
	return row
}

func (v *vectorizer) buildIndex() {
	v.termIndex = make(map[string]int, len(v.Terms))
	for i, t := range v.Terms {
		v.termIndex[t] = i
	}
	v.platIndex = make(map[string]int, len(v.Platforms))
	for i, p := range v.Platforms {
		v.platIndex[p] = i
	}
}

// terms splits cleaned text into stemmed tokens of two or more letters without stop words,
// and returns all n-grams of them up to ngrams size
func terms(cleaned string, ngrams int) []string {
	tokens := []string{}
	for _, w := range strings.Fields(cleaned) {
		if len(w) < 2 {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		tokens = append(tokens, stem(w))
	}

	res := make([]string, 0, len(tokens)*ngrams)
	for n := 1; n <= ngrams; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			res = append(res, strings.Join(tokens[i:i+n], " "))
		}
	}
	return res
}

func stem(word string) string {
	res, err := snowball.Stem(word, "english", true)
	if err != nil || res == "" {
		return word
	}
	return res
}
