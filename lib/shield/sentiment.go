package shield

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

//go:embed data/sentiment.txt
var sentimentLexicon string

var reSentimentWord = regexp.MustCompile(`[a-z']+`)

var defaultSentiment = mustLexiconSentiment(sentimentLexicon)

// LexiconSentiment scores polarity as the average score of known words.
// A negation within NegationWindow words before a scored word reverses and halves its score,
// an intensifier right before it multiplies the score.
type LexiconSentiment struct {
	NegationWindow int // number of preceding words checked for negation, 3 if not set

	words        map[string]float64
	intensifiers map[string]float64
	negations    map[string]struct{}
}

// NewLexiconSentiment makes a scorer from the lexicon reader. Each line is "word score",
// "~word multiplier" for intensifiers or "!word" for negations. Empty lines and lines
// starting with # are ignored.
func NewLexiconSentiment(r io.Reader) (*LexiconSentiment, error) {
	res := &LexiconSentiment{
		NegationWindow: 3,
		words:          make(map[string]float64),
		intensifiers:   make(map[string]float64),
		negations:      make(map[string]struct{}),
	}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "!") {
			res.negations[strings.ToLower(line[1:])] = struct{}{}
			continue
		}
		elems := strings.Fields(line)
		if len(elems) != 2 {
			return nil, fmt.Errorf("invalid lexicon line %d: %q", lineNum, line)
		}
		val, err := strconv.ParseFloat(elems[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score at line %d: %w", lineNum, err)
		}
		if strings.HasPrefix(elems[0], "~") {
			res.intensifiers[strings.ToLower(elems[0][1:])] = val
			continue
		}
		res.words[strings.ToLower(elems[0])] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return res, nil
}

func mustLexiconSentiment(lexicon string) *LexiconSentiment {
	res, err := NewLexiconSentiment(strings.NewReader(lexicon))
	if err != nil {
		panic(err)
	}
	return res
}

// Sentiment returns polarity in [-1, 1], 0 for text without known words
func (l *LexiconSentiment) Sentiment(_ context.Context, text string) (float64, error) {
	tokens := reSentimentWord.FindAllString(strings.ToLower(text), -1)
	window := l.NegationWindow
	if window <= 0 {
		window = 3
	}

	var sum float64
	var scored int
	for i, tok := range tokens {
		score, ok := l.words[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if mult, ok := l.intensifiers[tokens[i-1]]; ok {
				score *= mult
			}
		}
		for j := i - 1; j >= 0 && j >= i-window; j-- {
			if _, ok := l.negations[tokens[j]]; ok {
				score *= -0.5
				break
			}
		}
		sum += score
		scored++
	}
	if scored == 0 {
		return 0, nil
	}
	return math.Max(-1, math.Min(1, sum/float64(scored))), nil
}
