package shield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// ForestKind is the model kind of Forest
const ForestKind = "forest"

// ForestOptions defines parameters of Forest, zero values replaced by defaults
type ForestOptions struct {
	Trees    int    `json:"trees"`     // number of trees, 100 by default
	MaxTerms int    `json:"max_terms"` // max tf-idf vocabulary size, 2000 by default
	NGrams   int    `json:"ngrams"`    // max n-gram size, 2 by default
	MaxDepth int    `json:"max_depth"` // max tree depth, unlimited if 0
	Seed     uint64 `json:"seed"`      // random seed, 42 by default
}

func (o ForestOptions) withDefaults() ForestOptions {
	if o.Trees <= 0 {
		o.Trees = 100
	}
	if o.MaxTerms <= 0 {
		o.MaxTerms = 2000
	}
	if o.NGrams <= 0 {
		o.NGrams = 2
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Forest is a random forest of CART trees over vectorized features.
// Trees use gini impurity, sqrt feature sampling, bootstrap samples and balanced class weights.
type Forest struct {
	opts  ForestOptions
	vec   *vectorizer
	trees []tree
}

// NewForest makes an unfitted forest
func NewForest(opts ForestOptions) *Forest {
	return &Forest{opts: opts.withDefaults()}
}

// Kind returns ForestKind
func (f *Forest) Kind() string { return ForestKind }

// Fit builds the vectorizer and all trees. Context is checked between trees.
func (f *Forest) Fit(ctx context.Context, rows []Features, labels []Label) error {
	if len(rows) != len(labels) {
		return fmt.Errorf("rows and labels mismatch, %d != %d", len(rows), len(labels))
	}
	if !hasBothClasses(labels) {
		return ErrSingleClass
	}

	vec := fitVectorizer(rows, f.opts.MaxTerms, f.opts.NGrams)
	x := make([][]float64, len(rows))
	for i, r := range rows {
		x[i] = vec.transform(r)
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = int(l)
	}

	// balanced weights, n_samples / (n_classes * count(class))
	var counts [2]int
	for _, c := range y {
		counts[c]++
	}
	weights := [2]float64{
		float64(len(y)) / (2 * float64(counts[0])),
		float64(len(y)) / (2 * float64(counts[1])),
	}

	trees := make([]tree, 0, f.opts.Trees)
	for i := 0; i < f.opts.Trees; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("forest fit interrupted after %d trees: %w", i, err)
		}
		rnd := rand.New(rand.NewPCG(f.opts.Seed, uint64(i))) //nolint:gosec // reproducible training
		b := treeBuilder{x: x, y: y, weights: weights, rnd: rnd, maxDepth: f.opts.MaxDepth,
			mtry: max(1, int(math.Sqrt(float64(vec.width()))))}
		trees = append(trees, b.build(bootstrap(len(y), rnd)))
	}
	f.vec, f.trees = vec, trees
	return nil
}

// SpamProbability returns the mean of spam probabilities of all trees
func (f *Forest) SpamProbability(ft Features) (float64, error) {
	if f.vec == nil || len(f.trees) == 0 {
		return 0, ErrModelUnavailable
	}
	row := f.vec.transform(ft)
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees)), nil
}

type forestJSON struct {
	Options    ForestOptions `json:"options"`
	Vectorizer *vectorizer   `json:"vectorizer"`
	Trees      []tree        `json:"trees"`
}

// MarshalJSON stores options, vectorizer and trees
func (f *Forest) MarshalJSON() ([]byte, error) {
	return json.Marshal(forestJSON{Options: f.opts, Vectorizer: f.vec, Trees: f.trees})
}

// UnmarshalJSON restores a fitted forest
func (f *Forest) UnmarshalJSON(data []byte) error {
	var v forestJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Vectorizer == nil || len(v.Trees) == 0 {
		return errors.New("forest has no vectorizer or trees")
	}
	width := v.Vectorizer.width()
	for i, t := range v.Trees {
		if err := t.validate(width); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	f.opts, f.vec, f.trees = v.Options.withDefaults(), v.Vectorizer, v.Trees
	return nil
}

// node of a tree. Leaf nodes have Left == -1 and carry spam probability.
type node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Proba     float64 `json:"p"`
}

type tree struct {
	Nodes []node `json:"nodes"`
}

func (t tree) predict(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left < 0 {
			return n.Proba
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
			continue
		}
		i = n.Right
	}
}

// validate checks node references, so predict can't loop or go out of range on a broken artifact
func (t tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Left < 0 {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d has invalid feature %d", i, n.Feature)
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children", i)
		}
	}
	return nil
}

type treeBuilder struct {
	x        [][]float64
	y        []int
	weights  [2]float64
	rnd      *rand.Rand
	mtry     int
	maxDepth int
	nodes    []node
}

func (b *treeBuilder) build(idx []int) tree {
	b.nodes = []node{}
	b.grow(idx, 0)
	return tree{Nodes: b.nodes}
}

// grow adds a node for idx and its subtree, returns the node index
func (b *treeBuilder) grow(idx []int, depth int) int {
	pos := len(b.nodes)
	b.nodes = append(b.nodes, node{Left: -1, Right: -1})

	w := b.classWeights(idx)
	b.nodes[pos].Proba = w[1] / (w[0] + w[1])
	if w[0] == 0 || w[1] == 0 || len(idx) < 2 || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return pos
	}

	feature, threshold, ok := b.bestSplit(idx, w)
	if !ok {
		return pos
	}
	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
			continue
		}
		right = append(right, i)
	}
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[pos].Feature, b.nodes[pos].Threshold = feature, threshold
	b.nodes[pos].Left, b.nodes[pos].Right = l, r
	return pos
}

func (b *treeBuilder) classWeights(idx []int) [2]float64 {
	var res [2]float64
	for _, i := range idx {
		res[b.y[i]] += b.weights[b.y[i]]
	}
	return res
}

// bestSplit checks mtry random features, and keeps checking more if none of them can split idx
func (b *treeBuilder) bestSplit(idx []int, total [2]float64) (feature int, threshold float64, ok bool) {
	width := len(b.x[0])
	parent := gini(total)
	bestGain := 0.0
	sorted := make([]int, len(idx))

	for checked, f := range b.rnd.Perm(width) {
		if checked >= b.mtry && ok {
			break
		}
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

		var left [2]float64
		for k := 0; k < len(sorted)-1; k++ {
			c := b.y[sorted[k]]
			left[c] += b.weights[c]
			v, next := b.x[sorted[k]][f], b.x[sorted[k+1]][f]
			if v == next {
				continue
			}
			right := [2]float64{total[0] - left[0], total[1] - left[1]}
			wl, wr := left[0]+left[1], right[0]+right[1]
			gain := parent - (wl*gini(left)+wr*gini(right))/(wl+wr)
			if gain > bestGain+1e-12 {
				mid := v + (next-v)/2
				if mid >= next {
					mid = v
				}
				bestGain, feature, threshold, ok = gain, f, mid, true
			}
		}
	}
	return feature, threshold, ok
}

func gini(w [2]float64) float64 {
	sum := w[0] + w[1]
	if sum == 0 {
		return 0
	}
	p0, p1 := w[0]/sum, w[1]/sum
	return 1 - p0*p0 - p1*p1
}

func bootstrap(n int, rnd *rand.Rand) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = rnd.IntN(n)
	}
	return res
}

func hasBothClasses(labels []Label) bool {
	var spam, ham bool
	for _, l := range labels {
		if l == Spam {
			spam = true
			continue
		}
		ham = true
	}
	return spam && ham
}
