package shield

import (
	"math/rand/v2"
	"sort"
)

// Metrics of a fitted classifier, evaluated on the held-out split
type Metrics struct {
	Accuracy    float64 `json:"accuracy"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	F1          float64 `json:"f1"`
	SampleCount int     `json:"sample_count"` // number of corpus rows, both train and test parts
}

// evaluate computes metrics with spam as the positive class. Undefined values are 0.
func evaluate(truth, predicted []Label) Metrics {
	var tp, fp, fn, correct int
	for i := range truth {
		if truth[i] == predicted[i] {
			correct++
		}
		switch {
		case truth[i] == Spam && predicted[i] == Spam:
			tp++
		case truth[i] == Ham && predicted[i] == Spam:
			fp++
		case truth[i] == Spam && predicted[i] == Ham:
			fn++
		}
	}
	res := Metrics{}
	if len(truth) > 0 {
		res.Accuracy = float64(correct) / float64(len(truth))
	}
	if tp+fp > 0 {
		res.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		res.Recall = float64(tp) / float64(tp+fn)
	}
	if res.Precision+res.Recall > 0 {
		res.F1 = 2 * res.Precision * res.Recall / (res.Precision + res.Recall)
	}
	return res
}

// stratifiedSplit returns sorted train and test indices. Each class gives round(testFraction*count)
// rows to the test part, but always keeps at least one row for training.
func stratifiedSplit(labels []Label, testFraction float64, seed uint64) (train, test []int) {
	rnd := rand.New(rand.NewPCG(seed, 0x5eed)) //nolint:gosec // reproducible split
	byLabel := map[Label][]int{}
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], i)
	}
	train, test = []int{}, []int{}
	for _, lbl := range []Label{Ham, Spam} {
		idxs := byLabel[lbl]
		if len(idxs) == 0 {
			continue
		}
		rnd.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })
		n := int(testFraction*float64(len(idxs)) + 0.5)
		n = min(n, len(idxs)-1)
		test = append(test, idxs[:n]...)
		train = append(train, idxs[n:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}
