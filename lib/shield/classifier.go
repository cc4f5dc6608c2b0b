package shield

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
)

// Prediction is a label with spam probability
type Prediction struct {
	Label       Label   `json:"label"`
	Probability float64 `json:"probability"` // spam probability, rounded to 3 decimals
}

// FitOptions defines how Fit trains a classifier. Zero value trains a default Forest.
type FitOptions struct {
	NewModel     func() Model // model factory, NewForest with defaults if nil
	TestFraction float64      // held-out share for evaluation, 0.2 if not set
	Seed         uint64       // split seed, DefaultSeed if 0
	Extractor    *Extractor   // extractor used by Predict, zero Extractor if nil
}

// Classifier is an immutable fitted model with its evaluation metrics
type Classifier struct {
	id        string
	model     Model
	metrics   Metrics
	trainedAt time.Time
	extractor *Extractor
}

// Fit trains a new classifier on rows and labels. It splits data to stratified train and test
// parts, fits the model on the train part and evaluates it on the test part.
func Fit(ctx context.Context, rows []Features, labels []Label, opts FitOptions) (*Classifier, Metrics, error) {
	if len(rows) != len(labels) {
		return nil, Metrics{}, fmt.Errorf("rows and labels mismatch, %d != %d", len(rows), len(labels))
	}
	if !hasBothClasses(labels) {
		return nil, Metrics{}, ErrSingleClass
	}
	testFraction := opts.TestFraction
	if testFraction <= 0 || testFraction >= 1 {
		testFraction = 0.2
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	trainIdx, testIdx := stratifiedSplit(labels, testFraction, seed)
	trainRows, trainLabels := pick(rows, trainIdx), pick(labels, trainIdx)

	var model Model = NewForest(ForestOptions{Seed: seed})
	if opts.NewModel != nil {
		model = opts.NewModel()
	}
	st := time.Now()
	if err := model.Fit(ctx, trainRows, trainLabels); err != nil {
		return nil, Metrics{}, fmt.Errorf("failed to fit %s model: %w", model.Kind(), err)
	}

	extractor := opts.Extractor
	if extractor == nil {
		extractor = &Extractor{}
	}
	res := &Classifier{id: uuid.NewString(), model: model, trainedAt: time.Now(), extractor: extractor}

	predicted := make([]Label, 0, len(testIdx))
	for _, i := range testIdx {
		p, err := res.PredictFeatures(rows[i])
		if err != nil {
			return nil, Metrics{}, fmt.Errorf("failed to evaluate model: %w", err)
		}
		predicted = append(predicted, p.Label)
	}
	metrics := evaluate(pick(labels, testIdx), predicted)
	metrics.SampleCount = len(rows)
	res.metrics = metrics

	log.Printf("[INFO] %s model fitted in %v, train:%d, test:%d, accuracy:%.3f, precision:%.3f, recall:%.3f, f1:%.3f",
		model.Kind(), time.Since(st).Round(time.Millisecond), len(trainIdx), len(testIdx),
		metrics.Accuracy, metrics.Precision, metrics.Recall, metrics.F1)
	return res, metrics, nil
}

// Predict extracts features of text and returns the prediction.
// Returns ErrModelUnavailable for nil classifier.
func (c *Classifier) Predict(text, platform string) (Prediction, error) {
	if c == nil || c.model == nil {
		return Prediction{}, ErrModelUnavailable
	}
	return c.PredictFeatures(c.extractor.Extract(text, platform))
}

// PredictFeatures returns the prediction for already extracted features
func (c *Classifier) PredictFeatures(f Features) (Prediction, error) {
	if c == nil || c.model == nil {
		return Prediction{}, ErrModelUnavailable
	}
	p, err := c.model.SpamProbability(f)
	if err != nil {
		return Prediction{}, fmt.Errorf("%s model failed: %w", c.model.Kind(), err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return Prediction{}, fmt.Errorf("%s model returned invalid probability %v", c.model.Kind(), p)
	}
	p = math.Round(p*1000) / 1000
	lbl := Ham
	if p >= 0.5 {
		lbl = Spam
	}
	return Prediction{Label: lbl, Probability: p}, nil
}

// ID returns unique id of the fitted model
func (c *Classifier) ID() string { return c.id }

// Kind returns model kind
func (c *Classifier) Kind() string { return c.model.Kind() }

// Metrics returns evaluation metrics
func (c *Classifier) Metrics() Metrics { return c.metrics }

// TrainedAt returns the time the model was fitted
func (c *Classifier) TrainedAt() time.Time { return c.trainedAt }

// Extractor returns the feature extractor used by Predict
func (c *Classifier) Extractor() *Extractor { return c.extractor }

func pick[T any](src []T, idx []int) []T {
	res := make([]T, 0, len(idx))
	for _, i := range idx {
		res = append(res, src[i])
	}
	return res
}
