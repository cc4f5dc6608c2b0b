package shield

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Model is a trainable spam model. Fit is called once, fitted model must be safe for
// concurrent SpamProbability calls and must survive json round trip without changing predictions.
type Model interface {
	Kind() string
	Fit(ctx context.Context, rows []Features, labels []Label) error
	SpamProbability(f Features) (float64, error)
	json.Marshaler
	json.Unmarshaler
}

var modelKinds = struct {
	sync.RWMutex
	factories map[string]func() Model
}{
	factories: map[string]func() Model{
		ForestKind: func() Model { return NewForest(ForestOptions{}) },
		BayesKind:  func() Model { return NewBayes() },
	},
}

// RegisterModel adds a model kind, used to restore saved classifiers. Existing kind is replaced.
func RegisterModel(kind string, factory func() Model) {
	modelKinds.Lock()
	defer modelKinds.Unlock()
	modelKinds.factories[kind] = factory
}

// NewModel makes an unfitted model of the kind
func NewModel(kind string) (Model, error) {
	modelKinds.RLock()
	defer modelKinds.RUnlock()
	factory, ok := modelKinds.factories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown model kind %q", kind)
	}
	return factory(), nil
}

// ModelKinds returns registered model kinds, sorted
func ModelKinds() []string {
	modelKinds.RLock()
	defer modelKinds.RUnlock()
	res := make([]string, 0, len(modelKinds.factories))
	for k := range modelKinds.factories {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
