package shield

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus returned when no usable training examples found anywhere
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrSingleClass returned by fit when training labels contain one class only
	ErrSingleClass = errors.New("training data has a single class")
	// ErrModelUnavailable returned by predict if no trained or loaded model exists
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrTrainingInProgress returned by Engine.Train if another training is running
	ErrTrainingInProgress = errors.New("training already in progress")
)

// DataLoadError reports a missing or corrupt example set. The set is skipped, other sets are still used.
type DataLoadError struct {
	Platform string
	Err      error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("can't load %s examples: %v", e.Platform, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
