// Package trainer retrains the model when corpus files change and on schedule.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-pkgz/repeater"

	"github.com/umputun/spamshield/lib/shield"
)

//go:generate moq --out mocks/trainer.go --pkg mocks --with-resets --skip-ensure . Trainer
//go:generate moq --out mocks/recorder.go --pkg mocks --with-resets --skip-ensure . Recorder

// Trainer trains the model
type Trainer interface {
	Train(ctx context.Context) (shield.TrainResult, error)
}

// Recorder keeps records of training runs
type Recorder interface {
	Start(ctx context.Context, notes string) (int64, error)
	Finish(ctx context.Context, id int64, res shield.TrainResult) error
}

// Scheduler runs training on corpus file changes in DataDir and periodically
type Scheduler struct {
	Trainer  Trainer
	Recorder Recorder      // optional, records every run
	DataDir  string        // directory with corpus files
	Watch    bool          // retrain on changes of corpus files
	Delay    time.Duration // debounce delay after the last change, 5s if not set
	Interval time.Duration // periodic retrain, disabled if 0
}

const corpusSuffix = "_spam.csv"

// Run blocks until ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.Watch && s.Interval <= 0 {
		return nil
	}
	delay := s.Delay
	if delay <= 0 {
		delay = 5 * time.Second
	}

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	if s.Watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(s.DataDir); err != nil {
			return fmt.Errorf("failed to add %s to watcher: %w", s.DataDir, err)
		}
		events, watchErrs = watcher.Events, watcher.Errors
		log.Printf("[INFO] watching corpus files in %s, retrain delay %v", s.DataDir, delay)
	}

	var ticks <-chan time.Time
	if s.Interval > 0 {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		ticks = ticker.C
		log.Printf("[INFO] periodic retrain every %v", s.Interval)
	}

	debounce := time.NewTimer(delay)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] training scheduler stopped, %v", ctx.Err())
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !isCorpusFile(ev.Name) || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
				!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			log.Printf("[DEBUG] corpus file event %s", ev)
			debounce.Reset(delay)
		case err, ok := <-watchErrs:
			if !ok {
				return nil
			}
			log.Printf("[WARN] watcher error: %v", err)
		case <-debounce.C:
			s.train(ctx, "Training initiated by corpus change")
		case <-ticks:
			s.train(ctx, "Scheduled training")
		}
	}
}

// train runs a single training, recorded if Recorder is set
func (s *Scheduler) train(ctx context.Context, notes string) {
	var id int64
	if s.Recorder != nil {
		err := repeater.NewDefault(3, 100*time.Millisecond).Do(ctx, func() (err error) {
			id, err = s.Recorder.Start(ctx, notes)
			return err
		})
		if err != nil {
			log.Printf("[WARN] can't start training log: %v", err)
		}
	}

	res, err := s.Trainer.Train(ctx)
	switch {
	case errors.Is(err, shield.ErrTrainingInProgress):
		log.Printf("[INFO] %s skipped, training in progress", strings.ToLower(notes))
	case err != nil:
		log.Printf("[WARN] %s failed: %v", strings.ToLower(notes), err)
	default:
		log.Printf("[INFO] model %s retrained, accuracy %.3f, %d samples", res.ModelID, res.Metrics.Accuracy, res.Metrics.SampleCount)
	}

	if s.Recorder == nil || id == 0 {
		return
	}
	if err != nil {
		res.Status = shield.TrainFailed
		if res.Notes == "" {
			res.Notes = err.Error()
		}
	}
	ferr := repeater.NewDefault(3, 100*time.Millisecond).Do(ctx, func() error {
		return s.Recorder.Finish(ctx, id, res)
	})
	if ferr != nil {
		log.Printf("[WARN] can't finish training log %d: %v", id, ferr)
	}
}

func isCorpusFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, corpusSuffix) && len(name) > len(corpusSuffix)
}
