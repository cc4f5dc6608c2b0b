package trainer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/spamshield/app/trainer/mocks"
	"github.com/umputun/spamshield/lib/shield"
)

func okTrainer() *mocks.TrainerMock {
	return &mocks.TrainerMock{TrainFunc: func(ctx context.Context) (shield.TrainResult, error) {
		return shield.TrainResult{Status: shield.TrainSuccess, ModelID: "m1"}, nil
	}}
}

func runScheduler(t *testing.T, s *Scheduler) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, s.Run(ctx))
	}()
	return func() {
		cancelCtx()
		<-done
	}
}

func TestScheduler_WatchCorpus(t *testing.T) {
	dir := t.TempDir()
	tr := okTrainer()
	cancel := runScheduler(t, &Scheduler{Trainer: tr, DataDir: dir, Watch: true, Delay: 100 * time.Millisecond})
	defer cancel()
	time.Sleep(50 * time.Millisecond) // let watcher start

	// unrelated file ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, tr.TrainCalls())

	// several changes in a row make a single training
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sms_spam.csv"), []byte("text,text_type\nhi,ham\n"), 0o600))
		time.Sleep(20 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return len(tr.TrainCalls()) == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, tr.TrainCalls(), 1)

	require.NoError(t, os.Remove(filepath.Join(dir, "sms_spam.csv")))
	assert.Eventually(t, func() bool { return len(tr.TrainCalls()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestScheduler_Interval(t *testing.T) {
	tr := okTrainer()
	cancel := runScheduler(t, &Scheduler{Trainer: tr, Interval: 50 * time.Millisecond})
	assert.Eventually(t, func() bool { return len(tr.TrainCalls()) >= 2 }, time.Second, 10*time.Millisecond)
	cancel()
}

func TestScheduler_Recorder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := &mocks.RecorderMock{
			StartFunc:  func(ctx context.Context, notes string) (int64, error) { return 3, nil },
			FinishFunc: func(ctx context.Context, id int64, res shield.TrainResult) error { return nil },
		}
		s := &Scheduler{Trainer: okTrainer(), Recorder: rec}
		s.train(context.Background(), "Scheduled training")
		require.Len(t, rec.StartCalls(), 1)
		assert.Equal(t, "Scheduled training", rec.StartCalls()[0].Notes)
		require.Len(t, rec.FinishCalls(), 1)
		assert.Equal(t, int64(3), rec.FinishCalls()[0].Id)
		assert.Equal(t, shield.TrainSuccess, rec.FinishCalls()[0].Res.Status)
	})

	t.Run("failure", func(t *testing.T) {
		rec := &mocks.RecorderMock{
			StartFunc:  func(ctx context.Context, notes string) (int64, error) { return 4, nil },
			FinishFunc: func(ctx context.Context, id int64, res shield.TrainResult) error { return nil },
		}
		tr := &mocks.TrainerMock{TrainFunc: func(ctx context.Context) (shield.TrainResult, error) {
			return shield.TrainResult{}, errors.New("no corpus")
		}}
		s := &Scheduler{Trainer: tr, Recorder: rec}
		s.train(context.Background(), "Scheduled training")
		require.Len(t, rec.FinishCalls(), 1)
		assert.Equal(t, shield.TrainFailed, rec.FinishCalls()[0].Res.Status)
		assert.Equal(t, "no corpus", rec.FinishCalls()[0].Res.Notes)
	})

	t.Run("start failed", func(t *testing.T) {
		rec := &mocks.RecorderMock{
			StartFunc: func(ctx context.Context, notes string) (int64, error) { return 0, errors.New("db down") },
		}
		tr := okTrainer()
		s := &Scheduler{Trainer: tr, Recorder: rec}
		s.train(context.Background(), "Scheduled training")
		assert.Len(t, rec.StartCalls(), 3)
		assert.Len(t, tr.TrainCalls(), 1, "training runs anyway")
		assert.Empty(t, rec.FinishCalls())
	})
}

func TestScheduler_Run(t *testing.T) {
	t.Run("nothing to do", func(t *testing.T) {
		require.NoError(t, (&Scheduler{Trainer: okTrainer()}).Run(context.Background()))
	})

	t.Run("missing dir", func(t *testing.T) {
		s := &Scheduler{Trainer: okTrainer(), Watch: true, DataDir: filepath.Join(t.TempDir(), "nope")}
		require.Error(t, s.Run(context.Background()))
	})
}

func TestIsCorpusFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"data/sms_spam.csv", true},
		{"/tmp/email_spam.csv", true},
		{"_spam.csv", false},
		{"sms_spam.csv.swp", false},
		{"sms_ham.csv", false},
		{"spam_model.json", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isCorpusFile(tt.path), tt.path)
	}
}
