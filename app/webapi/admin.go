package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/rest"

	"github.com/umputun/spamshield/app/storage"
	"github.com/umputun/spamshield/lib/shield"
)

// trainHandler handles POST /api/train request. It records the run in training logs,
// trains the model and returns the outcome. Only one training runs at a time, 409 for the second one.
func (s *Server) trainHandler(w http.ResponseWriter, r *http.Request) {
	// training is not tied to the client connection
	ctx := context.WithoutCancel(r.Context())

	var logID int64
	if s.TrainingLogs != nil {
		err := repeater.NewDefault(storeRepeats, storeDelay).Do(ctx, func() (err error) {
			logID, err = s.TrainingLogs.Start(ctx, "Training initiated by admin")
			return err
		})
		if err != nil {
			log.Printf("[WARN] can't start training log: %v", err)
		}
	}

	res, err := s.Detector.Train(ctx)
	if err != nil && res.Status == "" {
		res = shield.TrainResult{Status: shield.TrainFailed, Notes: err.Error()}
	}
	if !errors.Is(err, shield.ErrTrainingInProgress) {
		s.metrics.observeTraining(res)
	}
	s.finishTrainingLog(ctx, logID, res, err)

	switch {
	case errors.Is(err, shield.ErrTrainingInProgress):
		w.WriteHeader(http.StatusConflict)
		rest.RenderJSON(w, rest.JSON{"success": false, "status": res.Status, "error": err.Error()})
		return
	case err != nil:
		log.Printf("[WARN] training failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"success": false, "status": res.Status, "error": err.Error(), "log_id": logID})
		return
	}
	log.Printf("[INFO] model %s trained, accuracy %.3f, f1 %.3f, %d samples, %v", res.ModelID,
		res.Metrics.Accuracy, res.Metrics.F1, res.Metrics.SampleCount, res.Duration)
	rest.RenderJSON(w, rest.JSON{
		"success":  true,
		"status":   res.Status,
		"accuracy": res.Metrics.Accuracy,
		"metrics":  res.Metrics,
		"model_id": res.ModelID,
		"duration": res.Duration.Seconds(),
		"notes":    res.Notes,
		"log_id":   logID,
	})
}

func (s *Server) finishTrainingLog(ctx context.Context, id int64, res shield.TrainResult, trainErr error) {
	if s.TrainingLogs == nil || id == 0 {
		return
	}
	if trainErr != nil {
		res.Status = shield.TrainFailed
		if res.Notes == "" {
			res.Notes = trainErr.Error()
		}
	}
	err := repeater.NewDefault(storeRepeats, storeDelay).Do(ctx, func() error {
		return s.TrainingLogs.Finish(ctx, id, res)
	})
	if err != nil {
		log.Printf("[WARN] can't finish training log %d: %v", id, err)
	}
}

// trainingLogsHandler handles GET /api/training-logs?limit=50 request, newest first
func (s *Server) trainingLogsHandler(w http.ResponseWriter, r *http.Request) {
	if s.TrainingLogs == nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotImplemented, errors.New("no storage"), "training logs not available")
		return
	}
	logs, err := s.TrainingLogs.List(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't get training logs")
		return
	}
	rest.RenderJSON(w, logs)
}

// statsHandler handles GET /api/stats?days=7 request, daily spam and ham counts
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if s.Detections == nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotImplemented, errors.New("no storage"), "stats not available")
		return
	}
	days := queryInt(r, "days", 7)
	stats, err := s.Detections.Stats(r.Context(), time.Now().AddDate(0, 0, -days))
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't get stats")
		return
	}
	type dayCount struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	spam, ham := []dayCount{}, []dayCount{}
	for _, st := range stats {
		if st.Prediction == shield.Spam.String() {
			spam = append(spam, dayCount{Date: st.Date, Count: st.Count})
			continue
		}
		ham = append(ham, dayCount{Date: st.Date, Count: st.Count})
	}
	rest.RenderJSON(w, rest.JSON{"days": days, "spam": spam, "ham": ham})
}

// addSampleHandler handles POST /api/samples request with {platform, label, text}.
// Stored samples join the corpus on the next training.
func (s *Server) addSampleHandler(w http.ResponseWriter, r *http.Request) {
	if s.Samples == nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotImplemented, errors.New("no storage"), "samples not available")
		return
	}
	req := struct {
		Platform string `json:"platform"`
		Label    string `json:"label"`
		Text     string `json:"text"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "can't decode request")
		return
	}
	label, err := shield.ParseLabel(req.Label)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid label")
		return
	}
	if req.Platform == "" {
		req.Platform = "email"
	}
	sample, err := s.Samples.Add(r.Context(), req.Platform, label, req.Text)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "can't add sample")
		return
	}
	log.Printf("[INFO] sample %d added: %s/%s", sample.ID, sample.Platform, sample.Label)
	w.WriteHeader(http.StatusCreated)
	rest.RenderJSON(w, sample)
}

// listSamplesHandler handles GET /api/samples?platform=sms request
func (s *Server) listSamplesHandler(w http.ResponseWriter, r *http.Request) {
	if s.Samples == nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotImplemented, errors.New("no storage"), "samples not available")
		return
	}
	samples, err := s.Samples.List(r.Context(), r.URL.Query().Get("platform"))
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't get samples")
		return
	}
	rest.RenderJSON(w, samples)
}

// deleteSampleHandler handles DELETE /api/samples/{id} request
func (s *Server) deleteSampleHandler(w http.ResponseWriter, r *http.Request) {
	if s.Samples == nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotImplemented, errors.New("no storage"), "samples not available")
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "invalid sample id")
		return
	}
	if err := s.Samples.Delete(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNotFound) {
			code = http.StatusNotFound
		}
		rest.SendErrorJSON(w, r, lgr.Default(), code, err, fmt.Sprintf("can't delete sample %d", id))
		return
	}
	rest.RenderJSON(w, rest.JSON{"deleted": true, "id": id})
}
