// Package webapi provides a web API spam detection service.
package webapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/spamshield/app/config"
	"github.com/umputun/spamshield/app/storage"
	"github.com/umputun/spamshield/lib/shield"
	"github.com/umputun/spamshield/lib/spamcheck"
)

//go:generate moq --out mocks/detector.go --pkg mocks --with-resets --skip-ensure . Detector
//go:generate moq --out mocks/detection_store.go --pkg mocks --with-resets --skip-ensure . DetectionStore
//go:generate moq --out mocks/training_log_store.go --pkg mocks --with-resets --skip-ensure . TrainingLogStore
//go:generate moq --out mocks/sample_store.go --pkg mocks --with-resets --skip-ensure . SampleStore
//go:generate moq --out mocks/pinger.go --pkg mocks --with-resets --skip-ensure . Pinger

// Server is a web API server.
type Server struct {
	Config
	metrics *metrics
}

// Config defines server parameters
type Config struct {
	Version      string           // version to show in /ping
	ListenAddr   string           // listen address
	Detector     Detector         // spam detector
	Detections   DetectionStore   // detection history storage, in-memory history of Detector if nil
	TrainingLogs TrainingLogStore // training logs storage, optional
	Samples      SampleStore      // stored training samples, optional
	DB           Pinger           // database to report in health, optional
	Logger       DetectionLogger  // detection log, optional
	Settings     *config.Settings // effective settings for /api/settings, optional
	AuthUser     string           // basic auth user for admin routes, "admin" if empty
	AuthPasswd   string           // basic auth password for admin routes, no auth if empty
	RateLimit    int              // detect requests per client per day, unlimited if 0
	WriteTimeout time.Duration    // response write timeout, should cover a training run
	Dbg          bool             // debug mode
}

// Detector is a spam detector interface.
type Detector interface {
	Check(req spamcheck.Request) (spamcheck.Response, error)
	Train(ctx context.Context) (shield.TrainResult, error)
	Health() shield.Health
	History(page, perPage int) spamcheck.HistoryPage
}

// DetectionStore is a persistent detection history.
type DetectionStore interface {
	Write(ctx context.Context, d spamcheck.Detection) (int64, error)
	Page(ctx context.Context, page, perPage int) (spamcheck.HistoryPage, error)
	Stats(ctx context.Context, since time.Time) ([]storage.DailyStats, error)
}

// TrainingLogStore keeps records of training runs.
type TrainingLogStore interface {
	Start(ctx context.Context, notes string) (int64, error)
	Finish(ctx context.Context, id int64, res shield.TrainResult) error
	List(ctx context.Context, limit int) ([]storage.TrainingLog, error)
}

// SampleStore keeps labeled samples added via api.
type SampleStore interface {
	Add(ctx context.Context, platform string, label shield.Label, text string) (storage.Sample, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, platform string) ([]storage.Sample, error)
}

// Pinger checks database connection.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DetectionLogger is used to log every classified message
type DetectionLogger interface {
	Save(req *spamcheck.Request, resp *spamcheck.Response)
}

// DetectionLoggerFunc is a function that implements DetectionLogger interface
type DetectionLoggerFunc func(req *spamcheck.Request, resp *spamcheck.Response)

// Save is a function that implements DetectionLogger interface
func (f DetectionLoggerFunc) Save(req *spamcheck.Request, resp *spamcheck.Response) { f(req, resp) }

const (
	storeRepeats = 3
	storeDelay   = 100 * time.Millisecond
)

// NewServer creates a new web API server.
func NewServer(cfg Config) *Server {
	if cfg.AuthUser == "" {
		cfg.AuthUser = "admin"
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Minute
	}
	return &Server{Config: cfg, metrics: newMetrics()}
}

// Run starts server and accepts requests checking for spam messages.
func (s *Server) Run(ctx context.Context) error {
	if s.AuthPasswd != "" {
		log.Printf("[INFO] basic auth enabled for admin routes, user %q", s.AuthUser)
	} else {
		log.Printf("[WARN] basic auth disabled, access to admin routes is not protected")
	}

	srv := &http.Server{Addr: s.ListenAddr, Handler: s.routes(routegroup.New(http.NewServeMux())),
		ReadHeaderTimeout: 5 * time.Second, ReadTimeout: 5 * time.Second, WriteTimeout: s.WriteTimeout}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown webapi server: %v", err)
		} else {
			log.Printf("[INFO] webapi server stopped")
		}
	}()

	log.Printf("[INFO] start webapi server on %s", s.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

func (s *Server) routes(router *routegroup.Bundle) http.Handler {
	router.Use(rest.Recoverer(lgr.Default()), rest.AppInfo("spamshield", "umputun", s.Version), rest.Ping)
	router.Use(rest.SizeLimit(1024 * 1024)) // 1M max request size

	router.HandleFunc("GET /api/health", s.healthHandler)
	router.Handle("GET /metrics", s.metrics.handler())
	router.With(s.rateLimiter()).HandleFunc("POST /api/detect", s.detectHandler)
	router.HandleFunc("GET /api/history", s.historyHandler)

	router.Group().Route(func(admin *routegroup.Bundle) {
		admin.Use(s.authMiddleware(rest.BasicAuthWithUserPasswd(s.AuthUser, s.AuthPasswd)))
		admin.HandleFunc("POST /api/train", s.trainHandler)
		admin.HandleFunc("GET /api/training-logs", s.trainingLogsHandler)
		admin.HandleFunc("GET /api/stats", s.statsHandler)
		admin.HandleFunc("GET /api/settings", s.settingsHandler)
		admin.HandleFunc("POST /api/samples", s.addSampleHandler)
		admin.HandleFunc("GET /api/samples", s.listSamplesHandler)
		admin.HandleFunc("DELETE /api/samples/{id}", s.deleteSampleHandler)
	})
	return router
}

// rateLimiter limits detect requests per client ip, RateLimit per day with the same burst
func (s *Server) rateLimiter() func(http.Handler) http.Handler {
	if s.RateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	lmt := tollbooth.NewLimiter(float64(s.RateLimit)/(24*60*60), &limiter.ExpirableOptions{DefaultExpirationTTL: 24 * time.Hour})
	lmt.SetBurst(s.RateLimit)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessageContentType("application/json; charset=utf-8")
	lmt.SetMessage(`{"error":"rate limit exceeded"}`)
	return tollbooth.HTTPMiddleware(lmt)
}

// detectHandler handles POST /api/detect request.
// it gets message text and platform from request body and returns prediction with explanation.
func (s *Server) detectHandler(w http.ResponseWriter, r *http.Request) {
	req := spamcheck.Request{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[WARN] can't decode detect request: %v", err)
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "can't decode request")
		return
	}
	if err := req.Validate(); err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "Missing text parameter")
		return
	}

	st := time.Now()
	resp, err := s.Detector.Check(req)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest, err, "can't check message")
		return
	}
	s.metrics.observeDetection(resp, time.Since(st))
	if resp.Diagnostic != "" {
		log.Printf("[WARN] model failed, fallback used: %s", resp.Diagnostic)
	}

	if s.Detections != nil {
		resp.AnalysisID = 0 // id of in-memory history is not valid for the stored history
		d := spamcheck.Detection{Content: req.Message(), Platform: req.Platform, Prediction: resp.Prediction,
			Confidence: resp.Probability, Fallback: resp.Fallback, ModelID: resp.ModelID, CreatedAt: time.Now()}
		err := repeater.NewDefault(storeRepeats, storeDelay).Do(r.Context(), func() error {
			id, werr := s.Detections.Write(r.Context(), d)
			if werr != nil {
				return werr
			}
			resp.AnalysisID = id
			return nil
		})
		if err != nil {
			log.Printf("[WARN] can't store detection: %v", err)
		}
	}
	if s.Logger != nil {
		s.Logger.Save(&req, &resp)
	}
	log.Printf("[DEBUG] detect %s -> %s", &req, &resp)
	rest.RenderJSON(w, resp)
}

// historyHandler handles GET /api/history?page=1&per_page=10 request, newest first
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := queryInt(r, "page", 1), queryInt(r, "per_page", 10)
	if s.Detections == nil {
		rest.RenderJSON(w, s.Detector.History(page, perPage))
		return
	}
	res, err := s.Detections.Page(r.Context(), page, perPage)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't get history")
		return
	}
	rest.RenderJSON(w, res)
}

// healthHandler handles GET /api/health request
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	h := s.Detector.Health()
	s.metrics.setState(h.State)
	dbConnected := false
	if s.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(ctx); err != nil {
			log.Printf("[WARN] database ping failed: %v", err)
		} else {
			dbConnected = true
		}
	}
	rest.RenderJSON(w, rest.JSON{
		"status":             "healthy",
		"model_trained":      h.Trained,
		"state":              h.State,
		"model_id":           h.ModelID,
		"model_kind":         h.ModelKind,
		"metrics":            h.Metrics,
		"database_connected": dbConnected,
	})
}

func (s *Server) authMiddleware(mw func(next http.Handler) http.Handler) func(next http.Handler) http.Handler {
	if s.AuthPasswd == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return func(next http.Handler) http.Handler {
		return mw(next)
	}
}

// queryInt returns positive int query parameter or the default value
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// GenerateRandomPassword generates a random password of a given length
func GenerateRandomPassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+"

	var password strings.Builder
	charsetSize := big.NewInt(int64(len(charset)))

	for i := 0; i < length; i++ {
		randomNumber, err := rand.Int(rand.Reader, charsetSize)
		if err != nil {
			return "", err
		}

		password.WriteByte(charset[randomNumber.Int64()])
	}

	return password.String(), nil
}
