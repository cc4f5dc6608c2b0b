package webapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/spamshield/lib/shield"
	"github.com/umputun/spamshield/lib/spamcheck"
)

// metrics holds prometheus collectors of the server, registered in its own registry
type metrics struct {
	registry       *prometheus.Registry
	detections     *prometheus.CounterVec
	detectDuration prometheus.Histogram
	trainings      *prometheus.CounterVec
	trainDuration  prometheus.Histogram
	modelState     *prometheus.GaugeVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		detections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "spamshield_detections_total",
			Help: "Total classified messages by prediction and fallback path",
		}, []string{"prediction", "fallback"}),
		detectDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "spamshield_detect_duration_seconds",
			Help:    "Time to classify a single message",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		trainings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "spamshield_trainings_total",
			Help: "Total training runs by status",
		}, []string{"status"}),
		trainDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "spamshield_train_duration_seconds",
			Help:    "Duration of training runs",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
		modelState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "spamshield_model_state",
			Help: "Current engine state, 1 for the active state",
		}, []string{"state"}),
	}
}

func (m *metrics) observeDetection(resp spamcheck.Response, took time.Duration) {
	m.detections.WithLabelValues(resp.Prediction, strconv.FormatBool(resp.Fallback)).Inc()
	m.detectDuration.Observe(took.Seconds())
}

func (m *metrics) observeTraining(res shield.TrainResult) {
	m.trainings.WithLabelValues(string(res.Status)).Inc()
	m.trainDuration.Observe(res.Duration.Seconds())
}

func (m *metrics) setState(state shield.State) {
	for _, st := range []shield.State{shield.Uninitialized, shield.Loading, shield.Trained, shield.FallbackOnly} {
		v := 0.0
		if st == state {
			v = 1
		}
		m.modelState.WithLabelValues(st.String()).Set(v)
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
