package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPCollectors holds the Prometheus series exported for the public API.
type HTTPCollectors struct {
	requestDuration   *prometheus.HistogramVec
	requestCount      *prometheus.CounterVec
	instructionsBuilt *prometheus.CounterVec
	rateLimited       prometheus.Counter
}

func NewHTTPCollectors(namespace string, registerer prometheus.Registerer) (*HTTPCollectors, error) {
	c := &HTTPCollectors{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent serving API requests",
				Buckets: []float64{
					.0005, // instant
					.001,
					.005,
					.025, // good
					.1,
					.5, // worrisome
					// anything larger will be bucketed together
				},
			},
			[]string{"route", "method"},
		),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_count",
				Help:      "API requests by route and status code",
			},
			[]string{"route", "method", "code"},
		),
		instructionsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "instructions_built_count",
				Help:      "Instructions built by kind",
			},
			[]string{"kind"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_count",
				Help:      "Requests rejected by the per-client rate limiter",
			},
		),
	}

	for _, collector := range []prometheus.Collector{
		c.requestDuration,
		c.requestCount,
		c.instructionsBuilt,
		c.rateLimited,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, errors.Wrap(err, "error registering collector")
		}
	}

	return c, nil
}

func (c *HTTPCollectors) ObserveRequest(route, method string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}

	c.requestDuration.With(prometheus.Labels{
		"route":  route,
		"method": method,
	}).Observe(duration.Seconds())

	c.requestCount.With(prometheus.Labels{
		"route":  route,
		"method": method,
		"code":   strconv.Itoa(statusCode),
	}).Inc()
}

func (c *HTTPCollectors) IncInstructionsBuilt(kind string) {
	if c == nil {
		return
	}
	c.instructionsBuilt.With(prometheus.Labels{"kind": kind}).Inc()
}

func (c *HTTPCollectors) IncRateLimited() {
	if c == nil {
		return
	}
	c.rateLimited.Inc()
}

// NewPrometheusHandler exposes everything gathered by gatherer.
func NewPrometheusHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
