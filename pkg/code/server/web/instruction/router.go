package instruction

import (
	"context"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	"github.com/code-payments/solana-instruction-api/pkg/metrics"
	"github.com/code-payments/solana-instruction-api/pkg/netutil"
)

const (
	requestIDHeaderName = "X-Request-Id"

	unmatchedRouteLabel = "unmatched"
)

type requestIDContextKey struct{}

func requestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}

// Handler returns the complete public API: routing, per request
// instrumentation, rate limiting, body size limits, CORS and gzip.
func (s *Server) Handler() (http.Handler, error) {
	allowedOrigins := s.conf.allowedOrigins.Get(context.Background())
	for _, origin := range allowedOrigins {
		if err := netutil.ValidateAllowedOrigin(origin); err != nil {
			return nil, errors.Wrapf(err, "invalid allowed origin %q", origin)
		}
	}

	router := mux.NewRouter()
	routes := make(map[string]struct{})
	for path, handler := range s.GetHandlers() {
		router.Handle(path, handler)
		routes[path] = struct{}{}
	}
	router.NotFoundHandler = http.HandlerFunc(s.notFoundHandler)

	var handler http.Handler = router
	handler = s.limitBody(handler)
	handler = s.limitRate(handler)
	handler = s.instrument(routes, handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{requestIDHeaderName},
	}).Handler(handler)

	return gziphandler.GzipHandler(corsHandler), nil
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	log := s.requestLog(r, r.URL.Path)
	s.writeResponse(log, w, http.StatusNotFound, NewGenericApiFailureResponseBody(errNotFound))
}

// instrument assigns the request id and records the request against New
// Relic and Prometheus.
func (s *Server) instrument(routes map[string]struct{}, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		route := r.URL.Path
		if _, ok := routes[route]; !ok {
			route = unmatchedRouteLabel
		}

		requestID := uuid.NewString()
		w.Header().Set(requestIDHeaderName, requestID)

		ctx := context.WithValue(r.Context(), requestIDContextKey{}, requestID)
		if s.newRelic != nil {
			ctx = metrics.WithNewRelicApplication(ctx, s.newRelic)
		}
		r = r.WithContext(ctx)

		if txn := metrics.StartWebTransaction(s.newRelic, r.Method+" "+route); txn != nil {
			defer txn.End()

			txn.SetWebRequestHTTP(r)
			w = txn.SetWebResponse(w)
			r = newrelic.RequestWithTransactionContext(r, txn)
		}

		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		s.collectors.ObserveRequest(route, r.Method, recorder.statusCode, duration)
		metrics.RecordDuration(r.Context(), "Custom/Http"+route, duration)
	})
}

// limitRate applies the per client IP request budget
func (s *Server) limitRate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := netutil.GetClientIP(r)

		allowed, err := s.limiter.Allow(clientIP)
		if err != nil {
			s.requestLog(r, r.URL.Path).WithError(err).Warn("failure checking rate limit")
		} else if !allowed {
			s.collectors.IncRateLimited()
			metrics.RecordEvent(r.Context(), metrics.RequestRateLimitedEventName, map[string]interface{}{
				"path": r.URL.Path,
			})

			log := s.requestLog(r, r.URL.Path)
			log.Debug("request rate limited")
			s.writeResponse(log, w, http.StatusTooManyRequests, NewGenericApiFailureResponseBody(errRateLimited))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		maxBodyBytes := s.conf.maxBodyBytes.Get(r.Context())
		if maxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
