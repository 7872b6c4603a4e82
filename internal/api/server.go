// Package api exposes the comparison engine over HTTP using fasthttp.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/rpgo/rothtrad/internal/config"
	"github.com/rpgo/rothtrad/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	cacheHeader     = "X-Cache"
	limitsPrefix    = "/api/limits/"
)

// Engine is the part of the calculation engine the server needs
type Engine interface {
	Compare(ctx context.Context, s domain.ScenarioInput) (*domain.ComparisonResult, error)
	LimitsFor(year int) (*domain.LimitsInfo, error)
}

// Server is the HTTP boundary around the engine
type Server struct {
	engine  Engine
	cache   *ComparisonCache
	limiter *rate.Limiter
	metrics *Metrics
	logger  *logrus.Logger
	addr    string
	timeout time.Duration

	metricsHandler fasthttp.RequestHandler
}

// NewServer wires an engine to the HTTP handlers. A nil logger discards output.
func NewServer(engine Engine, cfg config.ServerSettings, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	m := NewMetrics()
	return &Server{
		engine:         engine,
		cache:          NewComparisonCache(cfg.CacheTTL),
		limiter:        rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		metrics:        m,
		logger:         logger,
		addr:           cfg.Addr,
		timeout:        cfg.Timeout,
		metricsHandler: m.Handler(),
	}
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler routes requests and records the access log and request metrics
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		requestID := string(ctx.Request.Header.Peek(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Response.Header.Set(requestIDHeader, requestID)

		route := s.dispatch(ctx)

		status := ctx.Response.StatusCode()
		elapsed := time.Since(start)
		s.metrics.recordRequest(route, status, elapsed.Seconds())
		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     string(ctx.Method()),
			"path":       string(ctx.Path()),
			"status":     status,
			"duration":   elapsed,
		}).Info("request completed")
	}
}

// dispatch runs the matching handler and returns its route label
func (s *Server) dispatch(ctx *fasthttp.RequestCtx) string {
	path := string(ctx.Path())
	switch {
	case path == "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		return "healthz"
	case path == "/metrics":
		s.metricsHandler(ctx)
		return "metrics"
	case path == "/api/compare":
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		} else if s.allow(ctx) {
			s.handleCompare(ctx)
		}
		return "compare"
	case strings.HasPrefix(path, limitsPrefix):
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		} else if s.allow(ctx) {
			s.handleLimits(ctx, strings.TrimPrefix(path, limitsPrefix))
		}
		return "limits"
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return "unknown"
	}
}

func (s *Server) allow(ctx *fasthttp.RequestCtx) bool {
	if s.limiter.Allow() {
		return true
	}
	s.metrics.rateLimited.Inc()
	ctx.Response.Header.Set("Retry-After", "1")
	writeError(ctx, fasthttp.StatusTooManyRequests, "rate limit exceeded")
	return false
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	in := domain.DefaultScenario()
	dec := json.NewDecoder(bytes.NewReader(ctx.PostBody()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		s.metrics.recordComparison("error")
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	normalized, err := json.Marshal(in)
	if err != nil {
		s.metrics.recordComparison("error")
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	key := Fingerprint(normalized)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.recordCache(true)
		ctx.Response.Header.Set(cacheHeader, "HIT")
		writeJSON(ctx, fasthttp.StatusOK, cached)
		return
	}
	s.metrics.recordCache(false)

	cctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	result, err := s.engine.Compare(cctx, in)
	if err != nil {
		s.metrics.recordComparison("error")
		status := statusFor(err)
		if status == fasthttp.StatusInternalServerError {
			s.logger.WithError(err).Error("comparison failed")
		}
		writeError(ctx, status, err.Error())
		return
	}

	outcome := "traditional"
	if result.Summary.Winner == domain.WinnerRoth {
		outcome = "roth"
	}
	s.metrics.recordComparison(outcome)
	s.cache.Set(key, result)
	ctx.Response.Header.Set(cacheHeader, "MISS")
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleLimits(ctx *fasthttp.RequestCtx, yearParam string) {
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("%s: year %q is not a number", domain.ErrInvalidInput, yearParam))
		return
	}
	limits, err := s.engine.LimitsFor(year)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, limits)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "rothtrad",
		ReadTimeout:  s.timeout,
		WriteTimeout: s.timeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return <-errCh
	}
}

// ListenAndServe listens on the configured address and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.logger.WithField("addr", ln.Addr().String()).Info("server listening")
	return s.Serve(ctx, ln)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = fasthttp.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Status: status, Message: err.Error()})
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}
