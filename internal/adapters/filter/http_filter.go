package filter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPFilter serves the scanner over a small JSON API
type HTTPFilter struct {
	service      *core.ScanService
	processor    *utils.TextProcessor
	logger       *zap.Logger
	listenAddr   string
	limiter      *rate.Limiter
	metrics      http.Handler
	maxBodySize  int64
	readTimeout  time.Duration
	writeTimeout time.Duration
	server       *http.Server
}

type scanRequest struct {
	Text string `json:"text"`
}

type adviceResponse struct {
	Score int `json:"score"`
	core.Advice
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPFilter creates a new HTTP front end. A non-positive rateLimit
// disables throttling; a nil metrics handler disables /metrics.
func NewHTTPFilter(
	service *core.ScanService,
	processor *utils.TextProcessor,
	logger *zap.Logger,
	listenAddr string,
	rateLimit float64,
	rateBurst int,
	maxBodySize int64,
	readTimeout time.Duration,
	writeTimeout time.Duration,
	metrics http.Handler,
) *HTTPFilter {
	limit := rate.Inf
	if rateLimit > 0 {
		limit = rate.Limit(rateLimit)
	}
	if rateBurst < 1 {
		rateBurst = 1
	}

	return &HTTPFilter{
		service:      service,
		processor:    processor,
		logger:       logger,
		listenAddr:   listenAddr,
		limiter:      rate.NewLimiter(limit, rateBurst),
		metrics:      metrics,
		maxBodySize:  maxBodySize,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Handler returns the routed API
func (f *HTTPFilter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /scan", f.throttle(http.HandlerFunc(f.handleScan)))
	mux.Handle("GET /advice", f.throttle(http.HandlerFunc(f.handleAdvice)))
	mux.HandleFunc("GET /healthz", f.handleHealth)
	if f.metrics != nil {
		mux.Handle("GET /metrics", f.metrics)
	}
	return mux
}

// Start starts the HTTP server
func (f *HTTPFilter) Start() error {
	f.server = &http.Server{
		Addr:         f.listenAddr,
		Handler:      f.Handler(),
		ReadTimeout:  f.readTimeout,
		WriteTimeout: f.writeTimeout,
	}

	f.logger.Info("HTTP filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the HTTP server down
func (f *HTTPFilter) Stop() error {
	if f.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return f.server.Shutdown(ctx)
}

// ProcessEmail scans raw input without going through HTTP
func (f *HTTPFilter) ProcessEmail(ctx context.Context, raw string) (*core.Report, error) {
	return f.service.Scan(ctx, f.processor.ProcessText(PrepareText([]byte(raw))))
}

func (f *HTTPFilter) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.limiter.Allow() {
			f.logger.Warn("Rate limit exceeded", zap.String("remote", r.RemoteAddr), zap.String("path", r.URL.Path))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *HTTPFilter) handleScan(w http.ResponseWriter, r *http.Request) {
	if f.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, f.maxBodySize)
	}

	raw, err := f.readScanBody(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("email exceeds %d bytes", tooLarge.Limit)})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	report, err := f.ProcessEmail(r.Context(), raw)
	switch {
	case errors.Is(err, core.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, core.ErrScanningHalted):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	case err != nil:
		f.logger.Error("Scan failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "scan failed"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// readScanBody accepts either {"text": "..."} or the raw email as the body
func (f *HTTPFilter) readScanBody(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return "", err
			}
			return "", fmt.Errorf("invalid JSON body: %w", err)
		}
		return req.Text, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *HTTPFilter) handleAdvice(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "score must be an integer"})
		return
	}

	advice := f.service.Advise(score)
	writeJSON(w, http.StatusOK, adviceResponse{
		Score:   min(max(score, 0), 100),
		Advice:  advice,
		Message: advice.Message(),
	})
}

func (f *HTTPFilter) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if f.service.Halted() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "halted",
			"error":  core.ErrScanningHalted.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"warnings": f.service.Warnings(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
