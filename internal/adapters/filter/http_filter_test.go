package filter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/metrics"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHTTPFilter(service *core.ScanService, rateLimit float64, maxBody int64) *HTTPFilter {
	return NewHTTPFilter(service, newTestProcessor(), zap.NewNop(), "127.0.0.1:0",
		rateLimit, 1, maxBody, time.Second, time.Second, metrics.NewRecorder(false).Handler())
}

func serve(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTPScanRawBody(t *testing.T) {
	h := newTestHTTPFilter(newTestService(), 0, 0).Handler()

	rec := serve(h, http.MethodPost, "/scan", "text/plain", "From: x@account-alerts.org\nURGENT <input type=text>")
	require.Equal(t, http.StatusOK, rec.Code)

	var report core.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.NotEmpty(t, report.ID)
	require.Equal(t, 65, report.Result.Score)
	require.Equal(t, core.TierHigh, report.Advice.Tier)
	require.True(t, report.Result.CredentialTrap)
}

func TestHTTPScanJSONBody(t *testing.T) {
	h := newTestHTTPFilter(newTestService("degraded"), 0, 0).Handler()

	rec := serve(h, http.MethodPost, "/scan", "application/json; charset=utf-8", `{"text": "see you at lunch"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report core.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 0, report.Result.Score)
	require.Equal(t, core.TierSafe, report.Advice.Tier)
	require.Equal(t, []string{"degraded"}, report.Warnings)
}

func TestHTTPScanMIMEBody(t *testing.T) {
	h := newTestHTTPFilter(newTestService(), 0, 0).Handler()

	rec := serve(h, http.MethodPost, "/scan", "message/rfc822", multipartMessage)
	require.Equal(t, http.StatusOK, rec.Code)

	var report core.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 80, report.Result.Score)
}

func TestHTTPScanErrors(t *testing.T) {
	testCases := []struct {
		name        string
		service     *core.ScanService
		maxBody     int64
		contentType string
		body        string
		status      int
	}{
		{"empty raw body", newTestService(), 0, "text/plain", "   ", http.StatusBadRequest},
		{"empty json text", newTestService(), 0, "application/json", `{"text": ""}`, http.StatusBadRequest},
		{"invalid json", newTestService(), 0, "application/json", `{"text":`, http.StatusBadRequest},
		{"too large", newTestService(), 8, "text/plain", "this body is longer than eight bytes", http.StatusRequestEntityTooLarge},
		{"halted", newHaltedService(), 0, "text/plain", "urgent", http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHTTPFilter(tc.service, 0, tc.maxBody).Handler()
			rec := serve(h, http.MethodPost, "/scan", tc.contentType, tc.body)
			require.Equal(t, tc.status, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestHTTPScanRejectsGet(t *testing.T) {
	h := newTestHTTPFilter(newTestService(), 0, 0).Handler()
	rec := serve(h, http.MethodGet, "/scan", "", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPAdvice(t *testing.T) {
	h := newTestHTTPFilter(newTestService(), 0, 0).Handler()

	rec := serve(h, http.MethodGet, "/advice?score=45", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp adviceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 45, resp.Score)
	require.Equal(t, core.TierMedium, resp.Tier)
	require.Equal(t, "Medium", resp.Label)
	require.True(t, strings.HasPrefix(resp.Message, "Medium risk detected."))

	rec = serve(h, http.MethodGet, "/advice?score=150", "", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 100, resp.Score)
	require.Equal(t, core.TierHigh, resp.Tier)

	rec = serve(h, http.MethodGet, "/advice?score=high", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPHealth(t *testing.T) {
	rec := serve(newTestHTTPFilter(newTestService("degraded"), 0, 0).Handler(), http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
	require.Contains(t, rec.Body.String(), "degraded")

	rec = serve(newTestHTTPFilter(newHaltedService(), 0, 0).Handler(), http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"halted"`)
}

func TestHTTPRateLimit(t *testing.T) {
	h := newTestHTTPFilter(newTestService(), 0.001, 0).Handler()

	first := serve(h, http.MethodPost, "/scan", "text/plain", "urgent")
	require.Equal(t, http.StatusOK, first.Code)

	second := serve(h, http.MethodPost, "/scan", "text/plain", "urgent")
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	// health checks are never throttled
	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/healthz", "", "").Code)
}

func TestHTTPMetrics(t *testing.T) {
	h := newTestHTTPFilter(newTestService(), 0, 0).Handler()
	rec := serve(h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
