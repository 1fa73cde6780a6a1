package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveScan(t *testing.T) {
	r := NewRecorder(false)

	r.ObserveScan(&core.Report{
		Result: core.ScanResult{
			Score:          85,
			MatchedDanger:  []string{"urgent", "click here"},
			Reputation:     core.ReputationSuspicious,
			Spoofed:        true,
			CredentialTrap: true,
		},
		Advice: core.Advice{Tier: core.TierHigh},
	}, 2*time.Millisecond)
	r.ObserveScan(&core.Report{
		Result: core.ScanResult{MatchedSafe: []string{"unsubscribe"}},
		Advice: core.Advice{Tier: core.TierSafe},
		Cached: true,
	}, time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(r.scans.WithLabelValues("high", "false")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.scans.WithLabelValues("safe", "true")))
	require.Equal(t, 2.0, testutil.ToFloat64(r.signals.WithLabelValues("danger_phrase")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.signals.WithLabelValues("safe_phrase")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.signals.WithLabelValues("spoofed_sender")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.signals.WithLabelValues("credential_trap")))
	require.Equal(t, 1, testutil.CollectAndCount(r.scores, "phishbot_risk_score"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), "phishbot_risk_score_count 2")
}

func TestObserveError(t *testing.T) {
	r := NewRecorder(false)
	r.ObserveError("empty_input")
	r.ObserveError("empty_input")

	require.Equal(t, 2.0, testutil.ToFloat64(r.errors.WithLabelValues("empty_input")))
}

func TestHandler(t *testing.T) {
	r := NewRecorder(true)
	r.ObserveError("halted")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `phishbot_scan_errors_total{kind="halted"} 1`), body)
	require.Contains(t, body, "go_goroutines")
}
