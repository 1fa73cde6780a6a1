package filter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
)

const timeLayout = "2006-01-02 15:04:05"

// Reason summarizes the signals behind a score on one line
func Reason(r core.ScanResult) string {
	var parts []string
	if len(r.MatchedDanger) > 0 {
		parts = append(parts, "phrases="+strings.Join(r.MatchedDanger, ","))
	}
	if len(r.MatchedSafe) > 0 {
		parts = append(parts, "safe="+strings.Join(r.MatchedSafe, ","))
	}
	if r.HasSenderDomain() {
		parts = append(parts, fmt.Sprintf("sender=%s(%s)", r.SenderDomain, r.Reputation))
	}
	if r.Spoofed {
		parts = append(parts, "spoofs="+r.SpoofTarget)
	}
	if r.CredentialTrap {
		parts = append(parts, "credential_trap")
	}
	if len(parts) == 0 {
		return "no signals"
	}
	return strings.Join(parts, "; ")
}

// RenderText writes the human readable result panel
func RenderText(w io.Writer, report *core.Report) error {
	r := report.Result
	var b strings.Builder

	for _, warning := range report.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}
	if len(report.Warnings) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("=== Scan Results ===\n")
	fmt.Fprintf(&b, "Scan completed at %s\n", report.ScannedAt.Format(timeLayout))
	fmt.Fprintf(&b, "Risk Score: %d%% (%s)\n", r.Score, report.Advice.Label)

	b.WriteString("\nRecommended Actions:\n")
	b.WriteString(report.Advice.Message())
	b.WriteString("\n")

	if len(r.MatchedDanger) > 0 {
		b.WriteString("\nSuspicious Phrases Found:\n")
		for _, p := range r.MatchedDanger {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	if len(r.MatchedSafe) > 0 {
		b.WriteString("\nSafe Phrases Detected:\n")
		for _, p := range r.MatchedSafe {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	if r.HasSenderDomain() {
		fmt.Fprintf(&b, "\nSender Domain: %s (%s)\n", r.SenderDomain, r.Reputation)
		if r.Spoofed {
			fmt.Fprintf(&b, "Domain spoofing detected: This domain closely resembles a trusted one (%s).\n", r.SpoofTarget)
		}
	}
	if r.CredentialTrap {
		b.WriteString("\nCredential trap detected: This email may contain a form or prompt requesting sensitive information.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes the report as indented JSON
func RenderJSON(w io.Writer, report *core.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
