// Package advisory maps risk scores to user-facing recommendations.
package advisory

import (
	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
)

// Upper edges of the tiers, inclusive
const (
	SafeMax   = 0
	LowMax    = 30
	MediumMax = 60
	HighMax   = 100
)

var (
	safeAdvice = core.Advice{
		Tier:      core.TierSafe,
		Label:     "Safe",
		Headline:  "This email looks safe.",
		Directive: "You can read and respond normally. No suspicious content detected.",
	}
	lowAdvice = core.Advice{
		Tier:     core.TierLow,
		Label:    "Low",
		Headline: "Low risk detected.",
		Directive: "Avoid clicking links or downloading attachments unless you're sure it's from someone you trust. " +
			"If unsure, visit the official website directly or contact the sender through a known method.",
	}
	mediumAdvice = core.Advice{
		Tier:     core.TierMedium,
		Label:    "Medium",
		Headline: "Medium risk detected.",
		Directive: "Do not click any links or reply. Contact your supervisor, IT department, or the company " +
			"using a verified phone number or website. Save the email for review but avoid engaging with it.",
	}
	highAdvice = core.Advice{
		Tier:     core.TierHigh,
		Label:    "High",
		Headline: "High risk detected!",
		Directive: "Immediately report this email to your manager or IT support. Do not click links, " +
			"download attachments, or reply. Close the email and forward it to your security team for investigation.",
	}
)

// Engine is a stateless lookup over the four fixed tiers
type Engine struct{}

// NewEngine creates an advisory engine
func NewEngine() *Engine {
	return &Engine{}
}

// Advise returns the recommendation for score. Out of range scores are
// clamped to [0,100] first.
func (e *Engine) Advise(score int) core.Advice {
	score = min(max(score, 0), HighMax)

	switch {
	case score <= SafeMax:
		return safeAdvice
	case score <= LowMax:
		return lowAdvice
	case score <= MediumMax:
		return mediumAdvice
	default:
		return highAdvice
	}
}
