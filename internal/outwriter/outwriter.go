// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDrift prints a drift report using the configured output format.
func (ow *OutWriter) WriteDrift(report *schema.DriftReport, cfg *contract.Config, duration time.Duration) error {
	return WriteDriftResults(report, cfg, duration)
}

// WriteFairness prints a fairness report using the configured output format.
func (ow *OutWriter) WriteFairness(report *schema.FairnessReport, cfg *contract.Config, duration time.Duration) error {
	return WriteFairnessResults(report, cfg, duration)
}

// WriteLeaderboard prints an intersectional leaderboard using the configured output format.
func (ow *OutWriter) WriteLeaderboard(board *schema.Leaderboard, cfg *contract.Config, duration time.Duration) error {
	return WriteLeaderboardResults(board, cfg, duration)
}

// WriteRootCause prints an attribution drift report using the configured output format.
func (ow *OutWriter) WriteRootCause(report *schema.AttributionDriftReport, cfg *contract.Config, duration time.Duration) error {
	return WriteRootCauseResults(report, cfg, duration)
}

// WriteMonitor prints a full monitor report using the configured output format.
func (ow *OutWriter) WriteMonitor(report *schema.MonitorReport, cfg *contract.Config, duration time.Duration) error {
	return WriteMonitorResults(report, cfg, duration)
}

// GetMaxTableKeyWidth calculates the maximum width for group keys and
// feature names in table output based on terminal width.
func GetMaxTableKeyWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with borders and padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable key width
		return 12
	}
	if available > 60 {
		// Maximum key width to prevent overly long keys
		return 60
	}
	return available
}
