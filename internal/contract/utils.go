package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/fatih/color"
)

// Fairness score label constants.
const (
	ExcellentValue = "Excellent" // No failed metrics
	GoodValue      = "Good"      // One failed metric
	ModerateValue  = "Moderate"  // Noticeable disparity
	PoorValue      = "Poor"      // Systematic disparity
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)
	GoodColor      = color.New(color.FgCyan)
	ModerateColor  = color.New(color.FgYellow)
	PoorColor      = color.New(color.FgRed, color.Bold)

	severityColors = map[schema.Severity]*color.Color{
		schema.SeverityNone:  color.New(color.FgGreen),
		schema.SeverityMinor: color.New(color.FgYellow),
		schema.SeverityMajor: color.New(color.FgRed, color.Bold),
	}

	statusColors = map[schema.MetricStatus]*color.Color{
		schema.MetricPass:          color.New(color.FgGreen),
		schema.MetricFail:          color.New(color.FgRed, color.Bold),
		schema.MetricNotApplicable: color.New(color.Faint),
	}
)

// GetPlainLabel returns a plain text label grading a 0-100 fairness score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score int) string {
	switch {
	case score >= 80:
		return ExcellentValue
	case score >= 60:
		return GoodValue
	case score >= 40:
		return ModerateValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored fairness label for console output.
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(score int) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// GetSeverityLabel returns a severity label, colored when requested.
func GetSeverityLabel(sev schema.Severity, useColors bool) string {
	if !useColors {
		return string(sev)
	}
	if c, ok := severityColors[sev]; ok {
		return c.Sprint(string(sev))
	}
	return string(sev)
}

// GetStatusLabel returns a metric status label, colored when requested.
func GetStatusLabel(status schema.MetricStatus, useColors bool) string {
	if !useColors {
		return string(status)
	}
	if c, ok := statusColors[status]; ok {
		return c.Sprint(string(status))
	}
	return string(status)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the
// observation store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".biasdrift_observations.db"
	}
	return filepath.Join(homeDir, ".biasdrift_observations.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
