package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// WriteMonitorResults outputs a full monitor report. Text mode renders each
// section in analysis order; JSON emits the combined document. CSV has no
// sensible single-table shape for the combined report, so it is rejected
// here and available per section instead.
func WriteMonitorResults(report *schema.MonitorReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return fmt.Errorf("csv output covers single reports only; use text or json for the combined report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonitorText(report, cfg, duration, w)
		}, "Wrote report")
	}
}

// writeMonitorText renders the populated sections sequentially.
func writeMonitorText(report *schema.MonitorReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	if _, err := fmt.Fprintf(writer, "Analysis of %d observations at %s\n",
		report.Observations, report.GeneratedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	if report.Drift != nil {
		if _, err := fmt.Fprintln(writer, "\n== Drift =="); err != nil {
			return err
		}
		if err := writeDriftTable(report.Drift, cfg, fmtFloat, duration, writer); err != nil {
			return err
		}
	}

	if report.Fairness != nil {
		if _, err := fmt.Fprintln(writer, "\n== Fairness =="); err != nil {
			return err
		}
		if err := writeFairnessTable(report.Fairness, cfg, fmtFloat, duration, writer); err != nil {
			return err
		}
	}

	if report.Intersectional != nil {
		if _, err := fmt.Fprintln(writer, "\n== Intersectional =="); err != nil {
			return err
		}
		if err := writeLeaderboardTable(report.Intersectional, cfg, fmtFloat, duration, writer); err != nil {
			return err
		}
	}

	if report.RootCause != nil {
		if _, err := fmt.Fprintln(writer, "\n== Root cause =="); err != nil {
			return err
		}
		if err := writeRootCauseTable(report.RootCause, cfg, fmtFloat, duration, writer); err != nil {
			return err
		}
	}
	return nil
}
