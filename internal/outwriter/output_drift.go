package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDriftResults outputs a drift report, dispatching based on the output format configured.
func WriteDriftResults(report *schema.DriftReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDriftJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDriftCSVResults(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDriftTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeDriftJSONResults handles opening the file and calling the JSON writer.
func writeDriftJSONResults(report *schema.DriftReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeDriftCSVResults handles opening the file and calling the CSV writer.
func writeDriftCSVResults(report *schema.DriftReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"feature", "kind", "metric", "score", "p_value", "psi", "alert", "severity", "note"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, res := range report.Results {
				rec := []string{
					res.Feature,
					string(res.Kind),
					string(res.Metric),
					fmtFloat(res.Score),
					formatPValue(res.PValue),
					fmtFloat(res.PSI),
					strconv.FormatBool(res.Alert),
					string(res.Severity),
					res.Note,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeDriftTable generates and writes the human-readable table.
func writeDriftTable(report *schema.DriftReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Feature", "Metric", "Score", "P-Value", "PSI", "Status", "Severity"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxKeyWidth := GetMaxTableKeyWidth(cfg)
	var data [][]string
	for _, res := range report.Results {
		row := []string{
			truncateKey(res.Feature, maxKeyWidth),
			string(res.Metric),
			fmtFloat(res.Score),
			formatPValue(res.PValue),
			fmtFloat(res.PSI),
			formatAlert(res.Alert),
			contract.GetSeverityLabel(res.Severity, cfg.UseColors),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Checked %d features (%d alerting)\n", len(report.Results), report.AlertCount()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Detection completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
