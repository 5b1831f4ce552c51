package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRootCauseResults outputs an attribution drift report, dispatching
// based on the output format configured.
func WriteRootCauseResults(report *schema.AttributionDriftReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRootCauseJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRootCauseCSVResults(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRootCauseTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeRootCauseJSONResults handles opening the file and calling the JSON writer.
func writeRootCauseJSONResults(report *schema.AttributionDriftReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeRootCauseCSVResults writes one row per feature ranked by |delta|.
func writeRootCauseCSVResults(report *schema.AttributionDriftReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "feature", "baseline_mean_abs", "current_mean_abs", "delta"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, feat := range report.Features {
				rec := []string{
					strconv.Itoa(i + 1),
					feat.Feature,
					fmtFloat(feat.BaselineMeanAbs),
					fmtFloat(feat.CurrentMeanAbs),
					fmtFloat(feat.Delta),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeRootCauseTable renders the ranked attribution shifts, or the reason
// when attribution was unavailable.
func writeRootCauseTable(report *schema.AttributionDriftReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if !report.Available {
		if _, err := fmt.Fprintf(writer, "Root cause analysis unavailable: %s\n", report.Reason); err != nil {
			return err
		}
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Feature", "Baseline", "Current", "Delta"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxKeyWidth := GetMaxTableKeyWidth(cfg)
	var data [][]string
	for i, feat := range report.Features {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateKey(feat.Feature, maxKeyWidth),
			fmtFloat(feat.BaselineMeanAbs),
			fmtFloat(feat.CurrentMeanAbs),
			fmtFloat(feat.Delta),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Top drivers: %s (sample size %d)\n",
		strings.Join(report.TopFeatures, " > "), report.SampleSize); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Attribution completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
