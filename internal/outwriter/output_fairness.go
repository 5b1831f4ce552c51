package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteFairnessResults outputs a fairness report, dispatching based on the output format configured.
func WriteFairnessResults(report *schema.FairnessReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeFairnessJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeFairnessCSVResults(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFairnessTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeFairnessJSONResults adds the score label to the JSON payload.
func writeFairnessJSONResults(report *schema.FairnessReport, cfg *contract.Config) error {
	type JSONFairnessReport struct {
		Label string `json:"label"`
		*schema.FairnessReport
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, JSONFairnessReport{
			Label:          contract.GetPlainLabel(report.Score),
			FairnessReport: report,
		})
	}, "Wrote JSON")
}

// writeFairnessCSVResults writes one row per attribute and group.
func writeFairnessCSVResults(report *schema.FairnessReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"attribute", "group", "selection_rate", "count", "accuracy",
			"disparate_impact", "di_status", "parity_diff", "parity_status",
			"eq_odds_diff", "eq_odds_status",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, attr := range report.Attributes {
				for _, group := range sortedGroups(attr.SelectionRates) {
					accuracy := ""
					if attr.AccuracyByGroup != nil {
						accuracy = fmtFloat(attr.AccuracyByGroup[group])
					}
					rec := []string{
						attr.Attribute,
						group,
						fmtFloat(attr.SelectionRates[group]),
						strconv.Itoa(attr.GroupCounts[group]),
						accuracy,
						fmtFloat(attr.DisparateImpact.Value),
						string(attr.DisparateImpact.Status),
						fmtFloat(attr.DemographicParity.Value),
						string(attr.DemographicParity.Status),
						fmtFloat(attr.EqualizedOdds.Value),
						string(attr.EqualizedOdds.Status),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeFairnessTable renders one row per attribute and group, then the
// metric verdicts and composite score.
func writeFairnessTable(report *schema.FairnessReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Attribute", "Group", "Rate", "Count", "Accuracy"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, attr := range report.Attributes {
		for _, group := range sortedGroups(attr.SelectionRates) {
			accuracy := "n/a"
			if attr.AccuracyByGroup != nil {
				accuracy = fmtFloat(attr.AccuracyByGroup[group])
			}
			data = append(data, []string{
				attr.Attribute,
				group,
				fmtFloat(attr.SelectionRates[group]),
				strconv.Itoa(attr.GroupCounts[group]),
				accuracy,
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, attr := range report.Attributes {
		if _, err := fmt.Fprintf(writer, "%s: disparate impact %s [%s], parity diff %s [%s], equalized odds %s [%s]\n",
			attr.Attribute,
			fmtFloat(attr.DisparateImpact.Value),
			contract.GetStatusLabel(attr.DisparateImpact.Status, cfg.UseColors),
			fmtFloat(attr.DemographicParity.Value),
			contract.GetStatusLabel(attr.DemographicParity.Status, cfg.UseColors),
			fmtFloat(attr.EqualizedOdds.Value),
			contract.GetStatusLabel(attr.EqualizedOdds.Status, cfg.UseColors),
		); err != nil {
			return err
		}
	}

	label := contract.GetPlainLabel(report.Score)
	if cfg.UseColors {
		label = contract.GetColorLabel(report.Score)
	}
	if _, err := fmt.Fprintf(writer, "Fairness score: %d (%s)\n", report.Score, label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Evaluation completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// sortedGroups returns group names in ascending order for stable output.
func sortedGroups(rates map[string]float64) []string {
	groups := make([]string, 0, len(rates))
	for g := range rates {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
