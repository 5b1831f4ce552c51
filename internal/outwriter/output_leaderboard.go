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

const worstGroupsShown = 3

// WriteLeaderboardResults outputs an intersectional leaderboard, dispatching
// based on the output format configured.
func WriteLeaderboardResults(board *schema.Leaderboard, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeLeaderboardJSONResults(board, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeLeaderboardCSVResults(board, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardTable(board, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeLeaderboardJSONResults handles opening the file and calling the JSON writer.
func writeLeaderboardJSONResults(board *schema.Leaderboard, cfg *contract.Config) error {
	type JSONLeaderboard struct {
		Label string `json:"label"`
		*schema.Leaderboard
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, JSONLeaderboard{
			Label:       contract.GetPlainLabel(board.Score),
			Leaderboard: board,
		})
	}, "Wrote JSON")
}

// writeLeaderboardCSVResults writes one row per surviving group.
func writeLeaderboardCSVResults(board *schema.Leaderboard, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "combination", "group", "selection_rate", "count", "disparity_ratio", "violation"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, entry := range board.Entries {
				rec := []string{
					strconv.Itoa(i + 1),
					strings.Join(entry.Combination, "|"),
					entry.Key,
					fmtFloat(entry.SelectionRate),
					strconv.Itoa(entry.Count),
					fmtFloat(entry.DisparityRatio),
					strconv.FormatBool(entry.Violation),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeLeaderboardTable renders the ranked groups plus a worst-groups summary.
func writeLeaderboardTable(board *schema.Leaderboard, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Combination", "Group", "Rate", "Count", "Ratio", "Status"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxKeyWidth := GetMaxTableKeyWidth(cfg)
	var data [][]string
	for i, entry := range board.Entries {
		status := "ok"
		if entry.Violation {
			status = "VIOLATION"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strings.Join(entry.Combination, " x "),
			truncateKey(entry.Key, maxKeyWidth),
			fmtFloat(entry.SelectionRate),
			strconv.Itoa(entry.Count),
			fmtFloat(entry.DisparityRatio),
			status,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, worst := range board.WorstGroups(worstGroupsShown) {
		if !worst.Violation {
			break
		}
		if _, err := fmt.Fprintf(writer, "Group %s selects at %s of the best group in its combination\n",
			worst.Key, fmtFloat(worst.DisparityRatio)); err != nil {
			return err
		}
	}

	label := contract.GetPlainLabel(board.Score)
	if cfg.UseColors {
		label = contract.GetColorLabel(board.Score)
	}
	if _, err := fmt.Fprintf(writer, "Intersectional score: %d (%s) across %d combinations, %d violations\n",
		board.Score, label, board.Combinations, board.Violations()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Evaluation completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
