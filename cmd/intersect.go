package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/spf13/cobra"
)

// intersectCmd ranks intersectional subgroups by disparity.
var intersectCmd = &cobra.Command{
	Use:   "intersect",
	Short: "Rank intersectional subgroups by selection-rate disparity.",
	Long: `Evaluate fairness across combinations of sensitive attributes rather than
one attribute at a time. Single-attribute analysis can hide compounding
disadvantage; a model fair for women and fair for older applicants can still
select older women at half the rate of the best subgroup.

Subgroups are keyed by their attribute values joined with "_" (e.g. F_50+),
groups smaller than --min-group-size are discarded, and each surviving group
is compared against the best selection rate within its combination. The
leaderboard lists all groups ascending by that disparity ratio, so the most
disadvantaged subgroup comes first.

Examples:
  # Pairwise and three-way combinations of three attributes
  biasdrift intersect --data predictions.csv --attrs gender,age_group,region

  # Single-attribute rates only
  biasdrift intersect --data predictions.csv --attrs gender --max-combination 1

  # Require larger groups for statistical weight
  biasdrift intersect --data predictions.csv --attrs gender,age_group \
    --min-group-size 50`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIntersectional(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run intersectional evaluation", err)
		}
	},
}
