package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/spf13/cobra"
)

// biasCmd evaluates group fairness metrics.
var biasCmd = &cobra.Command{
	Use:   "bias",
	Short: "Evaluate group fairness metrics over sensitive attributes.",
	Long: `Evaluate the fairness of binary predictions across the groups of one or
more sensitive attributes.

Per attribute this computes:
- Selection rate and group count per group
- Disparate impact (min/max rate ratio, four-fifths rule)
- Demographic parity difference (max - min rate)
- Equalized odds difference (max TPR/FPR spread, needs --label-col)
- Accuracy per group when ground truth is present

A composite 0-100 score deducts --penalty points per failed metric.

Examples:
  # Single attribute fairness
  biasdrift bias --data predictions.csv --attrs gender

  # Multiple attributes with ground truth
  biasdrift bias --data predictions.csv --attrs gender,age_group \
    --pred-col approved --label-col repaid

  # Machine-readable report
  biasdrift bias --data predictions.csv --attrs gender --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFairness(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run fairness evaluation", err)
		}
	},
}
