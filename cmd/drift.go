package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/spf13/cobra"
)

// driftCmd performs feature-level drift detection.
var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Detect distribution drift between a baseline and a current batch.",
	Long: `Compare a current prediction batch against a registered baseline dataset
and flag the features whose distributions have shifted.

Numerical features are tested with a two-sample Kolmogorov-Smirnov test plus
the Population Stability Index (PSI) over equal-frequency baseline bins.
Categorical features are tested with a chi-square goodness-of-fit test.

Feature columns are inferred from the baseline CSV when --numerical and
--categorical are omitted; the prediction, label and sensitive columns are
never treated as features.

Examples:
  # Detect drift with inferred feature types
  biasdrift drift --baseline train.csv --current batch.csv

  # Declare the feature schema explicitly
  biasdrift drift --baseline train.csv --current batch.csv \
    --numerical age,income --categorical education

  # Export the report for tracking
  biasdrift drift --baseline train.csv --current batch.csv \
    --output csv --output-file drift.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDrift(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run drift detection", err)
		}
	},
}
