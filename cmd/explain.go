package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/spf13/cobra"
)

// explainCmd attributes detected drift to individual features.
var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Attribute drift to the features driving it.",
	Long: `Explain which features drive the drift between a baseline dataset and a
current batch by comparing model attribution values.

A seeded subsample of --sample-size rows is drawn from each frame, the
attribution engine scores every sampled instance, and per-feature mean
absolute attributions are compared between the frames. Features are ranked
by the absolute change and the top --top-k are named as drivers.

The model is a weights JSON file ({"weights": {"age": 0.1, ...}}). When the
model cannot be explained the command reports an unavailable result instead
of failing, so it is safe in pipelines.

Examples:
  # Explain drift with the default sample size
  biasdrift explain --baseline train.csv --current batch.csv --model model.json

  # Larger sample, more reported drivers
  biasdrift explain --baseline train.csv --current batch.csv --model model.json \
    --sample-size 500 --top-k 5`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRootCause(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run root cause analysis", err)
		}
	},
}
