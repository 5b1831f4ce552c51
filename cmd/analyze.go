package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full monitoring pipeline in one pass.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run drift, fairness, intersectional and root cause analysis in one pass.",
	Long: `Run the full monitoring pipeline: register the baseline, log every row of
the current batch as an observation, and produce one combined report.

The report always contains the drift section. Fairness and intersectional
sections appear when --attrs names columns present in the current batch.
Root cause analysis runs only when the drift report alerts and --model is
provided; its failure never voids the other sections.

Use --window to analyze only the most recent N observations.

Examples:
  # Full report over an entire batch
  biasdrift analyze --baseline train.csv --current batch.csv \
    --attrs gender,age_group --model model.json

  # Sliding window over the newest 500 observations
  biasdrift analyze --baseline train.csv --current batch.csv \
    --attrs gender --window 500

  # Combined report as JSON for dashboards
  biasdrift analyze --baseline train.csv --current batch.csv \
    --attrs gender --output json --output-file report.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonitor(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run combined analysis", err)
		}
	},
}
