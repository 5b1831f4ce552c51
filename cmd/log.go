package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/spf13/cobra"
)

// logCmd appends dataset rows to the observation store.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Append prediction events from a CSV dataset to the observation store.",
	Long: `Log every row of a CSV dataset as a prediction event in the configured
observation store, so later runs can analyze the accumulated window.

Feature columns are inferred from the dataset unless --numerical and
--categorical declare them. The prediction column must be binary (0/1);
--label-col and --attrs are stored alongside when present.

The memory backend only lives for the duration of one process, so logging
for later analysis needs a persistent backend (sqlite, mysql, postgresql).

Examples:
  # Log a day's predictions into the default SQLite store
  biasdrift log --data today.csv --attrs gender --store-backend sqlite

  # Log into PostgreSQL
  biasdrift log --data today.csv --store-backend postgresql \
    --store-connect "host=db port=5432 user=app dbname=biasdrift"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteObservationLog(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot log observations", err)
		}
	},
}
