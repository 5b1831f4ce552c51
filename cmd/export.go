package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/core"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd exports the observation log to Parquet.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the observation log to Parquet for offline analysis.",
	Long: `Export every logged observation to a Parquet file for use with analytics
tools such as DuckDB, pandas or Apache Spark.

Feature maps are flattened to JSON columns so the file schema never changes
per model. The nullable true_label column stays null for unlabeled events.

Requires: --output-file parameter

Examples:
  # Export the SQLite store
  biasdrift export --store-backend sqlite --output-file observations.parquet

  # Query the export with DuckDB
  duckdb -c "SELECT * FROM read_parquet('observations.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteObservationExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot export observations", err)
		}
	},
}
