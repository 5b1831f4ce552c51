// Package cmd defines the command-line interface for biasdrift.
package cmd

import (
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(driftCmd)
	rootCmd.AddCommand(biasCmd)
	rootCmd.AddCommand(intersectCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("min-group-size", contract.DefaultMinGroupSize, "Smallest intersectional group kept on the leaderboard")
	rootCmd.PersistentFlags().Int("max-combination", contract.DefaultMaxCombinationSize, "Largest sensitive-attribute combination size")
	rootCmd.PersistentFlags().Int("psi-bins", contract.DefaultPSIBins, "Number of equal-frequency PSI bins")
	rootCmd.PersistentFlags().Int("sample-size", contract.DefaultSampleSize, "Rows sampled per frame for attribution")
	rootCmd.PersistentFlags().Int("top-k", contract.DefaultTopK, "Number of top drift drivers reported")
	rootCmd.PersistentFlags().Int("penalty", contract.DefaultScorePenalty, "Score deduction per failed fairness metric")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Sampling seed for attribution")
	rootCmd.PersistentFlags().Int("window", 0, "Observations per analysis window (0 = all)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.MemoryBackend), "Observation store backend: memory or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("store-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("baseline", "", "Path to the baseline CSV dataset")
	rootCmd.PersistentFlags().String("current", "", "Path to the current CSV batch")
	rootCmd.PersistentFlags().String("data", "", "Path to the CSV dataset with predictions")
	rootCmd.PersistentFlags().String("model", "", "Path to the model weights JSON file")
	rootCmd.PersistentFlags().String("attrs", "", "Comma-separated sensitive attribute columns")
	rootCmd.PersistentFlags().String("pred-col", "prediction", "Binary prediction column")
	rootCmd.PersistentFlags().String("label-col", "", "Binary ground-truth column (enables equalized odds and accuracy)")
	rootCmd.PersistentFlags().String("numerical", "", "Comma-separated numerical feature columns (inferred when omitted)")
	rootCmd.PersistentFlags().String("categorical", "", "Comma-separated categorical feature columns (inferred when omitted)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
