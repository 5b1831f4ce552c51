package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/loader"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/obslog"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/outwriter"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/parquet"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// ExecuteDrift runs drift detection over the configured datasets and prints
// the report. It serves as the main entry point for the 'drift' command.
func ExecuteDrift(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := GetDriftResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDrift(report, cfg, time.Since(start))
}

// ExecuteFairness evaluates group fairness over the configured dataset and
// prints the report. It serves as the main entry point for the 'bias' command.
func ExecuteFairness(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := GetFairnessResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteFairness(report, cfg, time.Since(start))
}

// ExecuteIntersectional ranks intersectional subgroups over the configured
// dataset and prints the leaderboard. It serves as the main entry point for
// the 'intersect' command.
func ExecuteIntersectional(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	board, err := GetIntersectionalResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLeaderboard(board, cfg, time.Since(start))
}

// ExecuteRootCause attributes drift between the configured datasets to
// individual features and prints the report. It serves as the main entry
// point for the 'explain' command.
func ExecuteRootCause(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := GetRootCauseResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRootCause(report, cfg, time.Since(start))
}

// ExecuteMonitor runs the full analysis pipeline over the configured
// datasets and prints the combined report. It serves as the main entry point
// for the 'analyze' command.
func ExecuteMonitor(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := GetMonitorResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteMonitor(report, cfg, time.Since(start))
}

// ExecuteObservationLog appends every row of the configured dataset to the
// configured observation store. It serves as the main entry point for the
// 'log' command.
func ExecuteObservationLog(_ context.Context, cfg *contract.Config) error {
	if cfg.DataPath == "" {
		return fmt.Errorf("%w: a dataset path is required", schema.ErrInputValidation)
	}
	if cfg.PredictionColumn == "" {
		return fmt.Errorf("%w: a prediction column is required", schema.ErrInputValidation)
	}

	table, err := loader.ReadCSV(cfg.DataPath)
	if err != nil {
		return err
	}
	features := cfg.FeatureSchema()
	if features.IsEmpty() {
		features = inferredFeatures(table, cfg)
	}
	observations, err := tableObservations(table, features, cfg)
	if err != nil {
		return err
	}

	store, err := obslog.NewStore(cfg.StoreBackend, cfg.StoreConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for _, obs := range observations {
		if err := store.Append(obs); err != nil {
			return err
		}
	}
	fmt.Printf("Logged %d observations to the %s store.\n", len(observations), cfg.StoreBackend)
	return nil
}

// ExecuteObservationExport exports the observation log to a Parquet file.
// It serves as the main entry point for the 'export' command.
func ExecuteObservationExport(_ context.Context, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("%w: --output-file is required for export", schema.ErrInputValidation)
	}

	store, err := obslog.NewStore(cfg.StoreBackend, cfg.StoreConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := parquet.ExportObservations(store, cfg.OutputFile)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d observations to %s.\n", n, cfg.OutputFile)
	return nil
}
