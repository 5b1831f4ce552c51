package core

import (
	"context"
	"fmt"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/attrib"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/loader"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// GetDriftResults loads the configured baseline and current datasets and
// runs drift detection. This is the entry point shared by the CLI and the
// MCP server.
func GetDriftResults(cfg *contract.Config) (*schema.DriftReport, error) {
	if cfg.BaselinePath == "" || cfg.CurrentPath == "" {
		return nil, fmt.Errorf("%w: baseline and current dataset paths are required", schema.ErrInputValidation)
	}

	baselineTable, err := loader.ReadCSV(cfg.BaselinePath)
	if err != nil {
		return nil, err
	}
	baseline, features, err := datasetFrame(baselineTable, cfg)
	if err != nil {
		return nil, err
	}

	currentTable, err := loader.ReadCSV(cfg.CurrentPath)
	if err != nil {
		return nil, err
	}
	current, err := currentFrame(currentTable, features)
	if err != nil {
		return nil, err
	}

	detector := NewDriftDetector(cfg)
	if err := detector.Register(features, baseline); err != nil {
		return nil, err
	}
	report, err := detector.Detect(current)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetFairnessResults loads the configured dataset and evaluates group
// fairness over the configured sensitive attributes.
func GetFairnessResults(cfg *contract.Config) (*schema.FairnessReport, error) {
	table, yPred, yTrue, err := labeledDataset(cfg)
	if err != nil {
		return nil, err
	}

	analyzer, err := NewBiasAnalyzer(cfg, cfg.SensitiveAttrs)
	if err != nil {
		return nil, err
	}
	return analyzer.Evaluate(yPred, yTrue, sensitiveFromTable(table, cfg.SensitiveAttrs))
}

// GetIntersectionalResults loads the configured dataset and ranks the
// intersectional subgroups.
func GetIntersectionalResults(cfg *contract.Config) (*schema.Leaderboard, error) {
	table, yPred, _, err := labeledDataset(cfg)
	if err != nil {
		return nil, err
	}

	analyzer, err := NewIntersectionalAnalyzer(cfg, cfg.SensitiveAttrs)
	if err != nil {
		return nil, err
	}
	return analyzer.Evaluate(yPred, sensitiveFromTable(table, cfg.SensitiveAttrs), 0)
}

// GetRootCauseResults loads the configured datasets and model and explains
// the drift between them via attribution deltas. A missing model path
// degrades to an unavailable report, matching the Monitor's behavior.
func GetRootCauseResults(ctx context.Context, cfg *contract.Config) (*schema.AttributionDriftReport, error) {
	if cfg.BaselinePath == "" || cfg.CurrentPath == "" {
		return nil, fmt.Errorf("%w: baseline and current dataset paths are required", schema.ErrInputValidation)
	}

	baselineTable, err := loader.ReadCSV(cfg.BaselinePath)
	if err != nil {
		return nil, err
	}
	baseline, features, err := datasetFrame(baselineTable, cfg)
	if err != nil {
		return nil, err
	}
	currentTable, err := loader.ReadCSV(cfg.CurrentPath)
	if err != nil {
		return nil, err
	}
	current, err := currentFrame(currentTable, features)
	if err != nil {
		return nil, err
	}

	var model any
	if cfg.ModelPath != "" {
		loaded, err := attrib.LoadLinearModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		model = loaded
	}

	analyzer := NewRootCauseAnalyzer(cfg, attrib.NewEngine())
	return analyzer.ExplainDrift(ctx, model, baseline, current)
}

// GetMonitorResults runs the full analysis pipeline over the configured
// datasets: the baseline registers the reference frame, every current row
// is logged as an observation, and one analysis pass produces the combined
// report.
func GetMonitorResults(ctx context.Context, cfg *contract.Config) (*schema.MonitorReport, error) {
	if cfg.BaselinePath == "" || cfg.CurrentPath == "" {
		return nil, fmt.Errorf("%w: baseline and current dataset paths are required", schema.ErrInputValidation)
	}
	if cfg.PredictionColumn == "" {
		return nil, fmt.Errorf("%w: a prediction column is required", schema.ErrInputValidation)
	}

	baselineTable, err := loader.ReadCSV(cfg.BaselinePath)
	if err != nil {
		return nil, err
	}
	baseline, features, err := datasetFrame(baselineTable, cfg)
	if err != nil {
		return nil, err
	}

	var opts []MonitorOption
	if cfg.ModelPath != "" {
		model, err := attrib.LoadLinearModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithModel(model), WithAttributionEngine(attrib.NewEngine()))
	}
	monitor, err := NewMonitor(cfg, cfg.SensitiveAttrs, opts...)
	if err != nil {
		return nil, err
	}
	if err := monitor.RegisterBaseline(features, baseline); err != nil {
		return nil, err
	}

	currentTable, err := loader.ReadCSV(cfg.CurrentPath)
	if err != nil {
		return nil, err
	}
	if err := logTableObservations(monitor, currentTable, features, cfg); err != nil {
		return nil, err
	}
	return monitor.Analyze(ctx)
}

// datasetFrame builds the baseline frame and the effective feature schema.
// Without declared features, every column except the prediction, label and
// sensitive columns is inferred.
func datasetFrame(table *loader.Table, cfg *contract.Config) (*schema.Frame, schema.FeatureSchema, error) {
	declared := cfg.FeatureSchema()
	if declared.IsEmpty() {
		declared = inferredFeatures(table, cfg)
		if declared.IsEmpty() {
			return nil, schema.FeatureSchema{}, fmt.Errorf("%w: dataset has no feature columns", schema.ErrInputValidation)
		}
	}
	return table.Frame(declared)
}

// currentFrame builds the current batch frame, keeping only the features
// present in the batch so missing features degrade inline during detection.
func currentFrame(table *loader.Table, features schema.FeatureSchema) (*schema.Frame, error) {
	present := schema.FeatureSchema{}
	for _, name := range features.Numerical {
		if table.Has(name) {
			present.Numerical = append(present.Numerical, name)
		}
	}
	for _, name := range features.Categorical {
		if table.Has(name) {
			present.Categorical = append(present.Categorical, name)
		}
	}
	frame, _, err := table.Frame(present)
	return frame, err
}

// inferredFeatures types every non-reserved column by float inference.
func inferredFeatures(table *loader.Table, cfg *contract.Config) schema.FeatureSchema {
	reserved := map[string]bool{
		cfg.PredictionColumn: true,
		cfg.LabelColumn:      true,
	}
	for _, attr := range cfg.SensitiveAttrs {
		reserved[attr] = true
	}

	_, inferred, err := table.Frame(schema.FeatureSchema{})
	if err != nil {
		return schema.FeatureSchema{}
	}
	var out schema.FeatureSchema
	for _, name := range inferred.Numerical {
		if !reserved[name] {
			out.Numerical = append(out.Numerical, name)
		}
	}
	for _, name := range inferred.Categorical {
		if !reserved[name] {
			out.Categorical = append(out.Categorical, name)
		}
	}
	return out
}

// labeledDataset loads the fairness dataset plus its prediction and
// optional ground-truth columns.
func labeledDataset(cfg *contract.Config) (*loader.Table, []int, []int, error) {
	if cfg.DataPath == "" {
		return nil, nil, nil, fmt.Errorf("%w: a dataset path is required", schema.ErrInputValidation)
	}
	if cfg.PredictionColumn == "" {
		return nil, nil, nil, fmt.Errorf("%w: a prediction column is required", schema.ErrInputValidation)
	}

	table, err := loader.ReadCSV(cfg.DataPath)
	if err != nil {
		return nil, nil, nil, err
	}
	yPred, err := table.IntColumn(cfg.PredictionColumn)
	if err != nil {
		return nil, nil, nil, err
	}
	var yTrue []int
	if cfg.LabelColumn != "" {
		yTrue, err = table.IntColumn(cfg.LabelColumn)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return table, yPred, yTrue, nil
}

// sensitiveFromTable builds the sensitive frame from the attribute columns
// the dataset actually carries. Absent attributes are skipped; the
// analyzers report the validation error when nothing remains.
func sensitiveFromTable(table *loader.Table, attrs []string) *schema.Frame {
	frame := schema.NewFrame()
	for _, attr := range attrs {
		values, ok := table.Column(attr)
		if !ok {
			continue
		}
		_ = frame.AddCategorical(attr, values)
	}
	return frame
}

// logTableObservations feeds every row of the current dataset through the
// monitor's validated logging path.
func logTableObservations(monitor *Monitor, table *loader.Table, features schema.FeatureSchema, cfg *contract.Config) error {
	observations, err := tableObservations(table, features, cfg)
	if err != nil {
		return err
	}
	for _, obs := range observations {
		if err := monitor.LogObservation(obs); err != nil {
			return err
		}
	}
	return nil
}

// tableObservations converts every dataset row into an observation carrying
// the given features plus prediction, optional label and sensitive values.
func tableObservations(table *loader.Table, features schema.FeatureSchema, cfg *contract.Config) ([]schema.Observation, error) {
	yPred, err := table.IntColumn(cfg.PredictionColumn)
	if err != nil {
		return nil, err
	}
	var yTrue []int
	if cfg.LabelColumn != "" && table.Has(cfg.LabelColumn) {
		yTrue, err = table.IntColumn(cfg.LabelColumn)
		if err != nil {
			return nil, err
		}
	}

	frame, err := currentFrame(table, features)
	if err != nil {
		return nil, err
	}
	observations := make([]schema.Observation, 0, frame.Len())
	for row := 0; row < frame.Len(); row++ {
		obs := schema.Observation{
			Numeric:     make(map[string]float64),
			Categorical: make(map[string]string),
			Prediction:  yPred[row],
		}
		for _, name := range features.Numerical {
			col, ok := frame.Floats(name)
			if !ok {
				return nil, fmt.Errorf("%w: current dataset has no numeric column %q", schema.ErrInputValidation, name)
			}
			obs.Numeric[name] = col[row]
		}
		for _, name := range features.Categorical {
			col, ok := frame.Strings(name)
			if !ok {
				return nil, fmt.Errorf("%w: current dataset has no categorical column %q", schema.ErrInputValidation, name)
			}
			obs.Categorical[name] = col[row]
		}
		if yTrue != nil {
			v := yTrue[row]
			obs.TrueLabel = &v
		}
		for _, attr := range cfg.SensitiveAttrs {
			values, ok := table.Column(attr)
			if !ok {
				continue
			}
			if obs.Sensitive == nil {
				obs.Sensitive = make(map[string]string)
			}
			obs.Sensitive[attr] = values[row]
		}
		observations = append(observations, obs)
	}
	return observations, nil
}
