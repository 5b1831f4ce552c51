// Package parquet exports the observation log to Parquet files using
// github.com/parquet-go/parquet-go, for offline analysis of logged
// prediction events.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
	"github.com/parquet-go/parquet-go"
)

// ObservationRecord is the Parquet row shape for one logged observation.
// Feature maps are flattened to JSON strings, matching the SQL store's
// column encoding, so exported files round-trip with the database.
type ObservationRecord struct {
	// Row is the position of the observation in the exported window
	Row int64 `parquet:"row,snappy"`

	// NumericFeatures is the JSON-encoded numeric feature map
	NumericFeatures string `parquet:"numeric_features,snappy"`

	// CategoricalFeatures is the JSON-encoded categorical feature map
	CategoricalFeatures string `parquet:"categorical_features,snappy"`

	// Prediction is the binary model output
	Prediction int32 `parquet:"prediction,snappy"`

	// TrueLabel is the binary ground truth when known (nullable)
	TrueLabel *int32 `parquet:"true_label,optional,snappy"`

	// SensitiveFeatures is the JSON-encoded sensitive attribute map
	SensitiveFeatures string `parquet:"sensitive_features,snappy"`
}

// ConvertObservations converts logged observations to Parquet records.
func ConvertObservations(observations []schema.Observation) ([]ObservationRecord, error) {
	records := make([]ObservationRecord, len(observations))
	for i, obs := range observations {
		numeric, err := json.Marshal(obs.Numeric)
		if err != nil {
			return nil, fmt.Errorf("failed to encode numeric features: %w", err)
		}
		categorical, err := json.Marshal(obs.Categorical)
		if err != nil {
			return nil, fmt.Errorf("failed to encode categorical features: %w", err)
		}
		sensitive, err := json.Marshal(obs.Sensitive)
		if err != nil {
			return nil, fmt.Errorf("failed to encode sensitive features: %w", err)
		}

		var trueLabel *int32
		if obs.TrueLabel != nil {
			v := int32(*obs.TrueLabel)
			trueLabel = &v
		}
		records[i] = ObservationRecord{
			Row:                 int64(i),
			NumericFeatures:     string(numeric),
			CategoricalFeatures: string(categorical),
			Prediction:          int32(obs.Prediction),
			TrueLabel:           trueLabel,
			SensitiveFeatures:   string(sensitive),
		}
	}
	return records, nil
}

// WriteObservationsParquet writes observation records to a Parquet file.
func WriteObservationsParquet(records []ObservationRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ObservationRecord struct tags
	writer := parquet.NewGenericWriter[ObservationRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ExportObservations reads the full observation log from a store and writes
// it to a Parquet file, returning the number of exported records.
func ExportObservations(store contract.ObservationStore, outputPath string) (int, error) {
	observations, err := store.Window(0)
	if err != nil {
		return 0, fmt.Errorf("failed to read observation log: %w", err)
	}
	records, err := ConvertObservations(observations)
	if err != nil {
		return 0, err
	}
	if err := WriteObservationsParquet(records, outputPath); err != nil {
		return 0, err
	}
	return len(records), nil
}
