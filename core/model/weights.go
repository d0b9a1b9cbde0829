package model

import (
	json "github.com/goccy/go-json"

	"github.com/mlprimer/mlprimer/pkg/errors"
)

// ModelWeights is a portable snapshot of a linear model's trained state.
// It is exchanged as bytes; callers own any file or network I/O.
type ModelWeights struct {
	// ModelType is the estimator type, e.g. "LinearRegression".
	ModelType string `json:"model_type"`

	// Version guards compatibility between exporter and importer.
	Version string `json:"version"`

	// Coefficients is the learned weight vector.
	Coefficients []float64 `json:"coefficients"`

	// Intercept is the learned bias term.
	Intercept float64 `json:"intercept"`

	// Hyperparameters holds the configuration the model was trained with.
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata holds training statistics such as sample and feature counts.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted records whether the source model had completed training.
	IsFitted bool `json:"is_fitted"`
}

// ToJSON serializes the weights to indented JSON.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON deserializes weights from JSON.
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate checks internal consistency of the snapshot.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "must not be empty", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "must not be empty", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted snapshot must not carry coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted snapshot must carry coefficients", 0)
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    make([]float64, len(mw.Coefficients)),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}

	copy(clone.Coefficients, mw.Coefficients)
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}
