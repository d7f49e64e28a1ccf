package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"lumina/fraud-scoring/internal/domain"
	"lumina/fraud-scoring/internal/features"
)

// Classifier is the black-box binary model behind the scoring adapter.
// Class 1 is fraud. PredictProba returns [P(legit), P(fraud)].
type Classifier interface {
	NumFeatures() int
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([2]float64, error)
}

// Artifact is the on-disk JSON form of a logistic-regression model,
// optionally preceded by a standard scaler (x' = (x - mean) / scale).
type Artifact struct {
	Name             string              `json:"name"`
	Version          string              `json:"version"`
	NFeatures        int                 `json:"n_features"`
	FeatureNames     []string            `json:"feature_names,omitempty"`
	Coefficients     []float64           `json:"coefficients"`
	Intercept        float64             `json:"intercept"`
	Scaler           *Scaler             `json:"scaler,omitempty"`
	FeatureConstants *features.Constants `json:"feature_constants,omitempty"`
}

// Scaler holds per-feature standardisation parameters.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LogisticModel is a Classifier backed by an Artifact. It is read-only after
// construction and safe for concurrent use.
type LogisticModel struct {
	art Artifact
}

// LoadModel reads and validates an artifact from disk. Every failure wraps
// domain.ErrModelUnavailable.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrModelUnavailable, path, err)
	}
	return NewLogisticModel(art)
}

// NewLogisticModel validates art and wraps it as a Classifier.
func NewLogisticModel(art Artifact) (*LogisticModel, error) {
	if err := art.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	return &LogisticModel{art: art}, nil
}

func (a *Artifact) validate() error {
	if a.NFeatures <= 0 {
		return fmt.Errorf("n_features must be positive, got %d", a.NFeatures)
	}
	if len(a.Coefficients) != a.NFeatures {
		return fmt.Errorf("expected %d coefficients, got %d", a.NFeatures, len(a.Coefficients))
	}
	if a.FeatureNames != nil && len(a.FeatureNames) != a.NFeatures {
		return fmt.Errorf("expected %d feature names, got %d", a.NFeatures, len(a.FeatureNames))
	}
	for i, c := range a.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("coefficient %d is not finite", i)
		}
	}
	if a.Scaler != nil {
		if len(a.Scaler.Mean) != a.NFeatures || len(a.Scaler.Scale) != a.NFeatures {
			return fmt.Errorf("scaler must have %d means and scales", a.NFeatures)
		}
		for i, s := range a.Scaler.Scale {
			if s == 0 {
				return fmt.Errorf("scaler scale %d is zero", i)
			}
		}
	}
	if a.FeatureConstants != nil {
		if err := a.FeatureConstants.Validate(); err != nil {
			return fmt.Errorf("feature_constants: %w", err)
		}
	}
	return nil
}

// Artifact returns a copy of the loaded artifact header for reporting.
func (m *LogisticModel) Artifact() Artifact {
	return m.art
}

// NumFeatures returns the input dimension the model was fit on.
func (m *LogisticModel) NumFeatures() int {
	return m.art.NFeatures
}

// Predict returns 1 when the decision function is positive, 0 otherwise.
func (m *LogisticModel) Predict(x []float64) (int, error) {
	z, err := m.decision(x)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}

// PredictProba returns [P(legit), P(fraud)].
func (m *LogisticModel) PredictProba(x []float64) ([2]float64, error) {
	z, err := m.decision(x)
	if err != nil {
		return [2]float64{}, err
	}
	p := sigmoid(z)
	return [2]float64{1 - p, p}, nil
}

func (m *LogisticModel) decision(x []float64) (float64, error) {
	if len(x) != m.art.NFeatures {
		return 0, fmt.Errorf("expected %d features, got %d", m.art.NFeatures, len(x))
	}
	z := m.art.Intercept
	for i, v := range x {
		if s := m.art.Scaler; s != nil {
			v = (v - s.Mean[i]) / s.Scale[i]
		}
		z += m.art.Coefficients[i] * v
	}
	if math.IsNaN(z) {
		return 0, fmt.Errorf("decision function is NaN")
	}
	return z, nil
}

// sigmoid is the numerically stable logistic function.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
