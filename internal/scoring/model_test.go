package scoring

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/fraud-scoring/internal/domain"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestLoadModel_Malformed(t *testing.T) {
	_, err := LoadModel(writeFile(t, `{"n_features": 2, "coefficients": [1,`))
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestLoadModel_InvalidArtifacts(t *testing.T) {
	cases := map[string]string{
		"zero features":         `{"n_features": 0, "coefficients": []}`,
		"coefficient mismatch":  `{"n_features": 3, "coefficients": [1, 2]}`,
		"feature name mismatch": `{"n_features": 2, "coefficients": [1, 2], "feature_names": ["a"]}`,
		"scaler mismatch":       `{"n_features": 2, "coefficients": [1, 2], "scaler": {"mean": [0], "scale": [1, 1]}}`,
		"zero scale":            `{"n_features": 2, "coefficients": [1, 2], "scaler": {"mean": [0, 0], "scale": [1, 0]}}`,
		"bad constants":         `{"n_features": 1, "coefficients": [1], "feature_constants": {"amount_std": 0, "combo_separator": "_"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadModel(writeFile(t, body))
			assert.ErrorIs(t, err, domain.ErrModelUnavailable)
		})
	}
}

func TestLoadModel_Valid(t *testing.T) {
	m, err := LoadModel(writeFile(t, `{"name": "m", "version": "2", "n_features": 2, "coefficients": [1, -1], "intercept": 0.5}`))
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumFeatures())
	assert.Equal(t, "m", m.Artifact().Name)
	assert.Equal(t, "2", m.Artifact().Version)
}

func TestLogisticModel_PredictAndProba(t *testing.T) {
	m, err := NewLogisticModel(Artifact{NFeatures: 2, Coefficients: []float64{1, -1}, Intercept: 0})
	require.NoError(t, err)

	p, err := m.PredictProba([]float64{2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-1)), p[1], 1e-12)
	assert.InDelta(t, 1.0, p[0]+p[1], 1e-12)

	class, err := m.Predict([]float64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, class)

	class, err = m.Predict([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, class)

	// Decision exactly zero is legit, matching scikit-learn.
	class, err = m.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, class)
}

func TestLogisticModel_AppliesScaler(t *testing.T) {
	m, err := NewLogisticModel(Artifact{
		NFeatures:    1,
		Coefficients: []float64{2},
		Intercept:    -1,
		Scaler:       &Scaler{Mean: []float64{10}, Scale: []float64{5}},
	})
	require.NoError(t, err)

	// z = -1 + 2*(20-10)/5 = 3
	p, err := m.PredictProba([]float64{20})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-3)), p[1], 1e-12)
}

func TestLogisticModel_DimensionMismatch(t *testing.T) {
	m, err := NewLogisticModel(Artifact{NFeatures: 3, Coefficients: []float64{1, 1, 1}})
	require.NoError(t, err)

	_, err = m.Predict([]float64{1, 2})
	assert.Error(t, err)
	_, err = m.PredictProba([]float64{1, 2, 3, 4})
	assert.Error(t, err)
}

func TestSigmoid_Extremes(t *testing.T) {
	assert.Equal(t, 0.5, sigmoid(0))
	assert.InDelta(t, 1.0, sigmoid(800), 1e-12)
	assert.InDelta(t, 0.0, sigmoid(-800), 1e-12)
	assert.False(t, math.IsNaN(sigmoid(-800)))
}
