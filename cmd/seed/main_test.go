package main

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/fraud-scoring/internal/domain"
	"lumina/fraud-scoring/internal/features"
	"lumina/fraud-scoring/internal/scoring"
)

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, writeJSON(path, demoArtifact()))

	model, err := scoring.LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, domain.FeatureVectorLen, model.NumFeatures())
}

func TestWriteJSON_ReportsCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "model.json")
	assert.Error(t, writeJSON(path, demoArtifact()))
}

func TestWriteJSON_ReportsEncodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	assert.Error(t, writeJSON(path, map[string]any{"x": make(chan int)}))
}

func TestDemoArtifact_MatchesPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, writeJSON(path, demoArtifact()))

	e, err := scoring.Load(path)
	require.NoError(t, err)
	assert.NoError(t, e.CheckDimensions())
}

func TestGenerators_ProduceValidRequests(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var samples []domain.PredictionRequest
	samples = append(samples, generateEveryday(rng, 50)...)
	samples = append(samples, generateRemoteCardNotPresent(rng, 20)...)
	samples = append(samples, generateNightHighValue(rng, 20)...)
	require.Len(t, samples, 90)

	for i := range samples {
		assert.NoError(t, features.Validate(&samples[i].TransactionAttributes), "sample %d", i)
	}

	// Survives the file format the server reads back.
	path := filepath.Join(t.TempDir(), "samples.json")
	require.NoError(t, writeJSON(path, samples))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back []domain.PredictionRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, samples, back)
}
