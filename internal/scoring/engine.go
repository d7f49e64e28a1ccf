// Package scoring wires the feature encoder to the fraud classifier.
//
// Architecture:
//
//	attributes -> features.Encoder -> FeatureVector -> Adapter -> Classifier
//
// The engine holds only read-only state (constants and the loaded model),
// both fixed at startup, so concurrent requests need no locking.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"lumina/fraud-scoring/internal/domain"
	"lumina/fraud-scoring/internal/features"
	"lumina/fraud-scoring/internal/metrics"
)

// ModelInfo describes the loaded model and the pipeline feeding it.
type ModelInfo struct {
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	NumFeatures  int                `json:"n_features"`
	FeatureNames []string           `json:"feature_names"`
	Constants    features.Constants `json:"constants"`
}

// Engine encodes and scores transactions.
type Engine struct {
	encoder *features.Encoder
	adapter *Adapter
	info    ModelInfo
}

// New creates an engine from an encoder and a classifier.
func New(enc *features.Encoder, clf Classifier, name, version string) *Engine {
	return &Engine{
		encoder: enc,
		adapter: NewAdapter(clf),
		info: ModelInfo{
			Name:         name,
			Version:      version,
			NumFeatures:  clf.NumFeatures(),
			FeatureNames: slices.Clone(domain.FeatureNames[:]),
			Constants:    enc.Constants(),
		},
	}
}

// Load reads the model artifact at path and builds an engine around it.
// Constants embedded in the artifact take precedence over the defaults.
// Errors wrap domain.ErrModelUnavailable.
func Load(path string) (*Engine, error) {
	model, err := LoadModel(path)
	if err != nil {
		return nil, err
	}

	art := model.Artifact()
	if err := checkFeatureOrder(art.FeatureNames); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrModelUnavailable, path, err)
	}
	consts := features.DefaultConstants()
	if art.FeatureConstants != nil {
		consts = *art.FeatureConstants
	}
	enc, err := features.NewEncoder(&consts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	metrics.ModelInfo.WithLabelValues(art.Name, art.Version).Set(1)
	return New(enc, model, art.Name, art.Version), nil
}

// checkFeatureOrder rejects an artifact whose recorded feature names differ
// from the encoder's vector layout. A model fit on another order would load
// and score without error but read every feature from the wrong position.
// Artifacts without names are accepted.
func checkFeatureOrder(names []string) error {
	if names == nil {
		return nil
	}
	if len(names) != domain.FeatureVectorLen {
		return fmt.Errorf("model lists %d feature names, pipeline produces %d", len(names), domain.FeatureVectorLen)
	}
	for i, want := range domain.FeatureNames {
		if names[i] != want {
			return fmt.Errorf("feature %d is %q in the model, %q in the pipeline", i, names[i], want)
		}
	}
	return nil
}

// CheckDimensions reports a ScoringFailed error when the classifier expects
// a different number of features than the encoder produces. Every request
// would fail in that state.
func (e *Engine) CheckDimensions() error {
	if e.info.NumFeatures != domain.FeatureVectorLen {
		return fmt.Errorf("%w: model expects %d features, pipeline produces %d",
			domain.ErrScoringFailed, e.info.NumFeatures, domain.FeatureVectorLen)
	}
	return nil
}

// Info returns the model description.
func (e *Engine) Info() ModelInfo {
	info := e.info
	info.FeatureNames = slices.Clone(info.FeatureNames)
	info.Constants.RiskyDevices = slices.Clone(info.Constants.RiskyDevices)
	return info
}

// Encode runs the feature pipeline only.
func (e *Engine) Encode(attrs *domain.TransactionAttributes) (*domain.Encoding, error) {
	enc, err := e.encoder.Encode(attrs)
	if err != nil {
		recordRejection(err)
		return nil, err
	}
	return enc, nil
}

// Predict encodes req and scores the resulting vector, recording the outcome
// in the prediction metrics. The classifier is never invoked when encoding
// fails.
func (e *Engine) Predict(ctx context.Context, req *domain.PredictionRequest) (*domain.Prediction, error) {
	start := time.Now()
	pred, err := e.Evaluate(ctx, req)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		recordRejection(err)
		return nil, err
	}

	metrics.PredictionsTotal.WithLabelValues(pred.Label).Inc()
	metrics.FraudProbability.Observe(pred.Probability)
	return pred, nil
}

// Evaluate runs the same pipeline as Predict without touching metrics. It is
// used for startup checks that must not show up as served predictions.
func (e *Engine) Evaluate(ctx context.Context, req *domain.PredictionRequest) (*domain.Prediction, error) {
	enc, err := e.encoder.Encode(&req.TransactionAttributes)
	if err != nil {
		return nil, err
	}

	res, err := e.adapter.Score(ctx, enc.Vector)
	if err != nil {
		return nil, err
	}

	return &domain.Prediction{
		ScoreResult:  res,
		Confidence:   Confidence(res),
		ModelName:    e.info.Name,
		ModelVersion: e.info.Version,
		Metadata:     req.Metadata,
		ProcessedAt:  time.Now().UTC(),
	}, nil
}

// Confidence returns the probability of the predicted label: P(fraud) for a
// fraud verdict, 1-P(fraud) otherwise.
func Confidence(res domain.ScoreResult) float64 {
	if res.Label == domain.LabelFraud {
		return res.Probability
	}
	return 1 - res.Probability
}

func recordRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.RejectionsTotal.WithLabelValues("invalid_input").Inc()
	case errors.Is(err, domain.ErrScoringFailed):
		metrics.RejectionsTotal.WithLabelValues("scoring_failed").Inc()
	default:
		metrics.RejectionsTotal.WithLabelValues("other").Inc()
	}
}
