package scoring

import (
	"context"
	"fmt"
	"math"

	"lumina/fraud-scoring/internal/domain"
)

// Adapter is the single boundary between the feature pipeline and the
// classifier. It never retries: a failure here means the pipeline and the
// model disagree, and calling again cannot fix that.
type Adapter struct {
	clf Classifier
}

// NewAdapter wraps a loaded classifier.
func NewAdapter(c Classifier) *Adapter {
	return &Adapter{clf: c}
}

// Score runs predict and predict_proba on vec. Errors wrap
// domain.ErrScoringFailed.
func (a *Adapter) Score(ctx context.Context, vec domain.FeatureVector) (domain.ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: %v", domain.ErrScoringFailed, err)
	}
	if want := a.clf.NumFeatures(); len(vec) != want {
		return domain.ScoreResult{}, fmt.Errorf("%w: vector has %d features, model expects %d",
			domain.ErrScoringFailed, len(vec), want)
	}

	class, err := a.clf.Predict(vec)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: predict: %v", domain.ErrScoringFailed, err)
	}
	proba, err := a.clf.PredictProba(vec)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: predict_proba: %v", domain.ErrScoringFailed, err)
	}

	p := proba[1]
	if math.IsNaN(p) || p < 0 || p > 1 {
		return domain.ScoreResult{}, fmt.Errorf("%w: fraud probability %v outside [0, 1]", domain.ErrScoringFailed, p)
	}

	var label string
	switch class {
	case 1:
		label = domain.LabelFraud
	case 0:
		label = domain.LabelLegit
	default:
		return domain.ScoreResult{}, fmt.Errorf("%w: unexpected class %d", domain.ErrScoringFailed, class)
	}

	return domain.ScoreResult{Label: label, Probability: p}, nil
}
