package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lumina/fraud-scoring/internal/domain"
	"lumina/fraud-scoring/internal/metrics"
	"lumina/fraud-scoring/internal/scoring"
	"lumina/fraud-scoring/internal/webhook"
)

// maxBodyBytes caps request bodies; a prediction payload is well under 1 KB.
const maxBodyBytes = 1 << 20

// Handler holds the dependencies shared across all HTTP handlers.
type Handler struct {
	engine   *scoring.Engine
	notifier *webhook.Notifier
	validate *validator.Validate
	timeout  time.Duration
}

// NewHandler creates a Handler wired to the given dependencies. timeout
// bounds each classifier call.
func NewHandler(e *scoring.Engine, n *webhook.Notifier, timeout time.Duration) *Handler {
	return &Handler{
		engine:   e,
		notifier: n,
		validate: newValidator(),
		timeout:  timeout,
	}
}

// ─── POST /api/v1/predictions ────────────────────────────────────────────────

// SubmitPrediction validates a transaction, encodes it, scores it and returns
// the verdict synchronously. Nothing is stored.
func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	req, okDecode := h.decodeRequest(w, r)
	if !okDecode {
		return
	}

	if req.Metadata.TransactionID == "" {
		req.Metadata.TransactionID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	pred, err := h.engine.Predict(ctx, req)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}

	slog.Info("prediction",
		"transaction_id", pred.Metadata.TransactionID,
		"label", pred.Label,
		"probability", pred.Probability,
		"model_version", pred.ModelVersion,
		"request_id", middleware.GetReqID(r.Context()),
	)

	// Fire an async alert for fraud verdicts.
	h.notifier.NotifyAsync(pred)

	created(w, pred)
}

// ─── POST /api/v1/features ───────────────────────────────────────────────────

// EncodeFeatures runs the feature pipeline without scoring and returns the
// derived fields and the vector, for inspecting what the model would see.
func (h *Handler) EncodeFeatures(w http.ResponseWriter, r *http.Request) {
	req, okDecode := h.decodeRequest(w, r)
	if !okDecode {
		return
	}

	enc, err := h.engine.Encode(&req.TransactionAttributes)
	if err != nil {
		h.writePipelineError(w, r, err)
		return
	}
	ok(w, enc)
}

// ─── GET /api/v1/model ───────────────────────────────────────────────────────

// GetModel describes the loaded classifier and the constants feeding it.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	ok(w, h.engine.Info())
}

// ─── GET /api/v1/schema ──────────────────────────────────────────────────────

type numericBound struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

type inputSchema struct {
	Categorical map[string][]string     `json:"categorical"`
	Numeric     map[string]numericBound `json:"numeric"`
}

// GetSchema lists the allowed values and bounds for every attribute so a
// front end can build the collection form.
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	ok(w, inputSchema{
		Categorical: map[string][]string{
			"merchant_category": domain.MerchantCategories,
			"merchant_type":     domain.MerchantTypes,
			"currency":          domain.Currencies,
			"country":           domain.Countries,
			"card_type":         domain.CardTypes,
			"card_present":      domain.CardPresentOptions,
			"device":            domain.Devices,
			"channel":           domain.Channels,
		},
		Numeric: map[string]numericBound{
			"amount":             {Min: domain.MinAmount, Max: domain.MaxAmount, Default: 500},
			"distance_from_home": {Min: domain.MinDistance, Max: domain.MaxDistance, Default: 10},
			"hour":               {Min: domain.MinHour, Max: domain.MaxHour, Default: 14},
		},
	})
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// decodeRequest binds and validates the body. On failure it has already
// written the response.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*domain.PredictionRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, "INVALID_JSON", "request body could not be read")
		return nil, false
	}

	var req domain.PredictionRequest
	var present numericPresence
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return nil, false
	}
	if err := json.Unmarshal(body, &present); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return nil, false
	}
	if err := validateRequest(h.validate, &present, &req); err != nil {
		metrics.RejectionsTotal.WithLabelValues("invalid_input").Inc()
		h.writePipelineError(w, r, err)
		return nil, false
	}
	return &req, true
}

// writePipelineError maps the pipeline error kinds onto HTTP responses. The
// messages keep "your input was invalid" apart from "scoring is unavailable".
func (h *Handler) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		slog.Info("prediction rejected", "reason", "invalid_input", "error", err, "request_id", reqID)
		badRequest(w, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrModelUnavailable):
		slog.Error("prediction rejected", "reason", "model_unavailable", "error", err, "request_id", reqID)
		serviceUnavailable(w, "the scoring system is unavailable")
	case errors.Is(err, domain.ErrScoringFailed):
		slog.Error("prediction rejected", "reason", "scoring_failed", "error", err, "request_id", reqID)
		scoringFailed(w, "the scoring system could not score this transaction: "+err.Error())
	default:
		slog.Error("prediction rejected", "reason", "internal", "error", err, "request_id", reqID)
		internalError(w)
	}
}
