// Command server starts the Lumina fraud scoring API.
//
// Usage:
//
//	go run ./cmd/server [flags]
//
// Flags:
//
//	-port     HTTP port to listen on (default: 8080, or $PORT)
//	-model    Path to the classifier artifact (default: data/model.json, or $MODEL_PATH)
//	-samples  Path to sample requests scored as a startup smoke check (default: data/samples.json)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"lumina/fraud-scoring/internal/api"
	"lumina/fraud-scoring/internal/config"
	"lumina/fraud-scoring/internal/domain"
	"lumina/fraud-scoring/internal/logging"
	"lumina/fraud-scoring/internal/scoring"
	"lumina/fraud-scoring/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP port")
	modelPath := flag.String("model", cfg.ModelPath, "path to classifier artifact")
	samplesPath := flag.String("samples", cfg.SamplesPath, "path to sample requests JSON file")
	flag.Parse()

	slog.SetDefault(logging.New(cfg.LogLevel, cfg.LogFormat))

	// ── Load model (fatal on failure) ─────────────────────────────────────────
	engine, err := scoring.Load(*modelPath)
	if err != nil {
		slog.Error("model unavailable, refusing to start", "path", *modelPath, "error", err)
		os.Exit(1)
	}
	info := engine.Info()
	slog.Info("model loaded",
		"path", *modelPath,
		"name", info.Name,
		"version", info.Version,
		"n_features", info.NumFeatures,
	)
	if err := engine.CheckDimensions(); err != nil {
		slog.Error("model dimension differs from the feature pipeline, refusing to start", "error", err)
		os.Exit(1)
	}

	// ── Smoke check ───────────────────────────────────────────────────────────
	if err := smokeCheck(engine, *samplesPath); err != nil {
		if errors.Is(err, domain.ErrScoringFailed) {
			slog.Error("pipeline and model disagree, refusing to start", "error", err)
			os.Exit(1)
		}
		// Non-fatal: the API works fine without sample data.
		slog.Warn("smoke check skipped", "file", *samplesPath, "reason", err.Error())
	}

	// ── Wire dependencies ─────────────────────────────────────────────────────
	notifier := webhook.New(cfg.AlertWebhookURL)
	handler := api.NewHandler(engine, notifier, cfg.ScoringTimeout)
	router := api.NewRouter(handler)

	// ── Start HTTP server ─────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "port", *port, "env", cfg.Env, "alerts", notifier.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	notifier.Wait()
	slog.Info("server stopped")
}

// smokeCheck scores every sample request once so that a pipeline/model
// mismatch surfaces at startup instead of on the first real request.
// Invalid samples are counted but do not fail the check. Samples go through
// Engine.Evaluate so they never appear in the prediction metrics.
func smokeCheck(e *scoring.Engine, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var requests []domain.PredictionRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	var labels []string
	var fraud, legit, invalid int
	for i := range requests {
		p, err := e.Evaluate(context.Background(), &requests[i])
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			invalid++
			continue
		case err != nil:
			return err
		}
		if p.Label == domain.LabelFraud {
			fraud++
		} else {
			legit++
		}
		if !slices.Contains(labels, p.Label) {
			labels = append(labels, p.Label)
		}
	}

	slog.Info("smoke check passed",
		"file", filePath,
		"scored", fraud+legit,
		"fraud", fraud,
		"legit", legit,
		"invalid", invalid,
		"labels", labels,
	)
	return nil
}
