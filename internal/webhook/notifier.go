// Package webhook delivers fraud alerts to a configured URL.
//
// Alerts are sent in a goroutine so they never block the HTTP response.
// Failed deliveries are logged and counted but not retried.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"lumina/fraud-scoring/internal/domain"
	"lumina/fraud-scoring/internal/metrics"
)

// EventFraudDetected is the event name carried in every alert.
const EventFraudDetected = "fraud_detected"

// Notifier posts alert payloads for fraud verdicts.
type Notifier struct {
	url    string
	client *http.Client
	wg     sync.WaitGroup
}

// New creates a Notifier for url. An empty url yields a notifier that
// never sends anything.
func New(url string) *Notifier {
	return &Notifier{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Enabled reports whether an alert URL is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

// NotifyAsync fires an alert in the background when p is a fraud verdict.
func (n *Notifier) NotifyAsync(p *domain.Prediction) {
	if !n.Enabled() || p.Label != domain.LabelFraud {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(p); err != nil {
			metrics.AlertDeliveriesTotal.WithLabelValues("failed").Inc()
			slog.Warn("webhook: delivery failed",
				"url", n.url,
				"transaction_id", p.Metadata.TransactionID,
				"error", err,
			)
			return
		}
		metrics.AlertDeliveriesTotal.WithLabelValues("delivered").Inc()
	}()
}

// Wait blocks until in-flight alerts finish. Used on shutdown and in tests.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}

// send delivers a single alert and logs the outcome.
func (n *Notifier) send(p *domain.Prediction) error {
	payload := domain.AlertPayload{
		Event:       EventFraudDetected,
		TriggeredAt: time.Now().UTC(),
		Prediction:  *p,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Lumina-Event", EventFraudDetected)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	slog.Info("webhook: delivered",
		"url", n.url,
		"status", resp.StatusCode,
		"transaction_id", p.Metadata.TransactionID,
		"probability", p.Probability,
	)
	return nil
}
