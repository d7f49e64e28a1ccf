// Command seed writes the demo classifier artifact and a set of sample
// prediction requests.
//
// Usage:
//
//	go run ./cmd/seed
//
// Outputs:
//   - data/model.json   logistic-regression artifact with fixed, hand-set
//     coefficients (no training happens here)
//   - data/samples.json ~200 sample requests, scored by the server at startup:
//     ~75% everyday purchases, ~15% card-not-present remote purchases,
//     ~10% night-time high-value purchases on risky devices
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"lumina/fraud-scoring/internal/domain"
	"lumina/fraud-scoring/internal/features"
	"lumina/fraud-scoring/internal/scoring"
)

func main() {
	rng := rand.New(rand.NewSource(42)) // deterministic seed for reproducibility

	if err := os.MkdirAll("data", 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir error: %v\n", err)
		os.Exit(1)
	}

	if err := writeJSON(filepath.Join("data", "model.json"), demoArtifact()); err != nil {
		fmt.Fprintf(os.Stderr, "model error: %v\n", err)
		os.Exit(1)
	}

	var samples []domain.PredictionRequest
	samples = append(samples, generateEveryday(rng, 150)...)
	samples = append(samples, generateRemoteCardNotPresent(rng, 30)...)
	samples = append(samples, generateNightHighValue(rng, 20)...)

	// Shuffle so patterns aren't trivially grouped in the file.
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	for i := range samples {
		samples[i].Metadata.TransactionID = fmt.Sprintf("txn_%05d", i+1)
	}

	if err := writeJSON(filepath.Join("data", "samples.json"), samples); err != nil {
		fmt.Fprintf(os.Stderr, "samples error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated data/model.json and %d samples → data/samples.json\n", len(samples))
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ─── Demo artifact ────────────────────────────────────────────────────────────

// demoArtifact returns a standardised logistic model whose weights favour the
// engineered risk flags over the hashed categorical codes.
func demoArtifact() scoring.Artifact {
	consts := features.DefaultConstants()
	return scoring.Artifact{
		Name:         "logistic-fraud-demo",
		Version:      "1.0.0",
		NFeatures:    domain.FeatureVectorLen,
		FeatureNames: domain.FeatureNames[:],
		Coefficients: []float64{
			0.02, 0.02, 0.4, 0.01, 0.03, 0.02, -0.5, 0.02, 0.02, 0.6, -0.1, 0.8,
			-0.3, 0.01, 0.1, 0.2, 0.7, 0.5, 0.4, 0.6, 0.5, 0.6, 0.02,
		},
		Intercept: -2.2,
		Scaler: &scoring.Scaler{
			Mean: []float64{
				500, 500, 1500, 500, 500, 500, 0.6, 500, 500, 50, 12, 0.33,
				0.46, 500, 0, 0, 0.1, 6.5, 0, 0.15, 0.4, 0.3, 500,
			},
			Scale: []float64{
				289, 289, 1200, 289, 289, 289, 0.49, 289, 289, 80, 6.9, 0.47,
				0.5, 289, 0.707, 0.707, 0.3, 1.5, 1, 0.36, 0.49, 0.46, 289,
			},
		},
		FeatureConstants: &consts,
	}
}

// ─── Samples ──────────────────────────────────────────────────────────────────

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func metadata(rng *rand.Rand, day time.Time) domain.TransactionMetadata {
	return domain.TransactionMetadata{
		CustomerID:       fmt.Sprintf("CUST%d", 1000+rng.Intn(9000)),
		CardNumberMasked: fmt.Sprintf("XXXX-XXXX-XXXX-%04d", rng.Intn(10000)),
		TransactionDate:  day.Format("2006-01-02"),
		IPAddress:        fmt.Sprintf("192.168.%d.%d", rng.Intn(256), 1+rng.Intn(254)),
	}
}

func roundTo2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

var sampleDay = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

// generateEveryday produces card-present daytime purchases close to home.
func generateEveryday(rng *rand.Rand, n int) []domain.PredictionRequest {
	out := make([]domain.PredictionRequest, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.PredictionRequest{
			TransactionAttributes: domain.TransactionAttributes{
				MerchantCategory: pick(rng, []string{domain.CategoryRetail, domain.CategoryFood, domain.CategoryOther}),
				MerchantType:     pick(rng, []string{domain.MerchantInStore, domain.MerchantOnline, domain.MerchantSubscription}),
				Amount:           roundTo2(20 + rng.Float64()*1500),
				Currency:         pick(rng, domain.Currencies),
				Country:          pick(rng, domain.Countries),
				CardType:         pick(rng, []string{domain.CardCredit, domain.CardDebit}),
				CardPresent:      domain.CardPresentYes,
				Device:           pick(rng, []string{domain.DeviceMobile, domain.DeviceDesktop, domain.DeviceTablet}),
				Channel:          pick(rng, []string{domain.ChannelApp, domain.ChannelWeb}),
				DistanceFromHome: rng.Intn(40),
				Hour:             8 + rng.Intn(11),
			},
			Metadata: metadata(rng, sampleDay.AddDate(0, 0, rng.Intn(14))),
		})
	}
	return out
}

// generateRemoteCardNotPresent produces online purchases far from home.
func generateRemoteCardNotPresent(rng *rand.Rand, n int) []domain.PredictionRequest {
	out := make([]domain.PredictionRequest, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.PredictionRequest{
			TransactionAttributes: domain.TransactionAttributes{
				MerchantCategory: pick(rng, []string{domain.CategoryTravel, domain.CategoryElectronics}),
				MerchantType:     domain.MerchantOnline,
				Amount:           roundTo2(800 + rng.Float64()*5000),
				Currency:         pick(rng, []string{domain.USD, domain.EUR, domain.GBP}),
				Country:          pick(rng, domain.Countries),
				CardType:         pick(rng, domain.CardTypes),
				CardPresent:      domain.CardPresentNo,
				Device:           pick(rng, []string{domain.DeviceDesktop, domain.DeviceUnknown}),
				Channel:          domain.ChannelWeb,
				DistanceFromHome: 100 + rng.Intn(401),
				Hour:             rng.Intn(24),
			},
			Metadata: metadata(rng, sampleDay.AddDate(0, 0, rng.Intn(14))),
		})
	}
	return out
}

// generateNightHighValue produces large night-time purchases on POS or
// unknown devices, the profile the demo model scores highest.
func generateNightHighValue(rng *rand.Rand, n int) []domain.PredictionRequest {
	nightHours := []int{0, 1, 2, 3, 4, 5, 20, 21, 22, 23}
	out := make([]domain.PredictionRequest, 0, n)
	for i := 0; i < n; i++ {
		device := pick(rng, []string{domain.DevicePOS, domain.DeviceUnknown})
		channel := domain.ChannelPOS
		if device == domain.DeviceUnknown {
			channel = domain.ChannelATM
		}
		out = append(out, domain.PredictionRequest{
			TransactionAttributes: domain.TransactionAttributes{
				MerchantCategory: pick(rng, []string{domain.CategoryElectronics, domain.CategoryOther}),
				MerchantType:     pick(rng, []string{domain.MerchantATM, domain.MerchantOnline}),
				Amount:           roundTo2(5000 + rng.Float64()*45000),
				Currency:         pick(rng, domain.Currencies),
				Country:          pick(rng, domain.Countries),
				CardType:         domain.CardPrepaid,
				CardPresent:      domain.CardPresentNo,
				Device:           device,
				Channel:          channel,
				DistanceFromHome: 150 + rng.Intn(351),
				Hour:             nightHours[rng.Intn(len(nightHours))],
			},
			Metadata: metadata(rng, sampleDay.AddDate(0, 0, rng.Intn(14))),
		})
	}
	return out
}
