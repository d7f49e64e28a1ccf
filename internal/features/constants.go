package features

import (
	"fmt"

	"lumina/fraud-scoring/internal/domain"
)

// Constants are the values the classifier was trained against. They are built
// once at startup and must not be mutated afterwards.
type Constants struct {
	AmountMean           float64  `json:"amount_mean"`
	AmountStd            float64  `json:"amount_std"`
	LargeAmountThreshold float64  `json:"large_amount_threshold"`
	DistanceThreshold    int      `json:"distance_threshold"`
	RiskyDevices         []string `json:"risky_devices"`
	ComboSeparator       string   `json:"combo_separator"`
}

// DefaultConstants returns the constants of the reference model.
func DefaultConstants() Constants {
	return Constants{
		AmountMean:           1500.0,
		AmountStd:            1200.0,
		LargeAmountThreshold: 5000,
		DistanceThreshold:    100,
		RiskyDevices:         []string{domain.DevicePOS, domain.DeviceUnknown, "CustomDevice"},
		ComboSeparator:       "_",
	}
}

// Validate rejects constant sets that would make the pipeline produce NaN or
// silently wrong features.
func (c Constants) Validate() error {
	if c.AmountStd <= 0 {
		return fmt.Errorf("amount_std must be positive, got %v", c.AmountStd)
	}
	if c.LargeAmountThreshold < 0 {
		return fmt.Errorf("large_amount_threshold must not be negative, got %v", c.LargeAmountThreshold)
	}
	if c.DistanceThreshold < 0 {
		return fmt.Errorf("distance_threshold must not be negative, got %d", c.DistanceThreshold)
	}
	if c.ComboSeparator == "" {
		return fmt.Errorf("combo_separator is required")
	}
	return nil
}
