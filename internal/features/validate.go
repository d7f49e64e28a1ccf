package features

import (
	"fmt"
	"math"
	"slices"

	"lumina/fraud-scoring/internal/domain"
)

// Validate re-checks attributes against the enumerations and bounds the
// model was trained on. Errors wrap domain.ErrInvalidInput.
func Validate(attrs *domain.TransactionAttributes) error {
	if attrs == nil {
		return fmt.Errorf("%w: attributes are required", domain.ErrInvalidInput)
	}

	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"merchant_category", attrs.MerchantCategory, domain.MerchantCategories},
		{"merchant_type", attrs.MerchantType, domain.MerchantTypes},
		{"currency", attrs.Currency, domain.Currencies},
		{"country", attrs.Country, domain.Countries},
		{"card_type", attrs.CardType, domain.CardTypes},
		{"card_present", attrs.CardPresent, domain.CardPresentOptions},
		{"device", attrs.Device, domain.Devices},
		{"channel", attrs.Channel, domain.Channels},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, c.value) {
			return fmt.Errorf("%w: %s %q is not one of %v", domain.ErrInvalidInput, c.field, c.value, c.allowed)
		}
	}

	if math.IsNaN(attrs.Amount) || attrs.Amount < domain.MinAmount || attrs.Amount > domain.MaxAmount {
		return fmt.Errorf("%w: amount %v outside [%v, %v]", domain.ErrInvalidInput, attrs.Amount, domain.MinAmount, domain.MaxAmount)
	}
	if attrs.DistanceFromHome < domain.MinDistance || attrs.DistanceFromHome > domain.MaxDistance {
		return fmt.Errorf("%w: distance_from_home %d outside [%d, %d]", domain.ErrInvalidInput, attrs.DistanceFromHome, domain.MinDistance, domain.MaxDistance)
	}
	if attrs.Hour < domain.MinHour || attrs.Hour > domain.MaxHour {
		return fmt.Errorf("%w: hour %d outside [%d, %d]", domain.ErrInvalidInput, attrs.Hour, domain.MinHour, domain.MaxHour)
	}
	return nil
}
