// Package features implements the deterministic transformation from raw
// transaction attributes to the 23-value feature vector the classifier expects.
//
// The encoder is a pure function of its input and an immutable Constants set.
// Vector positions:
//
//	 0 merchant_category   hashed
//	 1 merchant_type       hashed
//	 2 amount              raw
//	 3 currency            hashed
//	 4 country             hashed
//	 5 card_type           hashed
//	 6 card_present        1 = "Yes"
//	 7 device              hashed
//	 8 channel             hashed
//	 9 distance_from_home  raw
//	10 hour                raw
//	11 is_night            0/1
//	12 is_peak_hour        0/1
//	13 hour_bin            hashed
//	14 hour_sin
//	15 hour_cos
//	16 is_large_amount     0/1
//	17 log_amount          ln(1+amount)
//	18 amount_zscore
//	19 is_remote           0/1
//	20 is_card_not_present 0/1
//	21 device_risk_score   0/1
//	22 channel_device_combo hashed
package features

import (
	"fmt"
	"math"
	"slices"

	"lumina/fraud-scoring/internal/domain"
)

// Encoder turns validated attributes into feature vectors.
type Encoder struct {
	consts       *Constants
	riskyDevices map[string]bool
}

// NewEncoder creates an encoder bound to the given constants.
func NewEncoder(c *Constants) (*Encoder, error) {
	if c == nil {
		return nil, fmt.Errorf("features: constants are required")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}
	risky := make(map[string]bool, len(c.RiskyDevices))
	for _, d := range c.RiskyDevices {
		risky[d] = true
	}
	return &Encoder{consts: c, riskyDevices: risky}, nil
}

// Constants returns the constants the encoder was built with.
func (e *Encoder) Constants() Constants {
	c := *e.consts
	c.RiskyDevices = slices.Clone(c.RiskyDevices)
	return c
}

// Encode validates attrs and returns the derived fields and the feature vector.
// It returns an error wrapping domain.ErrInvalidInput when any attribute is
// outside its allowed set or range; no vector is produced in that case.
func (e *Encoder) Encode(attrs *domain.TransactionAttributes) (*domain.Encoding, error) {
	if err := Validate(attrs); err != nil {
		return nil, err
	}

	d := e.Derive(attrs)
	vec := domain.FeatureVector{
		float64(EncodeString(attrs.MerchantCategory)),
		float64(EncodeString(attrs.MerchantType)),
		attrs.Amount,
		float64(EncodeString(attrs.Currency)),
		float64(EncodeString(attrs.Country)),
		float64(EncodeString(attrs.CardType)),
		boolFeature(attrs.CardPresent == domain.CardPresentYes),
		float64(EncodeString(attrs.Device)),
		float64(EncodeString(attrs.Channel)),
		float64(EncodeInt(attrs.DistanceFromHome)),
		float64(EncodeInt(attrs.Hour)),
		boolFeature(d.IsNight),
		boolFeature(d.IsPeakHour),
		float64(EncodeString(d.HourBin)),
		d.HourSin,
		d.HourCos,
		boolFeature(d.IsLargeAmount),
		d.LogAmount,
		d.AmountZScore,
		boolFeature(d.IsRemote),
		boolFeature(d.IsCardNotPresent),
		boolFeature(d.DeviceRiskScore),
		float64(EncodeString(d.ChannelDeviceCombo)),
	}

	return &domain.Encoding{
		Derived:      d,
		Vector:       vec,
		FeatureNames: slices.Clone(domain.FeatureNames[:]),
	}, nil
}

// Derive computes the engineered fields. attrs must already be valid.
func (e *Encoder) Derive(attrs *domain.TransactionAttributes) domain.DerivedFields {
	h := attrs.Hour
	angle := 2 * math.Pi * float64(h) / 24

	return domain.DerivedFields{
		IsNight:            IsNight(h),
		IsPeakHour:         IsPeakHour(h),
		HourBin:            HourBin(h),
		HourSin:            math.Sin(angle),
		HourCos:            math.Cos(angle),
		IsLargeAmount:      attrs.Amount > e.consts.LargeAmountThreshold,
		LogAmount:          math.Log1p(attrs.Amount),
		AmountZScore:       (attrs.Amount - e.consts.AmountMean) / e.consts.AmountStd,
		IsRemote:           attrs.DistanceFromHome > e.consts.DistanceThreshold,
		IsCardNotPresent:   attrs.CardPresent == domain.CardPresentNo,
		DeviceRiskScore:    e.riskyDevices[attrs.Device],
		ChannelDeviceCombo: attrs.Channel + e.consts.ComboSeparator + attrs.Device,
	}
}

// IsNight reports whether hour falls before 06:00 or at/after 20:00.
func IsNight(hour int) bool {
	return hour < 6 || hour >= 20
}

// IsPeakHour reports whether hour is within 08:00–18:00 inclusive.
func IsPeakHour(hour int) bool {
	return hour >= 8 && hour <= 18
}

// HourBin buckets an hour into morning, afternoon, evening or night.
func HourBin(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return domain.HourBinMorning
	case hour >= 12 && hour < 17:
		return domain.HourBinAfternoon
	case hour >= 17 && hour < 20:
		return domain.HourBinEvening
	default:
		return domain.HourBinNight
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
