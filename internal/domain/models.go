// Package domain contains all core types used across the application.
// Keeping domain types in one place makes the feature pipeline easy to reason about.
package domain

import "time"

// ─── Enumerations ─────────────────────────────────────────────────────────────

// Merchant categories offered by the collection form.
const (
	CategoryRetail      = "Retail"
	CategoryFood        = "Food"
	CategoryTravel      = "Travel"
	CategoryElectronics = "Electronics"
	CategoryOther       = "Other"
)

// Merchant types.
const (
	MerchantOnline       = "Online"
	MerchantInStore      = "In-store"
	MerchantSubscription = "Subscription"
	MerchantATM          = "ATM"
)

// Supported currencies.
const (
	INR = "INR" // Indian Rupee
	USD = "USD" // US Dollar
	EUR = "EUR" // Euro
	GBP = "GBP" // Pound Sterling
)

// Countries.
const (
	CountryIndia   = "India"
	CountryUSA     = "USA"
	CountryUK      = "UK"
	CountryGermany = "Germany"
	CountryOther   = "Other"
)

// Card types.
const (
	CardCredit  = "Credit"
	CardDebit   = "Debit"
	CardPrepaid = "Prepaid"
)

// Card-present answers. The form stores the literal answer, not a bool.
const (
	CardPresentYes = "Yes"
	CardPresentNo  = "No"
)

// Devices.
const (
	DeviceMobile  = "Mobile"
	DeviceDesktop = "Desktop"
	DevicePOS     = "POS"
	DeviceTablet  = "Tablet"
	DeviceUnknown = "Unknown"
)

// Transaction channels.
const (
	ChannelApp = "App"
	ChannelWeb = "Web"
	ChannelATM = "ATM"
	ChannelPOS = "POS"
)

// Hour-of-day bins.
const (
	HourBinMorning   = "morning"   // [6,12)
	HourBinAfternoon = "afternoon" // [12,17)
	HourBinEvening   = "evening"   // [17,20)
	HourBinNight     = "night"     // [20,24) ∪ [0,6)
)

// Verdict labels returned to the presentation layer.
const (
	LabelFraud = "fraud"
	LabelLegit = "legit"
)

// ─── Bounds ───────────────────────────────────────────────────────────────────

// Numeric bounds accepted at the collection boundary.
const (
	MinAmount   = 0.0
	MaxAmount   = 100000.0
	MinDistance = 0
	MaxDistance = 500
	MinHour     = 0
	MaxHour     = 23
)

// Allowed values per categorical field, in the order the form presents them.
var (
	MerchantCategories = []string{CategoryRetail, CategoryFood, CategoryTravel, CategoryElectronics, CategoryOther}
	MerchantTypes      = []string{MerchantOnline, MerchantInStore, MerchantSubscription, MerchantATM}
	Currencies         = []string{INR, USD, EUR, GBP}
	Countries          = []string{CountryIndia, CountryUSA, CountryUK, CountryGermany, CountryOther}
	CardTypes          = []string{CardCredit, CardDebit, CardPrepaid}
	CardPresentOptions = []string{CardPresentYes, CardPresentNo}
	Devices            = []string{DeviceMobile, DeviceDesktop, DevicePOS, DeviceTablet, DeviceUnknown}
	Channels           = []string{ChannelApp, ChannelWeb, ChannelATM, ChannelPOS}
)

// ─── Core domain types ────────────────────────────────────────────────────────

// TransactionAttributes is the raw, human-entered input to the feature pipeline.
// The validate tags enforce the enumerations and bounds above at the HTTP edge.
type TransactionAttributes struct {
	MerchantCategory string  `json:"merchant_category" validate:"required,oneof=Retail Food Travel Electronics Other"`
	MerchantType     string  `json:"merchant_type" validate:"required,oneof=Online In-store Subscription ATM"`
	Amount           float64 `json:"amount" validate:"min=0,max=100000"`
	Currency         string  `json:"currency" validate:"required,oneof=INR USD EUR GBP"`
	Country          string  `json:"country" validate:"required,oneof=India USA UK Germany Other"`
	CardType         string  `json:"card_type" validate:"required,oneof=Credit Debit Prepaid"`
	CardPresent      string  `json:"card_present" validate:"required,oneof=Yes No"`
	Device           string  `json:"device" validate:"required,oneof=Mobile Desktop POS Tablet Unknown"`
	Channel          string  `json:"channel" validate:"required,oneof=App Web ATM POS"`
	DistanceFromHome int     `json:"distance_from_home" validate:"min=0,max=500"` // km
	Hour             int     `json:"hour" validate:"min=0,max=23"`
}

// TransactionMetadata is display-only context collected alongside the
// attributes. None of it reaches the feature vector.
type TransactionMetadata struct {
	TransactionID     string `json:"transaction_id,omitempty"`
	CustomerID        string `json:"customer_id,omitempty"`
	CardNumberMasked  string `json:"card_number_masked,omitempty"` // e.g. XXXX-XXXX-XXXX-1234
	TransactionDate   string `json:"transaction_date,omitempty"`   // YYYY-MM-DD
	DeviceFingerprint string `json:"device_fingerprint,omitempty"`
	IPAddress         string `json:"ip_address,omitempty"`
}

// PredictionRequest is the payload accepted by the prediction endpoints.
type PredictionRequest struct {
	TransactionAttributes
	Metadata TransactionMetadata `json:"metadata"`
}

// DerivedFields are the engineered values computed from the attributes for a
// single prediction. They are never stored.
type DerivedFields struct {
	IsNight            bool    `json:"is_night"`
	IsPeakHour         bool    `json:"is_peak_hour"`
	HourBin            string  `json:"hour_bin"`
	HourSin            float64 `json:"hour_sin"`
	HourCos            float64 `json:"hour_cos"`
	IsLargeAmount      bool    `json:"is_large_amount"`
	LogAmount          float64 `json:"log_amount"`
	AmountZScore       float64 `json:"amount_zscore"`
	IsRemote           bool    `json:"is_remote"`
	IsCardNotPresent   bool    `json:"is_card_not_present"`
	DeviceRiskScore    bool    `json:"device_risk_score"`
	ChannelDeviceCombo string  `json:"channel_device_combo"`
}

// FeatureVectorLen is the number of features the classifier was trained on.
const FeatureVectorLen = 23

// FeatureVector is the ordered numeric input to the classifier.
type FeatureVector []float64

// FeatureNames lists the vector positions in order. Index i names FeatureVector[i].
var FeatureNames = [FeatureVectorLen]string{
	"merchant_category",
	"merchant_type",
	"amount",
	"currency",
	"country",
	"card_type",
	"card_present",
	"device",
	"channel",
	"distance_from_home",
	"hour",
	"is_night",
	"is_peak_hour",
	"hour_bin",
	"hour_sin",
	"hour_cos",
	"is_large_amount",
	"log_amount",
	"amount_zscore",
	"is_remote",
	"is_card_not_present",
	"device_risk_score",
	"channel_device_combo",
}

// Encoding is the result of running the feature pipeline on one request.
type Encoding struct {
	Derived      DerivedFields `json:"derived"`
	Vector       FeatureVector `json:"vector"`
	FeatureNames []string      `json:"feature_names"`
}

// ScoreResult is what the classifier boundary returns for one vector.
type ScoreResult struct {
	Label       string  `json:"label"`       // fraud | legit
	Probability float64 `json:"probability"` // P(fraud), 0-1
}

// Prediction is the full response for a scored transaction.
type Prediction struct {
	ScoreResult
	Confidence   float64             `json:"confidence"` // probability of the predicted label
	ModelName    string              `json:"model_name"`
	ModelVersion string              `json:"model_version"`
	Metadata     TransactionMetadata `json:"metadata"`
	ProcessedAt  time.Time           `json:"processed_at"`
}

// ─── Alerts ───────────────────────────────────────────────────────────────────

// AlertPayload is the body sent to the configured alert URL.
type AlertPayload struct {
	Event       string     `json:"event"` // always "fraud_detected"
	TriggeredAt time.Time  `json:"triggered_at"`
	Prediction  Prediction `json:"prediction"`
}
