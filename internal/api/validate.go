package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"lumina/fraud-scoring/internal/domain"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// numericPresence records which numeric attributes the body actually carried.
// A missing number decodes to 0 in domain.TransactionAttributes, which is a
// valid amount, distance and hour, so absence has to be checked separately.
type numericPresence struct {
	Amount           *float64 `json:"amount" validate:"required"`
	DistanceFromHome *int     `json:"distance_from_home" validate:"required"`
	Hour             *int     `json:"hour" validate:"required"`
}

// validateRequest checks the collection-boundary rules declared on
// domain.TransactionAttributes. Errors wrap domain.ErrInvalidInput.
func validateRequest(v *validator.Validate, present *numericPresence, req *domain.PredictionRequest) error {
	var msgs []string
	for _, target := range []any{present, req} {
		err := v.Struct(target)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
