package handler

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal amounts, calendar
// dates and metadata maps
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			return value.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if value, ok := field.Interface().(domain.Date); ok && !value.IsZero() {
			return value.Time()
		}
		return nil
	}, domain.Date{})

	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("scalar_map", validateScalarMap)

	return v
}

// validateMoney accepts amounts with at most two fractional digits
func validateMoney(fl validator.FieldLevel) bool {
	field := fl.Field()

	var amount decimal.Decimal
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		amount = decimal.NewFromFloat(field.Float())
	case reflect.Struct:
		value, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		amount = value
	default:
		return false
	}

	return amount.Equal(amount.Round(2))
}

func validateScalarMap(fl validator.FieldLevel) bool {
	metadata, ok := fl.Field().Interface().(domain.Metadata)
	if !ok {
		return false
	}
	return metadata.Validate() == nil
}
