package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"service-order-system/pkg/constants"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("custom_email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_status", isKnownOrderStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_type", isKnownOrderType); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_gte0", isNonNegativeDecimal); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// isKnownOrderStatus — код статуса из каталога
func isKnownOrderStatus(fl validator.FieldLevel) bool {
	return constants.OrderStatus(fl.Field().String()).IsValid()
}

func isKnownOrderType(fl validator.FieldLevel) bool {
	return constants.OrderType(fl.Field().String()).IsValid()
}

// isNonNegativeDecimal — денежная сумма строкой, >= 0
func isNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative()
}
