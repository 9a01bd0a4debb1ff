package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that understands decimal.Decimal fields
// through the dgt0 (> 0) and dgte0 (>= 0) tags.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"dgt0":  decimalSign(func(d decimal.Decimal) bool { return d.IsPositive() }),
		"dgte0": decimalSign(func(d decimal.Decimal) bool { return !d.IsNegative() }),
	}
	if err := registerRules(v, rules); err != nil {
		panic(err)
	}

	return v
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return nil
}

func decimalSign(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && ok(d)
	}
}

// validationMessage renders the first failed field as a client message.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " must not be empty."
	case "dgt0":
		return fe.Field() + " must be greater than zero."
	case "dgte0":
		return fe.Field() + " must not be negative."
	default:
		return fe.Field() + " is invalid."
	}
}
