package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// SetupValidator configures the binding validator: error messages use
// JSON field names, and the custom tags below become available.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("currency", validateCurrency)
}

func validateCurrency(fl validator.FieldLevel) bool {
	return valueobject.Currency(fl.Field().String()).IsValid()
}
