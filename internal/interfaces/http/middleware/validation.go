package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Currency codes are normalized to upper case by the domain, so the
// binding rule accepts either case.
var currencyCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

func init() {
	RegisterValidations()
}

// RegisterValidations installs custom binding rules on gin's validator
// engine. Safe to call more than once.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return currencyCodeRe.MatchString(fl.Field().String())
	})
}
