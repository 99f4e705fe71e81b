package middleware

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// RegisterValidators installs the custom binding tags on gin's validator engine.
// It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("password", validPassword); err != nil {
		return err
	}
	return v.RegisterValidation("role", validRole)
}

// jsonFieldName reports fields by their wire name in validation errors
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validPassword(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String()) == nil
}

func validRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).Valid()
}

// ValidatePassword applies the password policy: a minimum length and not entirely numeric
func ValidatePassword(pw string) error {
	if len([]rune(pw)) < MinPasswordLength {
		return domain.NewValidationError("password",
			fmt.Sprintf("This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}
	for _, r := range pw {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return domain.NewValidationError("password", "This password is entirely numeric.")
}
