package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

// GetValidator returns the shared validator with the custom rules registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("username", validateUsername)
	})
	return validate
}

// validateUsername 3-50 chars of letters, digits, '_', '.', '-'.
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	return usernameRe.MatchString(username)
}

// ValidateStruct runs struct tag validation and returns a readable error.
func ValidateStruct(s interface{}) error {
	if err := GetValidator().Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError joins field errors into one Spanish message.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s es obligatorio", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s debe tener al menos %s caracteres", field, e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s no puede superar %s caracteres", field, e.Param()))
		case "username":
			messages = append(messages, fmt.Sprintf("%s solo admite letras, números, '_', '.', '-' (3-50)", field))
		default:
			messages = append(messages, fmt.Sprintf("%s no es válido (%s)", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
