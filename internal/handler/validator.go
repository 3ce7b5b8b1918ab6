package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("username", validateUsername)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "username":
			errs[field] = "Only letters, digits, and underscores are allowed"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if username == "" {
		return true // emptiness is the 'required' tag's concern
	}
	return usernamePattern.MatchString(username)
}
