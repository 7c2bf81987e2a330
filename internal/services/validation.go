package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/utils"
)

var (
	usernameRe    = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	countryCodeRe = regexp.MustCompile(`^\+[0-9]{1,4}$`)
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Messages per validation tag. Fields are declared in the order they are
// reported, so the first failing field decides the message.
var validationMessages = map[string]string{
	"username":       "Username must be 3-50 characters using letters, numbers, dot, dash or underscore",
	"emailaddr":      "Please provide a valid email address",
	"countrycode":    "Invalid country code format",
	"phone10":        "Phone number must contain exactly 10 digits",
	"strongpassword": "Password must be at least 8 characters and include @ or #",
}

// NewValidator returns a validator with the registration rules installed.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"username": func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(strings.TrimSpace(fl.Field().String()))
		},
		"emailaddr": func(fl validator.FieldLevel) bool {
			return emailRe.MatchString(utils.NormalizeEmail(fl.Field().String()))
		},
		"countrycode": func(fl validator.FieldLevel) bool {
			return countryCodeRe.MatchString(strings.TrimSpace(fl.Field().String()))
		},
		"phone10": func(fl validator.FieldLevel) bool {
			return len(utils.DigitsOnly(fl.Field().String())) == 10
		},
		"strongpassword": func(fl validator.FieldLevel) bool {
			p := fl.Field().String()
			return utf8.RuneCountInString(p) >= 8 && strings.ContainsAny(p, "@#")
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// translateValidation turns validator output into a ValidationError.
func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return &ValidationError{Message: "All fields are required"}
		}
	}
	for _, fe := range verrs {
		if msg, ok := validationMessages[fe.Tag()]; ok {
			return &ValidationError{Message: msg}
		}
	}
	return &ValidationError{Message: "Invalid input"}
}
