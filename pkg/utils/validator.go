package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern   = regexp.MustCompile(`^[0-9]{10,15}$`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*]{8,}$`)
)

// FieldError is one itemized validation failure keyed by the JSON field name.
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterValidation("mobile", validateMobile)
	v.RegisterValidation("strongpassword", validateStrongPassword)

	return &Validator{validate: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Var checks a single value against a tag such as "email".
func (v *Validator) Var(value interface{}, tag string) error {
	return v.validate.Var(value, tag)
}

// IsEmail applies the same "email" rule the registration structs use.
func (v *Validator) IsEmail(s string) bool {
	return v.Var(s, "required,email") == nil
}

// Fields validates s and returns the failures in declaration order, or nil.
func (v *Validator) Fields(s interface{}) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Key: "body", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Key: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "mobile":
		return fmt.Sprintf("%s must be 10 to 15 digits", fe.Field())
	case "strongpassword":
		return fmt.Sprintf("%s must be at least 8 characters and include an uppercase letter, a lowercase letter, a number and a special character (!@#$%%^&*)", fe.Field())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", fe.Field(), strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func validateMobile(fl validator.FieldLevel) bool {
	return IsMobile(fl.Field().String())
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// IsStrongPassword enforces the account password policy: 8+ characters from
// [A-Za-z0-9!@#$%^&*] with at least one lower, upper, digit and special.
func IsStrongPassword(s string) bool {
	if !passwordCharset.MatchString(s) {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}
