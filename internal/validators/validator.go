package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var digitsRe = regexp.MustCompile(`^[0-9]+$`)

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("date_ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	})

	return v
}

// ParseClock accepts HH:MM and HH:MM:SS and returns the HH:MM form.
func ParseClock(v string) (string, error) {
	for _, layout := range []string{TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", v)
}

// check runs the struct rules and converts failures into field messages.
func check(s any) *domain.ValidationError {
	verr := &domain.ValidationError{}

	err := engine.Struct(s)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("body", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
	return verr
}

func message(fe validator.FieldError) string {
	label := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email"
	case "url":
		return label + " must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "date_ymd":
		return label + " must be a date formatted YYYY-MM-DD"
	case "clock":
		return label + " must be a time formatted HH:MM"
	case "digits":
		return label + " must contain only numbers"
	default:
		return label + " is invalid"
	}
}

// humanize turns json names (client_name, firstName) into "Client name", "First name".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case r >= 'A' && r <= 'Z' && i > 0:
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BindError wraps a payload that could not even be decoded.
func BindError(err error) error {
	return domain.NewValidationError("body", "Invalid request body: "+err.Error())
}
