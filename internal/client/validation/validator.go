// Package validation checks request payloads before they leave the client,
// so obviously malformed registrations and logins never reach the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)

// Validator wraps go-playground/validator with the marketplace rules.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator. It is safe for concurrent use.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("account_type", func(fl validator.FieldLevel) bool {
		return models.AccountType(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// Struct validates s and returns *Error on failure.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return newError(verrs)
	}
	return err
}

// Error carries one message per offending field, keyed by JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func newError(errs validator.ValidationErrors) *Error {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "email":
			fields[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		case "eqfield":
			fields[field] = "Password fields didn't match."
		case "nefield":
			fields[field] = "new password must differ from the old one"
		case "phone":
			fields[field] = fmt.Sprintf("%s must be a valid phone number", field)
		case "account_type":
			fields[field] = "account_type must be jobseeker or employer"
		default:
			fields[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &Error{Fields: fields}
}
