package identity

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"loan-ledger/internal/domain/apperr"
)

// bcrypt input limit, in bytes
const maxPasswordBytes = 72

var (
	reUserID = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,50}$`)
	rePhone  = regexp.MustCompile(`^\+?[0-9]{6,14}$`)
)

// ValidUserID reports whether s is an acceptable registrant-chosen id.
func ValidUserID(s string) bool { return reUserID.MatchString(s) }

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
		return ValidUserID(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return v
}

var fieldNames = map[string]string{
	"UserID":    "user_id",
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Email":     "email",
	"Phone":     "phone",
	"Password":  "password",
}

// toAppErr turns the first validator failure into a ValidationError.
func toAppErr(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return apperr.Validation("_", err.Error())
	}
	fe := ve[0]
	field := fieldNames[fe.Field()]
	if field == "" {
		field = strings.ToLower(fe.Field())
	}
	switch fe.Tag() {
	case "required":
		return apperr.Validation(field, "is required")
	case "email":
		return apperr.Validation(field, "must be a valid email address")
	case "userid":
		return apperr.Validation(field, "must be 3-50 letters, digits, '.', '_' or '-'")
	case "phone":
		return apperr.Validation(field, "must be 6-14 digits, optionally prefixed with +")
	case "min":
		return apperr.Validation(field, "must be at least "+fe.Param()+" characters")
	case "bcryptlen":
		return apperr.Validation(field, "must be at most 72 bytes")
	case "max":
		return apperr.Validation(field, "must be at most "+fe.Param()+" characters")
	}
	return apperr.Validation(field, fe.Tag()+" validation failed")
}
