package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
)

// newValidator builds the request validator. Field names in errors follow
// the JSON wire names so messages read like the payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("widgetid", validateWidgetID)
	return v
}

func validateWidgetID(fl validator.FieldLevel) bool {
	return apperr.ValidateWidgetID(fl.Field().String()) == nil
}

// validationError turns validator output into an INVALID_LAYOUT error naming
// the first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Wrap(apperr.ErrCodeInvalidLayout, err, "invalid layout")
	}

	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "putRequest.")
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			reason = fmt.Sprintf("has more than %s records", fe.Param())
		} else {
			reason = fmt.Sprintf("is longer than %s characters", fe.Param())
		}
	case "gte":
		reason = "must not be negative"
	case "widgetid":
		reason = "is not a valid widget id"
	default:
		reason = fmt.Sprintf("failed %q", fe.Tag())
	}
	return apperr.Wrap(apperr.ErrCodeInvalidLayout, err, "%s %s", field, reason)
}
