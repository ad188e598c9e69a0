package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	mx       = "max"
	mn       = "min"
	required = "required"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case required:
		return fmt.Sprintf("%q is required", err.Field())
	case mx:
		return formatLength(err, "at most")
	case mn:
		return formatLength(err, "at least")
	default:
		return fmt.Sprintf("%q failed the %q check", err.Field(), err.Tag())
	}
}

// formatLength renders min/max errors. Only text fields are bound, so the
// bound is always a character count.
func formatLength(err validator.FieldError, bound string) string {
	unit := "characters"
	if err.Param() == "1" {
		unit = "character"
	}
	if err.Kind() != reflect.String {
		return fmt.Sprintf("%q must be %s %s", err.Field(), bound, err.Param())
	}
	return fmt.Sprintf("%q must be %s %s %s long", err.Field(), bound, err.Param(), unit)
}
