// ABOUTME: Struct-tag validation for service inputs using go-playground/validator.
// ABOUTME: Failures become a ValidationError keyed by JSON field name.
package coach

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(JSONFieldName)
	return v
}

// JSONFieldName reports a struct field by its json (or form) tag name.
func JSONFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// checkStruct validates s against its validate tags.
func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidationErrors(verrs)
	}
	return fmt.Errorf("validate: %w", err)
}

// FromValidationErrors converts validator failures into a ValidationError,
// keeping the first failure per field.
func FromValidationErrors(verrs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = FieldMessage(fe)
		}
	}
	return &ValidationError{Fields: fields}
}

// FieldMessage renders one failed rule as client-facing text.
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String && fe.Param() == "1" {
			return "must not be empty"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "uuid":
		return "must be a UUID"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// ParseID parses raw as a UUID in any case, reporting failures against field.
func ParseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, &ValidationError{Fields: map[string]string{field: "is required"}}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ValidationError{Fields: map[string]string{field: "must be a UUID"}}
	}
	return id, nil
}
