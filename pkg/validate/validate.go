package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error carries one reason per offending field, keyed by the field's JSON
// name. It is the validation-failure result type across all services.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string { return "validation failed" }

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New()
	// report fields by their json names so payload keys match request keys
	vd.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return vd
}

// Struct validates s and returns one readable reason per failing field,
// keyed by json name. Nil means valid.
func Struct(s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(ve))
	for _, e := range ve {
		field := e.Field()
		if _, seen := out[field]; seen {
			continue // first failing rule wins
		}
		out[field] = message(e)
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "email":
		return "must be a valid email address"
	default:
		return e.Tag() + " validation failed"
	}
}
