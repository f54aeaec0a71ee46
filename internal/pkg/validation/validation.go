// Package validation turns binding failures into field keyed validation errors.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

var registerOnce sync.Once

// Register makes validator report json field names (sinta_id, author_ids.0) instead of
// Go struct field names. It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonTagName)
	})
}

func jsonTagName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// FromBindError converts a gin binding error. Validator failures become one message per
// field; malformed bodies are reported under the "body" key.
func FromBindError(err error) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{Message: "The given data was invalid."}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := fieldPath(fe)
			verr.Add(field, Message(field, fe.Tag(), fe.Param()))
		}
		return verr
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return verr.Add(typeErr.Field, fmt.Sprintf("The %s field must be of type %s.", humanize(typeErr.Field), typeErr.Type.String()))
	}

	return verr.Add("body", "The request body could not be parsed.")
}

// fieldPath drops the struct name prefix from the namespace, so
// "BookRequest.author_ids[0]" becomes "author_ids.0".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.NewReplacer("[", ".", "]", "").Replace(ns)
	return ns
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// Message renders the message for a failed rule.
func Message(field, tag, param string) string {
	name := humanize(field)
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "required_if":
		parts := strings.Fields(param)
		if len(parts) == 2 {
			return fmt.Sprintf("The %s field is required when %s is %s.", name, strings.ToLower(parts[0]), parts[1])
		}
		return fmt.Sprintf("The %s field is required.", name)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s.", name, param)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", name, param)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "datetime":
		return fmt.Sprintf("The %s field must match the format %s.", name, param)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}
