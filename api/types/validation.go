package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// fieldMessages overrides the generic wording for a field and tag, keyed
// "field.tag" with the JSON field name
var fieldMessages = map[string]string{
	"name.required":    "Name is required",
	"name.min":         "Name is required",
	"email.required":   "Valid email is required",
	"email.email":      "Valid email is required",
	"subject.required": "Subject is required",
	"subject.min":      "Subject is required",
	"message.required": "Message must be at least 20 characters",
	"message.min":      "Message must be at least 20 characters",
}

var registerTagName sync.Once

// UseJSONFieldNames makes validation errors report JSON field names. It is
// safe to call more than once.
func UseJSONFieldNames() {
	registerTagName.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// ValidationMessage turns a binding error into the field at fault and a
// readable message about the first failing rule
func ValidationMessage(err error) (string, string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		if msg, ok := fieldMessages[field+"."+fe.Tag()]; ok {
			return field, msg
		}
		return field, describe(fe)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String())
	}

	return "", "Invalid request body"
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
}
