package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidation configures gin's binding layer: unknown JSON fields are
// rejected and validation errors report JSON field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					return fld.Name
				}
				return name
			})
		}
	})
}

// ValidationError converts a binding failure into a 400 AppError with per-field messages.
func ValidationError(code int, err error) *AppError {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
	case errors.As(err, &typeErr):
		fields[typeErr.Field] = fmt.Sprintf("must be of type %s", typeErr.Type.Kind())
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return Validation(code, "malformed JSON body", nil)
	case errors.Is(err, io.EOF):
		return Validation(code, "request body is required", nil)
	default:
		// encoding/json has no typed error for DisallowUnknownFields
		const prefix = `json: unknown field "`
		if msg := err.Error(); strings.HasPrefix(msg, prefix) {
			fields[strings.TrimSuffix(strings.TrimPrefix(msg, prefix), `"`)] = "is not allowed"
		} else {
			return Validation(code, "invalid request payload", nil)
		}
	}
	return Validation(code, "validation failed", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "required_without":
		return fmt.Sprintf("is required when %s is empty", strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// RegisterStructValidation adds a cross-field rule for the given request types.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(fn, types...)
	}
}
