package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Init configures the validator behind Gin's binding. Field names in errors
// come from json tags. Safe to call more than once.
func Init() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("maxbytes", maxBytes)
		v.RegisterAlias("pwd", "min=6,maxbytes=72") // bcrypt rejects more than 72 bytes
		v.RegisterAlias("phone", "e164")
		v.RegisterAlias("username", "min=3,max=32")
	})
}

// maxBytes bounds the encoded length of a string, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// ToDetails converts binding errors into map[field]message for error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a valid E.164 phone number"
	case "uuid":
		return "must be a valid UUID"
	case "alphanum":
		return "must contain only letters and digits"
	case "oneof":
		return "must be one of [" + param + "]"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + param + " characters"
		}
		return "must be at most " + param
	case "maxbytes":
		return "must be at most " + param + " bytes"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.ActualTag(), param)
		}
		return "failed " + fe.ActualTag() + " validation"
	}
}
