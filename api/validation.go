package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/checkmarble/challenge-backend/models"
)

// setupValidator makes validation errors name the fields as clients send them.
func setupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldNameFromTag)
	}
}

func fieldNameFromTag(field reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
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

func adaptFieldValidationError(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s should be a date formatted as YYYY-MM-DD", fe.Field())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// bindingError turns a gin binding failure into a BadParameterError with one message per field.
func bindingError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, len(validationErrors))
		for i, fe := range validationErrors {
			messages[i] = adaptFieldValidationError(fe)
		}
		return errors.Wrap(models.BadParameterError, strings.Join(messages, ", "))
	}
	return errors.Wrap(models.BadParameterError, err.Error())
}
