package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

// IsValidationError reports whether err came from struct tag validation.
func IsValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", field, "YYYY-MM-DD")
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":         "name",
		"Description":  "description",
		"Category":     "category",
		"Score":        "score",
		"Author":       "author",
		"Publications": "publications",
		"NumOfPages":   "num_of_pages",
		"DateWrited":   "date_writed",
		"Title":        "title",
		"TopBook":      "top_book",
		"Body":         "body",
		"BookID":       "book",
		"Status":       "status",
		"Username":     "username",
		"Email":        "email",
		"Password":     "password",
		"Cover":        "cover",
		"ID":           "id",
		"Q":            "q",
		"Page":         "page",
		"PageSize":     "page_size",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
