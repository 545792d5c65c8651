package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "Missing required fields",
		"email":    "Invalid email address",
		"uuid":     "{field} must be a valid identifier",
		"max":      "{field} must be at most {param} characters",
		"oneof":    "{field} must be one of {param}",
		"hhmm":     "{field} must be a HH:MM time",
	}
)

// message picks the first failing rule, preferring missing fields so a request
// lacking several values reports the same error regardless of field order.
func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			if valErr.Tag() == "required" {
				return messages["required"]
			}
		}

		for _, valErr := range valErrors {
			errStr := messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
				errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

				return errStr
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
