package validator

import (
	"errors"
	"hotel/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"gt":          "{field} must be greater than {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be at most {param} characters",
		"min":         "{field} must be at least {param} characters",
		"email":       "{field} must be a valid email address",
		"staffemail":  "Invalid email format",
		"isodate":     "{field} must be an ISO-8601 date",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
	}
)

// toFailure turns validator errors into a 400. Absent required fields are
// reported together, in declaration order; any other rule reports the first
// violation.
func toFailure(err error) error {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return failure.BadRequest(err)
	}

	missing := []string{}

	for _, valErr := range valErrors {
		if valErr.Tag() == "required" {
			missing = append(missing, valErr.Field())
		}
	}

	if len(missing) > 0 {
		return failure.MissingFields(missing...)
	}

	return failure.BadRequestFromString(message(valErrors[0]))
}

func message(valErr val.FieldError) string {
	msg := messages[valErr.Tag()]
	if msg == "" {
		return valErr.Error()
	}

	msg = strings.ReplaceAll(msg, "{field}", valErr.Field())
	msg = strings.ReplaceAll(msg, "{param}", valErr.Param())

	return msg
}
