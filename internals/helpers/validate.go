// file: internals/helpers/validate.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

// ValidationErrorMap flattens validator.v10 errors into field -> messages,
// shaped for JsonValidationError.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errs, ok := err.(validator.ValidationErrors); ok {
		ve = errs
	} else {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		out[field] = append(out[field], fe.Tag())
	}
	return out
}
