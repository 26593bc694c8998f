package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report errors under the json field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs validator tags over a request payload and returns a
// field level error map keyed by the JSON field name.
func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			name := fe.Field()
			switch fe.Tag() {
			case "required":
				fields[name] = "This field is required"
			case "email":
				fields[name] = "Must be a valid email address"
			case "gte", "min":
				fields[name] = "Value is below the allowed minimum"
			case "oneof":
				fields[name] = "Value must be one of: " + fe.Param()
			default:
				fields[name] = "Invalid value"
			}
		}
	} else {
		fields["_"] = err.Error()
	}
	return fields
}
