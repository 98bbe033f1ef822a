package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = ConfigureValidator(validator.New())

// ConfigureValidator makes v read the same `binding` tags gin does and report
// fields by their JSON names.
func ConfigureValidator(v *validator.Validate) *validator.Validate {
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// InvalidFields wraps kind with the JSON names of the fields that failed.
func InvalidFields(kind, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", kind, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s", kind, strings.Join(fields, ", "))
}
