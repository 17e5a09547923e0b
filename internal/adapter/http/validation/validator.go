package validation

import (
	"reflect"
	"strings"

	"fieldservice_quotes/internal/domain/entities"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their json names and knows
// the quote status enum.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(jsonFieldName)

	// registration only fails on an empty tag or a nil func
	_ = v.RegisterValidation("quote_status", func(fl validatorv10.FieldLevel) bool {
		return entities.QuoteStatus(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).IsValid()
	})
	return v
}

// jsonFieldName names a field after its json tag, or its form tag for query
// structs.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
	}
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
