package rules

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"mercator-hq/shipquote/pkg/config"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator. Field names in errors follow the
// json tags so they match the keys operators write in the rules file.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks a decoded rules document. All problems are collected into a
// single config.ValidationError.
func Validate(doc *Document, strict bool) error {
	if doc == nil {
		return config.ValidationError{Errors: []config.FieldError{{Field: "rules", Message: "document is empty"}}}
	}

	var errs []config.FieldError

	if err := getValidator().Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate rules: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, config.FieldError{
				Field:   fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
	}

	if strict {
		for _, key := range DeliveryKeys {
			if _, ok := doc.DeliveryTimes[key]; !ok {
				errs = append(errs, config.FieldError{
					Field:   "delivery_times." + key,
					Message: "delivery time is required in strict mode",
				})
			}
		}
	}

	if len(errs) > 0 {
		return config.ValidationError{Errors: errs}
	}
	return nil
}

// fieldPath drops the root struct name from the validator namespace,
// e.g. "Document.pricing.base_price" becomes "pricing.base_price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return "value must not be empty"
		}
		return "section is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("unknown delivery key %q, expected one of %s", fe.Value(), strings.Join(DeliveryKeys, ", "))
	case "len", "alpha", "uppercase":
		return fmt.Sprintf("must be a three-letter uppercase currency code, got %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
