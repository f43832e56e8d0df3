// Package validation wraps go-playground/validator for request payloads.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			return jsonName(f.Tag.Get("json"), f.Name)
		})
	})
	return instance
}

// Errors maps field names to the failed rule.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Struct validates v and returns Errors when a rule fails.
func Struct(v interface{}) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " items"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func jsonName(tag, fallback string) string {
	name := strings.SplitN(tag, ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fallback
	}
	return name
}
