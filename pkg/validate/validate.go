// Package validate runs struct-tag validation and reports failures as a
// map of JSON field name → human-readable message.
//
// Rules are the github.com/go-playground/validator/v10 tags. The ones with
// dedicated messages:
//
//	required            field must be present and non-zero (non-nil for pointers)
//	omitempty           skip the remaining rules when the value is empty
//	email               valid email address
//	min=N               string: min char length | number: min value | slice: min items
//	max=N               string: max char length | number: max value | slice: max items
//	len=N               string: exact length | slice: exact item count
//	gt=N / gte=N        number > N / number >= N
//	lt=N / lte=N        number < N / number <= N
//	oneof=a b c         value must be one of the listed items
//	unique              slice must not repeat a value
//	dive                apply the following rules to each slice element
//
// Example:
//
//	type Input struct {
//	    Name  string   `json:"customer_name" validate:"required,max=75"`
//	    Price *float64 `json:"price"         validate:"required,gte=0"`
//	    Items []int64  `json:"items"         validate:"required,min=1,unique,dive,gt=0"`
//	}
//
// Element failures are keyed by the slice name ("items") and the message
// names the offending position ("The items.1 must be greater than 0.").
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once   sync.Once
	engine *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		engine = validator.New()
		engine.RegisterTagNameFunc(jsonFieldName)
	})
	return engine
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Struct validates every field of v that carries a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	return collect(instance().Struct(v))
}

// Partial validates only the named fields of v (Go field names, as in
// "CustomerName"). Rules on fields not listed are skipped entirely, so a
// `required` field that is absent from a partial update does not fail.
func Partial(v interface{}, fields ...string) map[string]string {
	if len(fields) == 0 {
		return map[string]string{}
	}
	return collect(instance().StructPartial(v, fields...))
}

// ─── Translation ──────────────────────────────────────────────────────────────

func collect(err error) map[string]string {
	errs := make(map[string]string)
	if err == nil {
		return errs
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		errs["_schema"] = "Invalid input type."
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["_schema"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		key := fe.Field()
		if i := strings.IndexByte(key, '['); i != -1 {
			key = key[:i]
		}
		if _, seen := errs[key]; seen {
			continue // first failing rule per field
		}
		errs[key] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := displayName(fe.Field())
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		switch kindOf(fe) {
		case kindNumber:
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		case kindList:
			return fmt.Sprintf("The %s must have at least %s items.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	case "max":
		switch kindOf(fe) {
		case kindNumber:
			return fmt.Sprintf("The %s must not be greater than %s.", field, param)
		case kindList:
			return fmt.Sprintf("The %s must not have more than %s items.", field, param)
		}
		return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
	case "len":
		if kindOf(fe) == kindList {
			return fmt.Sprintf("The %s must contain %s items.", field, param)
		}
		return fmt.Sprintf("The %s must be exactly %s characters.", field, param)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	case "lt":
		return fmt.Sprintf("The %s must be less than %s.", field, param)
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "unique":
		return fmt.Sprintf("The %s must not contain duplicate values.", field)
	}
	return fmt.Sprintf("The %s is invalid.", field)
}

type valueKind int

const (
	kindText valueKind = iota
	kindNumber
	kindList
)

func kindOf(fe validator.FieldError) valueKind {
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.Slice, reflect.Array, reflect.Map:
		return kindList
	}
	return kindText
}

// displayName turns "items[1]" into "items.1".
func displayName(field string) string {
	if !strings.Contains(field, "[") {
		return field
	}
	r := strings.NewReplacer("[", ".", "]", "")
	return r.Replace(field)
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "-" {
		return ""
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}
