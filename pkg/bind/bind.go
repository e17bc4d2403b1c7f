// Package bind decodes and validates an HTTP request body into a struct.
//
// The body must be a JSON object. Every key is matched against the json tags
// of dest: unknown keys are rejected, and each known key is decoded on its
// own so one mistyped value does not hide the others. Decode failures and
// validation failures come back together in one field → message map.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// SchemaKey holds errors that concern the body as a whole.
const SchemaKey = "_schema"

// ErrBodyTooLarge is returned when the body exceeds MAX_BODY_BYTES.
var ErrBodyTooLarge = errors.New("request body too large")

// Present is the set of JSON keys found in a request body.
type Present map[string]struct{}

// Has reports whether key was sent.
func (p Present) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// JSON decodes r.Body into dest and validates every rule on dest.
// Returns (errs, nil) when there are decode or validation failures.
// Returns (nil, err) when the body cannot be read or is too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	_, errs, err = decode(r, dest)
	if err != nil || len(errs) > 0 {
		return errs, err
	}
	return nilIfEmpty(validate.Struct(dest)), nil
}

// Partial decodes r.Body into dest like JSON but validates only the fields
// that were sent, and reports which keys were present so the caller can
// merge just those.
func Partial(r *http.Request, dest interface{}) (present Present, errs map[string]string, err error) {
	present, errs, err = decode(r, dest)
	if err != nil || len(errs) > 0 {
		return present, errs, err
	}

	fields := goFieldNames(dest, present)
	return present, nilIfEmpty(validate.Partial(dest, fields...)), nil
}

func decode(r *http.Request, dest interface{}) (Present, map[string]string, error) {
	limit := config.MaxBodyBytes()
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, nil, fmt.Errorf("bind: read body: %w", err)
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("bind: dest must be a pointer to a struct, got %T", dest)
	}
	target := rv.Elem()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || len(bytes.TrimSpace(body)) == 0 {
			return nil, map[string]string{SchemaKey: "The request body must be valid JSON."}, nil
		}
		return nil, map[string]string{SchemaKey: "Invalid input type."}, nil
	}

	fields := fieldsByJSONName(target.Type())
	present := make(Present, len(raw))
	errs := make(map[string]string)

	for key, value := range raw {
		present[key] = struct{}{}
		idx, ok := fields[key]
		if !ok {
			errs[key] = "Unknown field."
			continue
		}
		fv := target.Field(idx)
		if err := json.Unmarshal(value, fv.Addr().Interface()); err != nil {
			errs[key] = typeMessage(key, fv.Type(), value)
		}
	}

	return present, nilIfEmpty(errs), nil
}

func fieldsByJSONName(t reflect.Type) map[string]int {
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("json")
		if name == "-" {
			continue
		}
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "" {
			name = f.Name
		}
		out[name] = i
	}
	return out
}

func goFieldNames(dest interface{}, present Present) []string {
	t := reflect.TypeOf(dest).Elem()
	byJSON := fieldsByJSONName(t)
	names := make([]string, 0, len(present))
	for key := range present {
		if idx, ok := byJSON[key]; ok {
			names = append(names, t.Field(idx).Name)
		}
	}
	return names
}

func typeMessage(key string, t reflect.Type, value json.RawMessage) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", key)
	case reflect.Bool:
		return fmt.Sprintf("The %s field must be true or false.", key)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s field must be an integer.", key)
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("The %s field must be a number.", key)
	case reflect.Slice, reflect.Array:
		var elems []json.RawMessage
		if json.Unmarshal(value, &elems) != nil {
			return fmt.Sprintf("The %s field must be an array.", key)
		}
		for i, e := range elems {
			ev := reflect.New(t.Elem())
			if json.Unmarshal(e, ev.Interface()) != nil {
				return typeMessage(fmt.Sprintf("%s.%d", key, i), t.Elem(), e)
			}
		}
		return fmt.Sprintf("The %s field must be an array.", key)
	}
	return fmt.Sprintf("The %s field is invalid.", key)
}

func nilIfEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}
