// Package validation checks request bodies against the creatable shape of
// each entity before anything reaches the store.
//
// Field rules come from struct tags on the model types:
//
//	present   field must be present and non-null (zero and "" are allowed)
//	enum      value must be one of the type's declared values
//	email     value must be an email address
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 1 << 20

// Error is a client input error with per-field detail.
type Error struct {
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// NewError builds an Error for a single field.
func NewError(field, message string) *Error {
	return &Error{
		Message: "validation failed",
		Fields:  map[string]string{field: message},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f)
	})

	v.RegisterValidation("present", func(validator.FieldLevel) bool { return true })
	v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(model.Enum)
		return ok && e.Valid()
	})

	return v
}

// Decode reads a JSON object from r into dst and validates it.
// dst must be a pointer to a struct.
func Decode(r io.Reader, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return &Error{Message: "reading request body: " + err.Error()}
	}
	if len(body) > MaxBodyBytes {
		return &Error{Message: "request body too large"}
	}
	return DecodeBytes(body, dst)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &Error{Message: "request body is required"}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return &Error{Message: "request body must be a JSON object"}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return decodeError(err)
	}

	fields := missingFields(raw, dst)
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating %T: %w", dst, err)
		}
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; seen {
				continue
			}
			fields[fe.Field()] = message(fe)
		}
	}

	if len(fields) > 0 {
		return &Error{Message: "validation failed", Fields: fields}
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return NewError(field, "must be "+kindName(typeErr.Type))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &Error{Message: "request body is not valid JSON"}
	}

	return &Error{Message: "invalid request body: " + err.Error()}
}

func kindName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	default:
		return "a valid " + t.String()
	}
}

// missingFields reports present fields that are absent or null.
func missingFields(raw map[string]json.RawMessage, dst any) map[string]string {
	fields := map[string]string{}

	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fields
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !mustBePresent(f.Tag.Get("validate")) {
			continue
		}
		name := jsonName(f)
		v, ok := raw[name]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			fields[name] = "is required"
		}
	}
	return fields
}

func mustBePresent(tag string) bool {
	for _, rule := range strings.Split(tag, ",") {
		if rule == "required" || rule == "present" {
			return true
		}
	}
	return false
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "enum":
		if e, ok := fe.Value().(model.Enum); ok {
			return "must be one of: " + strings.Join(e.Values(), ", ")
		}
		return "has an unsupported value"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
