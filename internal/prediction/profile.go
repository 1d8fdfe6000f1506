package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected part of the request body.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError is returned by DecodeProfile when the body does not match
// the UserProfile shape.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return v
}

// DecodeProfile reads a single JSON object from r and validates it.
// Keys must match the json tags of UserProfile exactly; any other key is
// ignored. Shape problems come back as *ValidationError; failures to read r
// are returned wrapped as-is.
func DecodeProfile(r io.Reader) (UserProfile, error) {
	var raw json.RawMessage

	dec := json.NewDecoder(r)
	err := dec.Decode(&raw)

	var syntaxErr *json.SyntaxError
	switch {
	case err == nil:
		if dec.More() {
			return UserProfile{}, bodyError("JSON decode error: unexpected data after object", "json_invalid")
		}
	case errors.Is(err, io.EOF):
		return UserProfile{}, bodyError("Field required", "missing")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return UserProfile{}, bodyError("JSON decode error", "json_invalid")
	default:
		return UserProfile{}, fmt.Errorf("read profile: %w", err)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return UserProfile{}, bodyError("Input should be a valid dictionary", "model_type")
	}

	p, fields := decodeFields(obj)

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return UserProfile{}, fmt.Errorf("validate profile: %w", err)
		}
		for _, fe := range verrs {
			if hasField(fields, fe.Field()) {
				continue
			}
			fields = append(fields, FieldError{
				Loc:  []string{"body", fe.Field()},
				Msg:  messageForTag(fe.Tag()),
				Type: typeForTag(fe.Tag()),
			})
		}
	}

	if len(fields) > 0 {
		return UserProfile{}, &ValidationError{Fields: fields}
	}
	return p, nil
}

// decodeFields fills a UserProfile from obj, one field per exact json tag,
// and collects a FieldError for every value of the wrong type. A rejected
// field is left nil.
func decodeFields(obj map[string]json.RawMessage) (UserProfile, []FieldError) {
	var p UserProfile
	var fields []FieldError

	v := reflect.ValueOf(&p).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		value, ok := obj[name]
		if name == "" || !ok {
			continue
		}

		target := v.Field(i)
		if err := json.Unmarshal(value, target.Addr().Interface()); err != nil {
			target.Set(reflect.Zero(target.Type()))
			fields = append(fields, typeFieldError(name, target.Type()))
		}
	}
	return p, fields
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func bodyError(msg, typ string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Loc: []string{"body"}, Msg: msg, Type: typ}}}
}

func typeFieldError(name string, typ reflect.Type) FieldError {
	fe := FieldError{Loc: []string{"body", name}}

	kind := typ.Kind()
	if kind == reflect.Ptr {
		kind = typ.Elem().Kind()
	}
	switch kind {
	case reflect.Int, reflect.Int64, reflect.Int32:
		fe.Msg, fe.Type = "Input should be a valid integer", "int_type"
	case reflect.Bool:
		fe.Msg, fe.Type = "Input should be a valid boolean", "bool_type"
	case reflect.String:
		fe.Msg, fe.Type = "Input should be a valid string", "string_type"
	default:
		fe.Msg, fe.Type = "Input has the wrong type", "type_error"
	}
	return fe
}

func hasField(fields []FieldError, name string) bool {
	for _, f := range fields {
		if len(f.Loc) == 2 && f.Loc[1] == name {
			return true
		}
	}
	return false
}

func messageForTag(tag string) string {
	if tag == "required" {
		return "Field required"
	}
	return "Failed " + tag + " validation"
}

func typeForTag(tag string) string {
	if tag == "required" {
		return "missing"
	}
	return tag
}
