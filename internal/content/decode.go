package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON names,
// so mismatch details read like the store's documents.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decode unmarshals raw into dest and validates the result. dest must be a
// pointer to a struct or to a slice of structs (or struct pointers).
func decode(v *validator.Validate, raw json.RawMessage, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ErrSchemaMismatch.Wrapping(err).WithDetails([]string{
				fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
			})
		}
		return ErrSchemaMismatch.Wrapping(err)
	}

	target := reflect.ValueOf(dest)
	for target.Kind() == reflect.Pointer {
		if target.IsNil() {
			return nil
		}
		target = target.Elem()
	}

	var problems []string
	switch target.Kind() {
	case reflect.Struct:
		problems = append(problems, validateOne(v, target, "")...)
	case reflect.Slice, reflect.Array:
		for i := 0; i < target.Len(); i++ {
			problems = append(problems, validateOne(v, target.Index(i), fmt.Sprintf("[%d].", i))...)
		}
	}

	if len(problems) > 0 {
		return ErrSchemaMismatch.WithDetails(problems)
	}
	return nil
}

func validateOne(v *validator.Validate, item reflect.Value, prefix string) []string {
	for item.Kind() == reflect.Pointer {
		if item.IsNil() {
			return []string{prefix + "<null>: unexpected null element"}
		}
		item = item.Elem()
	}
	if item.Kind() != reflect.Struct {
		return nil
	}

	err := v.Struct(item.Interface())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{prefix + err.Error()}
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s%s: failed %q", prefix, stripRoot(fe.Namespace()), fe.Tag()))
	}
	return problems
}

// stripRoot drops the leading struct type name from a validator namespace.
func stripRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
