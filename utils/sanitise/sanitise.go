package sanitise

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
)

var (
	ErrSanitisation         = errors.New("failed sanitisation")
	ErrUnsupportedType      = errors.New("sanitisation type not supported")
	ErrUnstableSanitisation = errors.New("sanitisation unstable")
	ErrNonSettableString    = errors.New("non settable string")
)

const maxStabilisationRounds = 10

var policy = bluemonday.StrictPolicy()

// Stringlikes strips markup from every exported string reachable from obj,
// in place. Struct fields tagged `sanitise:"false"` are skipped. Maps are
// rebuilt rather than rewritten, so they are only supported as struct
// fields with string keys and values, not as the root object.
func Stringlikes[T any](obj T) (T, error) {
	value := deref(reflect.ValueOf(obj))
	if !value.IsValid() {
		return obj, nil
	}

	if value.Kind() == reflect.Map {
		return obj, errs.Wrap(ErrSanitisation, ErrUnsupportedType)
	}

	err := walk(value)
	if err != nil {
		return obj, errs.Wrap(ErrSanitisation, err)
	}

	return obj, nil
}

func walk(value reflect.Value) error {
	switch value.Kind() {
	case reflect.Struct:
		return walkStruct(value)
	case reflect.Slice, reflect.Array:
		return walkSlice(value)
	case reflect.Map:
		return rebuildMap(value)
	case reflect.String:
		return rewriteString(value)
	default:
		if isIgnoredKind(value.Kind()) {
			return nil
		}

		return ErrUnsupportedType
	}
}

func walkStruct(value reflect.Value) error {
	valueType := value.Type()

	for i := range value.NumField() {
		field := valueType.Field(i)
		if !field.IsExported() || optedOut(field) {
			continue
		}

		fieldValue := deref(value.Field(i))
		if !fieldValue.IsValid() {
			// nil pointer
			continue
		}

		err := walk(fieldValue)
		if err != nil {
			return err
		}
	}

	return nil
}

func walkSlice(value reflect.Value) error {
	for i := range value.Len() {
		element := deref(value.Index(i))
		if !element.IsValid() {
			continue
		}

		err := walk(element)
		if err != nil {
			return err
		}
	}

	return nil
}

// rebuildMap only handles string keys and values. Map entries are not
// addressable, so a cleaned copy replaces the original.
func rebuildMap(value reflect.Value) error {
	cleaned := reflect.MakeMap(value.Type())

	for _, key := range value.MapKeys() {
		entry := value.MapIndex(key)
		if key.Kind() != reflect.String || entry.Kind() != reflect.String {
			return ErrUnsupportedType
		}

		cleanedKey, err := sanitiseString(key.String())
		if err != nil {
			return err
		}

		cleanedEntry, err := sanitiseString(entry.String())
		if err != nil {
			return err
		}

		cleaned.SetMapIndex(reflect.ValueOf(cleanedKey), reflect.ValueOf(cleanedEntry))
	}

	value.Set(cleaned)

	return nil
}

func rewriteString(value reflect.Value) error {
	cleaned, err := sanitiseString(value.String())
	if err != nil {
		return err
	}

	if !value.CanSet() {
		return ErrNonSettableString
	}

	value.SetString(cleaned)

	return nil
}

// sanitiseString reapplies the policy until the output settles, so markup
// assembled from nested fragments cannot survive a single pass.
func sanitiseString(value string) (string, error) {
	for range maxStabilisationRounds {
		cleaned := policy.Sanitize(value)
		if cleaned == value {
			return cleaned, nil
		}

		value = cleaned
	}

	return "", ErrUnstableSanitisation
}

func optedOut(field reflect.StructField) bool {
	tag, ok := field.Tag.Lookup("sanitise")
	if !ok {
		return false
	}

	keep, err := strconv.ParseBool(tag)

	return err == nil && !keep
}

func isIgnoredKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	}

	return false
}

func deref(value reflect.Value) reflect.Value {
	for value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	return value
}
