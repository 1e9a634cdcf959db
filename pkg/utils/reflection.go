package utils

import (
	"errors"
	"reflect"
	"strings"
)

var ErrNoSuchMember = errors.New("no such member")

// Returns the value of an object member by name.
// If the member is a method it is assumed that it
// has no paramters and gets called to return the value.
// Dotted paths ("Metadata.Extensions") walk nested members.
func Member(path string, object any) (any, error) {
	current := object

	for _, name := range strings.Split(path, ".") {
		value, err := member(name, current)
		if err != nil {
			return nil, MakeError(err, "in '%v'", path)
		}

		current = value
	}

	return current, nil
}

func member(name string, object any) (any, error) {
	v := reflect.ValueOf(object)

	if !v.IsValid() {
		return nil, MakeError(ErrNoSuchMember, "cannot reference '%v' of a nil value", name)
	}

	if result := v.MethodByName(name); result.IsValid() && result.Type().NumIn() == 0 && result.Type().NumOut() > 0 {
		return result.Call(nil)[0].Interface(), nil
	}

	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, MakeError(ErrNoSuchMember, "cannot reference '%v' of a nil value", name)
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, MakeError(ErrNoSuchMember, "object is not a struct, cannot reference field '%v'", name)
	}

	if field, ok := v.Type().FieldByName(name); ok && field.IsExported() {
		return v.FieldByIndex(field.Index).Interface(), nil
	} else if result := v.MethodByName(name); result.IsValid() && result.Type().NumIn() == 0 && result.Type().NumOut() > 0 {
		return result.Call(nil)[0].Interface(), nil
	} else {
		return nil, MakeError(ErrNoSuchMember, "struct '%v' has no field or method named '%v'", v.Type().Name(), name)
	}
}

// Maps a sequence of objects into a sequence of values of a given member of each item of the input sequence
func MapMember[T any](path string, items []T) ([]any, error) {
	result := make([]any, len(items))

	for i, object := range items {
		value, err := Member(path, object)

		if err != nil {
			return nil, err
		}

		result[i] = value
	}

	return result, nil
}
