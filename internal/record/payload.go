// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package record

import (
	"fmt"
	"reflect"
)

// Payload is the argument of a log call: either a Scalar message or a Structured value.
type Payload interface {
	isPayload()
}

// Scalar is a plain text message.
type Scalar string

// Structured wraps a composite value (map, slice, array or struct).
type Structured struct {
	Value any
}

func (Scalar) isPayload()     {}
func (Structured) isPayload() {}

// PayloadOf classifies v. Maps, slices, arrays, structs and pointers to them are
// structured; errors, Stringers and every other value become a Scalar.
func PayloadOf(v any) Payload {
	switch value := v.(type) {
	case nil:
		return Scalar("")
	case Payload:
		return value
	case string:
		return Scalar(value)
	case []byte:
		return Scalar(string(value))
	case error:
		return Scalar(value.Error())
	case fmt.Stringer:
		return Scalar(value.String())
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Scalar(fmt.Sprint(v))
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return Structured{Value: v}
	default:
		return Scalar(fmt.Sprint(rv.Interface()))
	}
}
