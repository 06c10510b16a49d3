// Package optional holds the value type used for calculation outputs that
// are only defined when the preconditions of their formula hold.
//
// A Value is either defined (Of) or not applicable (NotApplicable) together
// with the reason the formula could not be applied. The zero Value is not
// applicable with an empty reason.
package optional

import (
	"encoding/json"
	"fmt"
)

// NA is the text printed in place of a value that is not applicable.
const NA = "N/A"

// Value is either a defined T or a not-applicable marker with a reason.
type Value[T any] struct {
	v      T
	ok     bool
	reason string
}

// Of returns a defined value.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// NotApplicable returns an undefined value carrying the given reason.
func NotApplicable[T any](reason string) Value[T] {
	return Value[T]{reason: reason}
}

// Get returns the value and whether it is defined.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

// Defined reports whether the value is defined.
func (o Value[T]) Defined() bool {
	return o.ok
}

// MustGet returns the value or panics when it is not defined.
func (o Value[T]) MustGet() T {
	if !o.ok {
		panic("optional: value not applicable: " + o.reason)
	}
	return o.v
}

// Reason returns why the value is not applicable. It is empty for defined values.
func (o Value[T]) Reason() string {
	if o.ok {
		return ""
	}
	return o.reason
}

// Map applies f to a defined value. Not-applicable values keep their reason.
func Map[T, U any](o Value[T], f func(T) U) Value[U] {
	if !o.ok {
		return NotApplicable[U](o.reason)
	}
	return Of(f(o.v))
}

// Text renders the value with the given fmt verb, or NA when undefined.
func (o Value[T]) Text(verb string) string {
	if !o.ok {
		return NA
	}
	return fmt.Sprintf(verb, o.v)
}

func (o Value[T]) String() string {
	return o.Text("%v")
}

// MarshalJSON encodes a defined value as itself and an undefined one as null.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as not applicable.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = NotApplicable[T]("")
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Of(v)
	return nil
}

// MarshalYAML encodes a defined value as itself and an undefined one as null.
func (o Value[T]) MarshalYAML() (interface{}, error) {
	if !o.ok {
		return nil, nil
	}
	return o.v, nil
}
