package config

import (
	"encoding/json"
)

// Option holds an attribute value that may or may not have been supplied.
// The zero value is None, so a struct of Options starts with every
// attribute absent.
type Option[T any] struct {
	value T
	set   bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, set: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and whether one was supplied.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSome reports whether a value was supplied.
func (o Option[T]) IsSome() bool {
	return o.set
}

// MarshalJSON encodes an absent Option as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON treats an explicit null the same as an omitted key.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// UnmarshalYAML follows the same null handling as UnmarshalJSON.
func (o *Option[T]) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v *T
	if err := unmarshal(&v); err != nil {
		return err
	}
	if v == nil {
		*o = Option[T]{}
		return nil
	}
	*o = Some(*v)
	return nil
}
