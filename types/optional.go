package types

import (
	"bytes"

	"github.com/infinitybotlist/eureka/jsonimpl"
)

// Optional tells apart a JSON field that was omitted, sent as null, or sent with a value.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true

	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}

	return jsonimpl.Unmarshal(b, &o.Value)
}

// Ptr returns the value when it is present and not null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}

	v := o.Value
	return &v
}
