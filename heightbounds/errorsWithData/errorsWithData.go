// Package errorsWithData attaches a typed data struct to an error in a way
// that is compatible with error wrapping: the resulting error participates in
// [errors.Is]/[errors.As] chains through Unwrap, and the data can be recovered
// anywhere downstream via [GetDataFromError] without knowing the concrete
// error type, only the data type.
//
// The data struct communicates through the type system which diagnostic
// parameters are guaranteed to be present (an embedding index, an iteration
// count, ...). Errors created here are immutable; "modifying" the data means
// wrapping with a new error.
package errorsWithData

import (
	"errors"
)

// ErrorWithData is an error carrying a value of type T retrievable via GetData.
type ErrorWithData[T any] interface {
	error
	Unwrap() error
	GetData() T
}

type errorWithData[T any] struct {
	base error
	msg  string
	data T
}

func (e *errorWithData[T]) Error() string { return e.msg }
func (e *errorWithData[T]) Unwrap() error { return e.base }
func (e *errorWithData[T]) GetData() T    { return e.data }

// NewErrorWithData returns an error with the given message that wraps base
// (which may be nil) and carries data. An empty message defaults to base's message.
func NewErrorWithData[T any](base error, message string, data T) ErrorWithData[T] {
	if message == "" && base != nil {
		message = base.Error()
	}
	return &errorWithData[T]{base: base, msg: message, data: data}
}

// GetDataFromError walks err's wrapping chain and returns the first attached
// data value of type T. The second return value reports whether one was found.
func GetDataFromError[T any](err error) (data T, ok bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		if carrier, good := err.(interface{ GetData() T }); good {
			return carrier.GetData(), true
		}
	}
	return
}
