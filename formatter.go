package retree

import (
	"errors"
	"fmt"
)

// Formatter converts a table value to a string.
type Formatter[T any] interface {
	// Format returns the string representation of value
	// or an error wrapping errors.ErrUnsupported
	// if the formatter does not support the value.
	Format(value T) (string, error)
}

// FormatterFunc implements Formatter for a function.
type FormatterFunc[T any] func(value T) (string, error)

func (f FormatterFunc[T]) Format(value T) (string, error) {
	return f(value)
}

// SprintFormatter formats any value using fmt.Sprint.
// It never returns an error.
type SprintFormatter[T any] struct{}

func (SprintFormatter[T]) Format(value T) (string, error) {
	return fmt.Sprint(value), nil
}

// PrintfFormatter formats values with fmt.Sprintf
// using the underlying string as format.
type PrintfFormatter[T any] string

func (format PrintfFormatter[T]) Format(value T) (string, error) {
	return fmt.Sprintf(string(format), value), nil
}

// UnsupportedFormatter always returns errors.ErrUnsupported.
type UnsupportedFormatter[T any] struct{}

func (UnsupportedFormatter[T]) Format(T) (string, error) {
	return "", errors.ErrUnsupported
}

// FormatterChain tries every formatter in order and returns
// the first result that is not errors.ErrUnsupported.
// If all formatters are unsupported, fmt.Sprint is used.
type FormatterChain[T any] []Formatter[T]

func (chain FormatterChain[T]) Format(value T) (string, error) {
	for _, f := range chain {
		str, err := f.Format(value)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, err
		}
	}
	return fmt.Sprint(value), nil
}
