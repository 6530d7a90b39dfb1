package domain

import (
	"errors"
	"fmt"
)

var (
	ErrStoreNotFound     = errors.New("embedding store not found")
	ErrCorruptStore      = errors.New("corrupt embedding store")
	ErrInvalidTopK       = errors.New("invalid top-k")
	ErrModelUnavailable  = errors.New("model unavailable")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrInvalidInput      = errors.New("invalid input")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
