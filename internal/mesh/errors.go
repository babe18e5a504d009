package mesh

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is wrapped by every ConfigError.
var ErrInvalidDimensions = errors.New("invalid mesh dimensions")

// ConfigError reports a mesh parameter below its minimum. No buffers are produced
// when a builder returns one.
type ConfigError struct {
	Mesh  string // "grid" or "sphere"
	Field string
	Value int
	Min   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %d, need at least %d", e.Mesh, e.Field, e.Value, e.Min)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidDimensions
}

// CheckMin returns a ConfigError when value < min.
func CheckMin(mesh, field string, value, min int) error {
	if value < min {
		return &ConfigError{Mesh: mesh, Field: field, Value: value, Min: min}
	}
	return nil
}
