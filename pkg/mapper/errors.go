package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrAspectMismatch is returned when the surface and the image differ in aspect ratio
	ErrAspectMismatch = errors.New("surface aspect ratio does not match image")
	// ErrInvalidDimensions is returned for zero or negative sizes
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// ConfigError marks a caller misconfiguration. It is not recoverable:
// the caller has to fix the setup and construct again.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
