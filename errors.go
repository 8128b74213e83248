package infinity

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid exclusion rule, resolution, time
// range, or chart spec field. It is always detectable before any data access.
type ConfigurationError struct {
	// Spec is the index of the offending chart spec within its project, or -1
	// when the error is not tied to a particular spec.
	Spec int
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Spec >= 0 {
		return fmt.Sprintf("chart spec %d: %v", e.Spec, e.Err)
	}
	return e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// configErrorf creates a ConfigurationError not tied to a chart spec.
func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Spec: -1, Err: fmt.Errorf(format, args...)}
}

// specErrorf creates a ConfigurationError tied to the chart spec at index i.
func specErrorf(i int, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Spec: i, Err: fmt.Errorf(format, args...)}
}

// IsConfiguration reports whether err is, or wraps, a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// FetchError reports a provider or network failure while resolving a series.
// It is raised only by the series store, never by the core pipeline.
type FetchError struct {
	ID  AssetID
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.ID, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetch reports whether err is, or wraps, a FetchError.
func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
