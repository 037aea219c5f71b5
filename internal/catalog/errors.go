package catalog

import (
	"errors"
	"fmt"
)

// Fatal load classes. A LoadError wraps exactly one of them.
var (
	ErrManifest  = errors.New("id manifest unavailable")
	ErrDataIndex = errors.New("data index unavailable")
)

// LoadError reports a fatal initialization failure.
type LoadError struct {
	Kind error
	URI  string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%v (%s)", e.Kind, e.URI)
	}
	return fmt.Sprintf("%v (%s): %v", e.Kind, e.URI, e.Err)
}

// Unwrap exposes both the fatal class and the underlying cause.
func (e *LoadError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := []error{e.Kind}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// FetchFailure records a tolerated partial load failure.
type FetchFailure struct {
	Kind string `json:"kind"`
	URI  string `json:"uri"`
	Err  string `json:"error"`
}

// StatusError is returned by HTTPSource for non-2xx responses.
type StatusError struct {
	URI        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URI, e.StatusCode)
}
