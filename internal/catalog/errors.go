package catalog

import (
	"errors"
	"fmt"
)

// Reason classifies why loading the catalog failed.
type Reason string

const (
	ReasonNetwork    Reason = "network"
	ReasonHTTPStatus Reason = "http-status"
	ReasonParse      Reason = "parse"
)

// ErrNoSources is returned when a loader has no candidates to try.
var ErrNoSources = errors.New("no catalog sources configured")

// LoadError describes the failure of the last candidate a loader tried.
type LoadError struct {
	Reason     Reason
	Source     string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	switch {
	case e.Reason == ReasonHTTPStatus:
		return fmt.Sprintf("catalog %s: %s returned status %d", e.Reason, e.Source, e.StatusCode)
	case e.Source == "":
		return fmt.Sprintf("catalog %s: %v", e.Reason, e.Err)
	default:
		return fmt.Sprintf("catalog %s: %s: %v", e.Reason, e.Source, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func asLoadError(err error, source string) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &LoadError{Reason: ReasonNetwork, Source: source, Err: err}
}
