package models

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Probe failure kinds. Both are handled the same way: the probe's fields
// stay absent and the run continues.
var (
	ErrProbeUnavailable = errors.New("unavailable")
	ErrProbeTimeout     = errors.New("timed out")
)

// ProbeError is a failed probe with its kind and underlying cause
type ProbeError struct {
	Probe string
	Kind  error
	Cause error
}

func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s probe %v: %v", e.Probe, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s probe %v", e.Probe, e.Kind)
}

func (e *ProbeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewProbeError builds a ProbeError of an explicit kind
func NewProbeError(probe string, kind, cause error) *ProbeError {
	return &ProbeError{Probe: probe, Kind: kind, Cause: cause}
}

// ClassifyProbeError wraps err as a ProbeError for probe. Deadlines and
// network timeouts become ErrProbeTimeout, everything else ErrProbeUnavailable.
// An existing ProbeError is returned as is.
func ClassifyProbeError(probe string, err error) *ProbeError {
	if err == nil {
		return nil
	}
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe
	}
	return NewProbeError(probe, classify(err), err)
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrProbeTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrProbeTimeout
	}
	return ErrProbeUnavailable
}
