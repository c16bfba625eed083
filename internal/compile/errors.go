package compile

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or out-of-range request field. It is
// always raised before any clip resolution, probe, or engine interaction.
type ValidationError struct {
	// Field names the offending request field.
	Field string
	// Reason describes why the value was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ResolutionError reports a referenced clip that could not be located or
// read at plan-build time.
type ResolutionError struct {
	// Name is the filename as supplied in the request.
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve clip %q: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ProbeError reports a failed duration lookup. No partial plan is returned
// after a probe failure.
type ProbeError struct {
	// Source is the clip name whose duration lookup failed.
	Source string
	Err    error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %q: %v", e.Source, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// IsCompilationError reports whether err belongs to the compiler's failure
// taxonomy (validation, resolution, or probe). Engine failures are outside
// the compiler and never match.
func IsCompilationError(err error) bool {
	var ve *ValidationError
	var re *ResolutionError
	var pe *ProbeError
	return errors.As(err, &ve) || errors.As(err, &re) || errors.As(err, &pe)
}
