package latents

import "fmt"

// InvalidParameterError reports a malformed or out-of-range dataset
// parameter, or an unrecognized enumerated mode. Validation is fail-fast:
// the first violation aborts the whole dataset call and no partial scene
// list is returned.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// SeedExhaustionError reports a scene count larger than the distinct-seed
// pool, which makes a draw without replacement impossible.
type SeedExhaustionError struct {
	Requested int
	Pool      int64
}

func (e *SeedExhaustionError) Error() string {
	return fmt.Sprintf("cannot draw %d distinct seeds from a pool of %d", e.Requested, e.Pool)
}
