package document

import "fmt"

// LookupFailure reports a net or footprint the document does not define.
// It is fatal: later steps assume the document is in the expected pre-state.
type LookupFailure struct {
	Kind string // "net" or "footprint"
	Name string
	Err  error
}

func (e *LookupFailure) Error() string {
	return fmt.Sprintf("lookup %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *LookupFailure) Unwrap() error {
	return e.Err
}
