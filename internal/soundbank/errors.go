package soundbank

import "fmt"

// FormatError reports a malformed soundbank archive on import: a
// missing or unparseable manifest, or a manifest entry that references
// an asset not present in the container.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid soundbank %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid soundbank %s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }
