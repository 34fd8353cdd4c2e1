package jsondiffpatch

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidPatch is returned when a patch document is not an array of
// well-formed operation objects.
var ErrInvalidPatch = errors.New("invalid patch document")

// InvalidPathError reports a malformed JSON Pointer or an impossible
// pointer manipulation such as taking the parent of the root.
type InvalidPathError struct {
	Pointer string
	Reason  string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Pointer, e.Reason)
}

// Reasons carried by PatchError.
const (
	reasonNoSuchParent       = "no such parent"
	reasonParentNotContainer = "parent not container"
	reasonNotAnIndex         = "not an index"
	reasonNoSuchIndex        = "no such index"
	reasonNoSuchPath         = "no such path"
	reasonTestFailure        = "value test failure"
)

// PatchError is the failure of a single operation against a document.
type PatchError struct {
	Op     Op
	Path   string
	Reason string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.Path, e.Reason)
}

func patchError(op Op, p Pointer, reason string) error {
	return &PatchError{Op: op, Path: p.String(), Reason: reason}
}
