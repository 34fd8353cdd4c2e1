package jsondiffpatch

import (
	"bytes"

	"github.com/pkg/errors"
)

// NewPatch creates a patch operation from its string form. from is only
// read by move and copy.
func NewPatch(op Op, path, from string, value any) (Operation, error) {
	if !op.valid() {
		return Operation{}, errors.Wrapf(ErrInvalidPatch, "unsupported operation %q", op)
	}
	p, err := ParsePointer(path)
	if err != nil {
		return Operation{}, err
	}
	o := Operation{Op: op, Path: p}
	if op.hasFrom() {
		if o.From, err = ParsePointer(from); err != nil {
			return Operation{}, err
		}
	}
	if op.hasValue() {
		o.Value = deepCopy(value)
	}
	return o, nil
}

// CreatePatch creates a patch as specified in http://jsonpatch.com/
//
// 'a' is original, 'b' is the modified document. Both are to be given as json encoded content.
// The function will return an array of Operations
//
// An error will be returned if any of the two documents are invalid.
func CreatePatch(a, b []byte, opts ...DiffOption) ([]Operation, error) {
	original, err := Decode(a)
	if err != nil {
		return nil, errors.Wrap(err, "original document")
	}
	if bytes.Equal(a, b) {
		return []Operation{}, nil
	}
	modified, err := Decode(b)
	if err != nil {
		return nil, errors.Wrap(err, "modified document")
	}
	return Diff(original, modified, opts...), nil
}
