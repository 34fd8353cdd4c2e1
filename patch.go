package jsondiffpatch

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Patch is an ordered list of operations, applied first to last.
type Patch []Operation

// ParsePatch reads a patch from a decoded JSON array of operation objects.
func ParsePatch(doc any) (Patch, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, errors.Wrap(ErrInvalidPatch, "patch is not an array")
	}
	patch := make(Patch, 0, len(items))
	for i, item := range items {
		op, err := parseOperation(item)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %d", i)
		}
		patch = append(patch, op)
	}
	return patch, nil
}

// DecodePatch decodes a JSON Patch document.
func DecodePatch(data []byte) (Patch, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ParsePatch(doc)
}

// ApplyValue applies every operation in order to a copy of doc. The first
// failing operation aborts the patch; doc itself is never modified.
func (p Patch) ApplyValue(doc any) (any, error) {
	result := deepCopy(doc)
	for i, op := range p {
		var err error
		if result, err = op.apply(result); err != nil {
			return nil, errors.Wrapf(err, "operation %d", i)
		}
	}
	return result, nil
}

// Apply applies the patch to a JSON document.
func (p Patch) Apply(doc []byte) ([]byte, error) {
	v, err := Decode(doc)
	if err != nil {
		return nil, err
	}
	result, err := p.ApplyValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// Value returns the patch as a JSON array value.
func (p Patch) Value() []any {
	out := make([]any, 0, len(p))
	for _, op := range p {
		out = append(out, op.Object())
	}
	return out
}

// MarshalJSON encodes the patch; an empty patch is "[]".
func (p Patch) MarshalJSON() ([]byte, error) {
	ops := []Operation(p)
	if ops == nil {
		ops = []Operation{}
	}
	return json.Marshal(ops)
}

// UnmarshalJSON decodes a JSON Patch document into p.
func (p *Patch) UnmarshalJSON(data []byte) error {
	decoded, err := DecodePatch(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
