package jsondiffpatch

import (
	"bytes"

	"github.com/agentflare-ai/jsonpointer"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Op is the kind of a patch operation.
type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
	Move    Op = "move"
	Copy    Op = "copy"
	Test    Op = "test"
)

// hasValue reports whether operations of this kind carry a value.
func (o Op) hasValue() bool {
	return o == Add || o == Replace || o == Test
}

// hasFrom reports whether operations of this kind carry a source pointer.
func (o Op) hasFrom() bool {
	return o == Move || o == Copy
}

func (o Op) valid() bool {
	switch o {
	case Add, Remove, Replace, Move, Copy, Test:
		return true
	}
	return false
}

// Operation is a single JSON Patch operation. Value is used by add, replace
// and test; From by move and copy.
type Operation struct {
	Op    Op
	Path  Pointer
	From  Pointer
	Value any
}

// Apply applies the operation to a copy of doc and returns the copy.
func (o Operation) Apply(doc any) (any, error) {
	return o.apply(deepCopy(doc))
}

// apply mutates doc, which the caller owns, and returns the new root.
func (o Operation) apply(doc any) (any, error) {
	switch o.Op {
	case Add:
		return addValue(doc, o.Op, o.Path, deepCopy(o.Value))
	case Remove:
		doc, _, err := removeValue(doc, o.Op, o.Path)
		return doc, err
	case Replace:
		if _, ok := o.Path.Resolve(doc); !ok {
			return nil, patchError(o.Op, o.Path, reasonNoSuchPath)
		}
		return setValue(doc, o.Path, deepCopy(o.Value))
	case Move:
		if _, ok := o.From.Resolve(doc); !ok {
			return nil, patchError(o.Op, o.From, reasonNoSuchPath)
		}
		if o.From.Equal(o.Path) {
			return doc, nil
		}
		doc, moved, err := removeValue(doc, o.Op, o.From)
		if err != nil {
			return nil, err
		}
		return addValue(doc, o.Op, o.Path, moved)
	case Copy:
		v, ok := o.From.Resolve(doc)
		if !ok {
			return nil, patchError(o.Op, o.From, reasonNoSuchPath)
		}
		return addValue(doc, o.Op, o.Path, deepCopy(v))
	case Test:
		v, ok := o.Path.Resolve(doc)
		if !ok {
			return nil, patchError(o.Op, o.Path, reasonNoSuchPath)
		}
		if !Equivalent(v, o.Value) {
			return nil, patchError(o.Op, o.Path, reasonTestFailure)
		}
		return doc, nil
	}
	return nil, errors.Wrapf(ErrInvalidPatch, "unsupported operation %q", o.Op)
}

// addValue inserts value at path. The parent is checked first so that each
// failure carries its own reason.
func addValue(doc any, op Op, path Pointer, value any) (any, error) {
	if path.IsRoot() {
		return value, nil
	}
	parentPath := path.parent()
	parent, ok := parentPath.Resolve(doc)
	if !ok {
		return nil, patchError(op, path, reasonNoSuchParent)
	}
	switch container := parent.(type) {
	case map[string]any:
		return setValue(doc, path, value)
	case []any:
		idx := len(container)
		if path.Last() != appendToken {
			i, ok := path.lastIndex()
			if !ok {
				return nil, patchError(op, path, reasonNotAnIndex)
			}
			if i > len(container) {
				return nil, patchError(op, path, reasonNoSuchIndex)
			}
			idx = i
		}
		updated := make([]any, 0, len(container)+1)
		updated = append(updated, container[:idx]...)
		updated = append(updated, value)
		updated = append(updated, container[idx:]...)
		return setValue(doc, parentPath, updated)
	}
	return nil, patchError(op, path, reasonParentNotContainer)
}

// removeValue detaches the value at path and returns it. Removing the whole
// document leaves null.
func removeValue(doc any, op Op, path Pointer) (any, any, error) {
	removed, ok := path.Resolve(doc)
	if !ok {
		return nil, nil, patchError(op, path, reasonNoSuchPath)
	}
	if path.IsRoot() {
		return nil, removed, nil
	}
	doc, err := jsonpointer.Remove(doc, path.ref())
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", op, path)
	}
	return doc, removed, nil
}

// setValue writes value at path, which must be the root, an existing
// location or a new object member.
func setValue(doc any, path Pointer, value any) (any, error) {
	if path.IsRoot() {
		return value, nil
	}
	doc, err := jsonpointer.Set(doc, path.ref(), value)
	if err != nil {
		return nil, errors.Wrapf(err, "set %s", path)
	}
	return doc, nil
}

// MarshalJSON writes the operation members in the order op, path, from,
// value.
func (o Operation) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"op":`)
	if err := writeJSON(&b, string(o.Op)); err != nil {
		return nil, err
	}
	b.WriteString(`,"path":`)
	if err := writeJSON(&b, o.Path.String()); err != nil {
		return nil, err
	}
	if o.Op.hasFrom() {
		b.WriteString(`,"from":`)
		if err := writeJSON(&b, o.From.String()); err != nil {
			return nil, err
		}
	}
	if o.Op.hasValue() {
		b.WriteString(`,"value":`)
		if err := writeJSON(&b, o.Value); err != nil {
			return nil, err
		}
	}
	b.WriteString("}")
	return b.Bytes(), nil
}

func writeJSON(b *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode operation")
	}
	b.Write(data)
	return nil
}

// UnmarshalJSON reads an operation object. Unknown members are ignored.
func (o *Operation) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	op, err := parseOperation(v)
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// JSON returns a patch operation Json representation
func (o Operation) JSON() string {
	b, _ := o.MarshalJSON()
	return string(b)
}

// Object returns the operation as a JSON object value.
func (o Operation) Object() map[string]any {
	m := map[string]any{
		"op":   string(o.Op),
		"path": o.Path.String(),
	}
	if o.Op.hasFrom() {
		m["from"] = o.From.String()
	}
	if o.Op.hasValue() {
		m["value"] = deepCopy(o.Value)
	}
	return m
}

func parseOperation(v any) (Operation, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Operation{}, errors.Wrap(ErrInvalidPatch, "operation is not an object")
	}
	name, ok := m["op"].(string)
	if !ok {
		return Operation{}, errors.Wrap(ErrInvalidPatch, `missing "op"`)
	}
	op := Operation{Op: Op(name)}
	if !op.Op.valid() {
		return Operation{}, errors.Wrapf(ErrInvalidPatch, "unsupported operation %q", name)
	}

	var err error
	if op.Path, err = pointerMember(m, "path"); err != nil {
		return Operation{}, err
	}
	if op.Op.hasFrom() {
		if op.From, err = pointerMember(m, "from"); err != nil {
			return Operation{}, err
		}
	}
	if op.Op.hasValue() {
		value, ok := m["value"]
		if !ok {
			return Operation{}, errors.Wrapf(ErrInvalidPatch, `%s: missing "value"`, name)
		}
		op.Value = deepCopy(value)
	}
	return op, nil
}

func pointerMember(m map[string]any, member string) (Pointer, error) {
	s, ok := m[member].(string)
	if !ok {
		return Pointer{}, errors.Wrapf(ErrInvalidPatch, "missing %q", member)
	}
	return ParsePointer(s)
}
