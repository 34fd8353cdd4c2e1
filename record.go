package jsondiffpatch

import (
	"fmt"
)

// DiffOp is the kind of edit a Record describes. Test operations are never
// produced by a diff.
type DiffOp int

const (
	DiffAdd DiffOp = iota
	DiffRemove
	DiffReplace
	DiffMove
	DiffCopy
)

func (o DiffOp) Op() Op {
	switch o {
	case DiffAdd:
		return Add
	case DiffRemove:
		return Remove
	case DiffReplace:
		return Replace
	case DiffMove:
		return Move
	case DiffCopy:
		return Copy
	}
	return Op(fmt.Sprintf("diffop(%d)", int(o)))
}

func (o DiffOp) String() string {
	return string(o.Op())
}

// Record is one pending edit produced by Generate. Object edits carry their
// final path. Array edits carry the array's path and a (source, target)
// cursor pair; the target cursor becomes the index token when the record is
// serialized, or '-' when it is negative.
type Record struct {
	op    DiffOp
	path  Pointer
	value any

	inArray     bool
	arrayPath   Pointer
	sourceIndex int
	targetIndex int

	// parentArray is true when the location written by the record is an
	// array slot.
	parentArray bool

	from    Pointer
	hasFrom bool
}

func simpleRecord(op DiffOp, path Pointer, value any) *Record {
	return &Record{op: op, path: path, value: deepCopy(value)}
}

func arrayRecord(op DiffOp, arrayPath Pointer, sourceIndex, targetIndex int, value any) *Record {
	return &Record{
		op:          op,
		value:       deepCopy(value),
		inArray:     true,
		arrayPath:   arrayPath,
		sourceIndex: sourceIndex,
		targetIndex: targetIndex,
		parentArray: true,
	}
}

// arrayRemove removes the source element under the source cursor, which sits
// at the target cursor position of the array being rewritten.
func arrayRemove(base Pointer, source, target *cursor) *Record {
	return arrayRecord(DiffRemove, base, source.index, target.index, source.elem())
}

// arrayInsert inserts the target element under the target cursor.
func arrayInsert(base Pointer, source, target *cursor) *Record {
	return arrayRecord(DiffAdd, base, source.index, target.index, target.elem())
}

// arrayAppend appends a value at the end of the array.
func arrayAppend(base Pointer, value any) *Record {
	return arrayRecord(DiffAdd, base, -1, -1, value)
}

// tailRemove removes a trailing source element once the whole target has
// been laid out, which is always at removeIndex, the target's length.
func tailRemove(base Pointer, index, removeIndex int, value any) *Record {
	return arrayRecord(DiffRemove, base, index, removeIndex, value)
}

func (r *Record) Op() DiffOp {
	return r.op
}

// Path is the location the record writes.
func (r *Record) Path() Pointer {
	if !r.inArray {
		return r.path
	}
	if r.targetIndex < 0 {
		return r.arrayPath.Append(appendToken)
	}
	return r.arrayPath.AppendIndex(r.targetIndex)
}

// From is the source location of a move or copy.
func (r *Record) From() (Pointer, bool) {
	return r.from, r.hasFrom
}

// Value returns a copy of the record's payload.
func (r *Record) Value() any {
	return deepCopy(r.value)
}

// Equal reports whether two records describe the same edit.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.op == o.op &&
		r.path.Equal(o.path) &&
		r.inArray == o.inArray &&
		r.arrayPath.Equal(o.arrayPath) &&
		r.sourceIndex == o.sourceIndex &&
		r.targetIndex == o.targetIndex &&
		r.parentArray == o.parentArray &&
		r.hasFrom == o.hasFrom &&
		r.from.Equal(o.from) &&
		Equivalent(r.value, o.value)
}

// Operation converts the record into a patch operation.
func (r *Record) Operation() Operation {
	op := Operation{Op: r.op.Op(), Path: r.Path()}
	switch r.op {
	case DiffMove, DiffCopy:
		op.From = r.from
	case DiffAdd, DiffReplace:
		op.Value = deepCopy(r.value)
	}
	return op
}

func (r *Record) String() string {
	s := fmt.Sprintf("{op=%s path=%s", r.op, r.Path())
	if r.inArray {
		s += fmt.Sprintf(" source=%d target=%d", r.sourceIndex, r.targetIndex)
	}
	if r.hasFrom {
		s += fmt.Sprintf(" from=%s", r.from)
	}
	return s + fmt.Sprintf(" value=%v}", r.value)
}

func copyRecords(records []*Record) []*Record {
	out := make([]*Record, len(records))
	for i, r := range records {
		c := *r
		out[i] = &c
	}
	return out
}
