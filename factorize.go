package jsondiffpatch

import (
	"strconv"
)

// Factorize rewrites raw records into a shorter equivalent list: a removal
// and an addition of equivalent values become one move, and an addition of
// a non-empty container already added earlier becomes a copy of it. Records
// are changed in place; the returned slice may be shorter.
//
// A rewrite is only made when every record between the two merged ones
// still addresses the document it was computed against, so the result
// applies exactly like the input.
func Factorize(records []*Record) []*Record {
	return FactorizeFrom(nil, records)
}

// FactorizeFrom is Factorize for records generated against source. Values
// of source that are still in place when an addition runs are also copied
// from, ahead of earlier additions.
func FactorizeFrom(source any, records []*Record) []*Record {
	f := &factorizer{records: records}
	f.moves()
	f.copies(source)
	return f.records
}

type factorizer struct {
	records []*Record
}

// copySource is a location an addition may copy from while no record from
// index after onwards has disturbed it.
type copySource struct {
	path    Pointer
	value   any
	inArray bool
	after   int
}

func (f *factorizer) drop(i int) {
	f.records = append(f.records[:i], f.records[i+1:]...)
}

// moves pairs each addition with the earliest removal of an equivalent value
// that can be merged with it.
func (f *factorizer) moves() {
	for i := 0; i < len(f.records); i++ {
		add := f.records[i]
		if add.op != DiffAdd {
			continue
		}
		for j, rm := range f.records {
			if rm.op != DiffRemove || !Equivalent(rm.value, add.value) {
				continue
			}
			if j < i {
				move, ok := f.moveAfterRemove(j, i)
				if !ok {
					continue
				}
				f.records[i] = move
				f.drop(j)
			} else {
				move, ok := f.moveBeforeRemove(i, j)
				if !ok {
					continue
				}
				f.records[j] = move
				f.drop(i)
			}
			i--
			break
		}
	}
}

// moveAfterRemove merges removal j into a later addition i. The move takes
// the addition's place; until then the removed value lingers at its
// original location.
func (f *factorizer) moveAfterRemove(j, i int) (*Record, bool) {
	rm, add := f.records[j], f.records[i]
	from, path := rm.Path(), add.Path()
	if path.HasPrefix(from) && !path.Equal(from) {
		return nil, false
	}
	if f.disturbed(j+1, i, from, rm.parentArray) {
		return nil, false
	}
	return newMove(from, path, add), true
}

// moveBeforeRemove merges an addition i into a later removal j. The move
// takes the removal's place; until then the added value is missing, so the
// removal's location and the destination are re-indexed for its absence.
func (f *factorizer) moveBeforeRemove(i, j int) (*Record, bool) {
	add, rm := f.records[i], f.records[j]
	path, from := add.Path(), rm.Path()
	if from.HasPrefix(path) {
		return nil, false
	}
	if f.disturbed(i+1, j, path, add.parentArray) {
		return nil, false
	}

	realFrom := from
	if add.parentArray {
		var ok bool
		if realFrom, ok = shiftPast(from, path, -1); !ok {
			return nil, false
		}
	}
	realPath := path
	if rm.parentArray {
		var ok bool
		if realPath, ok = shiftPast(path, from, -1); !ok {
			return nil, false
		}
	}
	if realPath.HasPrefix(realFrom) && !realPath.Equal(realFrom) {
		return nil, false
	}
	return newMove(realFrom, realPath, add), true
}

func newMove(from, path Pointer, add *Record) *Record {
	return &Record{
		op:          DiffMove,
		path:        path,
		value:       add.value,
		parentArray: add.parentArray,
		from:        from,
		hasFrom:     true,
	}
}

// shiftPast re-indexes p for a change of one element at slot, an array
// slot: if p runs through the same array at a later index, that index moves
// by delta. The result is false when p cannot be re-indexed: it runs
// through slot itself, or slot is the append position.
func shiftPast(p, slot Pointer, delta int) (Pointer, bool) {
	array := slot.parent()
	depth := array.Len()
	if p.Len() <= depth || !p.HasPrefix(array) {
		return p, true
	}
	at, ok := slot.lastIndex()
	if !ok {
		return p, false
	}
	idx, ok := p.index(depth)
	if !ok || idx == at {
		return p, false
	}
	if idx > at {
		return p.withToken(depth, strconv.Itoa(idx+delta)), true
	}
	return p, true
}

// copies turns additions of non-empty containers into copies of an
// equivalent value that is in place at that point: first a location of
// source in document order, then an earlier addition.
func (f *factorizer) copies(source any) {
	var sources []copySource
	if f.copyable() {
		sources = sourceLocations(Root(), source, false, sources)
	}
	for i, r := range f.records {
		if r.op != DiffAdd || containerSize(r.value) == 0 {
			continue
		}
		copied := false
		for _, src := range sources {
			if !Equivalent(src.value, r.value) {
				continue
			}
			if f.disturbed(src.after, i, src.path, src.inArray) {
				continue
			}
			r.op = DiffCopy
			r.from = src.path
			r.hasFrom = true
			copied = true
			break
		}
		// an append has no concrete location to copy from
		if !copied && !(r.inArray && r.targetIndex < 0) {
			sources = append(sources, copySource{path: r.Path(), value: r.value, inArray: r.parentArray, after: i + 1})
		}
	}
}

// copyable reports whether any addition could become a copy.
func (f *factorizer) copyable() bool {
	for _, r := range f.records {
		if r.op == DiffAdd && containerSize(r.value) > 0 {
			return true
		}
	}
	return false
}

// sourceLocations lists the non-empty containers below path, parents before
// children, object members in key order.
func sourceLocations(path Pointer, v any, inArray bool, out []copySource) []copySource {
	if containerSize(v) == 0 {
		return out
	}
	if !path.IsRoot() {
		out = append(out, copySource{path: path, value: v, inArray: inArray})
	}
	switch n := v.(type) {
	case map[string]any:
		for _, key := range sortedKeys(n) {
			out = sourceLocations(path.Append(key), n[key], false, out)
		}
	case []any:
		for i, elem := range n {
			out = sourceLocations(path.AppendIndex(i), elem, true, out)
		}
	}
	return out
}

// disturbed reports whether any record in [lo, hi) depends on what is at
// anchor, or moves it.
func (f *factorizer) disturbed(lo, hi int, anchor Pointer, anchorInArray bool) bool {
	if anchor.IsRoot() {
		return true
	}
	for _, r := range f.records[lo:hi] {
		if touches(r.Path(), r.op != DiffReplace, r.parentArray, anchor, anchorInArray) {
			return true
		}
		// a copy only reads its source
		if r.op == DiffMove && touches(r.from, true, false, anchor, anchorInArray) {
			return true
		}
	}
	return false
}

// touches reports whether an access at q interferes with anchor. q
// interferes when it lies inside anchor or above it, when it lies anywhere
// in anchor's array, or when it inserts or removes a sibling of one of
// anchor's ancestors that may be an array slot. structural is set when q is
// inserted or removed rather than read or overwritten.
func touches(q Pointer, structural, qInArray bool, anchor Pointer, anchorInArray bool) bool {
	if q.HasPrefix(anchor) || anchor.HasPrefix(q) {
		return true
	}
	parent := anchor.parent()
	if anchorInArray && q.HasPrefix(parent) {
		return true
	}
	if structural && !q.IsRoot() {
		qp := q.parent()
		if qp.Len() < parent.Len() && anchor.HasPrefix(qp) && (qInArray || q.indexLike(q.Len()-1)) {
			return true
		}
	}
	return false
}
