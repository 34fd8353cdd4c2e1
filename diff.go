package jsondiffpatch

import (
	"sort"
)

// DiffConfig holds the parameters of a diff.
type DiffConfig struct {
	// Factorize merges removals and additions of equivalent values into
	// moves, and repeated additions into copies. Enabled by default.
	Factorize bool
	// Provide a non-nil stats pointer & Diff will populate it
	Stats *Stats
}

// DiffOption adjusts a DiffConfig. Zero or more can be passed to Diff.
type DiffOption func(cfg *DiffConfig)

// OptionFactorize turns factorization on or off.
func OptionFactorize(enabled bool) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Factorize = enabled
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Stats = st
	}
}

// Stats counts the work done by a diff.
type Stats struct {
	Records  int `json:"records"` // raw records before factorization
	Adds     int `json:"adds,omitempty"`
	Removes  int `json:"removes,omitempty"`
	Replaces int `json:"replaces,omitempty"`
	Moves    int `json:"moves,omitempty"`
	Copies   int `json:"copies,omitempty"`
}

// Operations is the number of operations in the produced patch.
func (s Stats) Operations() int {
	return s.Adds + s.Removes + s.Replaces + s.Moves + s.Copies
}

func (s *Stats) count(records []*Record) {
	for _, r := range records {
		switch r.op {
		case DiffAdd:
			s.Adds++
		case DiffRemove:
			s.Removes++
		case DiffReplace:
			s.Replaces++
		case DiffMove:
			s.Moves++
		case DiffCopy:
			s.Copies++
		}
	}
}

// Diff computes the patch that turns source into target. Applying the
// result to source always yields a value equivalent to target.
func Diff(source, target any, opts ...DiffOption) Patch {
	cfg := &DiffConfig{Factorize: true}
	for _, opt := range opts {
		opt(cfg)
	}

	records := Generate(source, target)
	if cfg.Stats != nil {
		cfg.Stats.Records = len(records)
	}
	if cfg.Factorize {
		records = factorizeVerified(source, target, records)
	}
	if cfg.Stats != nil {
		cfg.Stats.count(records)
	}
	return recordsToPatch(records)
}

// ComputeDiff returns the patch from source to target as a JSON array of
// operation objects.
func ComputeDiff(source, target any) any {
	return Diff(source, target).Value()
}

func recordsToPatch(records []*Record) Patch {
	patch := make(Patch, 0, len(records))
	for _, r := range records {
		patch = append(patch, r.Operation())
	}
	return patch
}

// factorizeVerified factorizes records and keeps the result only if it still
// turns source into target.
func factorizeVerified(source, target any, records []*Record) []*Record {
	raw := copyRecords(records)
	factored := FactorizeFrom(source, records)
	merged := len(factored) != len(raw)
	for _, r := range factored {
		if r.op == DiffMove || r.op == DiffCopy {
			merged = true
			break
		}
	}
	if !merged {
		return factored
	}
	got, err := recordsToPatch(factored).ApplyValue(source)
	if err != nil || !Equivalent(got, target) {
		return raw
	}
	return factored
}

// Generate walks source and target in parallel and returns the raw edits,
// before factorization. Object members are visited in key order; for each
// object, additions come first, then removals, then the edits inside shared
// members.
func Generate(source, target any) []*Record {
	g := &generator{}
	g.diff(Root(), source, target)
	return g.records
}

type generator struct {
	records []*Record
}

func (g *generator) emit(r *Record) {
	g.records = append(g.records, r)
}

func (g *generator) diff(path Pointer, source, target any) {
	if Equivalent(source, target) {
		return
	}
	sourceKind, targetKind := Kind(source), Kind(target)
	if sourceKind != targetKind || !isContainer(source) {
		g.emit(simpleRecord(DiffReplace, path, target))
		return
	}
	if sourceKind == KindObject {
		g.objects(path, source.(map[string]any), target.(map[string]any))
		return
	}
	g.arrays(path, source.([]any), target.([]any))
}

func (g *generator) objects(path Pointer, source, target map[string]any) {
	for _, key := range sortedKeys(target) {
		if _, ok := source[key]; !ok {
			g.emit(simpleRecord(DiffAdd, path.Append(key), target[key]))
		}
	}
	for _, key := range sortedKeys(source) {
		if _, ok := target[key]; !ok {
			g.emit(simpleRecord(DiffRemove, path.Append(key), source[key]))
		}
	}
	for _, key := range sortedKeys(source) {
		if tv, ok := target[key]; ok {
			g.diff(path.Append(key), source[key], tv)
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cursor walks an array front to back.
type cursor struct {
	elems []any
	index int
}

func (c *cursor) empty() bool {
	return c.index >= len(c.elems)
}

func (c *cursor) elem() any {
	return c.elems[c.index]
}

func (c *cursor) shift() {
	c.index++
}

// arrays aligns both arrays on their LCS. While records are emitted the
// array being rewritten always reads target[:t] followed by source[s:],
// where s and t are the source and target cursors, so every edit at the
// current position addresses index t.
func (g *generator) arrays(path Pointer, source, target []any) {
	lcs := &cursor{elems: LCS(source, target)}
	src := &cursor{elems: source}
	dst := &cursor{elems: target}

	g.preLCS(path, lcs, src, dst)
	g.inLCS(path, lcs, src, dst)
	g.postLCS(path, src, dst)
}

// preLCS advances both arrays up to the first LCS element.
func (g *generator) preLCS(path Pointer, lcs, src, dst *cursor) {
	if lcs.empty() {
		return
	}
	sentinel := lcs.elem()
	for !src.empty() && !dst.empty() {
		srcMatch := Equivalent(sentinel, src.elem())
		dstMatch := Equivalent(sentinel, dst.elem())
		switch {
		case srcMatch && dstMatch:
			return
		case !srcMatch && !dstMatch:
			// Neither side has reached the sentinel; both cursors sit at
			// the same index here.
			g.diff(path.AppendIndex(dst.index), src.elem(), dst.elem())
			src.shift()
			dst.shift()
		case !srcMatch:
			g.emit(arrayRemove(path, src, dst))
			src.shift()
		default:
			g.emit(arrayInsert(path, src, dst))
			dst.shift()
		}
	}
}

// inLCS consumes the LCS. As long as it is not exhausted both arrays still
// hold an element equivalent to its head.
func (g *generator) inLCS(path Pointer, lcs, src, dst *cursor) {
	for !lcs.empty() && !src.empty() && !dst.empty() {
		head := lcs.elem()
		if !Equivalent(src.elem(), head) {
			g.emit(arrayRemove(path, src, dst))
			src.shift()
			continue
		}
		if Equivalent(dst.elem(), head) {
			src.shift()
			lcs.shift()
		} else {
			g.emit(arrayInsert(path, src, dst))
		}
		dst.shift()
	}
}

// postLCS pairs up what is left, then appends the rest of the target or
// trims the rest of the source. Only one of the two can have elements left.
func (g *generator) postLCS(path Pointer, src, dst *cursor) {
	for !src.empty() && !dst.empty() {
		g.diff(path.AppendIndex(dst.index), src.elem(), dst.elem())
		src.shift()
		dst.shift()
	}
	for ; !dst.empty(); dst.shift() {
		g.emit(arrayAppend(path, dst.elem()))
	}
	for ; !src.empty(); src.shift() {
		g.emit(tailRemove(path, src.index, len(dst.elems), src.elem()))
	}
}
