package jsondiffpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factorized(t *testing.T, source, target string) []*Record {
	t.Helper()
	return Factorize(Generate(mustDecode(t, source), mustDecode(t, target)))
}

func TestFactorizeMoveAfterRemove(t *testing.T) {
	records := factorized(t, `[1,2,3]`, `[2,3,1]`)
	require.Len(t, records, 1)
	assert.Equal(t, DiffMove, records[0].Op())
	from, ok := records[0].From()
	require.True(t, ok)
	assert.Equal(t, "/0", from.String())
	assert.Equal(t, "/-", records[0].Path().String())
	requireJSON(t, `1`, records[0].Value())
}

func TestFactorizeMoveBeforeRemove(t *testing.T) {
	records := factorized(t, `[1,2,3,4]`, `[4,1,2,3]`)
	require.Len(t, records, 1)
	assert.Equal(t, DiffMove, records[0].Op())
	from, _ := records[0].From()
	assert.Equal(t, "/3", from.String())
	assert.Equal(t, "/0", records[0].Path().String())
}

func TestFactorizeUnpairedPassThrough(t *testing.T) {
	raw := Generate(mustDecode(t, `{"a":1,"b":[1]}`), mustDecode(t, `{"c":2,"b":[1,"x"]}`))
	want := copyRecords(raw)
	got := Factorize(raw)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "record %d: want %s got %s", i, want[i], got[i])
	}
}

func TestFactorizeBlockedByIntermediateRecord(t *testing.T) {
	records := factorized(t, `["a","b","c","d"]`, `["b","a","d","c"]`)
	require.Len(t, records, 4)
	for _, r := range records {
		assert.NotEqual(t, DiffMove, r.Op(), r.String())
	}
}

func TestFactorizeMoveIntoNestedMember(t *testing.T) {
	records := factorized(t, `{"a":{"k":1},"m":{}}`, `{"m":{"n":{"k":1}}}`)
	require.Len(t, records, 1)
	assert.Equal(t, DiffMove, records[0].Op())
	from, _ := records[0].From()
	assert.Equal(t, "/a", from.String())
	assert.Equal(t, "/m/n", records[0].Path().String())
}

func TestFactorizeCopy(t *testing.T) {
	records := factorized(t, `{}`, `{"a":{"k":[1]},"b":{"k":[1]},"c":{"k":[1]}}`)
	require.Len(t, records, 3)
	assert.Equal(t, DiffAdd, records[0].Op())
	for _, r := range records[1:] {
		assert.Equal(t, DiffCopy, r.Op())
		from, ok := r.From()
		require.True(t, ok)
		assert.Equal(t, "/a", from.String())
	}
}

func TestFactorizeCopyFromUnchangedSource(t *testing.T) {
	testCases := []struct {
		source, target string
		want           string
	}{
		{
			`{"a":{"k":1}}`, `{"a":{"k":1},"b":{"k":1}}`,
			`[{"op":"copy","from":"/a","path":"/b"}]`,
		},
		{
			`{"a":[1,2]}`, `{"a":[1,2],"b":[1,2]}`,
			`[{"op":"copy","from":"/a","path":"/b"}]`,
		},
		{
			`{"l":[{"k":1},{"k":2}]}`, `{"l":[{"k":1},{"k":2},{"k":2}]}`,
			`[{"op":"copy","from":"/l/1","path":"/l/-"}]`,
		},
		{
			`{"a":{"k":[1]},"b":{"k":[1]}}`, `{"a":{"k":[1]},"b":{"k":[1]},"c":{"k":[1]},"d":{"k":[1]}}`,
			`[{"op":"copy","from":"/a","path":"/c"},{"op":"copy","from":"/a","path":"/d"}]`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			source, target := mustDecode(t, tc.source), mustDecode(t, tc.target)
			patch := Diff(source, target)
			requireJSON(t, tc.want, patch)
			got, err := patch.ApplyValue(source)
			require.NoError(t, err)
			assert.True(t, Equivalent(target, got))
		})
	}
}

func TestFactorizeNoCopyFromChangedSource(t *testing.T) {
	testCases := []struct {
		source, target string
		want           string
	}{
		{
			`{"a":{"x":{"k":1}},"b":{}}`, `{"a":{"x":{"k":2}},"b":{"n":{"k":1}}}`,
			`[{"op":"replace","path":"/a/x/k","value":2},{"op":"add","path":"/b/n","value":{"k":1}}]`,
		},
		{
			`{"a":[0,{"k":1}],"b":{}}`, `{"a":[{"k":1}],"b":{"n":{"k":1}}}`,
			`[{"op":"remove","path":"/a/0"},{"op":"add","path":"/b/n","value":{"k":1}}]`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			requireJSON(t, tc.want, Diff(mustDecode(t, tc.source), mustDecode(t, tc.target)))
		})
	}
}

func TestFactorizeWithoutSourceKeepsAdds(t *testing.T) {
	source, target := mustDecode(t, `{"a":{"k":1}}`), mustDecode(t, `{"a":{"k":1},"b":{"k":1}}`)
	records := Factorize(Generate(source, target))
	require.Len(t, records, 1)
	assert.Equal(t, DiffAdd, records[0].Op())

	records = FactorizeFrom(source, Generate(source, target))
	require.Len(t, records, 1)
	assert.Equal(t, DiffCopy, records[0].Op())
}

func TestFactorizeNoCopyOfEmptyContainers(t *testing.T) {
	records := factorized(t, `{}`, `{"a":{},"b":{},"c":[],"d":[]}`)
	require.Len(t, records, 4)
	for _, r := range records {
		assert.Equal(t, DiffAdd, r.Op())
	}
}

func TestFactorizeNoCopyFromAppend(t *testing.T) {
	records := factorized(t, `{"a":[],"z":{}}`, `{"a":[{"k":1}],"z":{"n":{"k":1}}}`)
	require.Len(t, records, 2)
	assert.Equal(t, "/a/-", records[0].Path().String())
	assert.Equal(t, DiffAdd, records[1].Op())
	assert.Equal(t, "/z/n", records[1].Path().String())
}

func TestFactorizeApplyMatches(t *testing.T) {
	pairs := [][2]string{
		{`{"a":[1,2,3],"b":{"x":[4]}}`, `{"a":[3,1,2],"c":{"x":[4]}}`},
		{`[[1],[2],[3]]`, `[[3],[1],[2]]`},
		{`{"l":[{"id":1},{"id":2}],"m":[]}`, `{"l":[{"id":2}],"m":[{"id":1}]}`},
		{`[1,[2,3],4]`, `[[2,3],1,4,[2,3]]`},
	}
	for _, pair := range pairs {
		source, target := mustDecode(t, pair[0]), mustDecode(t, pair[1])
		patch := recordsToPatch(Factorize(Generate(source, target)))
		got, err := patch.ApplyValue(source)
		require.NoError(t, err, pair[0])
		assert.True(t, Equivalent(target, got), "%s -> %s", pair[0], pair[1])
	}
}

func TestShiftPast(t *testing.T) {
	testCases := []struct {
		p, slot string
		want    string
		ok      bool
	}{
		{"/a/3/x", "/a/1", "/a/2/x", true},
		{"/a/0/x", "/a/1", "/a/0/x", true},
		{"/a/1/x", "/a/1", "", false},
		{"/b/3", "/a/1", "/b/3", true},
		{"/a/3", "/a/-", "", false},
		{"/a", "/a/1", "/a", true},
		{"/4", "/0", "/3", true},
	}
	for _, tc := range testCases {
		got, ok := shiftPast(MustParsePointer(tc.p), MustParsePointer(tc.slot), -1)
		require.Equal(t, tc.ok, ok, "%s past %s", tc.p, tc.slot)
		if ok {
			assert.Equal(t, tc.want, got.String())
		}
	}
}

func TestTouches(t *testing.T) {
	p := MustParsePointer
	assert.True(t, touches(p("/a/b"), false, false, p("/a"), false), "inside anchor")
	assert.True(t, touches(p("/a"), false, false, p("/a/b"), false), "above anchor")
	assert.True(t, touches(p("/x/1"), false, true, p("/x/0"), true), "same array")
	assert.True(t, touches(p("/0"), true, true, p("/1/x"), false), "shifts an ancestor")
	assert.False(t, touches(p("/0"), false, true, p("/1/x"), false), "overwrites a sibling of an ancestor")
	assert.False(t, touches(p("/c"), true, false, p("/a/b"), false), "object sibling")
	assert.False(t, touches(p("/a/c"), true, false, p("/a/b"), false), "sibling member")
}

func TestRecordEqual(t *testing.T) {
	a := Generate(mustDecode(t, `[1,{"x":2}]`), mustDecode(t, `[{"x":3},1]`))
	b := Generate(mustDecode(t, `[1,{"x":2}]`), mustDecode(t, `[{"x":3},1]`))
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Equal(b[i]))
	}
	assert.False(t, a[0].Equal(nil))
	assert.True(t, (*Record)(nil).Equal(nil))
	if len(a) > 1 {
		assert.False(t, a[0].Equal(a[1]))
	}
}
