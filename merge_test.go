package jsondiffpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Examples from RFC 7386, appendix A.
func TestMergePatch(t *testing.T) {
	testCases := []struct {
		doc, patch, want string
	}{
		{`{"a":"b"}`, `{"a":"c"}`, `{"a":"c"}`},
		{`{"a":"b"}`, `{"b":"c"}`, `{"a":"b","b":"c"}`},
		{`{"a":"b"}`, `{"a":null}`, `{}`},
		{`{"a":"b","b":"c"}`, `{"a":null}`, `{"b":"c"}`},
		{`{"a":["b"]}`, `{"a":"c"}`, `{"a":"c"}`},
		{`{"a":"c"}`, `{"a":["b"]}`, `{"a":["b"]}`},
		{`{"a":{"b":"c"}}`, `{"a":{"b":"d","c":null}}`, `{"a":{"b":"d"}}`},
		{`{"a":[{"b":"c"}]}`, `{"a":[1]}`, `{"a":[1]}`},
		{`["a","b"]`, `["c","d"]`, `["c","d"]`},
		{`{"a":"b"}`, `["c"]`, `["c"]`},
		{`{"a":"foo"}`, `null`, `null`},
		{`{"a":"foo"}`, `"bar"`, `"bar"`},
		{`{"e":null}`, `{"a":1}`, `{"e":null,"a":1}`},
		{`[1,2]`, `{"a":"b","c":null}`, `{"a":"b"}`},
		{`{}`, `{"a":{"bb":{"ccc":null}}}`, `{"a":{"bb":{}}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.doc+" "+tc.patch, func(t *testing.T) {
			got, err := ApplyMergePatch([]byte(tc.doc), []byte(tc.patch))
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}

func TestMergePatchClearsNullsInArrays(t *testing.T) {
	got := MergePatch(mustDecode(t, `{}`), mustDecode(t, `{"a":[1,null,{"b":null,"c":2}]}`))
	requireJSON(t, `{"a":[1,{"c":2}]}`, got)
}

func TestMergePatchDoesNotMutateInput(t *testing.T) {
	doc := mustDecode(t, `{"a":{"b":1},"c":2}`)
	patch := mustDecode(t, `{"a":{"b":null,"d":[1]},"c":null}`)
	got := MergePatch(doc, patch)
	requireJSON(t, `{"a":{"d":[1]}}`, got)
	requireJSON(t, `{"a":{"b":1},"c":2}`, doc)
	requireJSON(t, `{"a":{"b":null,"d":[1]},"c":null}`, patch)
}

func TestApplyMergePatchInvalid(t *testing.T) {
	_, err := ApplyMergePatch([]byte(`{`), []byte(`{}`))
	assert.Error(t, err)
	_, err = ApplyMergePatch([]byte(`{}`), []byte(`{`))
	assert.Error(t, err)
}
