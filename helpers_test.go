package jsondiffpatch

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func mustDecode(t testing.TB, s string) any {
	t.Helper()
	v, err := Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func mustDecodePatch(t testing.TB, s string) Patch {
	t.Helper()
	p, err := DecodePatch([]byte(s))
	require.NoError(t, err)
	return p
}

// requireJSON compares a value against a JSON literal by equivalence.
func requireJSON(t testing.TB, want string, got any) {
	t.Helper()
	b, err := json.Marshal(got)
	require.NoError(t, err)
	require.True(t, Equal([]byte(want), b), "expected %s but got %s", want, string(b))
}
