package jsondiffpatch

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
	"github.com/huandu/go-clone"
	"github.com/pkg/errors"
)

// NodeKind classifies a JSON value.
type NodeKind int

const (
	KindInvalid NodeKind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"invalid", "null", "boolean", "number", "string", "array", "object"}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// Kind returns the JSON kind of v. Values are the Go types produced by
// decoding JSON into an interface{}, plus any Go number type.
func Kind(v any) NodeKind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	}
	return KindInvalid
}

func isContainer(v any) bool {
	k := Kind(v)
	return k == KindArray || k == KindObject
}

// containerSize is the number of members or elements of a container, 0 for
// scalars.
func containerSize(v any) int {
	switch n := v.(type) {
	case []any:
		return len(n)
	case map[string]any:
		return len(n)
	}
	return 0
}

// deepCopy returns a copy of v that shares no memory with it.
func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	return clone.Clone(v)
}

// Decode parses a JSON document, keeping numbers as json.Number so their
// literal form survives a round trip.
func Decode(data []byte) (any, error) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var v any
	if err := d.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	var extra any
	if err := d.Decode(&extra); err != io.EOF {
		return nil, errors.New("decode json: trailing data after value")
	}
	return v, nil
}
