package jsondiffpatch

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MergePatch applies an RFC 7386 merge patch to a copy of doc. An object
// patch removes the members it sets to null and merges the others; any other
// patch replaces the document. Nulls never survive into inserted values.
func MergePatch(doc, patch any) any {
	return mergeValue(deepCopy(doc), patch)
}

func mergeValue(doc, patch any) any {
	members, ok := patch.(map[string]any)
	if !ok {
		return clearNulls(patch)
	}
	target, ok := doc.(map[string]any)
	if !ok {
		target = map[string]any{}
	}
	for key, value := range members {
		if value == nil {
			delete(target, key)
			continue
		}
		target[key] = mergeValue(target[key], value)
	}
	return target
}

// clearNulls returns a copy of v without null array elements or null
// object members, at any depth.
func clearNulls(v any) any {
	switch n := v.(type) {
	case []any:
		out := make([]any, 0, len(n))
		for _, elem := range n {
			if elem != nil {
				out = append(out, clearNulls(elem))
			}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for key, value := range n {
			if value != nil {
				out[key] = clearNulls(value)
			}
		}
		return out
	}
	return v
}

// ApplyMergePatch applies a merge patch document to a JSON document.
func ApplyMergePatch(doc, patch []byte) ([]byte, error) {
	d, err := Decode(doc)
	if err != nil {
		return nil, errors.Wrap(err, "document")
	}
	p, err := Decode(patch)
	if err != nil {
		return nil, errors.Wrap(err, "merge patch")
	}
	return json.Marshal(MergePatch(d, p))
}
