package jsondiffpatch

import (
	"math"
	"strconv"
	"strings"

	"github.com/agentflare-ai/jsonpointer"
)

// From http://tools.ietf.org/html/rfc6901#section-4 :
//
// Evaluation of each reference token begins by decoding any escaped
// character sequence.  This is performed by first transforming any
// occurrence of the sequence '~1' to '/', and then transforming any
// occurrence of the sequence '~0' to '~'.
var rfc6901Encoder = strings.NewReplacer("~", "~0", "/", "~1")

// appendToken is the array token meaning "one past the last element".
const appendToken = "-"

// Pointer is an immutable JSON Pointer. The zero value points at the whole
// document.
type Pointer struct {
	tokens jsonpointer.Pointer
}

// Root returns the pointer to the whole document.
func Root() Pointer {
	return Pointer{}
}

// ParsePointer parses the RFC 6901 string form of a pointer.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return Pointer{}, &InvalidPathError{Pointer: s, Reason: "must start with '/'"}
	}
	p, err := jsonpointer.New(s)
	if err != nil {
		return Pointer{}, &InvalidPathError{Pointer: s, Reason: err.Error()}
	}
	return Pointer{tokens: p}, nil
}

// MustParsePointer is like ParsePointer but panics on malformed input.
func MustParsePointer(s string) Pointer {
	p, err := ParsePointer(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Append returns a new pointer with token added at the end.
func (p Pointer) Append(token string) Pointer {
	tokens := make(jsonpointer.Pointer, len(p.tokens), len(p.tokens)+1)
	copy(tokens, p.tokens)
	return Pointer{tokens: append(tokens, single(token)...)}
}

// single is the one-token pointer holding the raw token.
func single(token string) jsonpointer.Pointer {
	p, _ := jsonpointer.New("/" + rfc6901Encoder.Replace(token))
	return p
}

// AppendIndex appends an array index token.
func (p Pointer) AppendIndex(i int) Pointer {
	return p.Append(strconv.Itoa(i))
}

// Parent returns p without its last token.
func (p Pointer) Parent() (Pointer, error) {
	if len(p.tokens) == 0 {
		return Pointer{}, &InvalidPathError{Pointer: "", Reason: "root has no parent"}
	}
	return Pointer{tokens: p.tokens[:len(p.tokens)-1:len(p.tokens)-1]}, nil
}

// parent is Parent for callers that already know p is not the root.
func (p Pointer) parent() Pointer {
	parent, _ := p.Parent()
	return parent
}

// Last returns the final raw token, or "" for the root.
func (p Pointer) Last() string {
	if len(p.tokens) == 0 {
		return ""
	}
	return string(p.tokens[len(p.tokens)-1])
}

// Len returns the number of reference tokens.
func (p Pointer) Len() int {
	return len(p.tokens)
}

// IsRoot reports whether p points at the whole document.
func (p Pointer) IsRoot() bool {
	return len(p.tokens) == 0
}

// Tokens returns a copy of the raw (unescaped) reference tokens.
func (p Pointer) Tokens() []string {
	tokens := make([]string, 0, len(p.tokens))
	for _, tok := range p.tokens {
		tokens = append(tokens, string(tok))
	}
	return tokens
}

// withToken returns a copy of p whose i-th token is replaced.
func (p Pointer) withToken(i int, token string) Pointer {
	tokens := make(jsonpointer.Pointer, len(p.tokens))
	copy(tokens, p.tokens)
	tokens[i] = single(token)[0]
	return Pointer{tokens: tokens}
}

// Equal reports whether p and o hold the same tokens.
func (p Pointer) Equal(o Pointer) bool {
	if len(p.tokens) != len(o.tokens) {
		return false
	}
	for i := range p.tokens {
		if p.tokens[i] != o.tokens[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is p itself or one of its ancestors.
func (p Pointer) HasPrefix(prefix Pointer) bool {
	if len(prefix.tokens) > len(p.tokens) {
		return false
	}
	for i := range prefix.tokens {
		if p.tokens[i] != prefix.tokens[i] {
			return false
		}
	}
	return true
}

// String returns the escaped RFC 6901 form, "" for the root.
func (p Pointer) String() string {
	var b strings.Builder
	for _, tok := range p.tokens {
		b.WriteByte('/')
		b.WriteString(rfc6901Encoder.Replace(string(tok)))
	}
	return b.String()
}

// ref is the form handed to the jsonpointer lookups.
func (p Pointer) ref() string {
	return p.tokens.String()
}

// MarshalText lets pointers serialize as their string form.
func (p Pointer) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the string form of a pointer.
func (p *Pointer) UnmarshalText(text []byte) error {
	parsed, err := ParsePointer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Resolve looks the pointer up in doc. The boolean is false, the "missing"
// result, when a token names nothing: an absent key, an index out of range,
// a malformed index, '-', or a step into a scalar.
func (p Pointer) Resolve(doc any) (any, bool) {
	if p.IsRoot() {
		return doc, true
	}
	v, err := jsonpointer.Get(doc, p.ref())
	if err != nil {
		return nil, false
	}
	return v, true
}

// index parses the i-th token as an array index.
func (p Pointer) index(i int) (int, bool) {
	n, err := jsonpointer.ParseArrayIndex(p.tokens[i])
	if err != nil || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// lastIndex parses the final token as an array index.
func (p Pointer) lastIndex() (int, bool) {
	if p.IsRoot() {
		return 0, false
	}
	return p.index(len(p.tokens) - 1)
}

// indexLike reports whether the i-th token could address an array slot.
func (p Pointer) indexLike(i int) bool {
	if string(p.tokens[i]) == appendToken {
		return true
	}
	_, ok := p.index(i)
	return ok
}
