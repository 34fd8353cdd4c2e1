package jsondiffpatch

import (
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// Equivalent reports whether two JSON values are the same value. Numbers are
// compared by numeric value, so 1, 1.0 and 1e0 are equivalent whatever Go
// type or literal carries them. Objects compare without regard to key order,
// arrays element by element.
func Equivalent(a, b any) bool {
	ka, kb := Kind(a), Kind(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBoolean:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindNumber:
		return numbersEqual(a, b)
	case KindArray:
		at, bt := a.([]any), b.([]any)
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equivalent(at[i], bt[i]) {
				return false
			}
		}
		return true
	case KindObject:
		at, bt := a.(map[string]any), b.(map[string]any)
		if len(at) != len(bt) {
			return false
		}
		for key, av := range at {
			bv, ok := bt[key]
			if !ok || !Equivalent(av, bv) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func numbersEqual(a, b any) bool {
	if an, ok := a.(json.Number); ok {
		if bn, ok := b.(json.Number); ok && an == bn {
			return true
		}
	}
	ra, okA := toRat(a)
	rb, okB := toRat(b)
	if okA && okB {
		return ra.Cmp(rb) == 0
	}
	// big.Rat rejects very large exponents; compare the digits instead.
	da, okA := toDecimal(a)
	db, okB := toDecimal(b)
	return okA && okB && da.equal(db)
}

// decimal is a number in the form ±0.digits × 10^exp with no leading or
// trailing zero digits. Zero has no digits.
type decimal struct {
	neg    bool
	digits string
	exp    *big.Int
}

func (d decimal) equal(o decimal) bool {
	if d.digits == "" || o.digits == "" {
		return d.digits == o.digits
	}
	return d.neg == o.neg && d.digits == o.digits && d.exp.Cmp(o.exp) == 0
}

func toDecimal(v any) (decimal, bool) {
	if n, ok := v.(json.Number); ok {
		return parseDecimal(string(n))
	}
	r, ok := toRat(v)
	if !ok {
		return decimal{}, false
	}
	// the denominator of a float or integer is a power of two, so this many
	// places is exact
	return parseDecimal(r.FloatString(r.Denom().BitLen()))
}

func parseDecimal(s string) (decimal, bool) {
	d := decimal{exp: new(big.Int)}
	if strings.HasPrefix(s, "-") {
		d.neg = true
		s = s[1:]
	}
	mantissa := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		if _, ok := d.exp.SetString(s[i+1:], 10); !ok {
			return decimal{}, false
		}
	}
	intPart, frac, _ := strings.Cut(mantissa, ".")
	digits := intPart + frac
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return decimal{}, false
	}
	d.exp.Add(d.exp, big.NewInt(int64(len(intPart))))
	trimmed := strings.TrimLeft(digits, "0")
	d.exp.Sub(d.exp, big.NewInt(int64(len(digits)-len(trimmed))))
	d.digits = strings.TrimRight(trimmed, "0")
	return d, true
}

// toRat converts a number to an exact rational. Floats convert exactly, so
// a float that is not an integer never equals an integer.
func toRat(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case json.Number:
		return new(big.Rat).SetString(string(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(n), true
	case float32:
		return toRat(float64(n))
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int8:
		return new(big.Rat).SetInt64(int64(n)), true
	case int16:
		return new(big.Rat).SetInt64(int64(n)), true
	case int32:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	case uint:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(uint64(n))), true
	case uint8:
		return new(big.Rat).SetInt64(int64(n)), true
	case uint16:
		return new(big.Rat).SetInt64(int64(n)), true
	case uint32:
		return new(big.Rat).SetInt64(int64(n)), true
	case uint64:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(n)), true
	}
	return nil, false
}

// Equal reports whether two JSON documents are equivalent. Invalid documents
// are never equal to anything.
func Equal(a, b []byte) bool {
	av, err := Decode(a)
	if err != nil {
		return false
	}
	bv, err := Decode(b)
	if err != nil {
		return false
	}
	return Equivalent(av, bv)
}
