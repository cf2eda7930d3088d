package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a single scalar cell of a row.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func IntValue(n int) Value        { return Value{Kind: KindNumber, Num: float64(n)} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NullValue() Value            { return Value{Kind: KindNull} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value the way it is shown in a grid cell: numbers use
// the shortest round-trip form, null renders as "null".
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return FormatNumber(v.Num)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "null"
	}
}

// FormatNumber prints integers without a fractional part and switches to
// exponent notation only for very large or very small magnitudes. n is always
// finite: validated JSON cannot carry NaN or infinities.
func FormatNumber(n float64) string {
	abs := math.Abs(n)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'e', -1, 64)
	// 1e-07 -> 1e-7, 1e+21 -> 1e+21
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = NullValue()
	case string:
		*v = StringValue(t)
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	default:
		*v = StringValue(string(data))
	}
	return nil
}
