package parser

import (
	"fmt"
	"math"
)

// ScalarValue is the small set of scalar kinds FuncParamValue can carry.
// A real engine's scalar type is richer; spec.md 4.2 only requires enough
// width to support the as_i64/as_f64/as_decimal128/as_string coercions.
type ScalarValue struct {
	kind scalarKind
	s    string
	i    int64
	u    uint64
	f64  float64
	f32  float32
	dec  Decimal128
}

type scalarKind int

const (
	scalarString scalarKind = iota
	scalarI8
	scalarI16
	scalarI32
	scalarI64
	scalarU8
	scalarU16
	scalarU32
	scalarU64
	scalarF32
	scalarF64
	scalarDecimal128
	scalarBool
)

// Decimal128 is a minimal fixed-point decimal: unscaled value and scale,
// matching the shape real columnar engines (and Arrow) use for DECIMAL128.
type Decimal128 struct {
	Unscaled int64
	Scale    int32
}

func ScalarFromString(s string) ScalarValue  { return ScalarValue{kind: scalarString, s: s} }
func ScalarFromI64(v int64) ScalarValue      { return ScalarValue{kind: scalarI64, i: v} }
func ScalarFromI32(v int32) ScalarValue      { return ScalarValue{kind: scalarI32, i: int64(v)} }
func ScalarFromI16(v int16) ScalarValue      { return ScalarValue{kind: scalarI16, i: int64(v)} }
func ScalarFromI8(v int8) ScalarValue        { return ScalarValue{kind: scalarI8, i: int64(v)} }
func ScalarFromU64(v uint64) ScalarValue     { return ScalarValue{kind: scalarU64, u: v} }
func ScalarFromU32(v uint32) ScalarValue     { return ScalarValue{kind: scalarU32, u: uint64(v)} }
func ScalarFromU16(v uint16) ScalarValue     { return ScalarValue{kind: scalarU16, u: uint64(v)} }
func ScalarFromU8(v uint8) ScalarValue       { return ScalarValue{kind: scalarU8, u: uint64(v)} }
func ScalarFromF64(v float64) ScalarValue    { return ScalarValue{kind: scalarF64, f64: v} }
func ScalarFromF32(v float32) ScalarValue    { return ScalarValue{kind: scalarF32, f32: v} }
func ScalarFromDecimal(d Decimal128) ScalarValue {
	return ScalarValue{kind: scalarDecimal128, dec: d}
}

// FuncParamValue is the tagged variant from spec.md 3: Ident(string),
// Scalar(ScalarValue), Array(sequence<FuncParamValue>). Array(Array(...))
// is permitted.
type FuncParamValue struct {
	ident  *string
	scalar *ScalarValue
	array  []FuncParamValue
}

func FuncParamIdent(s string) FuncParamValue         { return FuncParamValue{ident: &s} }
func FuncParamScalar(v ScalarValue) FuncParamValue   { return FuncParamValue{scalar: &v} }
func FuncParamArray(vs []FuncParamValue) FuncParamValue {
	return FuncParamValue{array: vs}
}

func (v FuncParamValue) IsIdent() bool { return v.ident != nil }
func (v FuncParamValue) IsScalar() bool { return v.scalar != nil }
func (v FuncParamValue) IsArray() bool  { return v.array != nil }

// InvalidParamValue is spec.md 7's `InvalidParamValue{param, expected}`.
type InvalidParamValue struct {
	Param    string
	Expected string
}

func (e *InvalidParamValue) Error() string {
	return fmt.Sprintf("invalid value for %q: expected %s", e.Param, e.Expected)
}

// IsValidString reports whether AsString would succeed.
func (v FuncParamValue) IsValidString() bool {
	return v.ident != nil || (v.scalar != nil && v.scalar.kind == scalarString)
}

// AsString extracts a string. Total for any value where IsValidString is
// true, per spec.md 4.2's invariant: T::is_valid(v) == true implies
// T::extract(v) cannot panic.
func (v FuncParamValue) AsString(param string) (string, error) {
	if v.ident != nil {
		return *v.ident, nil
	}
	if v.scalar != nil && v.scalar.kind == scalarString {
		return v.scalar.s, nil
	}
	return "", &InvalidParamValue{Param: param, Expected: "string"}
}

// IsValidI64 reports whether AsI64 would succeed: any signed/unsigned
// 8/16/32/64-bit integer scalar.
func (v FuncParamValue) IsValidI64() bool {
	if v.scalar == nil {
		return false
	}
	switch v.scalar.kind {
	case scalarI8, scalarI16, scalarI32, scalarI64, scalarU8, scalarU16, scalarU32, scalarU64:
		return true
	default:
		return false
	}
}

// AsI64 widens any integer scalar to int64.
//
// Design note (spec.md 9, Open Question): UInt64 values above
// math.MaxInt64 are NOT overflow-checked here; they wrap around via the
// plain Go int64 conversion, matching one of the two choices the spec
// leaves open ("TODO: Handle overflow?" in the original). We pick
// wrap-around over a checked conversion to keep AsI64 infallible whenever
// IsValidI64 is true, which is the invariant spec.md 4.2 requires; a
// checked variant would have to either panic (forbidden) or change AsI64's
// signature to report overflow separately.
func (v FuncParamValue) AsI64(param string) (int64, error) {
	if !v.IsValidI64() {
		return 0, &InvalidParamValue{Param: param, Expected: "integer"}
	}
	switch v.scalar.kind {
	case scalarI8, scalarI16, scalarI32, scalarI64:
		return v.scalar.i, nil
	case scalarU8, scalarU16, scalarU32, scalarU64:
		return int64(v.scalar.u), nil
	default:
		return 0, &InvalidParamValue{Param: param, Expected: "integer"}
	}
}

// IsValidF64 reports whether AsF64 would succeed: any integer width plus
// f32/f64.
func (v FuncParamValue) IsValidF64() bool {
	if v.scalar == nil {
		return false
	}
	switch v.scalar.kind {
	case scalarI8, scalarI16, scalarI32, scalarI64, scalarU8, scalarU16, scalarU32, scalarU64, scalarF32, scalarF64:
		return true
	default:
		return false
	}
}

func (v FuncParamValue) AsF64(param string) (float64, error) {
	if !v.IsValidF64() {
		return 0, &InvalidParamValue{Param: param, Expected: "float"}
	}
	switch v.scalar.kind {
	case scalarI8, scalarI16, scalarI32, scalarI64:
		return float64(v.scalar.i), nil
	case scalarU8, scalarU16, scalarU32, scalarU64:
		return float64(v.scalar.u), nil
	case scalarF32:
		return float64(v.scalar.f32), nil
	case scalarF64:
		return v.scalar.f64, nil
	default:
		return 0, &InvalidParamValue{Param: param, Expected: "float"}
	}
}

// IsValidDecimal128 reports whether AsDecimal128 would succeed: integers,
// Decimal128 itself, and floats whose magnitude fits an int64.
func (v FuncParamValue) IsValidDecimal128() bool {
	if v.IsValidI64() || (v.scalar != nil && v.scalar.kind == scalarDecimal128) {
		return true
	}
	if v.IsValidF64() {
		f, _ := v.AsF64("")
		return !(math.Abs(f) > math.MaxInt64)
	}
	return false
}

// AsDecimal128 converts to a fixed-point Decimal128, reporting overflow
// when a float magnitude cannot be represented in an int64 unscaled value
// at scale 0 (spec.md 4.2: "reports conversion overflow").
func (v FuncParamValue) AsDecimal128(param string) (Decimal128, error) {
	if v.scalar != nil && v.scalar.kind == scalarDecimal128 {
		return v.scalar.dec, nil
	}
	if v.IsValidI64() {
		i, _ := v.AsI64(param)
		return Decimal128{Unscaled: i, Scale: 0}, nil
	}
	if v.IsValidF64() {
		f, _ := v.AsF64(param)
		if math.Abs(f) > math.MaxInt64 {
			return Decimal128{}, &InvalidParamValue{Param: param, Expected: "decimal (overflow)"}
		}
		return Decimal128{Unscaled: int64(f), Scale: 0}, nil
	}
	return Decimal128{}, &InvalidParamValue{Param: param, Expected: "decimal"}
}

// IsValidIdent reports whether AsIdent would succeed.
func (v FuncParamValue) IsValidIdent() bool { return v.ident != nil }

func (v FuncParamValue) AsIdent(param string) (string, error) {
	if v.ident == nil {
		return "", &InvalidParamValue{Param: param, Expected: "identifier"}
	}
	return *v.ident, nil
}

// IsValidArray reports whether this value is an Array all of whose
// elements satisfy elemValid.
func (v FuncParamValue) IsValidArray(elemValid func(FuncParamValue) bool) bool {
	if v.array == nil {
		return false
	}
	for _, e := range v.array {
		if !elemValid(e) {
			return false
		}
	}
	return true
}

// AsStringVec extracts []string from an Array of string-valid elements.
func (v FuncParamValue) AsStringVec(param string) ([]string, error) {
	if !v.IsValidArray(FuncParamValue.IsValidString) {
		return nil, &InvalidParamValue{Param: param, Expected: "array of strings"}
	}
	out := make([]string, len(v.array))
	for i, e := range v.array {
		s, err := e.AsString(param)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// AsI64Vec extracts []int64 from an Array of integer-valid elements.
func (v FuncParamValue) AsI64Vec(param string) ([]int64, error) {
	if !v.IsValidArray(FuncParamValue.IsValidI64) {
		return nil, &InvalidParamValue{Param: param, Expected: "array of integers"}
	}
	out := make([]int64, len(v.array))
	for i, e := range v.array {
		n, err := e.AsI64(param)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
