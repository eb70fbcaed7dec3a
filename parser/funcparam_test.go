package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncParamValueAsString(t *testing.T) {
	v := FuncParamScalar(ScalarFromString("hello"))
	assert.True(t, v.IsValidString())
	s, err := v.AsString("p")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	v2 := FuncParamScalar(ScalarFromI64(3))
	assert.False(t, v2.IsValidString())
	_, err = v2.AsString("p")
	require.Error(t, err)
	var invalid *InvalidParamValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "p", invalid.Param)
}

func TestFuncParamValueIdentIsAlsoAValidString(t *testing.T) {
	v := FuncParamIdent("my_ident")
	assert.True(t, v.IsValidString())
	s, err := v.AsString("p")
	require.NoError(t, err)
	assert.Equal(t, "my_ident", s)
}

func TestFuncParamValueAsI64WideningRules(t *testing.T) {
	cases := []FuncParamValue{
		FuncParamScalar(ScalarFromI8(1)),
		FuncParamScalar(ScalarFromI16(1)),
		FuncParamScalar(ScalarFromI32(1)),
		FuncParamScalar(ScalarFromI64(1)),
		FuncParamScalar(ScalarFromU8(1)),
		FuncParamScalar(ScalarFromU16(1)),
		FuncParamScalar(ScalarFromU32(1)),
		FuncParamScalar(ScalarFromU64(1)),
	}
	for _, v := range cases {
		assert.True(t, v.IsValidI64())
		n, err := v.AsI64("p")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}

	notInt := FuncParamScalar(ScalarFromF64(1.5))
	assert.False(t, notInt.IsValidI64())
	_, err := notInt.AsI64("p")
	require.Error(t, err)
}

func TestFuncParamValueAsI64UInt64OverflowWrapsAround(t *testing.T) {
	// Documented open question (spec.md 9): we wrap around rather than
	// overflow-check, so IsValidI64 => AsI64 never errors.
	v := FuncParamScalar(ScalarFromU64(math.MaxUint64))
	require.True(t, v.IsValidI64())
	n, err := v.AsI64("p")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), n)
}

func TestFuncParamValueAsF64AcceptsIntegersAndFloats(t *testing.T) {
	assert.True(t, FuncParamScalar(ScalarFromI32(2)).IsValidF64())
	assert.True(t, FuncParamScalar(ScalarFromF32(2.5)).IsValidF64())
	assert.True(t, FuncParamScalar(ScalarFromF64(2.5)).IsValidF64())
	assert.False(t, FuncParamScalar(ScalarFromString("x")).IsValidF64())
}

func TestFuncParamValueAsDecimal128(t *testing.T) {
	v := FuncParamScalar(ScalarFromI64(42))
	d, err := v.AsDecimal128("p")
	require.NoError(t, err)
	assert.Equal(t, int64(42), d.Unscaled)

	overflow := FuncParamScalar(ScalarFromF64(math.MaxFloat64))
	_, err = overflow.AsDecimal128("p")
	require.Error(t, err)
}

func TestFuncParamValueAsIdent(t *testing.T) {
	v := FuncParamIdent("col")
	assert.True(t, v.IsValidIdent())
	ident, err := v.AsIdent("p")
	require.NoError(t, err)
	assert.Equal(t, "col", ident)

	notIdent := FuncParamScalar(ScalarFromString("col"))
	assert.False(t, notIdent.IsValidIdent())
	_, err = notIdent.AsIdent("p")
	require.Error(t, err)
}

func TestFuncParamValueAsStringVec(t *testing.T) {
	arr := FuncParamArray([]FuncParamValue{
		FuncParamScalar(ScalarFromString("a")),
		FuncParamIdent("b"),
	})
	assert.True(t, arr.IsArray())
	out, err := arr.AsStringVec("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	mixed := FuncParamArray([]FuncParamValue{
		FuncParamScalar(ScalarFromString("a")),
		FuncParamScalar(ScalarFromI64(1)),
	})
	_, err = mixed.AsStringVec("p")
	require.Error(t, err)
}

func TestFuncParamValueNestedArray(t *testing.T) {
	inner := FuncParamArray([]FuncParamValue{FuncParamScalar(ScalarFromI64(1))})
	outer := FuncParamArray([]FuncParamValue{inner})
	require.True(t, outer.IsArray())
	require.True(t, outer.array[0].IsArray())
}
