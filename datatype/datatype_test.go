package datatype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPod_String(t *testing.T) {
	require.Equal(t, "Float32", Float32.String())
	require.Equal(t, "Unknown", Pod(200).String())
}

func TestPod_IsString(t *testing.T) {
	require.True(t, String.IsString())
	require.True(t, Wstring.IsString())
	require.False(t, Float64.IsString())
}

func TestPod_ElementSize(t *testing.T) {
	require.Equal(t, 1, Bool.ElementSize())
	require.Equal(t, 2, Float16.ElementSize())
	require.Equal(t, 4, Float32.ElementSize())
	require.Equal(t, 8, Float64.ElementSize())
	require.Equal(t, 0, String.ElementSize())
}

func TestDataType_ElementSize(t *testing.T) {
	dt := New(Float32, 3)
	require.Equal(t, 12, dt.ElementSize())
	require.Equal(t, "Float32[3]", dt.String())
}
