package cbuffer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCBuffer(t *testing.T) {
	b := New(3*8, true)
	require.False(t, b.IsFreed())
	require.Equal(t, 24, b.Size())
	require.Equal(t, make([]byte, 24), View[byte](b), "buffer should be zero initialized")

	tags := View[uint64](b)
	require.Len(t, tags, 3)
	tags[2] = 7
	require.Equal(t, byte(7), View[byte](b)[16])

	require.True(t, b.Contains(unsafe.Pointer(&tags[0])))
	require.True(t, b.Contains(unsafe.Pointer(&tags[2])))
	var local uint64
	require.False(t, b.Contains(unsafe.Pointer(&local)))
	require.False(t, b.Contains(nil))

	b.Free()
	require.True(t, b.IsFreed())
	require.Nil(t, View[byte](b))
	require.Nil(t, View[uint64](b))
	require.False(t, b.Contains(unsafe.Pointer(&local)))
	b.Free() // Second free is a no-op.
}
