package mvnc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	arena := newArena(1024)
	for range 2 {
		require.Equal(t, 1024, arena.size)
		require.Equal(t, 0, arena.current)
		_ = arenaAlloc[int](arena)
		require.Equal(t, 8, arena.current)
		_ = arenaAlloc[int32](arena)
		require.Equal(t, 16, arena.current)

		_ = arenaAllocBytes(arena, 9) // Aligning, it will occupy 16 bytes total.
		require.Equal(t, 32, arena.current)
		_ = arenaAllocBytes(arena, 0) // Zero sized allocations take one aligned slot.
		require.Equal(t, 40, arena.current)

		require.Panics(t, func() { _ = arenaAlloc[[512]int](arena) }, "Arena out of memory")
		require.Panics(t, func() { _ = arenaAllocBytes(arena, 1024) }, "Arena out of memory")
		arena.Reset()
	}
	arena.Free()
	arena.Free()
}

func TestArenaPool(t *testing.T) {
	var pool arenaPool
	arena := pool.Get(16)
	require.True(t, arena.pooled)
	require.Equal(t, pooledArenaSize, arena.size)
	name := arenaAllocBytes(arena, 16)
	copy(unsafe.Slice((*byte)(name), 16), "0123456789abcdef")
	pool.Return(arena)
	require.Equal(t, 0, arena.current)
	require.Equal(t, make([]byte, 16), arena.buf[:16], "returned arenas are zeroed")

	large := pool.Get(4 * pooledArenaSize)
	require.False(t, large.pooled)
	require.Equal(t, 4*pooledArenaSize, large.size)
	pool.Return(large)
	require.Nil(t, large.buf)
	pool.Return(nil)
}
