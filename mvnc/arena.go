package mvnc

/*
#include <string.h>
*/
import "C"
import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// arenaContainer implements a trivial arena object to speed up allocations of the out-parameters of the
// libmvnc calls (handles, lengths, option values and the device name buffer).
//
// Individual CGO calls are slow, including C.malloc(), and every libmvnc call needs one or more of these.
//
// It pre-allocates the given size in bytes in C -- so it doesn't need to be pinned when using CGO and allows
// for fast suballocations. It can only be freed all at once.
//
// If you don't call Free at the end, it will leak the C allocated space.
type arenaContainer struct {
	buf           []byte
	size, current int
	pooled        bool
}

// newArena creates a new arena with the given fixed size.
func newArena(size int) *arenaContainer {
	buf := cMallocArray[byte](size)
	return &arenaContainer{
		buf:  unsafe.Slice(buf, size),
		size: size,
	}
}

const arenaAlignBytes = 8

// arenaAlloc allocates a type T from the arena. It panics if the arena runs out of memory.
func arenaAlloc[T any](a *arenaContainer) (ptr *T) {
	allocSize := cSizeOf[T]()
	if a.current+int(allocSize) > a.size {
		panic(fmt.Sprintf("Arena out of memory while allocating %d bytes for %q", allocSize, reflect.TypeOf(ptr).Elem()))
	}
	ptr = (*T)(unsafe.Pointer(&a.buf[a.current]))
	a.current += int(allocSize)
	a.current = (a.current + arenaAlignBytes - 1) &^ (arenaAlignBytes - 1)
	return
}

// arenaAllocBytes allocates n bytes from the arena and returns a pointer to them.
// It panics if the arena runs out of memory.
func arenaAllocBytes(a *arenaContainer, n int) unsafe.Pointer {
	if n == 0 {
		n = 1
	}
	if a.current+n > a.size {
		panic(fmt.Sprintf("Arena out of memory while allocating %d bytes", n))
	}
	ptr := unsafe.Pointer(&a.buf[a.current])
	a.current += n
	a.current = (a.current + arenaAlignBytes - 1) &^ (arenaAlignBytes - 1)
	return ptr
}

// Free invalidates all previous allocations of the arena and frees the C allocated area.
func (a *arenaContainer) Free() {
	if a.buf == nil {
		return
	}
	cFree(&a.buf[0])
	a.buf = nil
	a.size = 0
	a.current = 0
}

// Reset invalidates all previous allocations with the arena, but does not free the C allocated area.
// This way the arena can be re-used.
func (a *arenaContainer) Reset() {
	if a.buf == nil || a.size == 0 {
		a.current = 0
		return
	}
	if a.current > 0 {
		C.memset(unsafe.Pointer(&a.buf[0]), 0, C.size_t(min(a.size, a.current)))
	}
	a.current = 0
}

// pooledArenaSize fits the out-parameters of any single libmvnc call, with room for option values.
const pooledArenaSize = 512

// arenaPool reuses arenas of pooledArenaSize across calls. Larger requests get a dedicated arena.
type arenaPool struct {
	pool sync.Pool
}

// Get returns a reset arena with at least size bytes available.
func (ap *arenaPool) Get(size int) *arenaContainer {
	if size > pooledArenaSize {
		return newArena(size)
	}
	if obj := ap.pool.Get(); obj != nil {
		return obj.(*arenaContainer)
	}
	a := newArena(pooledArenaSize)
	a.pooled = true
	return a
}

// Return gives the arena back to the pool, or frees it if it was not pooled.
func (ap *arenaPool) Return(a *arenaContainer) {
	if a == nil {
		return
	}
	if !a.pooled {
		a.Free()
		return
	}
	a.Reset()
	ap.pool.Put(a)
}
