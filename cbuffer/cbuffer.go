// Package cbuffer provides buffers allocated in the C heap.
//
// They are used for data whose address is handed over to the native MVNC library and may be retained by it
// after the call returns -- e.g. the correlation tags of in-flight inferences. Go memory can't be used for
// that, since cgo rules forbid C from keeping Go pointers.
package cbuffer

/*
#include <stdlib.h>
*/
import "C"
import (
	"runtime"
	"unsafe"

	"k8s.io/klog/v2"
)

// CBuffer is a zero-initialized block of C memory, owned by the CBuffer.
type CBuffer struct {
	wrapper *cBufferWrapper
}

type cBufferWrapper struct {
	size  int
	data  unsafe.Pointer
	stack []byte
}

// New allocates a CBuffer of the given size in bytes, initialized to zero.
//
// If `withStack` is set to true, it also stores a stack of where it was created.
// This is used for debugging if it is garbage collected without being freed.
func New(size int, withStack bool) *CBuffer {
	if size <= 0 {
		size = 1
	}
	data := C.calloc(1, C.size_t(size))
	b := &CBuffer{&cBufferWrapper{data: data, size: size}}
	if withStack {
		buf := make([]byte, 10*1024)
		n := runtime.Stack(buf, false)
		b.wrapper.stack = buf[:n]
	}
	runtime.AddCleanup(b, func(wrapper *cBufferWrapper) {
		if wrapper.data == nil {
			return // Correctly freed.
		}

		// The data can't be freed here: the native library may still hold a pointer into it. Leaking it
		// with an error is safer than a use-after-free on the device side.
		if wrapper.stack == nil {
			klog.Errorf("CBuffer of %d bytes garbage collected without being freed", wrapper.size)
		} else {
			klog.Errorf("CBuffer of %d bytes garbage collected without being freed. Stack:\n%s\n", wrapper.size, wrapper.stack)
		}
	}, b.wrapper)
	return b
}

func (wrapper *cBufferWrapper) Free() {
	if wrapper.data == nil {
		return
	}
	C.free(wrapper.data)
	wrapper.data = nil
	wrapper.size = 0
}

// Free the underlying data.
// It sets the pointer to nil, so if it is called again, it is a no-op.
func (b *CBuffer) Free() {
	b.wrapper.Free()
}

// IsFreed returns whether the buffer has already been freed.
func (b *CBuffer) IsFreed() bool {
	return b.wrapper.data == nil
}

// Size in bytes of the buffer, 0 if it has been freed.
func (b *CBuffer) Size() int {
	return b.wrapper.size
}

// Data returns the pointer to the C data, or nil if it has been freed.
func (b *CBuffer) Data() unsafe.Pointer {
	return b.wrapper.data
}

// Contains returns whether ptr points inside the buffer.
func (b *CBuffer) Contains(ptr unsafe.Pointer) bool {
	if b.wrapper.data == nil || ptr == nil {
		return false
	}
	start := uintptr(b.wrapper.data)
	p := uintptr(ptr)
	return p >= start && p < start+uintptr(b.wrapper.size)
}

// View returns the buffer as a slice of T, with as many elements as fit in the buffer.
//
// Ownership is not transferred: the slice is only valid until Free is called.
func View[T any](b *CBuffer) []T {
	if b.wrapper.data == nil {
		return nil
	}
	var t T
	n := b.wrapper.size / int(unsafe.Sizeof(t))
	return unsafe.Slice((*T)(b.wrapper.data), n)
}
