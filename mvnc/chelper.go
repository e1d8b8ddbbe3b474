package mvnc

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"
import (
	"reflect"
	"unsafe"
)

// File implements several CGO helper utilities.

// cFree calls C.free() on the unsafe.Pointer version of data.
func cFree[T any](data *T) {
	C.free(unsafe.Pointer(data))
}

// cSizeOf returns the size of the given type in bytes. Notice some structures may be padded, and this will
// include that space.
func cSizeOf[T any]() C.size_t {
	var ptr *T
	return C.size_t(reflect.TypeOf(ptr).Elem().Size())
}

// cMalloc allocates a T in the C heap and initializes it to zero.
// It must be manually freed with cFree() by the user.
func cMalloc[T any]() (ptr *T) {
	size := cSizeOf[T]()
	cPtr := (*T)(C.calloc(1, size))
	return cPtr
}

// cMallocArray allocates space to hold n copies of T in the C heap and initializes it to zero.
// It must be manually freed with C.free() by the user.
func cMallocArray[T any](n int) (ptr *T) {
	size := cSizeOf[T]()
	cPtr := (*T)(C.calloc(C.size_t(n), size))
	return cPtr
}

// cDataToSlice converts a C pointer to C allocated array of type T with count elements and return an unsafe
// slice to the data.
func cDataToSlice[T any](data unsafe.Pointer, count int) (result []T) {
	if data == nil || count == 0 {
		return nil
	}
	return unsafe.Slice((*T)(data), count)
}

// cCopyIn copies the Go bytes into the C memory pointed by dst, which must have room for len(src) bytes.
func cCopyIn(dst unsafe.Pointer, src []byte) {
	if len(src) == 0 {
		return
	}
	C.memcpy(dst, unsafe.Pointer(unsafe.SliceData(src)), C.size_t(len(src)))
}
