package mvnc

import (
	"encoding/binary"
	"unicode/utf8"
	"unsafe"

	"github.com/pkg/errors"
)

// option is the identifier of a libmvnc global, device or graph option.
type option int32

// Options used from mvnc.h. The ones marked "not for general use" in the SDK are not exposed.
const (
	optLogLevel               option = 0    // Global: int, 0 = nothing, 1 = errors, 2 = verbose.
	optDontBlock              option = 2    // Graph: int, 1 = LoadTensor returns BUSY and GetResult returns NO_DATA instead of blocking.
	optTimeTaken              option = 1000 // Graph: float array, time taken per stage of the last inference.
	optDebugInfo              option = 1001 // Graph: string, set after StatusMyriadError.
	optThermalThrottlingLevel option = 1002 // Device: int, 1 = lower temperature limit reached, 2 = higher limit reached.
)

const (
	// maxNameSize is the size of the buffer for device names, including the terminating NUL.
	maxNameSize = 28

	// int32Size is the size of the C int used by the integer options.
	int32Size = 4

	// float32Size is the size of the C float used by the time taken option.
	float32Size = 4
)

// driver is the libmvnc C API, expressed in Go types.
//
// Handles are opaque pointers owned by the library. Buffers passed in are only used during the call.
// Buffers returned are views on memory owned by the library, valid only until the next call on the same
// handle: callers must copy them.
//
// It is implemented with cgo by cDriver (see driver_cgo.go), over the dynamically loaded library.
type driver interface {
	// GetDeviceName writes the NUL terminated name of the device at index into name.
	GetDeviceName(index int, name []byte) Status
	OpenDevice(name string) (device unsafe.Pointer, status Status)
	CloseDevice(device unsafe.Pointer) Status

	AllocateGraph(device unsafe.Pointer, graphFile []byte) (graph unsafe.Pointer, status Status)
	DeallocateGraph(graph unsafe.Pointer) Status

	// GetGlobalOption reads a fixed size option into data, and returns the number of bytes the library wrote.
	GetGlobalOption(opt option, data []byte) (int, Status)
	SetGlobalOption(opt option, data []byte) Status

	// GetGraphOption reads a fixed size option into data, and returns the number of bytes the library wrote.
	GetGraphOption(graph unsafe.Pointer, opt option, data []byte) (int, Status)

	// GetGraphOptionData reads a variable length option, returned by the library as a pointer and a length.
	GetGraphOptionData(graph unsafe.Pointer, opt option) ([]byte, Status)
	SetGraphOption(graph unsafe.Pointer, opt option, data []byte) Status

	// GetDeviceOption reads a fixed size option into data, and returns the number of bytes the library wrote.
	GetDeviceOption(device unsafe.Pointer, opt option, data []byte) (int, Status)

	// LoadTensor submits the input tensor. userParam is echoed back by the GetResult call that returns the
	// corresponding output, and the library may keep it until then: it must point to C memory.
	LoadTensor(graph unsafe.Pointer, tensor []byte, userParam unsafe.Pointer) Status

	// GetResult returns the output of the oldest finished computation and its userParam.
	GetResult(graph unsafe.Pointer) (output []byte, userParam unsafe.Pointer, status Status)
}

// assertSize panics if the size of a fixed size option returned by the library is not the expected one.
// This can only happen with an incompatible version of libmvnc, there is no sensible way to recover.
func assertSize(label string, expected, size int) {
	if expected != size {
		panic(errors.Errorf("expected %d bytes for %s, got %d: incompatible libmvnc version?", expected, label, size))
	}
}

// encodeInt32 encodes value as a C int, in native byte order.
func encodeInt32(value int32) []byte {
	data := make([]byte, int32Size)
	binary.NativeEndian.PutUint32(data, uint32(value))
	return data
}

// decodeInt32 decodes a C int written by the library, after checking its size.
func decodeInt32(label string, data []byte, size int) int32 {
	assertSize(label, int32Size, size)
	return int32(binary.NativeEndian.Uint32(data))
}

// decodeCString decodes a NUL terminated UTF-8 string. It fails with CodeUnknown if there is no NUL
// terminator, or if the contents are not valid UTF-8.
func decodeCString(op string, data []byte) (string, error) {
	for ii, c := range data {
		if c == 0 {
			if !utf8.Valid(data[:ii]) {
				return "", newError(op, CodeUnknown, "string returned is not valid UTF-8")
			}
			return string(data[:ii]), nil
		}
	}
	return "", newError(op, CodeUnknown, "string of %d bytes returned is not NUL terminated", len(data))
}
