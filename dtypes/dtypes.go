// Package dtypes defines the element types of the tensors exchanged with a Movidius graph, and the
// conversion between Go slices and the raw byte buffers the device consumes and produces.
//
// The Movidius Neural Compute Stick natively works with half-precision floats (Float16), which is what
// compiled graphs expect as input and return as output by default.
package dtypes

import (
	"reflect"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// DType is the element type of a tensor.
type DType int

//go:generate go tool enumer -type=DType dtypes.go

const (
	// InvalidDType represents an invalid (or not set) dtype.
	InvalidDType DType = iota

	// Float16 is the half-precision float used natively by the device, see github.com/x448/float16.
	Float16

	// Float32 is used by graphs compiled for single precision outputs, and by the timing information.
	Float32
)

// Supported lists the Go types that can be used as tensor elements.
type Supported interface {
	float16.Float16 | float32
}

// MapOfNames to DType values, including common aliases. Used to parse flags.
var MapOfNames = map[string]DType{
	"Float16": Float16,
	"float16": Float16,
	"F16":     Float16,
	"f16":     Float16,
	"half":    Float16,
	"Float32": Float32,
	"float32": Float32,
	"F32":     Float32,
	"f32":     Float32,
	"float":   Float32,
}

// FromGenericsType returns the DType enum for the given generic type.
func FromGenericsType[T Supported]() DType {
	var t T
	switch any(t).(type) {
	case float16.Float16:
		return Float16
	case float32:
		return Float32
	}
	return InvalidDType
}

// FromGoType returns the DType for the given reflect.Type, or InvalidDType if not supported.
func FromGoType(t reflect.Type) DType {
	switch t {
	case reflect.TypeOf(float16.Float16(0)):
		return Float16
	case reflect.TypeOf(float32(0)):
		return Float32
	}
	return InvalidDType
}

// Size returns the number of bytes used by one element of the dtype, or 0 for InvalidDType.
func (dtype DType) Size() int {
	switch dtype {
	case Float16:
		return 2
	case Float32:
		return 4
	}
	return 0
}

// SizeOf returns the size in bytes of the generic type T.
func SizeOf[T Supported]() int {
	var t T
	return int(unsafe.Sizeof(t))
}

// ToBytes returns a copy of values as raw bytes, in the host's native byte order -- which is what the device
// expects.
func ToBytes[T Supported](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	size := len(values) * SizeOf[T]()
	raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), size)
	buf := make([]byte, size)
	copy(buf, raw)
	return buf
}

// FromBytes returns a copy of data converted to a slice of T.
//
// It returns an error if len(data) is not a multiple of the size of T: the data would otherwise be silently
// truncated.
func FromBytes[T Supported](data []byte) ([]T, error) {
	elemSize := SizeOf[T]()
	if len(data)%elemSize != 0 {
		return nil, errors.Errorf("%d bytes is not a multiple of the size of %s (%d bytes)",
			len(data), FromGenericsType[T](), elemSize)
	}
	values := make([]T, len(data)/elemSize)
	if len(values) > 0 {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), len(data))
		copy(dst, data)
	}
	return values, nil
}

// Float16s converts a slice of float32 to a new slice of float16.Float16, rounding to nearest-even.
func Float16s(values []float32) []float16.Float16 {
	converted := make([]float16.Float16, len(values))
	for ii, v := range values {
		converted[ii] = float16.Fromfloat32(v)
	}
	return converted
}

// Float32s converts a slice of float16.Float16 to a new slice of float32.
func Float32s(values []float16.Float16) []float32 {
	converted := make([]float32, len(values))
	for ii, v := range values {
		converted[ii] = v.Float32()
	}
	return converted
}

// ToFloat32 converts a single value of any supported type to float32.
func ToFloat32[T Supported](value T) float32 {
	switch v := any(value).(type) {
	case float16.Float16:
		return v.Float32()
	case float32:
		return v
	}
	return math32.NaN()
}

// ArgMax returns the index of the largest value, or -1 if values is empty. NaNs are ignored.
//
// It's typically used to read a classification out of the output of a graph.
func ArgMax[T Supported](values []T) int {
	best := -1
	bestValue := math32.Inf(-1)
	for ii, v := range values {
		f := ToFloat32(v)
		if math32.IsNaN(f) {
			continue
		}
		if best == -1 || f > bestValue {
			best, bestValue = ii, f
		}
	}
	return best
}

// Sum returns the sum of the values as float32.
func Sum[T Supported](values []T) float32 {
	var total float32
	for _, v := range values {
		total += ToFloat32(v)
	}
	return total
}
