package mvnc

/*
#include <stdlib.h>
#include "mvnc_api.h"
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// mvncSymbols are the libmvnc functions resolved when loading the library.
// The order must match the MVNC_FN_* indices in mvnc_api.h.
var mvncSymbols = [C.MVNC_NUM_FUNCTIONS]string{
	"mvncGetDeviceName",
	"mvncOpenDevice",
	"mvncCloseDevice",
	"mvncAllocateGraph",
	"mvncDeallocateGraph",
	"mvncGetGlobalOption",
	"mvncSetGlobalOption",
	"mvncGetGraphOption",
	"mvncSetGraphOption",
	"mvncGetDeviceOption",
	"mvncLoadTensor",
	"mvncGetResult",
}

// cDriver implements driver by calling the dynamically loaded libmvnc.
type cDriver struct {
	api    *C.MVNC_Api
	arenas arenaPool
}

// newCDriver resolves all the libmvnc functions from the loaded library.
// All of them must be present.
func newCDriver(handle dllHandleWrapper) (*cDriver, error) {
	api := cMalloc[C.MVNC_Api]()
	for ii, symbol := range mvncSymbols {
		ptr, err := handle.GetSymbolPointer(symbol)
		if err == nil && ptr == nil {
			err = errors.Errorf("symbol %q resolved to nil", symbol)
		}
		if err != nil {
			cFree(api)
			return nil, errors.WithMessagef(err, "libmvnc function %q not found", symbol)
		}
		api.fns[ii] = ptr
	}
	return &cDriver{api: api}, nil
}

// call wraps a libmvnc call with an arena for its out-parameters, and trace logging.
func (d *cDriver) call(name string, arenaSize int, fn func(arena *arenaContainer) C.int) Status {
	arena := d.arenas.Get(arenaSize)
	defer d.arenas.Return(arena)
	status := Status(fn(arena))
	if klog.V(2).Enabled() {
		klog.Infof("mvnc: %s() -> %s", name, status)
	}
	return status
}

// GetDeviceName implements driver.
func (d *cDriver) GetDeviceName(index int, name []byte) Status {
	return d.call("mvncGetDeviceName", len(name), func(arena *arenaContainer) C.int {
		cName := arenaAllocBytes(arena, len(name))
		status := C.call_mvncGetDeviceName(d.api, C.int(index), (*C.char)(cName), C.uint(len(name)))
		copy(name, cDataToSlice[byte](cName, len(name)))
		return status
	})
}

// OpenDevice implements driver.
func (d *cDriver) OpenDevice(name string) (device unsafe.Pointer, status Status) {
	cName := C.CString(name)
	defer cFree(cName)
	status = d.call("mvncOpenDevice", 0, func(arena *arenaContainer) C.int {
		handle := arenaAlloc[unsafe.Pointer](arena)
		status := C.call_mvncOpenDevice(d.api, cName, handle)
		device = *handle
		return status
	})
	return
}

// CloseDevice implements driver.
func (d *cDriver) CloseDevice(device unsafe.Pointer) Status {
	return d.call("mvncCloseDevice", 0, func(_ *arenaContainer) C.int {
		return C.call_mvncCloseDevice(d.api, device)
	})
}

// AllocateGraph implements driver. The graph file is only used during the call: libmvnc copies it to the device.
func (d *cDriver) AllocateGraph(device unsafe.Pointer, graphFile []byte) (graph unsafe.Pointer, status Status) {
	graphData := unsafe.Pointer(unsafe.SliceData(graphFile))
	status = d.call("mvncAllocateGraph", 0, func(arena *arenaContainer) C.int {
		handle := arenaAlloc[unsafe.Pointer](arena)
		status := C.call_mvncAllocateGraph(d.api, device, handle, graphData, C.uint(len(graphFile)))
		graph = *handle
		return status
	})
	return
}

// DeallocateGraph implements driver.
func (d *cDriver) DeallocateGraph(graph unsafe.Pointer) Status {
	return d.call("mvncDeallocateGraph", 0, func(_ *arenaContainer) C.int {
		return C.call_mvncDeallocateGraph(d.api, graph)
	})
}

// getFixedOption implements the common part of reading fixed size options: the value is written by libmvnc
// in C memory, and then copied to data.
func (d *cDriver) getFixedOption(name string, data []byte, fn func(value unsafe.Pointer, length *C.uint) C.int) (size int, status Status) {
	status = d.call(name, 2*len(data)+8, func(arena *arenaContainer) C.int {
		value := arenaAllocBytes(arena, len(data))
		length := arenaAlloc[C.uint](arena)
		*length = C.uint(len(data))
		status := fn(value, length)
		size = int(*length)
		copy(data, cDataToSlice[byte](value, min(size, len(data))))
		return status
	})
	return
}

// setOption implements the common part of setting options: data is copied to C memory for the call.
func (d *cDriver) setOption(name string, data []byte, fn func(value unsafe.Pointer, length C.uint) C.int) Status {
	return d.call(name, len(data), func(arena *arenaContainer) C.int {
		value := arenaAllocBytes(arena, len(data))
		cCopyIn(value, data)
		return fn(value, C.uint(len(data)))
	})
}

// GetGlobalOption implements driver.
func (d *cDriver) GetGlobalOption(opt option, data []byte) (int, Status) {
	return d.getFixedOption("mvncGetGlobalOption", data, func(value unsafe.Pointer, length *C.uint) C.int {
		return C.call_mvncGetGlobalOption(d.api, C.int(opt), value, length)
	})
}

// SetGlobalOption implements driver.
func (d *cDriver) SetGlobalOption(opt option, data []byte) Status {
	return d.setOption("mvncSetGlobalOption", data, func(value unsafe.Pointer, length C.uint) C.int {
		return C.call_mvncSetGlobalOption(d.api, C.int(opt), value, length)
	})
}

// GetGraphOption implements driver.
func (d *cDriver) GetGraphOption(graph unsafe.Pointer, opt option, data []byte) (int, Status) {
	return d.getFixedOption("mvncGetGraphOption", data, func(value unsafe.Pointer, length *C.uint) C.int {
		return C.call_mvncGetGraphOption(d.api, graph, C.int(opt), value, length)
	})
}

// GetGraphOptionData implements driver. For variable length options libmvnc writes a pointer to its own
// memory, and the length of the data pointed to.
func (d *cDriver) GetGraphOptionData(graph unsafe.Pointer, opt option) (data []byte, status Status) {
	status = d.call("mvncGetGraphOption", 0, func(arena *arenaContainer) C.int {
		ptr := arenaAlloc[unsafe.Pointer](arena)
		length := arenaAlloc[C.uint](arena)
		status := C.call_mvncGetGraphOption(d.api, graph, C.int(opt), unsafe.Pointer(ptr), length)
		if status == C.int(StatusOK) {
			data = cDataToSlice[byte](*ptr, int(*length))
		}
		return status
	})
	return
}

// SetGraphOption implements driver.
func (d *cDriver) SetGraphOption(graph unsafe.Pointer, opt option, data []byte) Status {
	return d.setOption("mvncSetGraphOption", data, func(value unsafe.Pointer, length C.uint) C.int {
		return C.call_mvncSetGraphOption(d.api, graph, C.int(opt), value, length)
	})
}

// GetDeviceOption implements driver.
func (d *cDriver) GetDeviceOption(device unsafe.Pointer, opt option, data []byte) (int, Status) {
	return d.getFixedOption("mvncGetDeviceOption", data, func(value unsafe.Pointer, length *C.uint) C.int {
		return C.call_mvncGetDeviceOption(d.api, device, C.int(opt), value, length)
	})
}

// LoadTensor implements driver. The tensor is only used during the call, but userParam is kept by libmvnc.
func (d *cDriver) LoadTensor(graph unsafe.Pointer, tensor []byte, userParam unsafe.Pointer) Status {
	tensorData := unsafe.Pointer(unsafe.SliceData(tensor))
	return d.call("mvncLoadTensor", 0, func(_ *arenaContainer) C.int {
		return C.call_mvncLoadTensor(d.api, graph, tensorData, C.uint(len(tensor)), userParam)
	})
}

// GetResult implements driver.
func (d *cDriver) GetResult(graph unsafe.Pointer) (output []byte, userParam unsafe.Pointer, status Status) {
	status = d.call("mvncGetResult", 0, func(arena *arenaContainer) C.int {
		outputData := arenaAlloc[unsafe.Pointer](arena)
		outputLength := arenaAlloc[C.uint](arena)
		param := arenaAlloc[unsafe.Pointer](arena)
		status := C.call_mvncGetResult(d.api, graph, outputData, outputLength, param)
		if status == C.int(StatusOK) {
			output = cDataToSlice[byte](*outputData, int(*outputLength))
			userParam = *param
		}
		return status
	})
	return
}
