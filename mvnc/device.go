package mvnc

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Device is an open session with a Movidius device. It owns the underlying libmvnc handle.
//
// At most one Graph can be allocated on a Device at a time.
// A Device is not safe for concurrent use.
type Device struct {
	lib     *Library
	name    string
	wrapper *deviceWrapper
}

// deviceWrapper holds the C handle, which requires clean up. It doesn't reference the Device, so it can be
// used in its cleanup.
type deviceWrapper struct {
	mu     sync.Mutex // Protects teardown, which can also happen in the garbage collector cleanup.
	drv    driver
	name   string
	handle unsafe.Pointer
	graph  *graphWrapper // Graph currently allocated on the device, if any.
}

// newDevice creates a Device and registers it for closing when garbage collected.
func newDevice(lib *Library, name string, handle unsafe.Pointer) *Device {
	d := &Device{
		lib:     lib,
		name:    name,
		wrapper: &deviceWrapper{drv: lib.drv, name: name, handle: handle},
	}
	runtime.AddCleanup(d, func(wrapper *deviceWrapper) {
		err := wrapper.Close()
		if err != nil {
			klog.Errorf("mvnc.Device.Close of garbage collected device %q failed: %v", wrapper.name, err)
		}
	}, d.wrapper)
	return d
}

// Close deallocates the graph still allocated on the device, if any, and then closes the device.
//
// A failure to deallocate the graph is logged, and the device is closed anyway. The device handle is
// released even if closing fails, so it's never closed twice.
func (w *deviceWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.handle == nil {
		// Already closed, no-op.
		return nil
	}
	if w.graph != nil {
		if err := w.graph.deallocateLocked(); err != nil {
			klog.Errorf("mvnc: failed to deallocate graph while closing device %q: %v", w.name, err)
		}
		w.graph = nil
	}
	status := w.drv.CloseDevice(w.handle)
	w.handle = nil
	return toError("CloseDevice", status)
}

// live returns the wrapper if the device is still open, or an error matching ErrGone otherwise.
func (d *Device) live(op string) (*deviceWrapper, error) {
	if d == nil || d.wrapper == nil {
		return nil, newError(op, CodeGone, "nil device")
	}
	if d.wrapper.handle == nil {
		return nil, newError(op, CodeGone, "device %q already closed", d.name)
	}
	return d.wrapper, nil
}

// Library returns the Library used to open the device.
func (d *Device) Library() *Library {
	return d.lib
}

// Name of the device, as given to Library.OpenDevice.
func (d *Device) Name() string {
	return d.name
}

// IsOpen returns whether the device has not been closed yet.
func (d *Device) IsOpen() bool {
	return d != nil && d.wrapper != nil && d.wrapper.handle != nil
}

// String implements fmt.Stringer.
func (d *Device) String() string {
	if d == nil {
		return "mvnc.Device(nil)"
	}
	if !d.IsOpen() {
		return fmt.Sprintf("mvnc.Device(%q, closed)", d.name)
	}
	return fmt.Sprintf("mvnc.Device(%q)", d.name)
}

// Close the device, releasing its resources. Any graph still allocated on it is deallocated first.
//
// After Close all methods of the Device, and of its Graph, return an error matching ErrGone.
// Calling Close more than once is a no-op. It is automatically called if the Device is garbage collected.
func (d *Device) Close() error {
	if d == nil || d.wrapper == nil {
		return nil
	}
	defer runtime.KeepAlive(d)
	return d.wrapper.Close()
}

// ThermalThrottlingLevel returns whether the device is throttling inferences due to its temperature.
//
// An undocumented value reported by the device returns ThermalUnknown and an error matching ErrUnknown.
func (d *Device) ThermalThrottlingLevel() (ThermalThrottlingLevel, error) {
	const op = "GetDeviceOption"
	w, err := d.live(op)
	if err != nil {
		return ThermalUnknown, err
	}
	defer runtime.KeepAlive(d)
	data := make([]byte, int32Size)
	size, status := w.drv.GetDeviceOption(w.handle, optThermalThrottlingLevel, data)
	if err := toError(op, status); err != nil {
		return ThermalUnknown, err
	}
	value := decodeInt32("thermal throttling level", data, size)
	level := ThermalThrottlingLevel(value)
	switch level {
	case ThermalNormal, ThermalLowerLimitReached, ThermalHigherLimitReached:
		return level, nil
	}
	return ThermalUnknown, newError(op, CodeUnknown, "unexpected thermal throttling level %d", value)
}

// AllocateGraph loads the compiled graph file (as generated by the NCSDK mvNCCompile tool) into the device.
//
// Only one graph can be allocated on a device at a time: deallocate the previous one first.
// The returned Graph keeps the Device alive, and it is deallocated when the Device is closed.
func (d *Device) AllocateGraph(graphFile []byte) (*Graph, error) {
	const op = "AllocateGraph"
	w, err := d.live(op)
	if err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(d)
	if len(graphFile) == 0 {
		return nil, newError(op, CodeInvalidParameters, "empty graph file")
	}
	if uint64(len(graphFile)) > math.MaxUint32 {
		return nil, newError(op, CodeInvalidParameters, "graph file of %d bytes is too large", len(graphFile))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.graph != nil {
		return nil, newError(op, CodeInvalidParameters, "device %q already has a graph allocated", d.name)
	}
	handle, status := w.drv.AllocateGraph(w.handle, graphFile)
	if err := toError(op, status); err != nil {
		return nil, errors.WithMessagef(err, "failed to allocate graph of %d bytes on device %q", len(graphFile), d.name)
	}
	if handle == nil {
		return nil, newError(op, CodeDeviceError, "libmvnc returned a nil graph handle")
	}
	g := newGraph(d, handle)
	w.graph = g.wrapper
	return g, nil
}
