package mvnc

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/gomlx/gomvnc/cbuffer"
	"github.com/gomlx/gomvnc/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// RingCapacity is the maximum number of requests a Graph keeps in flight: it's the number of correlation
// tags it can tell apart.
const RingCapacity = 3

// tagSize is the size of each correlation tag in the ring: the request id as a uint64.
const tagSize = 8

// Graph is a compiled computation graph allocated on a Device, through which input tensors are submitted
// and results are retrieved.
//
// Each submitted tensor gets a request id (1, 2, 3, ...), and results are retrieved in the order they were
// submitted, along with the id of the request that produced them. The id is passed to the device as an
// opaque tag (a pointer into a ring of RingCapacity slots in C memory) and echoed back with the result.
//
// The Graph keeps its Device alive. It is not safe for concurrent use: run different graphs (on different
// devices) in different goroutines instead.
type Graph struct {
	device  *Device
	wrapper *graphWrapper

	// nextID is the id of the next submitted request.
	nextID uint64

	// lastRetrievedID is the id of the last request whose result was retrieved, 0 if none.
	lastRetrievedID uint64
}

// graphWrapper holds the C handle and the correlation tags ring, which require clean up. It doesn't
// reference the Graph, so it can be used in its cleanup.
type graphWrapper struct {
	drv    driver
	handle unsafe.Pointer
	tags   *cbuffer.CBuffer
	device *deviceWrapper
}

// newGraph creates a Graph and registers it for deallocation when garbage collected.
// It must be called with the device's lock held.
func newGraph(device *Device, handle unsafe.Pointer) *Graph {
	g := &Graph{
		device: device,
		wrapper: &graphWrapper{
			drv:    device.wrapper.drv,
			handle: handle,
			tags:   cbuffer.New(RingCapacity*tagSize, klog.V(1).Enabled()),
			device: device.wrapper,
		},
		nextID: 1,
	}
	runtime.AddCleanup(g, func(wrapper *graphWrapper) {
		err := wrapper.Deallocate()
		if err != nil {
			klog.Errorf("mvnc.Graph.Deallocate of garbage collected graph on device %q failed: %v",
				wrapper.device.name, err)
		}
	}, g.wrapper)
	return g
}

// Deallocate the graph, if not yet deallocated, and detaches it from its device.
func (w *graphWrapper) Deallocate() error {
	w.device.mu.Lock()
	defer w.device.mu.Unlock()
	if w.device.graph == w {
		w.device.graph = nil
	}
	return w.deallocateLocked()
}

// deallocateLocked deallocates the graph. It must be called with the device's lock held.
//
// The correlation tags are only freed if the deallocation succeeds: otherwise the device may still
// write them back, and they are leaked instead.
func (w *graphWrapper) deallocateLocked() error {
	if w.handle == nil {
		return nil
	}
	status := w.drv.DeallocateGraph(w.handle)
	w.handle = nil
	if err := toError("DeallocateGraph", status); err != nil {
		klog.Warningf("mvnc: leaking %d bytes of correlation tags of graph on device %q", w.tags.Size(), w.device.name)
		return err
	}
	w.tags.Free()
	return nil
}

// live returns the wrapper if the graph is still allocated, or an error matching ErrGone otherwise.
func (g *Graph) live(op string) (*graphWrapper, error) {
	if g == nil || g.wrapper == nil {
		return nil, newError(op, CodeGone, "nil graph")
	}
	if g.wrapper.handle == nil {
		return nil, newError(op, CodeGone, "graph on device %q already deallocated", g.device.name)
	}
	return g.wrapper, nil
}

// Device on which the graph is allocated.
func (g *Graph) Device() *Device {
	return g.device
}

// IsAllocated returns whether the graph has not been deallocated yet, explicitly or by closing its device.
func (g *Graph) IsAllocated() bool {
	return g != nil && g.wrapper != nil && g.wrapper.handle != nil
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	if g == nil || g.device == nil {
		return "mvnc.Graph(nil)"
	}
	if !g.IsAllocated() {
		return fmt.Sprintf("mvnc.Graph(device=%q, deallocated)", g.device.name)
	}
	return fmt.Sprintf("mvnc.Graph(device=%q, in-flight=%d)", g.device.name, g.InFlight())
}

// Deallocate the graph from the device. Requests still in flight are discarded.
//
// After Deallocate all methods of the Graph return an error matching ErrGone. Calling it more than once
// is a no-op. It is called automatically when the Device is closed or if the Graph is garbage collected.
func (g *Graph) Deallocate() error {
	if g == nil || g.wrapper == nil {
		return nil
	}
	defer runtime.KeepAlive(g)
	return g.wrapper.Deallocate()
}

// InFlight returns the number of requests submitted whose results were not retrieved yet.
func (g *Graph) InFlight() int {
	return int(g.nextID - 1 - g.lastRetrievedID)
}

// LastRetrieved returns the id of the last request whose result was retrieved, or 0 if none was.
func (g *Graph) LastRetrieved() uint64 {
	return g.lastRetrievedID
}

// tagFor stores the request id in its ring slot, and returns the pointer to the slot.
func (w *graphWrapper) tagFor(id uint64) unsafe.Pointer {
	slot := &cbuffer.View[uint64](w.tags)[id%RingCapacity]
	*slot = id
	return unsafe.Pointer(slot)
}

// Submit the input tensor to the graph, as raw bytes in the format expected by the graph (usually
// float16 values, see SubmitTensor). It returns the request id of the computation, used to match the
// result returned by Retrieve.
//
// If RingCapacity requests are already in flight it returns an error matching ErrBusy without calling the
// device: retrieve results first. In DontBlock mode it also returns ErrBusy if the device has no free
// input buffer. In Block mode it may block until the device accepts the tensor.
func (g *Graph) Submit(tensor []byte) (uint64, error) {
	const op = "LoadTensor"
	w, err := g.live(op)
	if err != nil {
		return 0, err
	}
	defer runtime.KeepAlive(g)
	if len(tensor) == 0 {
		return 0, newError(op, CodeInvalidParameters, "empty tensor")
	}
	if inFlight := g.InFlight(); inFlight >= RingCapacity {
		return 0, newError(op, CodeBusy, "%d requests already in flight, retrieve results first", inFlight)
	}
	id := g.nextID
	tag := w.tagFor(id)
	status := w.drv.LoadTensor(w.handle, tensor, tag)
	if err := toError(op, status); err != nil {
		if status == StatusBusy {
			return 0, err
		}
		return 0, errors.WithMessagef(err, "failed to submit tensor of %d bytes", len(tensor))
	}
	g.nextID++
	return id, nil
}

// decodeTag returns the request id stored in the ring slot pointed by the tag echoed by the device.
// It fails with CodeDeviceError if the tag is not one of the ring slots or if it doesn't hold the id of
// a request in flight. The Graph is not modified.
func (g *Graph) decodeTag(op string, tag unsafe.Pointer) (uint64, error) {
	w := g.wrapper
	if !w.tags.Contains(tag) {
		return 0, newError(op, CodeDeviceError, "device returned an unknown correlation tag %p", tag)
	}
	offset := uintptr(tag) - uintptr(w.tags.Data())
	if offset%tagSize != 0 {
		return 0, newError(op, CodeDeviceError, "device returned a misaligned correlation tag (offset %d)", offset)
	}
	id := cbuffer.View[uint64](w.tags)[offset/tagSize]
	if id <= g.lastRetrievedID || id >= g.nextID {
		return 0, newError(op, CodeDeviceError,
			"device returned correlation tag for request #%d, but only requests #%d to #%d are in flight",
			id, g.lastRetrievedID+1, g.nextID-1)
	}
	return id, nil
}

// Retrieve the result of the oldest request in flight. It returns the request id (as returned by Submit)
// and a copy of the output.
//
// elementSize is the size in bytes of the elements of the output (2 for float16): an output whose length
// is not a multiple of it fails with an error matching ErrDeviceError. So does a result with a correlation
// tag that doesn't match a request in flight: it's then accounted as the result of the oldest request.
//
// If there is no request in flight it returns an error matching ErrIdle, without calling the device.
// In DontBlock mode it returns an error matching ErrNoData if the oldest computation hasn't finished yet,
// and the Graph is left unchanged. In Block mode it blocks until the result is available.
func (g *Graph) Retrieve(elementSize int) (id uint64, output []byte, err error) {
	const op = "GetResult"
	w, err := g.live(op)
	if err != nil {
		return 0, nil, err
	}
	defer runtime.KeepAlive(g)
	if elementSize <= 0 {
		return 0, nil, newError(op, CodeInvalidParameters, "invalid element size %d", elementSize)
	}
	if g.lastRetrievedID+1 == g.nextID {
		return 0, nil, newError(op, CodeIdle, "no request in flight")
	}
	result, tag, status := w.drv.GetResult(w.handle)
	if err = toError(op, status); err != nil {
		return 0, nil, err
	}
	id, err = g.decodeTag(op, tag)
	if err != nil {
		// The device released a result anyway: count it as the oldest request in flight, otherwise it would
		// wait forever for a result the device no longer holds.
		g.lastRetrievedID++
		return 0, nil, err
	}
	if id != g.lastRetrievedID+1 {
		klog.Warningf("mvnc: device %q returned result for request #%d out of order, expected #%d: results of "+
			"requests in between are lost", g.device.name, id, g.lastRetrievedID+1)
	}

	// The device has released the result at this point, so the request is no longer in flight, even if its
	// output is malformed.
	g.lastRetrievedID = id
	if len(result)%elementSize != 0 {
		return id, nil, newError(op, CodeDeviceError,
			"result of request #%d has %d bytes, not a multiple of the element size %d", id, len(result), elementSize)
	}
	output = make([]byte, len(result))
	copy(output, result)
	return id, output, nil
}

// Blocking returns whether Submit and Retrieve block (the default) or return ErrBusy and ErrNoData
// when the device is not ready.
//
// The value is always queried from the device.
func (g *Graph) Blocking() (Blocking, error) {
	const op = "GetGraphOption"
	w, err := g.live(op)
	if err != nil {
		return Block, err
	}
	defer runtime.KeepAlive(g)
	data := make([]byte, int32Size)
	size, status := w.drv.GetGraphOption(w.handle, optDontBlock, data)
	if err := toError(op, status); err != nil {
		return Block, err
	}
	value := decodeInt32("blocking mode", data, size)
	blocking := Blocking(value)
	if !blocking.IsABlocking() {
		return Block, newError(op, CodeUnknown, "unexpected blocking mode value %d", value)
	}
	return blocking, nil
}

// SetBlocking configures whether Submit and Retrieve block or return ErrBusy and ErrNoData when the
// device is not ready.
func (g *Graph) SetBlocking(blocking Blocking) error {
	const op = "SetGraphOption"
	w, err := g.live(op)
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(g)
	if !blocking.IsABlocking() {
		return newError(op, CodeInvalidParameters, "invalid blocking mode %s", blocking)
	}
	return toError(op, w.drv.SetGraphOption(w.handle, optDontBlock, encodeInt32(int32(blocking))))
}

// TimeTaken returns the time in milliseconds taken by each stage of the graph for the last retrieved
// result. Their sum is the total inference time, see TotalTimeTaken.
func (g *Graph) TimeTaken() ([]float32, error) {
	const op = "GetGraphOption"
	w, err := g.live(op)
	if err != nil {
		return nil, err
	}
	defer runtime.KeepAlive(g)
	data, status := w.drv.GetGraphOptionData(w.handle, optTimeTaken)
	if err := toError(op, status); err != nil {
		return nil, err
	}
	if len(data)%float32Size != 0 {
		return nil, newError(op, CodeDeviceError, "time taken of %d bytes is not a multiple of %d", len(data), float32Size)
	}
	times, err := dtypes.FromBytes[float32](data)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode time taken")
	}
	return times, nil
}

// TotalTimeTaken returns the total time in milliseconds taken by the graph for the last retrieved result.
func (g *Graph) TotalTimeTaken() (float32, error) {
	times, err := g.TimeTaken()
	if err != nil {
		return 0, err
	}
	var total float32
	for _, t := range times {
		if math32.IsNaN(t) || t < 0 {
			return 0, newError("GetGraphOption", CodeDeviceError, "invalid stage time %g", t)
		}
		total += t
	}
	return total, nil
}

// DebugInfo returns the diagnostic message of the device. It's only meaningful after an error matching
// ErrDeviceReportedError.
func (g *Graph) DebugInfo() (string, error) {
	const op = "GetGraphOption"
	w, err := g.live(op)
	if err != nil {
		return "", err
	}
	defer runtime.KeepAlive(g)
	data, status := w.drv.GetGraphOptionData(w.handle, optDebugInfo)
	if err := toError(op, status); err != nil {
		return "", err
	}
	return decodeCString(op, data)
}
