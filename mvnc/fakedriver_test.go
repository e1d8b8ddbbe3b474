package mvnc

import (
	"encoding/binary"
	"slices"
	"unsafe"

	"github.com/gomlx/gomvnc/dtypes"
)

// fakeDriver implements driver in memory, for tests that don't require libmvnc or a device.
//
// Each graph models a device with fakeInputSlots input buffers: in DontBlock mode LoadTensor returns
// StatusBusy when they are all taken by unfinished computations, and GetResult returns StatusNoData until
// the oldest computation finished (after pollsToFinish calls). In Block mode computations finish as soon
// as GetResult is called. Results are returned in FIFO order with the userParam given to LoadTensor.
type fakeDriver struct {
	deviceNames []string
	logLevel    int32
	devices     map[string]*fakeDevice

	// inputSlots is the number of computations a graph holds in DontBlock mode.
	inputSlots int

	// pollsToFinish is the number of GetResult calls returning StatusNoData before a computation finishes,
	// in DontBlock mode.
	pollsToFinish int

	// transform computes the output of a tensor. Defaults to the identity.
	transform func(input []byte) []byte

	// tagTransform, if set, modifies the userParam returned by GetResult.
	tagTransform func(tag unsafe.Pointer) unsafe.Pointer

	// reorder makes GetResult return the second oldest result, if there is one.
	reorder bool

	// optionSize, if > 0, overrides the size reported for fixed size options.
	optionSize int

	// timeTaken is reported for every result, unless rawTimeTaken is set.
	timeTaken    []float32
	rawTimeTaken []byte

	// debugInfo is returned for the debug info option.
	debugInfo []byte

	// injected statuses returned by the next call of a method, and the count of calls per method.
	injected map[string][]Status
	calls    map[string]int
}

type fakeDevice struct {
	name    string
	open    bool
	thermal int32
	graph   *fakeGraph
}

type fakeGraph struct {
	device    *fakeDevice
	allocated bool
	dontBlock int32
	pending   []*fakeRequest
	lastTimes []byte
}

type fakeRequest struct {
	tag           unsafe.Pointer
	output        []byte
	pollsToFinish int
}

// fakeInputSlots is the default number of input buffers of a fake graph.
const fakeInputSlots = 2

func newFakeDriver(deviceNames ...string) *fakeDriver {
	return &fakeDriver{
		deviceNames: deviceNames,
		logLevel:    int32(LogError),
		devices:     make(map[string]*fakeDevice),
		inputSlots:  fakeInputSlots,
		timeTaken:   []float32{0.5, 1.25, 0.25},
		debugInfo:   []byte("no error\x00"),
		injected:    make(map[string][]Status),
		calls:       make(map[string]int),
	}
}

// inject makes the next calls to method return the given statuses, one per call, without any side effect.
func (d *fakeDriver) inject(method string, statuses ...Status) {
	d.injected[method] = append(d.injected[method], statuses...)
}

// enter counts the call and returns the injected status for it, if any.
func (d *fakeDriver) enter(method string) (Status, bool) {
	d.calls[method]++
	statuses := d.injected[method]
	if len(statuses) == 0 {
		return StatusOK, false
	}
	d.injected[method] = statuses[1:]
	return statuses[0], true
}

func (d *fakeDriver) device(handle unsafe.Pointer) *fakeDevice {
	return (*fakeDevice)(handle)
}

func (d *fakeDriver) graph(handle unsafe.Pointer) *fakeGraph {
	return (*fakeGraph)(handle)
}

// lookupDevice returns the fake device with the given name, creating it if needed.
func (d *fakeDriver) lookupDevice(name string) *fakeDevice {
	dev, found := d.devices[name]
	if !found {
		dev = &fakeDevice{name: name}
		d.devices[name] = dev
	}
	return dev
}

// putOption writes a fixed size int option.
func (d *fakeDriver) putOption(data []byte, value int32) (int, Status) {
	if len(data) < int32Size {
		return 0, StatusInvalidParameters
	}
	binary.NativeEndian.PutUint32(data, uint32(value))
	if d.optionSize > 0 {
		return d.optionSize, StatusOK
	}
	return int32Size, StatusOK
}

func (d *fakeDriver) GetDeviceName(index int, name []byte) Status {
	if status, found := d.enter("GetDeviceName"); found {
		return status
	}
	if index < 0 || index >= len(d.deviceNames) {
		return StatusDeviceNotFound
	}
	n := copy(name, d.deviceNames[index])
	if n < len(name) {
		name[n] = 0
	}
	return StatusOK
}

func (d *fakeDriver) OpenDevice(name string) (unsafe.Pointer, Status) {
	if status, found := d.enter("OpenDevice"); found {
		return nil, status
	}
	if !slices.Contains(d.deviceNames, name) {
		return nil, StatusDeviceNotFound
	}
	dev := d.lookupDevice(name)
	if dev.open {
		return nil, StatusBusy
	}
	dev.open = true
	return unsafe.Pointer(dev), StatusOK
}

func (d *fakeDriver) CloseDevice(device unsafe.Pointer) Status {
	if status, found := d.enter("CloseDevice"); found {
		return status
	}
	dev := d.device(device)
	if !dev.open {
		return StatusGone
	}
	dev.open = false
	if dev.graph != nil {
		dev.graph.allocated = false
		dev.graph = nil
	}
	return StatusOK
}

func (d *fakeDriver) AllocateGraph(device unsafe.Pointer, graphFile []byte) (unsafe.Pointer, Status) {
	if status, found := d.enter("AllocateGraph"); found {
		return nil, status
	}
	dev := d.device(device)
	if !dev.open {
		return nil, StatusGone
	}
	if len(graphFile) == 0 {
		return nil, StatusInvalidParameters
	}
	if dev.graph != nil {
		return nil, StatusBusy
	}
	dev.graph = &fakeGraph{device: dev, allocated: true}
	return unsafe.Pointer(dev.graph), StatusOK
}

func (d *fakeDriver) DeallocateGraph(graph unsafe.Pointer) Status {
	if status, found := d.enter("DeallocateGraph"); found {
		return status
	}
	g := d.graph(graph)
	if !g.allocated {
		return StatusGone
	}
	g.allocated = false
	g.pending = nil
	g.device.graph = nil
	return StatusOK
}

func (d *fakeDriver) GetGlobalOption(opt option, data []byte) (int, Status) {
	if status, found := d.enter("GetGlobalOption"); found {
		return 0, status
	}
	if opt != optLogLevel {
		return 0, StatusInvalidParameters
	}
	return d.putOption(data, d.logLevel)
}

func (d *fakeDriver) SetGlobalOption(opt option, data []byte) Status {
	if status, found := d.enter("SetGlobalOption"); found {
		return status
	}
	if opt != optLogLevel || len(data) != int32Size {
		return StatusInvalidParameters
	}
	d.logLevel = int32(binary.NativeEndian.Uint32(data))
	return StatusOK
}

func (d *fakeDriver) GetGraphOption(graph unsafe.Pointer, opt option, data []byte) (int, Status) {
	if status, found := d.enter("GetGraphOption"); found {
		return 0, status
	}
	g := d.graph(graph)
	if !g.allocated {
		return 0, StatusGone
	}
	if opt != optDontBlock {
		return 0, StatusInvalidParameters
	}
	return d.putOption(data, g.dontBlock)
}

func (d *fakeDriver) GetGraphOptionData(graph unsafe.Pointer, opt option) ([]byte, Status) {
	if status, found := d.enter("GetGraphOptionData"); found {
		return nil, status
	}
	g := d.graph(graph)
	if !g.allocated {
		return nil, StatusGone
	}
	switch opt {
	case optTimeTaken:
		return g.lastTimes, StatusOK
	case optDebugInfo:
		return d.debugInfo, StatusOK
	}
	return nil, StatusInvalidParameters
}

func (d *fakeDriver) SetGraphOption(graph unsafe.Pointer, opt option, data []byte) Status {
	if status, found := d.enter("SetGraphOption"); found {
		return status
	}
	g := d.graph(graph)
	if !g.allocated {
		return StatusGone
	}
	if opt != optDontBlock || len(data) != int32Size {
		return StatusInvalidParameters
	}
	value := int32(binary.NativeEndian.Uint32(data))
	if value != 0 && value != 1 {
		return StatusInvalidParameters
	}
	g.dontBlock = value
	return StatusOK
}

func (d *fakeDriver) GetDeviceOption(device unsafe.Pointer, opt option, data []byte) (int, Status) {
	if status, found := d.enter("GetDeviceOption"); found {
		return 0, status
	}
	dev := d.device(device)
	if !dev.open {
		return 0, StatusGone
	}
	if opt != optThermalThrottlingLevel {
		return 0, StatusInvalidParameters
	}
	return d.putOption(data, dev.thermal)
}

func (d *fakeDriver) LoadTensor(graph unsafe.Pointer, tensor []byte, userParam unsafe.Pointer) Status {
	if status, found := d.enter("LoadTensor"); found {
		return status
	}
	g := d.graph(graph)
	if !g.allocated {
		return StatusGone
	}
	if len(tensor) == 0 {
		return StatusInvalidParameters
	}
	if g.dontBlock != 0 && d.inputSlots > 0 && g.unfinished() >= d.inputSlots {
		return StatusBusy
	}
	var output []byte
	if d.transform != nil {
		output = d.transform(tensor)
	} else {
		output = slices.Clone(tensor)
	}
	g.pending = append(g.pending, &fakeRequest{tag: userParam, output: output, pollsToFinish: d.pollsToFinish})
	return StatusOK
}

// unfinished returns the number of computations still taking an input buffer.
func (g *fakeGraph) unfinished() int {
	var count int
	for _, req := range g.pending {
		if req.pollsToFinish > 0 {
			count++
		}
	}
	return count
}

func (d *fakeDriver) GetResult(graph unsafe.Pointer) ([]byte, unsafe.Pointer, Status) {
	if status, found := d.enter("GetResult"); found {
		return nil, nil, status
	}
	g := d.graph(graph)
	if !g.allocated {
		return nil, nil, StatusGone
	}
	if len(g.pending) == 0 {
		return nil, nil, StatusNoData
	}
	idx := 0
	if d.reorder && len(g.pending) > 1 {
		idx = 1
	}
	req := g.pending[idx]
	if g.dontBlock != 0 && req.pollsToFinish > 0 {
		for _, r := range g.pending {
			if r.pollsToFinish > 0 {
				r.pollsToFinish--
			}
		}
		return nil, nil, StatusNoData
	}
	g.pending = slices.Delete(g.pending, idx, idx+1)
	if d.rawTimeTaken != nil {
		g.lastTimes = d.rawTimeTaken
	} else {
		g.lastTimes = dtypes.ToBytes(d.timeTaken)
	}
	tag := req.tag
	if d.tagTransform != nil {
		tag = d.tagTransform(tag)
	}
	return req.output, tag, StatusOK
}
