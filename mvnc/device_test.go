package mvnc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibrary_DeviceNames(t *testing.T) {
	lib, drv := newFakeLibrary("1.2", "1.3.1")
	require.Equal(t, []string{"1.2", "1.3.1"}, lib.DeviceNames())
	name, found := lib.DeviceName(1)
	require.True(t, found)
	require.Equal(t, "1.3.1", name)
	for _, index := range []int{2, 3, 100, -1} {
		_, found = lib.DeviceName(index)
		require.False(t, found, "index %d", index)
	}

	// Malformed names are reported as absent.
	drv.deviceNames = []string{strings.Repeat("x", maxNameSize), "\xff\xfe"}
	for index := range drv.deviceNames {
		_, found = lib.DeviceName(index)
		require.False(t, found, "index %d", index)
	}
	require.Empty(t, lib.DeviceNames())

	// Longest valid name.
	drv.deviceNames = []string{strings.Repeat("x", maxNameSize-1)}
	require.Equal(t, drv.deviceNames, lib.DeviceNames())

	// Errors other than device not found also stop the enumeration.
	drv.inject("GetDeviceName", StatusTimeout)
	require.Empty(t, lib.DeviceNames())

	lib, _ = newFakeLibrary()
	require.Empty(t, lib.DeviceNames())
}

func TestLibrary_OpenDevice(t *testing.T) {
	lib, drv := newFakeLibrary("1.2")
	fmt.Printf("Library: %s\n", lib)

	for _, name := range []string{"", strings.Repeat("x", maxNameSize), "1\x002"} {
		_, err := lib.OpenDevice(name)
		requireCode(t, CodeInvalidParameters, err)
	}
	require.Equal(t, 0, drv.calls["OpenDevice"])

	_, err := lib.OpenDevice("9.9")
	require.ErrorIs(t, err, ErrDeviceNotFound)
	require.ErrorContains(t, err, "9.9")

	drv.inject("OpenDevice", StatusMvcmdNotFound)
	_, err = lib.OpenDevice("1.2")
	require.ErrorIs(t, err, ErrBootFileNotFound)

	device := capture(lib.OpenDevice("1.2")).Test(t)
	require.Equal(t, "1.2", device.Name())
	require.Equal(t, lib, device.Library())
	require.True(t, device.IsOpen())
	fmt.Printf("Device: %s\n", device)

	// Already open.
	_, err = lib.OpenDevice("1.2")
	require.ErrorIs(t, err, ErrBusy)
	require.NoError(t, device.Close())
}

func TestDevice_Close(t *testing.T) {
	device, drv := openFakeDevice(t)
	require.NoError(t, device.Close())
	require.False(t, device.IsOpen())
	require.NoError(t, device.Close())
	require.Equal(t, 1, drv.calls["CloseDevice"])
	require.Contains(t, device.String(), "closed")

	_, err := device.ThermalThrottlingLevel()
	require.ErrorIs(t, err, ErrGone)
	_, err = device.AllocateGraph([]byte("graph"))
	require.ErrorIs(t, err, ErrGone)

	// The device can be opened again.
	device = capture(device.Library().OpenDevice("1.2")).Test(t)
	drv.inject("CloseDevice", StatusTimeout)
	require.ErrorIs(t, device.Close(), ErrTimeout)
	require.False(t, device.IsOpen(), "device handle is released even if closing fails")
	require.NoError(t, device.Close())
	require.Equal(t, 2, drv.calls["CloseDevice"])

	var nilDevice *Device
	require.NoError(t, nilDevice.Close())
	_, err = nilDevice.AllocateGraph([]byte("graph"))
	require.ErrorIs(t, err, ErrGone)
}

func TestDevice_CloseDeallocatesGraph(t *testing.T) {
	device, drv := openFakeDevice(t)
	g := capture(device.AllocateGraph([]byte("graph"))).Test(t)
	_ = capture(g.Submit([]byte{1, 0})).Test(t)
	require.NoError(t, device.Close())
	require.False(t, g.IsAllocated())
	require.Equal(t, 1, drv.calls["DeallocateGraph"])
	require.Equal(t, 1, drv.calls["CloseDevice"])
	_, _, err := g.Retrieve(2)
	require.ErrorIs(t, err, ErrGone)
	require.NoError(t, g.Deallocate())
	require.Equal(t, 1, drv.calls["DeallocateGraph"])

	// Failure to deallocate the graph doesn't prevent closing the device.
	device, drv = openFakeDevice(t)
	g = capture(device.AllocateGraph([]byte("graph"))).Test(t)
	drv.inject("DeallocateGraph", StatusError)
	require.NoError(t, device.Close())
	require.False(t, g.IsAllocated())
	require.Equal(t, 1, drv.calls["CloseDevice"])
	g.wrapper.tags.Free()
}

func TestDevice_AllocateGraph(t *testing.T) {
	device, drv := openFakeDevice(t)
	_, err := device.AllocateGraph(nil)
	requireCode(t, CodeInvalidParameters, err)

	drv.inject("AllocateGraph", StatusUnsupportedGraphFile)
	_, err = device.AllocateGraph([]byte("old graph"))
	require.ErrorIs(t, err, ErrUnsupportedGraphFile)
	require.ErrorContains(t, err, "1.2")

	g := capture(device.AllocateGraph([]byte("graph"))).Test(t)
	require.Equal(t, device, g.Device())
	require.Equal(t, Block, capture(g.Blocking()).Test(t), "default is blocking")

	// Only one graph per device.
	_, err = device.AllocateGraph([]byte("graph"))
	requireCode(t, CodeInvalidParameters, err)
	require.Equal(t, 2, drv.calls["AllocateGraph"])
	require.NoError(t, device.Close())
}

func TestDevice_ThermalThrottlingLevel(t *testing.T) {
	device, drv := openFakeDevice(t)
	fake := drv.devices[device.Name()]
	for _, level := range []ThermalThrottlingLevel{ThermalNormal, ThermalLowerLimitReached, ThermalHigherLimitReached} {
		fake.thermal = int32(level)
		require.Equal(t, level, capture(device.ThermalThrottlingLevel()).Test(t))
	}
	require.Equal(t, "HigherLimitReached", ThermalHigherLimitReached.String())

	fake.thermal = 3
	level, err := device.ThermalThrottlingLevel()
	requireCode(t, CodeUnknown, err)
	require.Equal(t, ThermalUnknown, level)

	drv.inject("GetDeviceOption", StatusTimeout)
	_, err = device.ThermalThrottlingLevel()
	require.ErrorIs(t, err, ErrTimeout)

	drv.optionSize = 2
	require.Panics(t, func() { _, _ = device.ThermalThrottlingLevel() })
	require.NoError(t, device.Close())
}
