package mvnc

// Common initialization and testing tools for all test files.

import (
	"flag"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

var (
	flagLibrary  = flag.String("mvnc_library", DefaultLibraryName, "libmvnc name or full path, used by the hardware tests")
	flagHardware = flag.Bool("mvnc_hardware", false, "run tests that require libmvnc and a connected Movidius device")
	flagGraph    = flag.String("mvnc_graph", "", "compiled graph file used by the hardware tests")
)

func init() {
	klog.InitFlags(nil)
}

type errTester[T any] struct {
	value T
	err   error
}

// capture is a shortcut to test that there is no error and return the value.
func capture[T any](value T, err error) errTester[T] {
	return errTester[T]{value, err}
}

func (e errTester[T]) Test(t testing.TB) T {
	require.NoError(t, e.err)
	return e.value
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("Failed: %+v", errors.WithStack(err)))
	}
}

func must1[T any](t T, err error) T {
	must(err)
	return t
}

func must2[T1, T2 any](t1 T1, t2 T2, err error) (T1, T2) {
	must(err)
	return t1, t2
}

// requireCode checks that err is an mvnc error with the given code.
func requireCode(t testing.TB, code ErrorCode, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equalf(t, code, CodeOf(err), "expected error with code %s, got %v", code, err)
}

// newFakeLibrary returns a Library backed by a fakeDriver with the given device names.
func newFakeLibrary(deviceNames ...string) (*Library, *fakeDriver) {
	drv := newFakeDriver(deviceNames...)
	return newLibrary("fake", "/fake/libmvnc.so", drv), drv
}

// openFakeDevice opens the first device of a new fake library.
func openFakeDevice(t testing.TB) (*Device, *fakeDriver) {
	lib, drv := newFakeLibrary("1.2", "1.3")
	device := capture(lib.OpenDevice("1.2")).Test(t)
	return device, drv
}

// allocateFakeGraph allocates a graph on a new fake device, in the given blocking mode.
func allocateFakeGraph(t testing.TB, blocking Blocking) (*Graph, *fakeDriver) {
	device, drv := openFakeDevice(t)
	g := capture(device.AllocateGraph([]byte("fake graph"))).Test(t)
	require.NoError(t, g.SetBlocking(blocking))
	return g, drv
}
