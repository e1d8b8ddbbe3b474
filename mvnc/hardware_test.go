package mvnc

import (
	"fmt"
	"os"
	"testing"

	"github.com/gomlx/gomvnc/dtypes"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// getHardwareLibrary loads libmvnc for the tests that require a real device. It skips the test if
// -mvnc_hardware is not set.
func getHardwareLibrary(t *testing.T) *Library {
	if !*flagHardware {
		t.Skip("Skipping test that requires libmvnc and a device: set -mvnc_hardware to run it")
	}
	lib, err := GetLibrary(*flagLibrary)
	require.NoError(t, err, "Failed to load library %q", *flagLibrary)
	fmt.Printf("Loaded %s\n", lib)
	return lib
}

func TestHardware_Devices(t *testing.T) {
	lib := getHardwareLibrary(t)
	fmt.Printf("Available libraries: %v\n", AvailableLibraries())
	require.NoError(t, lib.SetLogLevel(LogLevelFromVerbosity()))
	names := lib.DeviceNames()
	fmt.Printf("Devices: %q\n", names)
	require.NotEmpty(t, names, "No Movidius device found")
	for _, name := range names {
		require.LessOrEqual(t, len(name), maxNameSize-1)
	}
	_, found := lib.DeviceName(len(names))
	require.False(t, found)

	// Cache works by name and by path.
	require.Equal(t, lib, capture(GetLibrary(*flagLibrary)).Test(t))
	require.Equal(t, lib, capture(GetLibrary(lib.Path())).Test(t))

	device := capture(lib.OpenDevice(names[0])).Test(t)
	level := capture(device.ThermalThrottlingLevel()).Test(t)
	fmt.Printf("%s: thermal throttling level %s\n", device, level)
	require.NoError(t, device.Close())
}

func TestHardware_Graph(t *testing.T) {
	lib := getHardwareLibrary(t)
	if *flagGraph == "" {
		t.Skip("Skipping test that requires a compiled graph: set -mvnc_graph")
	}
	graphFile := capture(os.ReadFile(*flagGraph)).Test(t)
	names := lib.DeviceNames()
	require.NotEmpty(t, names, "No Movidius device found")
	device := capture(lib.OpenDevice(names[0])).Test(t)
	defer func() { require.NoError(t, device.Close()) }()
	g := capture(device.AllocateGraph(graphFile)).Test(t)

	const inputSize = 28 * 28
	input := make([]float32, inputSize)
	for ii := range input {
		input[ii] = float32(ii%255) / 255
	}
	tensor := dtypes.Float16s(input)

	require.NoError(t, g.SetBlocking(Block))
	for ii := 1; ii <= 10; ii++ {
		id := capture(SubmitTensor(g, tensor)).Test(t)
		require.Equal(t, uint64(ii), id)
		gotID, output, err := RetrieveTensor[float16.Float16](g)
		require.NoError(t, err)
		require.Equal(t, id, gotID)
		total := capture(g.TotalTimeTaken()).Test(t)
		require.GreaterOrEqual(t, total, float32(0))
		fmt.Printf("\trequest #%d: argmax=%d, time=%.2fms\n", id, dtypes.ArgMax(output), total)
	}

	require.NoError(t, g.SetBlocking(DontBlock))
	var submitted, retrieved int
	for {
		_, err := SubmitTensor(g, tensor)
		if err != nil {
			require.ErrorIs(t, err, ErrBusy)
			break
		}
		submitted++
	}
	for {
		_, _, err := RetrieveTensor[float16.Float16](g)
		if err != nil {
			if CodeOf(err) == CodeNoData {
				continue
			}
			require.ErrorIs(t, err, ErrIdle)
			break
		}
		retrieved++
	}
	require.Equal(t, submitted, retrieved)
	require.NoError(t, g.Deallocate())
}
