// mvnc_run loads a compiled graph on Movidius devices and runs random inputs through it, first one at a time
// in blocking mode, and then as many in flight as the device takes in non-blocking mode.
//
// It's a smoke test for a device and a graph (e.g. an MNIST classifier compiled with mvNCCompile).
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/chewxy/math32"
	"github.com/gomlx/gomvnc/dtypes"
	"github.com/gomlx/gomvnc/mvnc"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagLibrary    = flag.String("library", mvnc.DefaultLibraryName, "libmvnc name or full path")
	flagGraph      = flag.String("graph", "", "Compiled graph file, as generated by mvNCCompile")
	flagDevice     = flag.String("device", "", "Name of the device to use. If empty all devices are used, concurrently")
	flagInputSize  = flag.Int("input_size", 28*28, "Number of float16 values in the input tensor")
	flagIterations = flag.Int("iterations", 10, "Number of inputs to run in blocking mode")
	flagMode       = flag.String("mode", "both", "Scenarios to run: block, dontblock or both")
	flagPollPeriod = flag.Duration("poll_period", time.Millisecond, "Pause between polls for results in dontblock mode")
	flagLogLevel   = flag.String("log_level", "", fmt.Sprintf("libmvnc log level, one of %q. "+
		"If empty it is set from klog's verbosity", mvnc.LogLevelStrings()))
)

var modes = []string{"block", "dontblock", "both"}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `mvnc_run loads a compiled graph on Movidius Neural Compute devices and runs random inputs
through it.

$ mvnc_run -graph=<compiled_graph_file> [-device=<name>]

Set MVNC_LIBRARY_PATH if libmvnc is not installed in a standard location.

Usage:
`)
		flag.PrintDefaults()
	}
	klog.InitFlags(flag.CommandLine)
	flag.Parse()

	if *flagGraph == "" {
		fmt.Fprintln(os.Stderr, "The compiled graph file must be given with the -graph flag!")
		fmt.Fprintln(os.Stderr)
		flag.Usage()
		os.Exit(1)
	}
	must.M(validateFlags())
	graphFile := must.M1(os.ReadFile(*flagGraph))

	lib := must.M1(mvnc.GetLibrary(*flagLibrary))
	fmt.Printf("Loaded %s\n", lib)
	logLevel := mvnc.LogLevelFromVerbosity()
	if *flagLogLevel != "" {
		logLevel = must.M1(mvnc.LogLevelString(*flagLogLevel))
	}
	must.M(lib.SetLogLevel(logLevel))

	deviceNames := lib.DeviceNames()
	if *flagDevice != "" {
		deviceNames = []string{*flagDevice}
	}
	if len(deviceNames) == 0 {
		klog.Fatalf("No Movidius device found")
	}
	fmt.Printf("Devices: %s\n", strings.Join(deviceNames, ", "))

	// One goroutine per device: each Graph is only used by one goroutine.
	g, ctx := errgroup.WithContext(context.Background())
	for _, name := range deviceNames {
		g.Go(func() error {
			return runDevice(ctx, lib, name, graphFile)
		})
	}
	if err := g.Wait(); err != nil {
		klog.Fatalf("Failed: %+v", err)
	}
}

// validateFlags checks the values of the flags that can't be checked by the flag package.
func validateFlags() error {
	if !slices.Contains(modes, *flagMode) {
		return errors.Errorf("invalid -mode=%q, valid values are %q", *flagMode, modes)
	}
	if *flagInputSize <= 0 {
		return errors.Errorf("invalid -input_size=%d", *flagInputSize)
	}
	if *flagPollPeriod <= 0 {
		return errors.Errorf("invalid -poll_period=%s, it must be positive", *flagPollPeriod)
	}
	return nil
}

// runDevice opens the device, allocates the graph and runs the selected scenarios.
func runDevice(ctx context.Context, lib *mvnc.Library, name string, graphFile []byte) (err error) {
	device, err := lib.OpenDevice(name)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := device.Close(); closeErr != nil {
			klog.Errorf("Failed to close device %q: %v", name, closeErr)
		}
	}()

	graph, err := device.AllocateGraph(graphFile)
	if err != nil {
		return err
	}
	defer func() {
		if errors.Is(err, mvnc.ErrDeviceReportedError) {
			info, infoErr := graph.DebugInfo()
			if infoErr != nil {
				klog.Errorf("Failed to get debug information from device %q: %v", name, infoErr)
			} else {
				klog.Errorf("Device %q reported: %s", name, info)
			}
		}
	}()

	input := randomInput(*flagInputSize)
	if *flagMode != "dontblock" {
		if err = runBlocking(ctx, graph, input); err != nil {
			return errors.WithMessagef(err, "device %q", name)
		}
	}
	if *flagMode != "block" {
		if err = runNonBlocking(ctx, graph, input); err != nil {
			return errors.WithMessagef(err, "device %q", name)
		}
	}

	level, err := device.ThermalThrottlingLevel()
	if err != nil {
		klog.Warningf("Failed to read thermal throttling level of device %q: %v", name, err)
		err = nil
	} else {
		fmt.Printf("[%s] thermal throttling level: %s\n", name, level)
	}
	return graph.Deallocate()
}

// randomInput returns values in [0, 1), like a normalized image.
func randomInput(size int) []float16.Float16 {
	values := make([]float32, size)
	for ii := range values {
		values[ii] = rand.Float32()
	}
	return dtypes.Float16s(values)
}

// runBlocking submits the input and waits for its result, one at a time.
func runBlocking(ctx context.Context, graph *mvnc.Graph, input []float16.Float16) error {
	name := graph.Device().Name()
	if err := graph.SetBlocking(mvnc.Block); err != nil {
		return err
	}
	var minTime, maxTime, sumTime float32 = math32.Inf(1), 0, 0
	for range *flagIterations {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, err := mvnc.SubmitTensor(graph, input)
		if err != nil {
			return err
		}
		gotID, output, err := mvnc.RetrieveTensor[float16.Float16](graph)
		if err != nil {
			return err
		}
		if gotID != id {
			return errors.Errorf("submitted request #%d, but got result for request #%d", id, gotID)
		}
		total, err := graph.TotalTimeTaken()
		if err != nil {
			return err
		}
		minTime = min(minTime, total)
		maxTime = max(maxTime, total)
		sumTime += total
		argMax := dtypes.ArgMax(output)
		var best float32
		if argMax >= 0 {
			best = dtypes.ToFloat32(output[argMax])
		}
		fmt.Printf("[%s] request #%d: %d outputs, argmax=%d (%.3f), time=%.2fms\n",
			name, gotID, len(output), argMax, best, total)
	}
	if *flagIterations > 0 {
		fmt.Printf("[%s] block: %d requests, time min=%.2fms, mean=%.2fms, max=%.2fms\n",
			name, *flagIterations, minTime, sumTime/float32(*flagIterations), maxTime)
	}
	return nil
}

// runNonBlocking submits inputs until the device is busy, and then retrieves results until it is idle.
func runNonBlocking(ctx context.Context, graph *mvnc.Graph, input []float16.Float16) error {
	name := graph.Device().Name()
	if err := graph.SetBlocking(mvnc.DontBlock); err != nil {
		return err
	}
	var submitted, retrieved, polls int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := mvnc.SubmitTensor(graph, input)
		if errors.Is(err, mvnc.ErrBusy) {
			break
		}
		if err != nil {
			return err
		}
		submitted++
	}
	lastID := graph.LastRetrieved()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, output, err := mvnc.RetrieveTensor[float16.Float16](graph)
		if errors.Is(err, mvnc.ErrNoData) {
			polls++
			time.Sleep(*flagPollPeriod)
			continue
		}
		if errors.Is(err, mvnc.ErrIdle) {
			break
		}
		if err != nil {
			return err
		}
		if id != lastID+1 {
			return errors.Errorf("expected result for request #%d, got #%d", lastID+1, id)
		}
		lastID = id
		retrieved++
		fmt.Printf("[%s] request #%d: argmax=%d\n", name, id, dtypes.ArgMax(output))
	}
	if submitted != retrieved {
		return errors.Errorf("submitted %d requests, but retrieved %d results", submitted, retrieved)
	}
	fmt.Printf("[%s] dontblock: %d requests in flight, %d polls without data\n", name, submitted, polls)
	return nil
}
