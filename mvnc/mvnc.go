// Package mvnc implements a Go wrapper for the Movidius Neural Compute SDK (libmvnc) C API, used to run
// compiled neural network graphs on Movidius Neural Compute Stick devices.
//
// The typical flow is:
//
//  1. Load the library with GetLibrary("mvnc") -- it's loaded with dlopen, so no SDK is needed to build.
//  2. Enumerate devices with Library.DeviceNames and open one with Library.OpenDevice.
//  3. Allocate a compiled graph on the device with Device.AllocateGraph.
//  4. Feed tensors with Graph.Submit (or SubmitTensor) and collect results with Graph.Retrieve
//     (or RetrieveTensor). Each result carries the request id returned by the corresponding Submit.
//  5. Release everything with Graph.Deallocate and Device.Close.
//
// A Graph can be set to non-blocking mode (Graph.SetBlocking(DontBlock)): Submit then returns an error
// matching ErrBusy when there is no room for more inputs, and Retrieve returns ErrNoData while the
// computation is not finished and ErrIdle when there is nothing left to retrieve. These are routine
// conditions: (*Error).Temporary returns true for them.
//
// Devices and graphs are not safe for concurrent use: use one goroutine per device.
package mvnc

// Since CGO C types cannot cross boundaries of a package (see issue https://github.com/golang/go/issues/13467)
// the C helpers in chelper.go are local to this package.
