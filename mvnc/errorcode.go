package mvnc

// ErrorCode defined on a separate file, so it will work with enumer -- it doesn't work with files using cgo.

// ErrorCode is the closed set of error kinds reported by this package.
//
// All codes but CodeIdle are translated from the native libmvnc status codes (see Status). Codes not known
// to this package are reported as CodeUnknown.
type ErrorCode int

//go:generate go tool enumer -type=ErrorCode -trimprefix=Code errorcode.go

const (
	// CodeSuccess is returned by CodeOf(nil).
	CodeSuccess ErrorCode = iota

	// CodeBusy means the device has no room for another input: retrieve results first.
	// It is a routine condition in non-blocking mode.
	CodeBusy

	// CodeDeviceError is an error communicating with the device, or a result that violates the
	// libmvnc protocol (e.g. a result size that is not a multiple of the element size).
	CodeDeviceError

	CodeOutOfMemory

	// CodeDeviceNotFound means there is no device with the given index or name.
	CodeDeviceNotFound

	CodeInvalidParameters
	CodeTimeout

	// CodeBootFileNotFound means the firmware file used to boot the device was not found.
	CodeBootFileNotFound

	// CodeNoData means a computation was submitted but is not finished yet.
	// It is a routine condition in non-blocking mode.
	CodeNoData

	// CodeGone means the graph or device has been closed, possibly during the operation.
	CodeGone

	// CodeUnsupportedGraphFile means the graph file version is not supported by the device firmware.
	CodeUnsupportedGraphFile

	// CodeDeviceReportedError means the device reported an error: see Graph.DebugInfo for details.
	CodeDeviceReportedError

	// CodeUnknown is used for native status codes not documented, and for values that couldn't be decoded.
	CodeUnknown

	// CodeIdle means there are no submitted inputs pending retrieval. It is never returned by libmvnc,
	// Graph.Retrieve reports it without calling the device.
	CodeIdle
)
