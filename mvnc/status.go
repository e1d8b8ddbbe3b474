package mvnc

import "fmt"

// Status is a status code returned by the libmvnc functions.
type Status int32

// Status codes defined in mvnc.h. Anything else is translated to CodeUnknown.
const (
	StatusOK                   Status = 0
	StatusBusy                 Status = -1  // Device is busy, retry later.
	StatusError                Status = -2  // Error communicating with the device.
	StatusOutOfMemory          Status = -3  // Out of memory.
	StatusDeviceNotFound       Status = -4  // No device at the given index or name.
	StatusInvalidParameters    Status = -5  // At least one of the given parameters is wrong.
	StatusTimeout              Status = -6  // Timeout in the communication with the device.
	StatusMvcmdNotFound        Status = -7  // The file to boot Myriad was not found.
	StatusNoData               Status = -8  // No data to return, call LoadTensor first.
	StatusGone                 Status = -9  // The graph or device has been closed during the operation.
	StatusUnsupportedGraphFile Status = -10 // The graph file version is not supported.
	StatusMyriadError          Status = -11 // An error has been reported by the device, use the debug info option.
)

var statusCodes = map[Status]ErrorCode{
	StatusOK:                   CodeSuccess,
	StatusBusy:                 CodeBusy,
	StatusError:                CodeDeviceError,
	StatusOutOfMemory:          CodeOutOfMemory,
	StatusDeviceNotFound:       CodeDeviceNotFound,
	StatusInvalidParameters:    CodeInvalidParameters,
	StatusTimeout:              CodeTimeout,
	StatusMvcmdNotFound:        CodeBootFileNotFound,
	StatusNoData:               CodeNoData,
	StatusGone:                 CodeGone,
	StatusUnsupportedGraphFile: CodeUnsupportedGraphFile,
	StatusMyriadError:          CodeDeviceReportedError,
}

// Code translates the status to an ErrorCode. Undocumented statuses are translated to CodeUnknown.
func (s Status) Code() ErrorCode {
	if code, found := statusCodes[s]; found {
		return code
	}
	return CodeUnknown
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return fmt.Sprintf("%s(%d)", s.Code(), int32(s))
}
