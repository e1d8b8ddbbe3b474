package mvnc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is the error returned by the operations of this package, for failures reported by libmvnc and for
// the conditions detected by the package itself (e.g.: CodeIdle, closed handles, protocol violations).
//
// Errors are returned wrapped with a stack trace (see github.com/pkg/errors), so use errors.Is with one of
// the sentinel values (ErrBusy, ErrNoData, ...) or CodeOf to inspect them.
type Error struct {
	Code ErrorCode

	// Status is the native status code, or StatusOK if the error was not reported by libmvnc.
	Status Status

	// Op is the name of the operation that failed.
	Op string

	msg string
}

// Sentinel errors to be used with errors.Is: they match any *Error with the same Code.
var (
	ErrBusy                 = &Error{Code: CodeBusy}
	ErrDeviceError          = &Error{Code: CodeDeviceError}
	ErrOutOfMemory          = &Error{Code: CodeOutOfMemory}
	ErrDeviceNotFound       = &Error{Code: CodeDeviceNotFound}
	ErrInvalidParameters    = &Error{Code: CodeInvalidParameters}
	ErrTimeout              = &Error{Code: CodeTimeout}
	ErrBootFileNotFound     = &Error{Code: CodeBootFileNotFound}
	ErrNoData               = &Error{Code: CodeNoData}
	ErrGone                 = &Error{Code: CodeGone}
	ErrUnsupportedGraphFile = &Error{Code: CodeUnsupportedGraphFile}
	ErrDeviceReportedError  = &Error{Code: CodeDeviceReportedError}
	ErrUnknown              = &Error{Code: CodeUnknown}
	ErrIdle                 = &Error{Code: CodeIdle}
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "mvnc"
	if e.Op != "" {
		msg += " " + e.Op
	}
	msg += ": " + e.Code.String()
	if e.Status != StatusOK {
		msg += fmt.Sprintf(" (status=%d)", int32(e.Status))
	}
	if e.msg != "" {
		msg += ": " + e.msg
	}
	return msg
}

// Is reports whether target is an *Error with the same Code. Used by errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Temporary returns true for the routine conditions of the non-blocking mode (CodeBusy, CodeNoData
// and CodeIdle): they signal that the call should be retried later, or that some other call should be made
// first, not a failure.
func (e *Error) Temporary() bool {
	switch e.Code {
	case CodeBusy, CodeNoData, CodeIdle:
		return true
	}
	return false
}

// CodeOf returns the ErrorCode of err: CodeSuccess if err is nil, and CodeUnknown if err is not
// (or doesn't wrap) an *Error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeSuccess
	}
	var mvncErr *Error
	if errors.As(err, &mvncErr) {
		return mvncErr.Code
	}
	return CodeUnknown
}

// IsTemporary returns whether err is a routine non-blocking condition, see (*Error).Temporary.
func IsTemporary(err error) bool {
	var mvncErr *Error
	return errors.As(err, &mvncErr) && mvncErr.Temporary()
}

// toError converts a status returned by the libmvnc function op to an error, with a stack trace.
// It returns nil for StatusOK.
func toError(op string, status Status) error {
	if status == StatusOK {
		return nil
	}
	return errors.WithStack(&Error{Code: status.Code(), Status: status, Op: op})
}

// newError returns an error not reported by libmvnc, with a stack trace.
func newError(op string, code ErrorCode, format string, args ...any) error {
	return errors.WithStack(&Error{Code: code, Op: op, msg: fmt.Sprintf(format, args...)})
}
