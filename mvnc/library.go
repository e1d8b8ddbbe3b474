package mvnc

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Library represents the loaded libmvnc, through which devices are enumerated and opened.
//
// Loaded libraries are singletons and cached (GetLibrary will return a pointer to the same Library if
// called with the same name or path). Settings like the log level are process-wide.
type Library struct {
	name, path string
	drv        driver
	dllHandle  dllHandleWrapper
}

// newLibrary creates a Library over the given driver.
// Internal: use GetLibrary instead.
func newLibrary(name, libPath string, drv driver) *Library {
	return &Library{name: name, path: libPath, drv: drv}
}

// GetLibrary returns the library with the given name -- usually DefaultLibraryName ("mvnc"). But one
// can also give the full path to the shared library file.
//
// Loaded libraries are singletons and cached.
//
// Libraries are searched in the MVNC_LIBRARY_PATH directory -- or directories, if it is a ":" separated list.
// If it is not set it will search in "/usr/local/lib" and the standard libraries directories of the
// system (in linux in LD_LIBRARY_PATH and /etc/ld.so.conf file). As a last resort the system dynamic loader
// is used.
func GetLibrary(name string) (*Library, error) {
	if name == "" {
		name = DefaultLibraryName
	}
	return loadNamedLibrary(name)
}

// Name returns the name of the library, as given to GetLibrary.
func (lib *Library) Name() string {
	return lib.name
}

// Path returns the path from where the library was loaded.
func (lib *Library) Path() string {
	return lib.path
}

// String implements fmt.Stringer.
func (lib *Library) String() string {
	if lib.path == lib.name {
		return fmt.Sprintf("libmvnc (%s)", lib.path)
	}
	return fmt.Sprintf("libmvnc %q (%s)", lib.name, lib.path)
}

// DeviceName returns the name of the device at the given zero-based index, or false if there is no
// device there.
//
// This is how devices are enumerated: call it with increasing indices until it returns false.
// Failures to decode the name are also reported as absence, and logged.
func (lib *Library) DeviceName(index int) (name string, found bool) {
	if index < 0 {
		return "", false
	}
	buf := make([]byte, maxNameSize)
	status := lib.drv.GetDeviceName(index, buf)
	if status != StatusOK {
		if status != StatusDeviceNotFound {
			klog.V(1).Infof("mvnc: failed to get name of device #%d: %s", index, status)
		}
		return "", false
	}
	name, err := decodeCString("GetDeviceName", buf)
	if err != nil {
		klog.Warningf("mvnc: failed to decode name of device #%d: %v", index, err)
		return "", false
	}
	return name, true
}

// DeviceNames returns the names of all devices currently connected, in index order.
func (lib *Library) DeviceNames() []string {
	var names []string
	for index := 0; ; index++ {
		name, found := lib.DeviceName(index)
		if !found {
			return names
		}
		names = append(names, name)
	}
}

// OpenDevice opens the device with the given name (see DeviceNames), booting it if needed.
//
// The Device must be closed with Device.Close when no longer needed. It is also closed if garbage collected.
func (lib *Library) OpenDevice(name string) (*Device, error) {
	if name == "" || len(name) >= maxNameSize {
		return nil, newError("OpenDevice", CodeInvalidParameters,
			"device name %q must have between 1 and %d bytes", name, maxNameSize-1)
	}
	for _, c := range []byte(name) {
		if c == 0 {
			return nil, newError("OpenDevice", CodeInvalidParameters, "device name %q has a NUL character", name)
		}
	}
	handle, status := lib.drv.OpenDevice(name)
	if err := toError("OpenDevice", status); err != nil {
		return nil, errors.WithMessagef(err, "failed to open device %q", name)
	}
	if handle == nil {
		return nil, newError("OpenDevice", CodeDeviceError, "libmvnc returned a nil handle for device %q", name)
	}
	return newDevice(lib, name, handle), nil
}

// LogLevel returns the current (process-wide) log level of libmvnc.
func (lib *Library) LogLevel() (LogLevel, error) {
	data := make([]byte, int32Size)
	size, status := lib.drv.GetGlobalOption(optLogLevel, data)
	if err := toError("GetGlobalOption", status); err != nil {
		return LogOff, err
	}
	level := LogLevel(decodeInt32("log level", data, size))
	if !level.IsALogLevel() {
		return LogOff, newError("GetGlobalOption", CodeUnknown, "unexpected log level value %d", int(level))
	}
	return level, nil
}

// SetLogLevel sets the (process-wide) log level of libmvnc. It takes effect immediately, and can be called
// at any time.
func (lib *Library) SetLogLevel(level LogLevel) error {
	if !level.IsALogLevel() {
		return newError("SetGlobalOption", CodeInvalidParameters, "invalid log level %s", level)
	}
	return toError("SetGlobalOption", lib.drv.SetGlobalOption(optLogLevel, encodeInt32(int32(level))))
}

// LogLevelFromVerbosity maps klog's verbosity to a libmvnc log level: errors are always logged, and
// everything is logged from verbosity 2 on.
func LogLevelFromVerbosity() LogLevel {
	if klog.V(2).Enabled() {
		return LogVerbose
	}
	return LogError
}
