package mvnc

// Enums defined on a separate file, so they work with enumer -- it doesn't work with files using cgo.

// Blocking configures whether Graph.Submit and Graph.Retrieve block waiting for the device.
// The values match the ones used by libmvnc for the "dont block" graph option.
type Blocking int

//go:generate go tool enumer -type=Blocking enums.go

const (
	// Block makes Graph.Submit wait for room in the device and Graph.Retrieve wait for the computation
	// to finish. This is the default.
	Block Blocking = iota

	// DontBlock makes Graph.Submit return ErrBusy when the device has no room for more inputs, and
	// Graph.Retrieve return ErrNoData when the next computation is not finished.
	DontBlock
)

// ThermalThrottlingLevel reported by the device, see Device.ThermalThrottlingLevel.
type ThermalThrottlingLevel int

//go:generate go tool enumer -type=ThermalThrottlingLevel -trimprefix=Thermal enums.go

const (
	// ThermalNormal means no throttling.
	ThermalNormal ThermalThrottlingLevel = iota

	// ThermalLowerLimitReached means the lower temperature limit was reached: the device sleeps briefly
	// between inferences.
	ThermalLowerLimitReached

	// ThermalHigherLimitReached means the higher temperature limit was reached: the device sleeps longer
	// between inferences.
	ThermalHigherLimitReached

	// ThermalUnknown is returned (along an error) if the device reports an undocumented value.
	ThermalUnknown
)

// LogLevel of the libmvnc library, a process-wide setting. See Library.SetLogLevel.
type LogLevel int

//go:generate go tool enumer -type=LogLevel -trimprefix=Log enums.go

const (
	// LogOff disables logging by libmvnc.
	LogOff LogLevel = iota

	// LogError logs only errors.
	LogError

	// LogVerbose logs everything.
	LogVerbose
)
