package defparser

// The parser never builds the logic network itself. Each syntactically
// complete unit is handed to one of the collaborator interfaces below, and
// any code other than the collaborator's NoError is translated into a
// semantic diagnostic. Collaborators allocate their code sets from
// Names.UniqueErrorCodes so the sets never overlap.

// DeviceErrors is the semantic fault set a Devices collaborator defines.
type DeviceErrors struct {
	NoError          ErrorCode
	InvalidQualifier ErrorCode
	NoQualifier      ErrorCode
	QualifierPresent ErrorCode
	BadDevice        ErrorCode
	DevicePresent    ErrorCode
}

// Devices builds devices from parsed definitions.
type Devices interface {
	// MakeDevice creates the device. qual is nil when the definition had no
	// qual clause.
	MakeDevice(id, kind NameID, qual *int) ErrorCode
	Errors() DeviceErrors
}

// NetworkErrors is the semantic fault set a Network collaborator defines.
type NetworkErrors struct {
	NoError        ErrorCode
	InputToInput   ErrorCode
	OutputToOutput ErrorCode
	InputConnected ErrorCode
	PortAbsent     ErrorCode
	DeviceAbsent   ErrorCode
}

// Network wires device signals together.
type Network interface {
	// MakeConnection connects two signals. A nil port id names a device's
	// anonymous output.
	MakeConnection(outDev NameID, outPort *NameID, inDev NameID, inPort *NameID) ErrorCode
	Errors() NetworkErrors
	// Complete reports whether every device input is driven.
	Complete() bool
}

// MonitorErrors is the semantic fault set a Monitors collaborator defines.
type MonitorErrors struct {
	NoError        ErrorCode
	NotOutput      ErrorCode
	MonitorPresent ErrorCode
	DeviceAbsent   ErrorCode
}

// Monitors attaches monitoring points to signals.
type Monitors interface {
	MakeMonitor(dev NameID, port *NameID) ErrorCode
	Errors() MonitorErrors
}
