package netbuild

import "github.com/Sheev13/logic-simulator/defparser"

// Monitors registers the output signals to be recorded during simulation.
// It implements defparser.Monitors.
type Monitors struct {
	devices *Devices
	errs    defparser.MonitorErrors
	points  []Signal
	seen    map[Signal]bool
}

// NewMonitors returns an empty monitor registry over the given devices.
func NewMonitors(names *defparser.Names, devices *Devices) *Monitors {
	codes := names.UniqueErrorCodes(4)
	return &Monitors{
		devices: devices,
		seen:    make(map[Signal]bool),
		errs: defparser.MonitorErrors{
			NoError:        codes[0],
			NotOutput:      codes[1],
			MonitorPresent: codes[2],
			DeviceAbsent:   codes[3],
		},
	}
}

// Errors returns the fault code set used by MakeMonitor.
func (m *Monitors) Errors() defparser.MonitorErrors { return m.errs }

// MakeMonitor registers a monitoring point on the signal (dev, port). A nil
// port names the device's anonymous output.
func (m *Monitors) MakeMonitor(dev defparser.NameID, port *defparser.NameID) defparser.ErrorCode {
	device, ok := m.devices.Get(dev)
	if !ok {
		return m.errs.DeviceAbsent
	}
	if !device.HasOutput(portID(port)) {
		return m.errs.NotOutput
	}
	sig := Signal{Dev: dev, Port: portID(port)}
	if m.seen[sig] {
		return m.errs.MonitorPresent
	}
	m.seen[sig] = true
	m.points = append(m.points, sig)
	return m.errs.NoError
}

// Points returns the monitored signals in registration order.
func (m *Monitors) Points() []Signal {
	return append([]Signal(nil), m.points...)
}
