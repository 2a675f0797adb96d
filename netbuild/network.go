package netbuild

import "github.com/Sheev13/logic-simulator/defparser"

// Network wires device signals together and tracks which inputs are driven.
// It implements defparser.Network. The two ends of a connection may arrive
// in either order; what matters is that exactly one end is an output and
// the other an unconnected input.
type Network struct {
	devices *Devices
	errs    defparser.NetworkErrors
}

// NewNetwork returns a Network over the given device population.
func NewNetwork(names *defparser.Names, devices *Devices) *Network {
	codes := names.UniqueErrorCodes(6)
	return &Network{
		devices: devices,
		errs: defparser.NetworkErrors{
			NoError:        codes[0],
			InputToInput:   codes[1],
			OutputToOutput: codes[2],
			InputConnected: codes[3],
			PortAbsent:     codes[4],
			DeviceAbsent:   codes[5],
		},
	}
}

// Errors returns the fault code set used by MakeConnection.
func (n *Network) Errors() defparser.NetworkErrors { return n.errs }

// signalRole classifies one end of a connection.
type signalRole int

const (
	roleAbsent signalRole = iota
	roleOutput
	roleInput
)

// resolve classifies the (device, port) pair. A nil port asks for the
// device's anonymous output.
func (n *Network) resolve(dev *Device, port *defparser.NameID) signalRole {
	if port == nil {
		if dev.HasOutput(defparser.NoID) {
			return roleOutput
		}
		return roleAbsent
	}
	if dev.HasOutput(*port) {
		return roleOutput
	}
	if dev.HasInput(*port) {
		return roleInput
	}
	return roleAbsent
}

func portID(port *defparser.NameID) defparser.NameID {
	if port == nil {
		return defparser.NoID
	}
	return *port
}

// MakeConnection connects the signal (outDev, outPort) to (inDev, inPort).
func (n *Network) MakeConnection(outDev defparser.NameID, outPort *defparser.NameID,
	inDev defparser.NameID, inPort *defparser.NameID) defparser.ErrorCode {

	first, ok := n.devices.Get(outDev)
	if !ok {
		return n.errs.DeviceAbsent
	}
	second, ok := n.devices.Get(inDev)
	if !ok {
		return n.errs.DeviceAbsent
	}

	firstRole := n.resolve(first, outPort)
	secondRole := n.resolve(second, inPort)
	if firstRole == roleAbsent || secondRole == roleAbsent {
		return n.errs.PortAbsent
	}
	if firstRole == roleOutput && secondRole == roleOutput {
		return n.errs.OutputToOutput
	}
	if firstRole == roleInput && secondRole == roleInput {
		return n.errs.InputToInput
	}

	driver, driverPort := first, portID(outPort)
	target, targetPort := second, portID(inPort)
	if firstRole == roleInput {
		driver, driverPort = second, portID(inPort)
		target, targetPort = first, portID(outPort)
	}

	if target.inputs[targetPort] != nil {
		return n.errs.InputConnected
	}
	target.inputs[targetPort] = &source{dev: driver.ID, port: driverPort}
	return n.errs.NoError
}

// Complete reports whether every input of every device is driven.
func (n *Network) Complete() bool {
	for _, dev := range n.devices.All() {
		for _, src := range dev.inputs {
			if src == nil {
				return false
			}
		}
	}
	return true
}

// Unconnected returns the (device, input port) pairs still without a driver,
// in device creation order.
func (n *Network) Unconnected() []Signal {
	var out []Signal
	for _, dev := range n.devices.All() {
		for port, src := range dev.inputs {
			if src == nil {
				out = append(out, Signal{Dev: dev.ID, Port: port})
			}
		}
	}
	return out
}

// Signal names one device terminal. Port is NoID for an anonymous output.
type Signal struct {
	Dev  defparser.NameID
	Port defparser.NameID
}
