// Package netbuild implements the semantic side of circuit definition
// parsing: device creation, signal wiring and monitor registration. Its
// types satisfy the collaborator interfaces in defparser, validating every
// action and reporting faults through error codes allocated from the shared
// names table.
package netbuild

import (
	"fmt"

	"github.com/Sheev13/logic-simulator/defparser"
)

// DeviceKind identifies one of the supported device types.
type DeviceKind int

const (
	KindClock DeviceKind = iota
	KindSwitch
	KindDType
	KindAnd
	KindNand
	KindOr
	KindNor
	KindXor
)

var deviceKindNames = map[DeviceKind]string{
	KindClock:  "CLOCK",
	KindSwitch: "SWITCH",
	KindDType:  "DTYPE",
	KindAnd:    "AND",
	KindNand:   "NAND",
	KindOr:     "OR",
	KindNor:    "NOR",
	KindXor:    "XOR",
}

func (k DeviceKind) String() string {
	if s, ok := deviceKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DeviceKind(%d)", int(k))
}

// maxGateInputs is the largest fan-in a variable-input gate accepts.
const maxGateInputs = 16

// source records which signal drives an input port.
type source struct {
	dev  defparser.NameID
	port defparser.NameID // NoID for an anonymous output
}

// Device is one created device: its ports and, for each input, the signal
// driving it (nil while unconnected).
type Device struct {
	ID        defparser.NameID
	Kind      DeviceKind
	Qualifier int // clock half-period, switch setting or gate fan-in

	inputs  map[defparser.NameID]*source
	outputs map[defparser.NameID]bool // NoID keys the anonymous output
}

// HasInput reports whether port names an input of the device.
func (d *Device) HasInput(port defparser.NameID) bool {
	_, ok := d.inputs[port]
	return ok
}

// HasOutput reports whether port names an output of the device. NoID asks
// for the anonymous output.
func (d *Device) HasOutput(port defparser.NameID) bool {
	return d.outputs[port]
}

// Devices creates and owns the device population. It implements
// defparser.Devices.
type Devices struct {
	names   *defparser.Names
	errs    defparser.DeviceErrors
	devices map[defparser.NameID]*Device
	order   []defparser.NameID

	kindIDs map[defparser.NameID]DeviceKind

	gateInputIDs [maxGateInputs]defparser.NameID // I1 .. I16
	DataID       defparser.NameID
	ClkID        defparser.NameID
	SetID        defparser.NameID
	ClearID      defparser.NameID
	QID          defparser.NameID
	QbarID       defparser.NameID
}

// NewDevices returns an empty device population. The device kind and port
// names are interned into names up front so signal references resolve by id.
func NewDevices(names *defparser.Names) *Devices {
	d := &Devices{
		names:   names,
		devices: make(map[defparser.NameID]*Device),
		kindIDs: make(map[defparser.NameID]DeviceKind, len(deviceKindNames)),
	}
	codes := names.UniqueErrorCodes(6)
	d.errs = defparser.DeviceErrors{
		NoError:          codes[0],
		InvalidQualifier: codes[1],
		NoQualifier:      codes[2],
		QualifierPresent: codes[3],
		BadDevice:        codes[4],
		DevicePresent:    codes[5],
	}

	for kind, name := range deviceKindNames {
		d.kindIDs[names.Lookup([]string{name})[0]] = kind
	}
	for i := 0; i < maxGateInputs; i++ {
		d.gateInputIDs[i] = names.Lookup([]string{fmt.Sprintf("I%d", i+1)})[0]
	}
	ports := names.Lookup([]string{"DATA", "CLK", "SET", "CLEAR", "Q", "QBAR"})
	d.DataID, d.ClkID, d.SetID, d.ClearID, d.QID, d.QbarID =
		ports[0], ports[1], ports[2], ports[3], ports[4], ports[5]
	return d
}

// Errors returns the fault code set used by MakeDevice.
func (d *Devices) Errors() defparser.DeviceErrors { return d.errs }

// Get returns the device with the given id.
func (d *Devices) Get(id defparser.NameID) (*Device, bool) {
	dev, ok := d.devices[id]
	return dev, ok
}

// All returns every device in creation order.
func (d *Devices) All() []*Device {
	out := make([]*Device, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.devices[id])
	}
	return out
}

// MakeDevice validates the definition and, if it is acceptable, adds the
// device to the population.
func (d *Devices) MakeDevice(id, kind defparser.NameID, qual *int) defparser.ErrorCode {
	deviceKind, ok := d.kindIDs[kind]
	if !ok {
		return d.errs.BadDevice
	}
	if _, exists := d.devices[id]; exists {
		return d.errs.DevicePresent
	}

	dev := &Device{
		ID:      id,
		Kind:    deviceKind,
		inputs:  make(map[defparser.NameID]*source),
		outputs: make(map[defparser.NameID]bool),
	}

	switch deviceKind {
	case KindClock:
		if qual == nil {
			return d.errs.NoQualifier
		}
		if *qual < 1 {
			return d.errs.InvalidQualifier
		}
		dev.Qualifier = *qual
		dev.outputs[defparser.NoID] = true

	case KindSwitch:
		if qual == nil {
			return d.errs.NoQualifier
		}
		if *qual != 0 && *qual != 1 {
			return d.errs.InvalidQualifier
		}
		dev.Qualifier = *qual
		dev.outputs[defparser.NoID] = true

	case KindAnd, KindNand, KindOr, KindNor:
		if qual == nil {
			return d.errs.NoQualifier
		}
		if *qual < 1 || *qual > maxGateInputs {
			return d.errs.InvalidQualifier
		}
		dev.Qualifier = *qual
		for i := 0; i < *qual; i++ {
			dev.inputs[d.gateInputIDs[i]] = nil
		}
		dev.outputs[defparser.NoID] = true

	case KindXor:
		if qual != nil {
			return d.errs.QualifierPresent
		}
		// An xor gate always has exactly two inputs.
		dev.Qualifier = 2
		dev.inputs[d.gateInputIDs[0]] = nil
		dev.inputs[d.gateInputIDs[1]] = nil
		dev.outputs[defparser.NoID] = true

	case KindDType:
		if qual != nil {
			return d.errs.QualifierPresent
		}
		for _, port := range []defparser.NameID{d.DataID, d.ClkID, d.SetID, d.ClearID} {
			dev.inputs[port] = nil
		}
		dev.outputs[d.QID] = true
		dev.outputs[d.QbarID] = true
	}

	d.devices[id] = dev
	d.order = append(d.order, id)
	return d.errs.NoError
}
