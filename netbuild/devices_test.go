package netbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheev13/logic-simulator/defparser"
)

func intp(v int) *int { return &v }

func newTestDevices() (*defparser.Names, *Devices) {
	names := defparser.NewNames()
	return names, NewDevices(names)
}

func kindID(names *defparser.Names, kind string) defparser.NameID {
	return names.Lookup([]string{kind})[0]
}

func TestMakeDeviceGate(t *testing.T) {
	names, d := newTestDevices()
	id := names.Lookup([]string{"g1"})[0]

	code := d.MakeDevice(id, kindID(names, "NAND"), intp(3))
	assert.Equal(t, d.Errors().NoError, code)

	dev, ok := d.Get(id)
	require.True(t, ok)
	assert.Equal(t, KindNand, dev.Kind)
	assert.Equal(t, 3, dev.Qualifier)
	assert.True(t, dev.HasInput(d.gateInputIDs[0]))
	assert.True(t, dev.HasInput(d.gateInputIDs[2]))
	assert.False(t, dev.HasInput(d.gateInputIDs[3]))
	assert.True(t, dev.HasOutput(defparser.NoID))
}

func TestMakeDeviceQualifierRules(t *testing.T) {
	tests := []struct {
		name string
		kind string
		qual *int
		want func(defparser.DeviceErrors) defparser.ErrorCode
	}{
		{"clock ok", "CLOCK", intp(5), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoError }},
		{"clock zero", "CLOCK", intp(0), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.InvalidQualifier }},
		{"clock missing", "CLOCK", nil, func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoQualifier }},
		{"switch on", "SWITCH", intp(1), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoError }},
		{"switch out of range", "SWITCH", intp(2), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.InvalidQualifier }},
		{"gate min", "AND", intp(1), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoError }},
		{"gate max", "OR", intp(16), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoError }},
		{"gate too wide", "NOR", intp(17), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.InvalidQualifier }},
		{"gate missing", "NAND", nil, func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoQualifier }},
		{"xor plain", "XOR", nil, func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoError }},
		{"xor qualified", "XOR", intp(2), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.QualifierPresent }},
		{"dtype plain", "DTYPE", nil, func(e defparser.DeviceErrors) defparser.ErrorCode { return e.NoError }},
		{"dtype qualified", "DTYPE", intp(1), func(e defparser.DeviceErrors) defparser.ErrorCode { return e.QualifierPresent }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, d := newTestDevices()
			id := names.Lookup([]string{"dev"})[0]
			code := d.MakeDevice(id, kindID(names, tt.kind), tt.qual)
			assert.Equal(t, tt.want(d.Errors()), code)
		})
	}
}

func TestMakeDeviceUnknownKind(t *testing.T) {
	names, d := newTestDevices()
	ids := names.Lookup([]string{"dev", "MAGIC"})
	code := d.MakeDevice(ids[0], ids[1], nil)
	assert.Equal(t, d.Errors().BadDevice, code)
	_, ok := d.Get(ids[0])
	assert.False(t, ok)
}

func TestMakeDeviceDuplicate(t *testing.T) {
	names, d := newTestDevices()
	id := names.Lookup([]string{"sw"})[0]
	sw := kindID(names, "SWITCH")

	assert.Equal(t, d.Errors().NoError, d.MakeDevice(id, sw, intp(0)))
	assert.Equal(t, d.Errors().DevicePresent, d.MakeDevice(id, sw, intp(1)))
}

func TestMakeDeviceRejectedLeavesNoTrace(t *testing.T) {
	names, d := newTestDevices()
	id := names.Lookup([]string{"c"})[0]
	assert.Equal(t, d.Errors().InvalidQualifier, d.MakeDevice(id, kindID(names, "CLOCK"), intp(-1)))
	assert.Empty(t, d.All())
}

func TestDTypePorts(t *testing.T) {
	names, d := newTestDevices()
	id := names.Lookup([]string{"d1"})[0]
	require.Equal(t, d.Errors().NoError, d.MakeDevice(id, kindID(names, "DTYPE"), nil))

	dev, _ := d.Get(id)
	for _, port := range []defparser.NameID{d.DataID, d.ClkID, d.SetID, d.ClearID} {
		assert.True(t, dev.HasInput(port))
	}
	assert.True(t, dev.HasOutput(d.QID))
	assert.True(t, dev.HasOutput(d.QbarID))
	assert.False(t, dev.HasOutput(defparser.NoID))
}

func TestDevicesAllPreservesOrder(t *testing.T) {
	names, d := newTestDevices()
	ids := names.Lookup([]string{"a", "b", "c"})
	sw := kindID(names, "SWITCH")
	for _, id := range ids {
		require.Equal(t, d.Errors().NoError, d.MakeDevice(id, sw, intp(0)))
	}
	all := d.All()
	require.Len(t, all, 3)
	for i, id := range ids {
		assert.Equal(t, id, all[i].ID)
	}
}
