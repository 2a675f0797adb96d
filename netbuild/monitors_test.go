package netbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheev13/logic-simulator/defparser"
)

func TestMakeMonitor(t *testing.T) {
	f := newNetFixture(t)
	m := NewMonitors(f.names, f.devices)
	errs := m.Errors()

	assert.Equal(t, errs.NoError, m.MakeMonitor(f.sw, nil))
	assert.Equal(t, errs.NoError, m.MakeMonitor(f.d, f.port("QBAR")))

	points := m.Points()
	require.Len(t, points, 2)
	assert.Equal(t, f.sw, points[0].Dev)
	assert.Equal(t, defparser.NoID, points[0].Port)
	assert.Equal(t, f.d, points[1].Dev)
	assert.Equal(t, *f.port("QBAR"), points[1].Port)
}

func TestMakeMonitorFaults(t *testing.T) {
	f := newNetFixture(t)
	m := NewMonitors(f.names, f.devices)
	errs := m.Errors()
	missing := f.names.Lookup([]string{"ghost"})[0]

	assert.Equal(t, errs.DeviceAbsent, m.MakeMonitor(missing, nil))
	// Inputs cannot be monitored.
	assert.Equal(t, errs.NotOutput, m.MakeMonitor(f.g, f.port("I1")))
	// A dtype output must be named.
	assert.Equal(t, errs.NotOutput, m.MakeMonitor(f.d, nil))

	require.Equal(t, errs.NoError, m.MakeMonitor(f.sw, nil))
	assert.Equal(t, errs.MonitorPresent, m.MakeMonitor(f.sw, nil))
}

func TestMonitorErrorCodesDisjoint(t *testing.T) {
	// All three collaborators allocate from the same names table, so their
	// code sets never collide.
	names, devices := newTestDevices()
	network := NewNetwork(names, devices)
	monitors := NewMonitors(names, devices)

	codes := []defparser.ErrorCode{
		devices.Errors().NoError, devices.Errors().BadDevice,
		network.Errors().NoError, network.Errors().PortAbsent,
		monitors.Errors().NoError, monitors.Errors().NotOutput,
	}
	seen := map[defparser.ErrorCode]bool{}
	for _, c := range codes {
		assert.False(t, seen[c], "code %d allocated twice", c)
		seen[c] = true
	}
}
