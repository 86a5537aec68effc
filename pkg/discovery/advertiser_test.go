package discovery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upnp-panel/upnp-go/pkg/discovery"
	"github.com/upnp-panel/upnp-go/pkg/upnp"
)

// TestTXTRecords verifies the TXT record format of a panel announcement.
func TestTXTRecords(t *testing.T) {
	root := upnp.NewRootDevice("root")
	root.SetDisplayName("Home Panel")
	root.AddDevice(upnp.NewDevice("thermostat"))
	root.AddDevice(upnp.NewDevice("lamp"))

	records := discovery.TXTRecords(root)
	require.Len(t, records, 5)
	assert.Equal(t, "uuid="+root.UUID(), records[0])
	assert.Equal(t, "path=/", records[1])
	assert.Equal(t, "type="+root.Type(), records[2])
	assert.Equal(t, "device0=/root/thermostat", records[3])
	assert.Equal(t, "device1=/root/lamp", records[4])
}

// TestTXTRecordsFollowTree verifies records reflect attaches made after
// the first announcement, for Update.
func TestTXTRecordsFollowTree(t *testing.T) {
	root := upnp.NewRootDevice("root")
	require.Len(t, discovery.TXTRecords(root), 3)

	root.AddDevice(upnp.NewDevice("late"))
	records := discovery.TXTRecords(root)
	require.Len(t, records, 4)
	assert.Equal(t, "device0=/root/late", records[3])
}

func TestInstanceName(t *testing.T) {
	root := upnp.NewRootDevice("root")
	root.SetDisplayName("Home Panel")
	assert.Equal(t, "Home Panel", discovery.InstanceName(root))

	long := upnp.NewRootDevice("root")
	long.SetDisplayName(strings.Repeat("n", upnp.NameSize))
	assert.LessOrEqual(t, len(discovery.InstanceName(long)), discovery.MaxInstanceNameLen)
}
