package cluster_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"proxboard/internal/cluster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureServer struct {
	srv     *httptest.Server
	logins  int32
	fail401 int32
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func newFixtureServer(t *testing.T) *fixtureServer {
	t.Helper()
	f := &fixtureServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api2/json/access/ticket", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.logins, 1)
		writeData(w, map[string]string{"ticket": "PVE:ticket", "CSRFPreventionToken": "token"})
	})

	mux.HandleFunc("/api2/json/cluster/status", func(w http.ResponseWriter, r *http.Request) {
		if atomic.CompareAndSwapInt32(&f.fail401, 1, 0) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeData(w, []map[string]interface{}{
			{"type": "cluster", "name": "homelab", "quorate": 1},
			{"type": "node", "name": "pve1"},
		})
	})

	mux.HandleFunc("/api2/json/cluster/resources", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") == "vm" {
			writeData(w, []map[string]interface{}{
				{"type": "qemu", "node": "pve2", "vmid": 101, "name": "web01", "status": "running",
					"cpu": 0.1, "maxcpu": 4, "mem": 1073741824, "maxmem": 4294967296,
					"tags": "plb_affinity_web"},
				{"type": "lxc", "node": "pve1", "vmid": 201, "status": "stopped"},
			})
			return
		}
		writeData(w, []map[string]interface{}{
			{"type": "node", "node": "pve1", "status": "online",
				"cpu": 0.25, "maxcpu": 8, "mem": 8589934592, "maxmem": 17179869184,
				"disk": 250, "maxdisk": 1000},
			{"type": "node", "node": "pve2", "status": "offline",
				"cpu": 0.5, "maxcpu": 8, "mem": 4294967296, "maxmem": 17179869184,
				"disk": 250, "maxdisk": 1000},
			{"type": "qemu", "vmid": 101, "status": "running"},
			{"type": "qemu", "vmid": 102, "status": "stopped"},
			{"type": "lxc", "vmid": 201, "status": "running"},
		})
	})

	mux.HandleFunc("/api2/json/nodes", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{
			{"node": "pve1", "status": "online", "cpu": 0.25, "maxcpu": 8,
				"mem": 8589934592, "maxmem": 17179869184, "disk": 250, "maxdisk": 1000, "uptime": 3600},
			{"node": "pve2"},
		})
	})
	mux.HandleFunc("/api2/json/nodes/pve1/qemu", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{
			{"vmid": 101, "name": "web01", "status": "running", "cpu": 0.1, "cpus": 4,
				"mem": 1073741824, "maxmem": 4294967296},
			{"vmid": 102, "name": "db01", "status": "stopped"},
		})
	})
	mux.HandleFunc("/api2/json/nodes/pve1/lxc", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{
			{"vmid": 201, "status": "running"},
		})
	})

	mux.HandleFunc("/api2/json/cluster/tasks", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{
			{"upid": "UPID:pve1:0003C4BF:1A2B3C4D:676F1234:qmigrate:105:root@pam:",
				"node": "pve1", "user": "root@pam", "starttime": 100},
			{"upid": "UPID:pve2:0003C4C0:1A2B3C4E:676F1235:vzmigrate:203:root@pam:",
				"node": "pve2", "user": "root@pam", "status": "OK", "starttime": 200, "endtime": 250},
		})
	})

	mux.HandleFunc("/api2/json/cluster/ha/status/current", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []map[string]interface{}{
			{"id": "quorum", "type": "quorum", "status": "OK"},
			{"id": "lrm:pve1", "type": "lrm", "node": "pve1", "status": "active"},
			{"id": "lrm:pve2", "type": "lrm", "node": "pve2", "status": "maintenance"},
		})
	})

	f.srv = httptest.NewTLSServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixtureServer) host() string {
	return strings.TrimPrefix(f.srv.URL, "https://")
}

func newTestClient(f *fixtureServer) cluster.Client {
	return cluster.NewClient([]string{f.host()}, "root@pam", "secret", false, 5*time.Second)
}

func TestClient_ClusterStatus(t *testing.T) {
	f := newFixtureServer(t)
	c := newTestClient(f)

	status, err := c.ClusterStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "homelab", status.ClusterName)
	assert.Equal(t, 1, status.Quorate)
	assert.Equal(t, f.host(), status.ConnectedHost)

	assert.Equal(t, 2, status.Nodes.Total)
	assert.Equal(t, 1, status.Nodes.Online)
	assert.Equal(t, 1, status.Nodes.Offline)

	assert.Equal(t, 2, status.Guests.VMs.Total)
	assert.Equal(t, 1, status.Guests.VMs.Running)
	assert.Equal(t, 1, status.Guests.VMs.Stopped)
	assert.Equal(t, 1, status.Guests.Containers.Total)
	assert.Equal(t, 1, status.Guests.Containers.Running)

	assert.Equal(t, 16, status.Resources.CPU.Total)
	assert.InDelta(t, 6.0, status.Resources.CPU.Used, 0.001)
	assert.InDelta(t, 37.5, status.Resources.CPU.Percent, 0.001)
	assert.Equal(t, int64(34359738368), status.Resources.Memory.Total)
	assert.Equal(t, int64(12884901888), status.Resources.Memory.Used)
	assert.InDelta(t, 37.5, status.Resources.Memory.Percent, 0.001)
	assert.InDelta(t, 25.0, status.Resources.Disk.Percent, 0.001)
}

func TestClient_FailsOverToNextHost(t *testing.T) {
	dead := httptest.NewTLSServer(http.NotFoundHandler())
	deadHost := strings.TrimPrefix(dead.URL, "https://")
	dead.Close()

	f := newFixtureServer(t)
	c := cluster.NewClient([]string{deadHost, f.host()}, "root@pam", "secret", false, 5*time.Second)

	status, err := c.ClusterStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.host(), status.ConnectedHost)
	assert.Equal(t, f.host(), c.ConnectedHost())
}

func TestClient_RelogsInAfterRejectedSession(t *testing.T) {
	f := newFixtureServer(t)
	c := newTestClient(f)

	_, err := c.ClusterStatus(context.Background())
	require.NoError(t, err)

	atomic.StoreInt32(&f.fail401, 1)
	_, err = c.ClusterStatus(context.Background())
	assert.Error(t, err, "rejected session surfaces as an error")

	_, err = c.ClusterStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.logins), "a fresh ticket is fetched after the rejection")
}

func TestClient_Nodes(t *testing.T) {
	f := newFixtureServer(t)
	c := newTestClient(f)

	nodes, err := c.Nodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	pve1 := nodes[0]
	assert.Equal(t, "pve1", pve1.Node)
	assert.Equal(t, "online", pve1.Status)
	assert.InDelta(t, 25.0, pve1.CPU, 0.001)
	assert.InDelta(t, 50.0, pve1.MemPercent, 0.001)
	assert.InDelta(t, 25.0, pve1.DiskPercent, 0.001)
	assert.Equal(t, 2, pve1.VMCount)
	assert.Equal(t, 1, pve1.CTCount)
	assert.Equal(t, 3, pve1.GuestCount)

	pve2 := nodes[1]
	assert.Equal(t, "unknown", pve2.Status)
	assert.Equal(t, 0, pve2.GuestCount, "guest listings for the unreachable node are skipped")
}

func TestClient_NodeGuests(t *testing.T) {
	f := newFixtureServer(t)
	c := newTestClient(f)

	guests, err := c.NodeGuests(context.Background(), "pve1")
	require.NoError(t, err)
	require.Len(t, guests, 3)

	assert.Equal(t, "qemu", guests[0].Type)
	assert.Equal(t, "pve1", guests[0].Node)
	assert.Equal(t, "web01", guests[0].Name)
	assert.Equal(t, 4, guests[0].MaxCPU)

	assert.Equal(t, "lxc", guests[2].Type)
	assert.Equal(t, "VM 201", guests[2].Name, "unnamed guests get a placeholder name")
}

func TestClient_AllGuestsSortedByNodeThenVMID(t *testing.T) {
	f := newFixtureServer(t)
	c := newTestClient(f)

	guests, err := c.AllGuests(context.Background())
	require.NoError(t, err)
	require.Len(t, guests, 2)

	assert.Equal(t, "pve1", guests[0].Node)
	assert.Equal(t, 201, guests[0].VMID)
	assert.Equal(t, "VM 201", guests[0].Name)
	assert.Equal(t, "pve2", guests[1].Node)
	assert.Equal(t, "plb_affinity_web", guests[1].Tags)
}

func TestClient_Tasks(t *testing.T) {
	f := newFixtureServer(t)
	c := newTestClient(f)

	tasks, err := c.Tasks(context.Background(), 50, "")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// Newest first.
	assert.Equal(t, "vzmigrate", tasks[0].Type)
	assert.Equal(t, "203", tasks[0].ID)
	assert.Equal(t, "OK", tasks[0].Status)

	// Type and id recovered from the UPID, missing end time means running.
	assert.Equal(t, "qmigrate", tasks[1].Type)
	assert.Equal(t, "105", tasks[1].ID)
	assert.Equal(t, "running", tasks[1].Status)

	running, err := c.Tasks(context.Background(), 50, "running")
	require.NoError(t, err)
	require.Len(t, running, 1)
	assert.Equal(t, "qmigrate", running[0].Type)

	limited, err := c.Tasks(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "vzmigrate", limited[0].Type)
}

func TestParseUPID(t *testing.T) {
	tests := []struct {
		name     string
		upid     string
		wantType string
		wantID   string
	}{
		{
			name:     "migration task",
			upid:     "UPID:pve1:0003C4BF:1A2B3C4D:676F1234:qmigrate:105:root@pam:",
			wantType: "qmigrate",
			wantID:   "105",
		},
		{
			name:     "task without id",
			upid:     "UPID:pve1:0003C4BF:1A2B3C4D:676F1234:startall::root@pam:",
			wantType: "startall",
			wantID:   "",
		},
		{
			name:     "malformed",
			upid:     "not-a-upid",
			wantType: "",
			wantID:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotID := cluster.ParseUPID(tt.upid)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestClient_HAViews(t *testing.T) {
	f := newFixtureServer(t)
	c := newTestClient(f)

	status, err := c.HAStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, status.Status, 3)

	pve2, err := c.NodeHAState(context.Background(), "pve2")
	require.NoError(t, err)
	assert.True(t, pve2.Managed)
	assert.Equal(t, "maintenance", pve2.State)

	missing, err := c.NodeHAState(context.Background(), "pve9")
	require.NoError(t, err)
	assert.False(t, missing.Managed)
	assert.Equal(t, "unknown", missing.State)
}
