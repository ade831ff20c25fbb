package model

type CPUUsage struct {
	Total   int     `json:"total"`
	Used    float64 `json:"used"`
	Percent float64 `json:"percent"`
}

type ByteUsage struct {
	Total   int64   `json:"total"`
	Used    int64   `json:"used"`
	Percent float64 `json:"percent"`
}

type NodeCounts struct {
	Total   int `json:"total"`
	Online  int `json:"online"`
	Offline int `json:"offline"`
}

type GuestCounts struct {
	Total   int `json:"total"`
	Running int `json:"running"`
	Stopped int `json:"stopped"`
}

type ClusterGuests struct {
	VMs        GuestCounts `json:"vms"`
	Containers GuestCounts `json:"containers"`
}

type ClusterResources struct {
	CPU    CPUUsage  `json:"cpu"`
	Memory ByteUsage `json:"memory"`
	Disk   ByteUsage `json:"disk"`
}

// ClusterStatus is the dashboard overview derived from the cluster
// status and resources listings.
type ClusterStatus struct {
	ClusterName   string           `json:"cluster_name"`
	Quorate       int              `json:"quorate"`
	Nodes         NodeCounts       `json:"nodes"`
	Guests        ClusterGuests    `json:"guests"`
	Resources     ClusterResources `json:"resources"`
	ConnectedHost string           `json:"connected_host"`
}

// NodeInfo describes one cluster node. CPU is a percentage already, the
// memory and disk pairs are raw bytes plus a derived percentage.
type NodeInfo struct {
	Node        string  `json:"node"`
	Status      string  `json:"status"`
	CPU         float64 `json:"cpu"`
	MaxCPU      int     `json:"maxcpu"`
	Mem         int64   `json:"mem"`
	MaxMem      int64   `json:"maxmem"`
	MemPercent  float64 `json:"mem_percent"`
	Disk        int64   `json:"disk"`
	MaxDisk     int64   `json:"maxdisk"`
	DiskPercent float64 `json:"disk_percent"`
	Uptime      int64   `json:"uptime"`
	VMCount     int     `json:"vm_count"`
	CTCount     int     `json:"ct_count"`
	GuestCount  int     `json:"guest_count"`
	Maintenance bool    `json:"maintenance"`
	Ignored     bool    `json:"ignored"`
}

// GuestInfo describes one VM or container. Type is the cluster's own
// notion ("qemu" or "lxc"), Tags the raw semicolon-joined tag string.
type GuestInfo struct {
	VMID       int     `json:"vmid"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Node       string  `json:"node"`
	Status     string  `json:"status"`
	CPU        float64 `json:"cpu"`
	MaxCPU     int     `json:"maxcpu"`
	Mem        int64   `json:"mem"`
	MaxMem     int64   `json:"maxmem"`
	MemPercent float64 `json:"mem_percent"`
	Disk       int64   `json:"disk"`
	MaxDisk    int64   `json:"maxdisk"`
	Uptime     int64   `json:"uptime"`
	Tags       string  `json:"tags"`
	Template   int     `json:"template"`
}

// TaskInfo is one cluster task. Type and ID may be recovered from the
// UPID when the listing omits them; the UPID itself stays opaque.
type TaskInfo struct {
	UPID      string `json:"upid"`
	Node      string `json:"node"`
	Type      string `json:"type"`
	ID        string `json:"id"`
	User      string `json:"user"`
	Status    string `json:"status"`
	StartTime int64  `json:"starttime"`
	EndTime   int64  `json:"endtime,omitempty"`
}

type HAItem struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Node   string `json:"node,omitempty"`
	Status string `json:"status,omitempty"`
	State  string `json:"state,omitempty"`
}

type HAStatus struct {
	Status []HAItem `json:"status"`
}

type NodeHAState struct {
	Node    string `json:"node"`
	State   string `json:"ha_state"`
	Managed bool   `json:"managed"`
}

// NodeMaintenanceStatus combines the balancer's own maintenance list
// with the cluster HA manager's view of the same node.
type NodeMaintenanceStatus struct {
	Node                 string `json:"node"`
	Status               string `json:"status"`
	ProxLBMaintenance    bool   `json:"proxlb_maintenance"`
	ProxmoxHAMaintenance bool   `json:"proxmox_ha_maintenance"`
	AnyMaintenance       bool   `json:"any_maintenance"`
}

type RuleGuest struct {
	VMID int    `json:"vmid"`
	Name string `json:"name"`
	Node string `json:"node"`
}

type IgnoredGuest struct {
	VMID int    `json:"vmid"`
	Name string `json:"name"`
	Node string `json:"node"`
	Tag  string `json:"tag"`
}

type PinnedGuest struct {
	VMID        int    `json:"vmid"`
	Name        string `json:"name"`
	CurrentNode string `json:"current_node"`
}

// BalancingRules projects guest tags into the rule groups the balancer
// honors, plus the pool definitions from its config.
type BalancingRules struct {
	Affinity     map[string][]RuleGuest   `json:"affinity"`
	AntiAffinity map[string][]RuleGuest   `json:"anti_affinity"`
	Ignored      []IgnoredGuest           `json:"ignored"`
	Pinned       map[string][]PinnedGuest `json:"pinned"`
	Pools        map[string]interface{}   `json:"pools"`
}
