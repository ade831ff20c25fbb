package model

// DaemonStatus reflects the balancer container as reported by the
// container runtime.
type DaemonStatus struct {
	Exists        bool   `json:"exists"`
	Running       bool   `json:"running"`
	Status        string `json:"status"`
	StartedAt     string `json:"started,omitempty"`
	ContainerName string `json:"container_name"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ActionResult reports a start/stop/restart outcome.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// RunResult is the captured output of a one-shot balancing run. Output
// holds every non-empty line, Migrations the subset that looks like
// migration activity.
type RunResult struct {
	Success    bool     `json:"success"`
	DryRun     bool     `json:"dry_run"`
	Output     []string `json:"output"`
	Migrations []string `json:"migrations,omitempty"`
	Message    string   `json:"message,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// BestNodeResult carries the placement recommendation printed by a
// one-shot best-node run.
type BestNodeResult struct {
	Success  bool   `json:"success"`
	BestNode string `json:"best_node,omitempty"`
	Output   string `json:"output"`
	Error    string `json:"error,omitempty"`
}

// StatusOverview is the combined service status view.
type StatusOverview struct {
	ProxLB           DaemonStatus `json:"proxlb"`
	ConfigLoaded     bool         `json:"config_loaded"`
	BalancingEnabled bool         `json:"balancing_enabled"`
	Version          string       `json:"version"`
	Timestamp        string       `json:"timestamp"`
	LastRun          *LastRunInfo `json:"last_run,omitempty"`
}
