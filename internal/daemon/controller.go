package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"proxboard/internal/model"

	"github.com/rs/zerolog/log"
)

// DefaultImage is the upstream balancer image used when the
// configuration does not override it.
const DefaultImage = "cr.gyptazy.com/proxlb/proxlb:latest"

// containerConfigPath is where the balancer expects its configuration
// inside the container.
const containerConfigPath = "/etc/proxlb/proxlb.yaml"

const (
	statusTimeout   = 10 * time.Second
	controlTimeout  = 120 * time.Second
	dryRunTimeout   = 120 * time.Second
	balanceTimeout  = 600 * time.Second
	bestNodeTimeout = 60 * time.Second
	versionTimeout  = 30 * time.Second
)

// inspectFormat asks the runtime for a ready-to-parse JSON fragment so
// no client library is needed for a single field lookup.
const inspectFormat = `{"running": {{.State.Running}}, "status": "{{.State.Status}}", "started": "{{.State.StartedAt}}"}`

// RunFunc executes the container runtime binary with a bounded timeout
// and returns captured stdout and stderr separately.
type RunFunc func(ctx context.Context, timeout time.Duration, args ...string) (stdout string, stderr string, err error)

// Controller drives the balancer container. Results embed their own
// success flags instead of returning errors because every outcome,
// including a missing runtime, must stay reportable to API clients.
type Controller interface {
	Status(ctx context.Context) model.DaemonStatus
	Start(ctx context.Context) model.ActionResult
	Stop(ctx context.Context) model.ActionResult
	Restart(ctx context.Context) model.ActionResult
	RunOnce(ctx context.Context, dryRun bool) model.RunResult
	BestNode(ctx context.Context) model.BestNodeResult
	Version(ctx context.Context) string
}

type dockerController struct {
	run        RunFunc
	container  string
	image      string
	configPath string
}

// NewController manages the balancer container through the docker CLI.
// A nil run falls back to invoking the local docker binary.
func NewController(run RunFunc, container, image, configPath string) Controller {
	if run == nil {
		run = dockerRun
	}
	if image == "" {
		image = DefaultImage
	}
	return &dockerController{
		run:        run,
		container:  container,
		image:      image,
		configPath: configPath,
	}
}

func dockerRun(ctx context.Context, timeout time.Duration, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return stdout.String(), "Command timed out", ctx.Err()
	}
	return stdout.String(), stderr.String(), err
}

func (c *dockerController) Status(ctx context.Context) model.DaemonStatus {
	stdout, _, err := c.run(ctx, statusTimeout, "inspect", "--format", inspectFormat, c.container)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return model.DaemonStatus{
				Exists:        false,
				Running:       false,
				Status:        "not found",
				ContainerName: c.container,
				Message:       "ProxLB container not found",
			}
		}
		log.Warn().Err(err).Str("container", c.container).Msg("Container status lookup failed")
		return model.DaemonStatus{
			Exists:        false,
			Running:       false,
			Status:        "error",
			ContainerName: c.container,
			Error:         err.Error(),
		}
	}

	var state struct {
		Running bool   `json:"running"`
		Status  string `json:"status"`
		Started string `json:"started"`
	}
	if uerr := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &state); uerr != nil {
		return model.DaemonStatus{
			Exists:        false,
			Running:       false,
			Status:        "error",
			ContainerName: c.container,
			Error:         fmt.Sprintf("failed to parse container status: %v", uerr),
		}
	}

	return model.DaemonStatus{
		Exists:        true,
		Running:       state.Running,
		Status:        state.Status,
		StartedAt:     state.Started,
		ContainerName: c.container,
	}
}

func (c *dockerController) Start(ctx context.Context) model.ActionResult {
	status := c.Status(ctx)

	var stderr string
	var err error
	switch {
	case !status.Exists:
		log.Info().Str("container", c.container).Str("image", c.image).Msg("Creating balancer container")
		_, stderr, err = c.run(ctx, controlTimeout, "run", "-d",
			"--name", c.container,
			"--restart", "unless-stopped",
			"-v", c.configPath+":"+containerConfigPath+":ro",
			c.image)
	case !status.Running:
		log.Info().Str("container", c.container).Msg("Starting balancer container")
		_, stderr, err = c.run(ctx, controlTimeout, "start", c.container)
	default:
		return model.ActionResult{Success: true, Message: "Already running", Status: "running"}
	}

	if err != nil {
		if stderr == "" {
			stderr = err.Error()
		}
		log.Error().Str("container", c.container).Str("stderr", stderr).Msg("Failed to start balancer container")
		return model.ActionResult{Success: false, Error: stderr, Status: "failed"}
	}
	return model.ActionResult{Success: true, Message: "Started successfully", Status: "running"}
}

func (c *dockerController) Stop(ctx context.Context) model.ActionResult {
	log.Info().Str("container", c.container).Msg("Stopping balancer container")
	_, stderr, err := c.run(ctx, controlTimeout, "stop", c.container)
	if err != nil {
		if stderr == "" {
			stderr = err.Error()
		}
		return model.ActionResult{Success: false, Error: stderr, Status: "error"}
	}
	return model.ActionResult{Success: true, Message: "Stopped successfully", Status: "stopped"}
}

func (c *dockerController) Restart(ctx context.Context) model.ActionResult {
	log.Info().Str("container", c.container).Msg("Restarting balancer container")
	_, stderr, err := c.run(ctx, controlTimeout, "restart", c.container)
	if err != nil {
		if stderr == "" {
			stderr = err.Error()
		}
		return model.ActionResult{Success: false, Error: stderr, Status: "error"}
	}
	return model.ActionResult{Success: true, Message: "Restarted successfully", Status: "running"}
}

func (c *dockerController) RunOnce(ctx context.Context, dryRun bool) model.RunResult {
	args := []string{
		"run", "--rm",
		"-v", c.configPath + ":" + containerConfigPath + ":ro",
		c.image,
		"-c", containerConfigPath,
	}
	timeout := balanceTimeout
	if dryRun {
		args = append(args, "-d")
		timeout = dryRunTimeout
	}

	log.Info().Bool("dry_run", dryRun).Msg("Launching one-shot balancing run")
	stdout, stderr, err := c.run(ctx, timeout, args...)

	// The balancer logs to stderr, so both streams matter.
	full := stdout + stderr
	var output, migrations []string
	for _, line := range strings.Split(strings.TrimSpace(full), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		output = append(output, line)
		lower := strings.ToLower(line)
		if strings.Contains(lower, "migrate") || strings.Contains(lower, "balancing:") {
			migrations = append(migrations, line)
		}
	}

	if strings.Contains(strings.ToLower(full), "timed out") {
		return model.RunResult{
			Success: false,
			DryRun:  dryRun,
			Output:  output,
			Error:   "Operation timed out. Check logs for details.",
		}
	}

	if err == nil || strings.Contains(full, "ProxLB") {
		message := "Balancing completed successfully"
		if dryRun {
			message = "Dry run completed successfully"
		}
		return model.RunResult{
			Success:    true,
			DryRun:     dryRun,
			Output:     output,
			Migrations: migrations,
			Message:    message,
		}
	}

	errText := strings.TrimSpace(stderr)
	if errText == "" {
		errText = "Unknown error"
	}
	log.Warn().Bool("dry_run", dryRun).Str("error", errText).Msg("One-shot balancing run failed")
	return model.RunResult{Success: false, DryRun: dryRun, Output: output, Error: errText}
}

func (c *dockerController) BestNode(ctx context.Context) model.BestNodeResult {
	stdout, stderr, _ := c.run(ctx, bestNodeTimeout, "run", "--rm",
		"-v", c.configPath+":"+containerConfigPath+":ro",
		c.image,
		"-c", containerConfigPath,
		"-b")

	full := strings.TrimSpace(stdout + stderr)
	var lines []string
	for _, raw := range strings.Split(full, "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	// The recommendation is a bare node name after the log preamble, so
	// scan backwards past timestamped balancer lines.
	best := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if !strings.Contains(lines[i], " - ProxLB - ") && !strings.HasPrefix(lines[i], "2") {
			best = lines[i]
			break
		}
	}
	if best == "" && len(lines) > 0 {
		best = lines[len(lines)-1]
	}

	if best != "" && !strings.Contains(strings.ToLower(best), "error") {
		return model.BestNodeResult{Success: true, BestNode: best, Output: full}
	}

	errText := strings.TrimSpace(stderr)
	if errText == "" {
		errText = full
	}
	if errText == "" {
		errText = "Failed to get best node"
	}
	return model.BestNodeResult{Success: false, Error: errText, Output: full}
}

func (c *dockerController) Version(ctx context.Context) string {
	stdout, _, err := c.run(ctx, versionTimeout, "run", "--rm", c.image, "--version")
	if err != nil {
		return "unknown"
	}
	if version := strings.TrimSpace(stdout); version != "" {
		return version
	}
	return "unknown"
}
