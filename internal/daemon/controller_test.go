package daemon_test

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"proxboard/internal/daemon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dockerCall struct {
	timeout time.Duration
	args    []string
}

type scriptedOutput struct {
	stdout string
	stderr string
	err    error
}

// scriptedRunner stands in for the docker binary, keyed by subcommand.
type scriptedRunner struct {
	calls   []dockerCall
	outputs map[string]scriptedOutput
}

func (r *scriptedRunner) run(_ context.Context, timeout time.Duration, args ...string) (string, string, error) {
	r.calls = append(r.calls, dockerCall{timeout: timeout, args: args})
	out, ok := r.outputs[args[0]]
	if !ok {
		return "", "", errors.New("unexpected docker subcommand: " + args[0])
	}
	return out.stdout, out.stderr, out.err
}

func newController(r *scriptedRunner) daemon.Controller {
	return daemon.NewController(r.run, "proxlb", "cr.gyptazy.com/proxlb/proxlb:latest", "/opt/proxlb/proxlb.yaml")
}

func TestController_StatusRunning(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"inspect": {stdout: `{"running": true, "status": "running", "started": "2024-12-27T10:00:00Z"}` + "\n"},
	}}

	status := newController(r).Status(context.Background())

	assert.True(t, status.Exists)
	assert.True(t, status.Running)
	assert.Equal(t, "running", status.Status)
	assert.Equal(t, "2024-12-27T10:00:00Z", status.StartedAt)
	assert.Equal(t, "proxlb", status.ContainerName)
	assert.Empty(t, status.Error)
}

func TestController_StatusNotFound(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"inspect": {stderr: "Error: No such object: proxlb", err: &exec.ExitError{}},
	}}

	status := newController(r).Status(context.Background())

	assert.False(t, status.Exists)
	assert.False(t, status.Running)
	assert.Equal(t, "not found", status.Status)
	assert.Equal(t, "ProxLB container not found", status.Message)
}

func TestController_StatusMalformedInspectOutput(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"inspect": {stdout: "not json"},
	}}

	status := newController(r).Status(context.Background())

	assert.False(t, status.Exists)
	assert.Equal(t, "error", status.Status)
	assert.Contains(t, status.Error, "failed to parse container status")
}

func TestController_StartCreatesMissingContainer(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"inspect": {err: &exec.ExitError{}},
		"run":     {stdout: "b0a1c2d3\n"},
	}}

	result := newController(r).Start(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "Started successfully", result.Message)
	assert.Equal(t, "running", result.Status)

	require.Len(t, r.calls, 2)
	runArgs := r.calls[1].args
	assert.Equal(t, "run", runArgs[0])
	assert.Contains(t, runArgs, "--restart")
	assert.Contains(t, runArgs, "unless-stopped")
	assert.Contains(t, runArgs, "/opt/proxlb/proxlb.yaml:/etc/proxlb/proxlb.yaml:ro")
	assert.Equal(t, "cr.gyptazy.com/proxlb/proxlb:latest", runArgs[len(runArgs)-1])
}

func TestController_StartExistingStoppedContainer(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"inspect": {stdout: `{"running": false, "status": "exited", "started": ""}`},
		"start":   {},
	}}

	result := newController(r).Start(context.Background())

	assert.True(t, result.Success)
	require.Len(t, r.calls, 2)
	assert.Equal(t, []string{"start", "proxlb"}, r.calls[1].args)
}

func TestController_StartAlreadyRunning(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"inspect": {stdout: `{"running": true, "status": "running", "started": "2024-12-27T10:00:00Z"}`},
	}}

	result := newController(r).Start(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "Already running", result.Message)
	assert.Len(t, r.calls, 1, "no further docker command after the status check")
}

func TestController_StopAndRestart(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"stop":    {},
		"restart": {},
	}}
	c := newController(r)

	stop := c.Stop(context.Background())
	assert.True(t, stop.Success)
	assert.Equal(t, "stopped", stop.Status)

	restart := c.Restart(context.Background())
	assert.True(t, restart.Success)
	assert.Equal(t, "running", restart.Status)
}

func TestController_RunOnceDryRun(t *testing.T) {
	combined := strings.Join([]string{
		"2024-12-27 20:30:00,123 - ProxLB - INFO - Starting ProxLB",
		"2024-12-27 20:30:01,456 - ProxLB - INFO - Migrate VM guest web01 from pve1 to pve2.",
		"2024-12-27 20:30:02,789 - ProxLB - INFO - Balancing: no further action needed",
		"",
	}, "\n")
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"run": {stderr: combined},
	}}

	result := newController(r).RunOnce(context.Background(), true)

	assert.True(t, result.Success)
	assert.True(t, result.DryRun)
	assert.Equal(t, "Dry run completed successfully", result.Message)
	assert.Len(t, result.Output, 3)
	assert.Len(t, result.Migrations, 2)

	require.Len(t, r.calls, 1)
	args := r.calls[0].args
	assert.Equal(t, "-d", args[len(args)-1])
	assert.Equal(t, 120*time.Second, r.calls[0].timeout)
}

func TestController_RunOnceUsesLongTimeout(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"run": {stderr: "2024-12-27 20:30:00,123 - ProxLB - INFO - Starting ProxLB"},
	}}

	result := newController(r).RunOnce(context.Background(), false)

	assert.True(t, result.Success)
	assert.Equal(t, "Balancing completed successfully", result.Message)
	require.Len(t, r.calls, 1)
	assert.NotContains(t, r.calls[0].args, "-d")
	assert.Equal(t, 600*time.Second, r.calls[0].timeout)
}

func TestController_RunOnceTimedOut(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"run": {stderr: "Command timed out", err: context.DeadlineExceeded},
	}}

	result := newController(r).RunOnce(context.Background(), false)

	assert.False(t, result.Success)
	assert.Equal(t, "Operation timed out. Check logs for details.", result.Error)
}

func TestController_BestNodeSkipsLogLines(t *testing.T) {
	combined := strings.Join([]string{
		"2024-12-27 20:30:00,123 - ProxLB - INFO - Evaluating cluster resources",
		"2024-12-27 20:30:01,456 - ProxLB - INFO - Scoring nodes",
		"node03",
	}, "\n")
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"run": {stderr: combined},
	}}

	result := newController(r).BestNode(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "node03", result.BestNode)
}

func TestController_BestNodeFailure(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"run": {stderr: "Error: unable to read configuration", err: &exec.ExitError{}},
	}}

	result := newController(r).BestNode(context.Background())

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestController_Version(t *testing.T) {
	r := &scriptedRunner{outputs: map[string]scriptedOutput{
		"run": {stdout: "ProxLB 1.1.4\n"},
	}}

	assert.Equal(t, "ProxLB 1.1.4", newController(r).Version(context.Background()))

	failing := &scriptedRunner{outputs: map[string]scriptedOutput{
		"run": {err: errors.New("docker: not found")},
	}}
	assert.Equal(t, "unknown", newController(failing).Version(context.Background()))
}
