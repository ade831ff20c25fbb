package controller_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"proxboard/internal/dto"
	"proxboard/internal/lbconfig"
	"proxboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func noGuard(*gin.Context) {}

type fakeLogService struct {
	logs       dto.LogsResponse
	raw        dto.RawLogsResponse
	migrations []model.MigrationEvent
	lastRun    model.LastRunInfo

	gotLines     []int
	gotRawLines  []int
	gotLimits    []int
	gotLevel     string
	gotEventType string
}

func (f *fakeLogService) GetLogs(_ context.Context, lines int, level, eventType string) dto.LogsResponse {
	f.gotLines = append(f.gotLines, lines)
	f.gotLevel = level
	f.gotEventType = eventType
	return f.logs
}

func (f *fakeLogService) GetRawLogs(_ context.Context, lines int) dto.RawLogsResponse {
	f.gotRawLines = append(f.gotRawLines, lines)
	return f.raw
}

func (f *fakeLogService) GetMigrations(_ context.Context, limit int) []model.MigrationEvent {
	f.gotLimits = append(f.gotLimits, limit)
	return f.migrations
}

func (f *fakeLogService) LastRun(context.Context) model.LastRunInfo {
	return f.lastRun
}

// fakeBalancer scripts the daemon controller. Version answers from the
// queue, repeating the last entry once drained.
type fakeBalancer struct {
	status   model.DaemonStatus
	action   model.ActionResult
	run      model.RunResult
	bestNode model.BestNodeResult
	versions []string

	starts       int
	stops        int
	restarts     int
	versionCalls int
	gotDryRun    []bool
}

func (f *fakeBalancer) Status(context.Context) model.DaemonStatus { return f.status }

func (f *fakeBalancer) Start(context.Context) model.ActionResult {
	f.starts++
	return f.action
}

func (f *fakeBalancer) Stop(context.Context) model.ActionResult {
	f.stops++
	return f.action
}

func (f *fakeBalancer) Restart(context.Context) model.ActionResult {
	f.restarts++
	return f.action
}

func (f *fakeBalancer) RunOnce(_ context.Context, dryRun bool) model.RunResult {
	f.gotDryRun = append(f.gotDryRun, dryRun)
	result := f.run
	result.DryRun = dryRun
	return result
}

func (f *fakeBalancer) BestNode(context.Context) model.BestNodeResult { return f.bestNode }

func (f *fakeBalancer) Version(context.Context) string {
	f.versionCalls++
	if len(f.versions) == 0 {
		return "unknown"
	}
	v := f.versions[0]
	if len(f.versions) > 1 {
		f.versions = f.versions[1:]
	}
	return v
}

type fakeStore struct {
	doc         map[string]interface{}
	loadErr     error
	saveErr     error
	maintenance []string
	ignored     []string
	pools       map[string]interface{}
	balancing   map[string]interface{}
	enabled     bool
	loaded      bool

	replaced  map[string]interface{}
	gotNode   string
	gotAction string
	gotUpdate lbconfig.BalancingUpdate
}

func (f *fakeStore) Path() string { return "/etc/proxlb/proxlb.yaml" }

func (f *fakeStore) Load() (map[string]interface{}, error) { return f.doc, f.loadErr }

func (f *fakeStore) Masked() (map[string]interface{}, error) { return f.doc, f.loadErr }

func (f *fakeStore) Replace(config map[string]interface{}) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.replaced = config
	return nil
}

func (f *fakeStore) SetMaintenance(node, action string) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.gotNode = node
	f.gotAction = action
	return f.maintenance, nil
}

func (f *fakeStore) UpdateBalancing(update lbconfig.BalancingUpdate) (map[string]interface{}, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.gotUpdate = update
	return f.balancing, nil
}

func (f *fakeStore) MaintenanceNodes() []string { return f.maintenance }

func (f *fakeStore) IgnoreNodes() []string { return f.ignored }

func (f *fakeStore) BalancingEnabled() bool { return f.enabled }

func (f *fakeStore) Pools() map[string]interface{} { return f.pools }

func (f *fakeStore) Loaded() bool { return f.loaded }

func (f *fakeStore) APISettings() lbconfig.APISettings { return lbconfig.APISettings{} }

type fakeCluster struct {
	clusterStatus model.ClusterStatus
	nodes         []model.NodeInfo
	guests        []model.GuestInfo
	tasks         []model.TaskInfo
	haStatus      model.HAStatus
	nodeHA        model.NodeHAState
	err           error

	gotNode   string
	gotLimit  int
	gotStatus string
}

func (f *fakeCluster) ClusterStatus(context.Context) (model.ClusterStatus, error) {
	return f.clusterStatus, f.err
}

func (f *fakeCluster) Nodes(context.Context) ([]model.NodeInfo, error) {
	return f.nodes, f.err
}

func (f *fakeCluster) NodeGuests(_ context.Context, node string) ([]model.GuestInfo, error) {
	f.gotNode = node
	return f.guests, f.err
}

func (f *fakeCluster) AllGuests(context.Context) ([]model.GuestInfo, error) {
	return f.guests, f.err
}

func (f *fakeCluster) Tasks(_ context.Context, limit int, status string) ([]model.TaskInfo, error) {
	f.gotLimit = limit
	f.gotStatus = status
	return f.tasks, f.err
}

func (f *fakeCluster) HAStatus(context.Context) (model.HAStatus, error) {
	return f.haStatus, f.err
}

func (f *fakeCluster) NodeHAState(_ context.Context, node string) (model.NodeHAState, error) {
	f.gotNode = node
	return f.nodeHA, f.err
}

func (f *fakeCluster) ConnectedHost() string { return "pve1" }
