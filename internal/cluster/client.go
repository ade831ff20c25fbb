package cluster

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"proxboard/internal/model"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPort = 8006
	apiBasePath = "/api2/json"
)

// Client reads cluster state through the Proxmox VE HTTP API. All views
// are read-only; the balancer itself performs every mutation.
type Client interface {
	ClusterStatus(ctx context.Context) (model.ClusterStatus, error)
	Nodes(ctx context.Context) ([]model.NodeInfo, error)
	NodeGuests(ctx context.Context, node string) ([]model.GuestInfo, error)
	AllGuests(ctx context.Context) ([]model.GuestInfo, error)
	Tasks(ctx context.Context, limit int, status string) ([]model.TaskInfo, error)
	HAStatus(ctx context.Context) (model.HAStatus, error)
	NodeHAState(ctx context.Context, node string) (model.NodeHAState, error)
	ConnectedHost() string
}

type apiClient struct {
	hosts    []string
	user     string
	password string
	http     *http.Client

	mu        sync.Mutex
	baseURL   string
	connected string
	ticket    string
}

// NewClient builds a ticket-authenticated API client. Hosts are tried
// in order until one accepts the credentials; the session sticks to
// that host until a request fails.
func NewClient(hosts []string, user, password string, verifySSL bool, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		// Cluster nodes commonly run self-signed certificates.
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: !verifySSL},
		MaxIdleConnsPerHost: 10,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &apiClient{
		hosts:    hosts,
		user:     user,
		password: password,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *apiClient) ConnectedHost() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// session returns the cached base URL and ticket, logging in first when
// no session exists yet.
func (c *apiClient) session(ctx context.Context) (string, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticket != "" {
		return c.baseURL, c.ticket, nil
	}
	if err := c.connectLocked(ctx); err != nil {
		return "", "", err
	}
	return c.baseURL, c.ticket, nil
}

func (c *apiClient) connectLocked(ctx context.Context) error {
	operation := func() error {
		var lastErr error
		for _, host := range c.hosts {
			base := hostBaseURL(host)
			ticket, err := c.login(ctx, base)
			if err != nil {
				lastErr = err
				log.Warn().Str("host", host).Err(err).Msg("Cluster API login failed")
				continue
			}
			c.baseURL = base
			c.connected = host
			c.ticket = ticket
			log.Info().Str("host", host).Msg("Connected to Proxmox API")
			return nil
		}
		if lastErr == nil {
			lastErr = errors.New("no cluster hosts configured")
		}
		return lastErr
	}

	connectBackoff := backoff.NewExponentialBackOff()
	connectBackoff.InitialInterval = 500 * time.Millisecond
	connectBackoff.MaxInterval = 5 * time.Second
	connectBackoff.MaxElapsedTime = 15 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(connectBackoff, ctx)); err != nil {
		return fmt.Errorf("could not connect to any Proxmox host: %w", err)
	}
	return nil
}

func (c *apiClient) login(ctx context.Context, base string) (string, error) {
	form := url.Values{}
	form.Set("username", c.user)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/access/ticket", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ticket request returned status %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Ticket string `json:"ticket"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode ticket response: %w", err)
	}
	if payload.Data.Ticket == "" {
		return "", errors.New("ticket response carried no ticket")
	}
	return payload.Data.Ticket, nil
}

// reset drops the cached session so the next call logs in again,
// possibly against a different host.
func (c *apiClient) reset() {
	c.mu.Lock()
	c.baseURL = ""
	c.connected = ""
	c.ticket = ""
	c.mu.Unlock()
}

func (c *apiClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	base, ticket, err := c.session(ctx)
	if err != nil {
		return err
	}

	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.AddCookie(&http.Cookie{Name: "PVEAuthCookie", Value: ticket})

	resp, err := c.http.Do(req)
	if err != nil {
		c.reset()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.reset()
		return fmt.Errorf("cluster API rejected the session for %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cluster API returned status %d for %s", resp.StatusCode, path)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func hostBaseURL(host string) string {
	addr := host
	port := defaultPort
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		idx := strings.LastIndex(host, ":")
		if p, err := strconv.Atoi(host[idx+1:]); err == nil {
			addr = host[:idx]
			port = p
		}
	}
	return fmt.Sprintf("https://%s:%d%s", addr, port, apiBasePath)
}

type clusterStatusRow struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Quorate int    `json:"quorate"`
}

type resourceRow struct {
	Type     string  `json:"type"`
	Node     string  `json:"node"`
	Name     string  `json:"name"`
	VMID     int     `json:"vmid"`
	Status   string  `json:"status"`
	CPU      float64 `json:"cpu"`
	MaxCPU   float64 `json:"maxcpu"`
	Mem      int64   `json:"mem"`
	MaxMem   int64   `json:"maxmem"`
	Disk     int64   `json:"disk"`
	MaxDisk  int64   `json:"maxdisk"`
	Uptime   int64   `json:"uptime"`
	Tags     string  `json:"tags"`
	Template int     `json:"template"`
}

func (c *apiClient) ClusterStatus(ctx context.Context) (model.ClusterStatus, error) {
	var statusRows []clusterStatusRow
	if err := c.get(ctx, "/cluster/status", nil, &statusRows); err != nil {
		return model.ClusterStatus{}, fmt.Errorf("failed to get cluster status: %w", err)
	}
	var resources []resourceRow
	if err := c.get(ctx, "/cluster/resources", nil, &resources); err != nil {
		return model.ClusterStatus{}, fmt.Errorf("failed to get cluster status: %w", err)
	}

	status := model.ClusterStatus{ClusterName: "Unknown", ConnectedHost: c.ConnectedHost()}
	for _, row := range statusRows {
		if row.Type == "cluster" {
			status.ClusterName = row.Name
			status.Quorate = row.Quorate
			break
		}
	}

	var totalCPU, usedCPU float64
	var totalMem, usedMem, totalDisk, usedDisk int64
	for _, r := range resources {
		switch r.Type {
		case "node":
			status.Nodes.Total++
			if r.Status == "online" {
				status.Nodes.Online++
			} else {
				status.Nodes.Offline++
			}
			totalCPU += r.MaxCPU
			usedCPU += r.CPU * r.MaxCPU
			totalMem += r.MaxMem
			usedMem += r.Mem
			totalDisk += r.MaxDisk
			usedDisk += r.Disk
		case "qemu":
			tallyGuest(&status.Guests.VMs, r.Status)
		case "lxc":
			tallyGuest(&status.Guests.Containers, r.Status)
		}
	}

	status.Resources = model.ClusterResources{
		CPU: model.CPUUsage{
			Total:   int(totalCPU),
			Used:    round2(usedCPU),
			Percent: round1(percentOf(usedCPU, totalCPU)),
		},
		Memory: model.ByteUsage{
			Total:   totalMem,
			Used:    usedMem,
			Percent: round1(percentOf(float64(usedMem), float64(totalMem))),
		},
		Disk: model.ByteUsage{
			Total:   totalDisk,
			Used:    usedDisk,
			Percent: round1(percentOf(float64(usedDisk), float64(totalDisk))),
		},
	}
	return status, nil
}

type nodeRow struct {
	Node    string  `json:"node"`
	Status  string  `json:"status"`
	CPU     float64 `json:"cpu"`
	MaxCPU  float64 `json:"maxcpu"`
	Mem     int64   `json:"mem"`
	MaxMem  int64   `json:"maxmem"`
	Disk    int64   `json:"disk"`
	MaxDisk int64   `json:"maxdisk"`
	Uptime  int64   `json:"uptime"`
}

func (c *apiClient) Nodes(ctx context.Context) ([]model.NodeInfo, error) {
	var rows []nodeRow
	if err := c.get(ctx, "/nodes", nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to get nodes: %w", err)
	}

	result := make([]model.NodeInfo, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			info := model.NodeInfo{
				Node:        row.Node,
				Status:      orUnknown(row.Status),
				CPU:         round1(row.CPU * 100),
				MaxCPU:      int(row.MaxCPU),
				Mem:         row.Mem,
				MaxMem:      row.MaxMem,
				MemPercent:  round1(percentOf(float64(row.Mem), float64(row.MaxMem))),
				Disk:        row.Disk,
				MaxDisk:     row.MaxDisk,
				DiskPercent: round1(percentOf(float64(row.Disk), float64(row.MaxDisk))),
				Uptime:      row.Uptime,
			}

			// Guest counts are best effort, an unreachable node still lists.
			var vms, cts []guestRow
			if err := c.get(gctx, "/nodes/"+row.Node+"/qemu", nil, &vms); err == nil {
				info.VMCount = len(vms)
			}
			if err := c.get(gctx, "/nodes/"+row.Node+"/lxc", nil, &cts); err == nil {
				info.CTCount = len(cts)
			}
			info.GuestCount = info.VMCount + info.CTCount

			result[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

type guestRow struct {
	VMID     int     `json:"vmid"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	CPU      float64 `json:"cpu"`
	CPUs     float64 `json:"cpus"`
	Mem      int64   `json:"mem"`
	MaxMem   int64   `json:"maxmem"`
	Disk     int64   `json:"disk"`
	MaxDisk  int64   `json:"maxdisk"`
	Uptime   int64   `json:"uptime"`
	Tags     string  `json:"tags"`
	Template int     `json:"template"`
}

func (r guestRow) toGuestInfo(guestType, node string) model.GuestInfo {
	name := r.Name
	if name == "" {
		name = fmt.Sprintf("VM %d", r.VMID)
	}
	return model.GuestInfo{
		VMID:       r.VMID,
		Name:       name,
		Type:       guestType,
		Node:       node,
		Status:     r.Status,
		CPU:        round1(r.CPU * 100),
		MaxCPU:     int(r.CPUs),
		Mem:        r.Mem,
		MaxMem:     r.MaxMem,
		MemPercent: round1(percentOf(float64(r.Mem), float64(r.MaxMem))),
		Disk:       r.Disk,
		MaxDisk:    r.MaxDisk,
		Uptime:     r.Uptime,
		Tags:       r.Tags,
		Template:   r.Template,
	}
}

func (c *apiClient) NodeGuests(ctx context.Context, node string) ([]model.GuestInfo, error) {
	if _, _, err := c.session(ctx); err != nil {
		return nil, fmt.Errorf("failed to get guests for node %s: %w", node, err)
	}

	guests := []model.GuestInfo{}
	var vms []guestRow
	if err := c.get(ctx, "/nodes/"+node+"/qemu", nil, &vms); err == nil {
		for _, row := range vms {
			guests = append(guests, row.toGuestInfo("qemu", node))
		}
	} else {
		log.Debug().Str("node", node).Err(err).Msg("VM listing failed")
	}
	var cts []guestRow
	if err := c.get(ctx, "/nodes/"+node+"/lxc", nil, &cts); err == nil {
		for _, row := range cts {
			guests = append(guests, row.toGuestInfo("lxc", node))
		}
	} else {
		log.Debug().Str("node", node).Err(err).Msg("Container listing failed")
	}
	return guests, nil
}

func (c *apiClient) AllGuests(ctx context.Context) ([]model.GuestInfo, error) {
	query := url.Values{}
	query.Set("type", "vm")
	var rows []resourceRow
	if err := c.get(ctx, "/cluster/resources", query, &rows); err != nil {
		return nil, fmt.Errorf("failed to get all guests: %w", err)
	}

	guests := make([]model.GuestInfo, 0, len(rows))
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("VM %d", r.VMID)
		}
		memPercent := 0.0
		if r.MaxMem > 0 {
			memPercent = round1(percentOf(float64(r.Mem), float64(r.MaxMem)))
		}
		guests = append(guests, model.GuestInfo{
			VMID:       r.VMID,
			Name:       name,
			Type:       r.Type,
			Node:       r.Node,
			Status:     r.Status,
			CPU:        round1(r.CPU * 100),
			MaxCPU:     int(r.MaxCPU),
			Mem:        r.Mem,
			MaxMem:     r.MaxMem,
			MemPercent: memPercent,
			Disk:       r.Disk,
			MaxDisk:    r.MaxDisk,
			Uptime:     r.Uptime,
			Tags:       r.Tags,
			Template:   r.Template,
		})
	}

	sort.Slice(guests, func(i, j int) bool {
		if guests[i].Node != guests[j].Node {
			return guests[i].Node < guests[j].Node
		}
		return guests[i].VMID < guests[j].VMID
	})
	return guests, nil
}

type taskRow struct {
	UPID      string `json:"upid"`
	Node      string `json:"node"`
	Type      string `json:"type"`
	ID        string `json:"id"`
	User      string `json:"user"`
	Status    string `json:"status"`
	StartTime int64  `json:"starttime"`
	EndTime   int64  `json:"endtime"`
}

func (c *apiClient) Tasks(ctx context.Context, limit int, status string) ([]model.TaskInfo, error) {
	var rows []taskRow
	if err := c.get(ctx, "/cluster/tasks", nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to get cluster tasks: %w", err)
	}

	tasks := make([]model.TaskInfo, 0, len(rows))
	for _, row := range rows {
		task := model.TaskInfo{
			UPID:      row.UPID,
			Node:      row.Node,
			Type:      row.Type,
			ID:        row.ID,
			User:      row.User,
			Status:    row.Status,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		}
		if task.Type == "" || task.ID == "" {
			upidType, upidID := ParseUPID(row.UPID)
			if task.Type == "" {
				task.Type = upidType
			}
			if task.ID == "" {
				task.ID = upidID
			}
		}
		// An entry without an end time is still in flight.
		if task.Status == "" && task.EndTime == 0 {
			task.Status = "running"
		}
		tasks = append(tasks, task)
	}

	if status != "" {
		want := strings.ToLower(status)
		filtered := make([]model.TaskInfo, 0, len(tasks))
		for _, task := range tasks {
			if strings.ToLower(task.Status) == want {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].StartTime > tasks[j].StartTime })
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

// ParseUPID recovers the task type and target id from a UPID of the
// form UPID:node:pid:pstart:starttime:type:id:user@realm:.
func ParseUPID(upid string) (taskType, id string) {
	parts := strings.Split(upid, ":")
	if len(parts) > 6 {
		return parts[5], parts[6]
	}
	return "", ""
}

func (c *apiClient) HAStatus(ctx context.Context) (model.HAStatus, error) {
	var items []model.HAItem
	if err := c.get(ctx, "/cluster/ha/status/current", nil, &items); err != nil {
		return model.HAStatus{}, fmt.Errorf("failed to get HA status: %w", err)
	}
	return model.HAStatus{Status: items}, nil
}

func (c *apiClient) NodeHAState(ctx context.Context, node string) (model.NodeHAState, error) {
	status, err := c.HAStatus(ctx)
	if err != nil {
		return model.NodeHAState{}, err
	}

	state := model.NodeHAState{Node: node, State: "unknown"}
	for _, item := range status.Status {
		if item.Node != node {
			continue
		}
		if item.Type == "lrm" || item.Type == "node" {
			state.Managed = true
			switch {
			case item.Status != "":
				state.State = item.Status
			case item.State != "":
				state.State = item.State
			}
			break
		}
	}
	return state, nil
}

func tallyGuest(counts *model.GuestCounts, guestStatus string) {
	counts.Total++
	if guestStatus == "running" {
		counts.Running++
	} else {
		counts.Stopped++
	}
}

func percentOf(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return used / total * 100
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
