package lbconfig

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	sectionAPI       = "proxmox_api"
	sectionCluster   = "proxmox_cluster"
	sectionBalancing = "balancing"

	keyPassword       = "pass"
	keyMaintenance    = "maintenance_nodes"
	keyIgnored        = "ignore_nodes"
	maskedPassword    = "********"
	defaultAPIUser    = "root@pam"
	defaultAPITimeout = 10 * time.Second
)

// ErrNotLoaded marks a configuration file that is missing or unreadable.
var ErrNotLoaded = errors.New("balancer configuration not found")

// MaintenanceAdd and MaintenanceRemove are the accepted maintenance actions.
const (
	MaintenanceAdd    = "add"
	MaintenanceRemove = "remove"
)

// BalancingUpdate applies only its non-nil fields.
type BalancingUpdate struct {
	Enable          *bool
	Method          *string
	Mode            *string
	Balanciness     *int
	MemoryThreshold *int
}

// APISettings are the cluster connection values embedded in the
// balancer's own configuration file.
type APISettings struct {
	Hosts     []string
	User      string
	Password  string
	VerifySSL bool
	Timeout   time.Duration
}

// Store reads and edits the balancer's YAML configuration. Every read
// goes back to disk so edits made outside this process are always
// visible on the next request.
type Store interface {
	Path() string
	Load() (map[string]interface{}, error)
	Masked() (map[string]interface{}, error)
	Replace(config map[string]interface{}) error
	SetMaintenance(node, action string) ([]string, error)
	UpdateBalancing(update BalancingUpdate) (map[string]interface{}, error)
	MaintenanceNodes() []string
	IgnoreNodes() []string
	BalancingEnabled() bool
	Pools() map[string]interface{}
	Loaded() bool
	APISettings() APISettings
}

type fileStore struct {
	path string
	mu   sync.RWMutex
}

func NewStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Path() string {
	return s.path
}

func (s *fileStore) Load() (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLocked()
}

func (s *fileStore) loadLocked() (map[string]interface{}, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("file", s.path).Msg("Balancer configuration file not found")
			return nil, fmt.Errorf("%w: %s", ErrNotLoaded, s.path)
		}
		log.Error().Err(err).Str("file", s.path).Msg("Failed to read balancer configuration")
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, s.path)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Error().Err(err).Str("file", s.path).Msg("Failed to parse balancer configuration")
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, s.path)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

// Masked returns the configuration with the cluster password replaced
// by a placeholder, safe to hand to API clients.
func (s *fileStore) Masked() (map[string]interface{}, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	if api, ok := doc[sectionAPI].(map[string]interface{}); ok {
		if _, present := api[keyPassword]; present {
			api[keyPassword] = maskedPassword
		}
	}
	return doc, nil
}

// Replace writes a full new configuration. A masked password in the
// incoming document keeps the currently stored one.
func (s *fileStore) Replace(config map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if api, ok := config[sectionAPI].(map[string]interface{}); ok {
		if api[keyPassword] == maskedPassword {
			if current, err := s.loadLocked(); err == nil {
				if currentAPI, ok := current[sectionAPI].(map[string]interface{}); ok {
					api[keyPassword] = currentAPI[keyPassword]
				}
			}
		}
	}
	return s.saveLocked(config)
}

func (s *fileStore) saveLocked(config map[string]interface{}) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal balancer configuration")
		return err
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		log.Error().Err(err).Str("file", tempPath).Msg("Failed to write temporary configuration file")
		return err
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		log.Error().Err(err).Str("from", tempPath).Str("to", s.path).Msg("Failed to replace configuration file")
		_ = os.Remove(tempPath)
		return err
	}
	log.Info().Str("file", s.path).Msg("Balancer configuration saved")
	return nil
}

func (s *fileStore) SetMaintenance(node, action string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	clusterSection, ok := doc[sectionCluster].(map[string]interface{})
	if !ok {
		clusterSection = map[string]interface{}{}
		doc[sectionCluster] = clusterSection
	}

	nodes := stringList(clusterSection[keyMaintenance])
	switch action {
	case MaintenanceAdd:
		if !containsString(nodes, node) {
			nodes = append(nodes, node)
		}
	case MaintenanceRemove:
		nodes = removeString(nodes, node)
	}
	clusterSection[keyMaintenance] = nodes

	if err := s.saveLocked(doc); err != nil {
		return nil, err
	}
	log.Info().Str("node", node).Str("action", action).Strs("maintenance_nodes", nodes).Msg("Maintenance node list updated")
	return nodes, nil
}

func (s *fileStore) UpdateBalancing(update BalancingUpdate) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	balancing, ok := doc[sectionBalancing].(map[string]interface{})
	if !ok {
		balancing = map[string]interface{}{}
		doc[sectionBalancing] = balancing
	}

	if update.Enable != nil {
		balancing["enable"] = *update.Enable
	}
	if update.Method != nil {
		balancing["method"] = *update.Method
	}
	if update.Mode != nil {
		balancing["mode"] = *update.Mode
	}
	if update.Balanciness != nil {
		balancing["balanciness"] = *update.Balanciness
	}
	if update.MemoryThreshold != nil {
		balancing["memory_threshold"] = *update.MemoryThreshold
	}

	if err := s.saveLocked(doc); err != nil {
		return nil, err
	}
	return balancing, nil
}

func (s *fileStore) MaintenanceNodes() []string {
	return s.clusterList(keyMaintenance)
}

func (s *fileStore) IgnoreNodes() []string {
	return s.clusterList(keyIgnored)
}

func (s *fileStore) clusterList(key string) []string {
	doc, err := s.Load()
	if err != nil {
		return []string{}
	}
	clusterSection, _ := doc[sectionCluster].(map[string]interface{})
	return stringList(clusterSection[key])
}

// BalancingEnabled defaults to true when the flag or the whole file is
// absent, matching the balancer's own default.
func (s *fileStore) BalancingEnabled() bool {
	doc, err := s.Load()
	if err != nil {
		return true
	}
	balancing, ok := doc[sectionBalancing].(map[string]interface{})
	if !ok {
		return true
	}
	enabled, ok := balancing["enable"].(bool)
	if !ok {
		return true
	}
	return enabled
}

func (s *fileStore) Pools() map[string]interface{} {
	doc, err := s.Load()
	if err != nil {
		return map[string]interface{}{}
	}
	balancing, _ := doc[sectionBalancing].(map[string]interface{})
	pools, _ := balancing["pools"].(map[string]interface{})
	if pools == nil {
		pools = map[string]interface{}{}
	}
	return pools
}

func (s *fileStore) Loaded() bool {
	_, err := s.Load()
	return err == nil
}

func (s *fileStore) APISettings() APISettings {
	settings := APISettings{User: defaultAPIUser, Timeout: defaultAPITimeout}
	doc, err := s.Load()
	if err != nil {
		return settings
	}
	api, ok := doc[sectionAPI].(map[string]interface{})
	if !ok {
		return settings
	}

	settings.Hosts = stringList(api["hosts"])
	if user, ok := api["user"].(string); ok && user != "" {
		settings.User = user
	}
	if pass, ok := api[keyPassword].(string); ok {
		settings.Password = pass
	}
	if verify, ok := api["ssl_verification"].(bool); ok {
		settings.VerifySSL = verify
	}
	if timeout, ok := api["timeout"].(int); ok && timeout > 0 {
		settings.Timeout = time.Duration(timeout) * time.Second
	}
	return settings
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...)
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func removeString(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
