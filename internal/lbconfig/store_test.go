package lbconfig_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"proxboard/internal/lbconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `proxmox_api:
  hosts:
    - pve1.local:8006
    - pve2.local
  user: root@pam
  pass: secret
  ssl_verification: false
  timeout: 15
proxmox_cluster:
  maintenance_nodes:
    - pve2
  ignore_nodes:
    - pve3
balancing:
  enable: true
  method: memory
  mode: used
  balanciness: 10
  pools:
    prod:
      - pve1
      - pve2
service:
  daemon: true
  schedule: 24
`

func writeConfig(t *testing.T, content string) lbconfig.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxlb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return lbconfig.NewStore(path)
}

func TestStore_Load(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	doc, err := store.Load()
	require.NoError(t, err)

	api, ok := doc["proxmox_api"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "secret", api["pass"])
	assert.True(t, store.Loaded())
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := lbconfig.NewStore(filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := store.Load()
	assert.ErrorIs(t, err, lbconfig.ErrNotLoaded)
	assert.False(t, store.Loaded())
	assert.True(t, store.BalancingEnabled(), "balancing defaults to enabled without a config")
}

func TestStore_MaskedHidesPassword(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	masked, err := store.Masked()
	require.NoError(t, err)

	api := masked["proxmox_api"].(map[string]interface{})
	assert.Equal(t, "********", api["pass"])

	// The file itself keeps the real password.
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "secret")
	assert.NotContains(t, string(data), "********")
}

func TestStore_ReplacePreservesMaskedPassword(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	updated, err := store.Masked()
	require.NoError(t, err)
	api := updated["proxmox_api"].(map[string]interface{})
	api["timeout"] = 30

	require.NoError(t, store.Replace(updated))

	doc, err := store.Load()
	require.NoError(t, err)
	savedAPI := doc["proxmox_api"].(map[string]interface{})
	assert.Equal(t, "secret", savedAPI["pass"], "masked password resolves back to the stored one")
	assert.Equal(t, 30, savedAPI["timeout"])
}

func TestStore_ReplaceWithNewPassword(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	doc, err := store.Load()
	require.NoError(t, err)
	doc["proxmox_api"].(map[string]interface{})["pass"] = "rotated"

	require.NoError(t, store.Replace(doc))

	settings := store.APISettings()
	assert.Equal(t, "rotated", settings.Password)
}

func TestStore_SetMaintenance(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	nodes, err := store.SetMaintenance("pve1", lbconfig.MaintenanceAdd)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pve1", "pve2"}, nodes)

	// Adding twice keeps a single entry.
	nodes, err = store.SetMaintenance("pve1", lbconfig.MaintenanceAdd)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pve1", "pve2"}, nodes)

	nodes, err = store.SetMaintenance("pve2", lbconfig.MaintenanceRemove)
	require.NoError(t, err)
	assert.Equal(t, []string{"pve1"}, nodes)

	// A fresh store sees the persisted change.
	reopened := lbconfig.NewStore(store.Path())
	assert.Equal(t, []string{"pve1"}, reopened.MaintenanceNodes())
}

func TestStore_SetMaintenanceWithoutClusterSection(t *testing.T) {
	store := writeConfig(t, "balancing:\n  enable: true\n")

	nodes, err := store.SetMaintenance("pve1", lbconfig.MaintenanceAdd)
	require.NoError(t, err)
	assert.Equal(t, []string{"pve1"}, nodes)
}

func TestStore_UpdateBalancingPartial(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	enable := false
	balanciness := 5
	balancing, err := store.UpdateBalancing(lbconfig.BalancingUpdate{
		Enable:      &enable,
		Balanciness: &balanciness,
	})
	require.NoError(t, err)

	assert.Equal(t, false, balancing["enable"])
	assert.Equal(t, 5, balancing["balanciness"])
	assert.Equal(t, "memory", balancing["method"], "untouched settings survive")

	assert.False(t, store.BalancingEnabled())
}

func TestStore_Accessors(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	assert.Equal(t, []string{"pve2"}, store.MaintenanceNodes())
	assert.Equal(t, []string{"pve3"}, store.IgnoreNodes())
	assert.True(t, store.BalancingEnabled())

	pools := store.Pools()
	require.Contains(t, pools, "prod")

	settings := store.APISettings()
	assert.Equal(t, []string{"pve1.local:8006", "pve2.local"}, settings.Hosts)
	assert.Equal(t, "root@pam", settings.User)
	assert.Equal(t, "secret", settings.Password)
	assert.False(t, settings.VerifySSL)
	assert.Equal(t, 15*time.Second, settings.Timeout)
}

func TestStore_APISettingsDefaults(t *testing.T) {
	store := writeConfig(t, "proxmox_api:\n  hosts:\n    - pve1\n")

	settings := store.APISettings()
	assert.Equal(t, "root@pam", settings.User)
	assert.Equal(t, 10*time.Second, settings.Timeout)
	assert.False(t, settings.VerifySSL)
}

func TestStore_SaveLeavesNoTempFile(t *testing.T) {
	store := writeConfig(t, sampleConfig)

	_, err := store.SetMaintenance("pve9", lbconfig.MaintenanceAdd)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temporary file %s left behind", entry.Name())
	}
}
