package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
jwt:
  secret: "s3cret"
simulation:
  topology: ring
  ring_size: 6
  slot_interval: 50ms
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "./data.db", cfg.Database.Path)
	assert.Equal(t, TopologyRing, cfg.Simulation.Topology)
	assert.Equal(t, 6, cfg.Simulation.RingSize)
	assert.Equal(t, 20, cfg.Simulation.CpCapacity)
	assert.Equal(t, 1000, cfg.Simulation.MaxSlots)

	interval, err := cfg.Simulation.Interval()
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, interval)

	exp, err := cfg.JWTExpiration()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, exp)

	cooldown, err := cfg.AlarmCooldown()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cooldown)
}

func TestLoadRepositoryConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, TopologyDatabase, cfg.Simulation.Topology)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty secret", func(c *Config) { c.JWT.Secret = "" }},
		{"bad expiration", func(c *Config) { c.JWT.Expiration = "forever" }},
		{"negative capacity", func(c *Config) { c.Simulation.TxCapacity = -1 }},
		{"zero rate", func(c *Config) { c.Simulation.CpRate = 0 }},
		{"zero budget", func(c *Config) { c.Simulation.MaxSlots = 0 }},
		{"task range", func(c *Config) { c.Simulation.MinTasks, c.Simulation.MaxTasks = 5, 4 }},
		{"unknown topology", func(c *Config) { c.Simulation.Topology = "mesh" }},
		{"ring without size", func(c *Config) { c.Simulation.Topology, c.Simulation.RingSize = TopologyRing, 0 }},
		{"negative interval", func(c *Config) { c.Simulation.SlotInterval = "-1s" }},
		{"bad cooldown", func(c *Config) { c.Alarm.Cooldown = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.JWT.Secret = "s3cret"
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
