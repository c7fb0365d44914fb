package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	// Change to temp dir so no stray config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Reference.Path)
	assert.InDelta(t, 10.0, cfg.Risk.ThresholdPct, 0.001)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 60, cfg.Anthropic.TimeoutSecs)
	assert.Equal(t, 30, cfg.Anthropic.RequestsPerMinute)
	assert.Equal(t, 3, cfg.Anthropic.MaxAttempts)
	assert.False(t, cfg.Anthropic.Enabled())
	assert.Equal(t, ".", cfg.Report.OutDir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 480, cfg.Server.SessionTTLMins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
reference:
  path: /data/tabela.xlsx
risk:
  threshold_pct: 5
anthropic:
  key: sk-test
  model: claude-sonnet-4-5-20250929
log:
  level: debug
  format: console
server:
  port: 9090
  cors_origins:
    - https://qualidade.example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/tabela.xlsx", cfg.Reference.Path)
	assert.InDelta(t, 5.0, cfg.Risk.ThresholdPct, 0.001)
	assert.True(t, cfg.Anthropic.Enabled())
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://qualidade.example.com"}, cfg.Server.CORSOrigins)
	// Defaults still apply for unset values
	assert.Equal(t, 30, cfg.Anthropic.RequestsPerMinute)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
risk:
  threshold_pct: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("NITRO_LOG_LEVEL", "warn")
	t.Setenv("NITRO_RISK_THRESHOLD_PCT", "15")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.InDelta(t, 15.0, cfg.Risk.ThresholdPct, 0.001)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("NITRO_SERVER_PORT", "3000")
	t.Setenv("NITRO_ANTHROPIC_KEY", "sk-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Anthropic.Enabled())
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidThreshold(t *testing.T) {
	chdirTemp(t)
	t.Setenv("NITRO_RISK_THRESHOLD_PCT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Risk:   RiskConfig{ThresholdPct: 10},
			Server: ServerConfig{Port: 8080},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Risk.ThresholdPct = 150
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Anthropic.Key = "sk-test"
	assert.Error(t, cfg.Validate())
	cfg.Anthropic.Model = "claude-haiku-4-5-20251001"
	assert.NoError(t, cfg.Validate())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
