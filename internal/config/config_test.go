package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
world:
  seed: 777
  min_layer: 0
  max_layer: 24
  data_path: /tmp/colony
server:
  rest_port: 9090
  metrics_port: 9091
log:
  dir: /tmp/colony-logs
`)
	path := filepath.Join(t.TempDir(), "config.yml")
	assert.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, int64(777), cfg.World.GetSeed())
	assert.Equal(t, 24, cfg.World.GetMaxLayer())
	assert.Equal(t, "/tmp/colony", cfg.World.GetDataPath())
	assert.Equal(t, 9090, cfg.Server.GetRESTPort())
	assert.Equal(t, 9091, cfg.Server.GetMetricsPort())
	assert.Equal(t, "/tmp/colony-logs", cfg.Log.Dir)
}

func TestLoad_NoConfig(t *testing.T) {
	t.Setenv("MAP_CONFIG", "")

	cfg, err := Load("")
	assert.NoError(t, err, "Отсутствие конфига — не ошибка")
	assert.Nil(t, cfg, "Без конфига используются дефолты")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	assert.Error(t, err)
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("MAP_SEED", "")
	t.Setenv("MAP_MAX_LAYER", "")
	t.Setenv("MAP_REST_PORT", "")
	t.Setenv("MAP_METRICS_PORT", "")

	cfg := &Config{}
	assert.Equal(t, int64(1), cfg.World.GetSeed())
	assert.Equal(t, 15, cfg.World.GetMaxLayer())
	assert.Equal(t, 8088, cfg.Server.GetRESTPort())
	assert.Equal(t, 2112, cfg.Server.GetMetricsPort())
}

func TestConfig_EnvFallback(t *testing.T) {
	t.Setenv("MAP_SEED", "31337")
	t.Setenv("MAP_REST_PORT", "8700")

	cfg := &Config{}
	assert.Equal(t, int64(31337), cfg.World.GetSeed(), "ENV перекрывает дефолт при пустом конфиге")
	assert.Equal(t, 8700, cfg.Server.GetRESTPort())

	// Значение из конфига имеет приоритет над ENV
	cfg.World.Seed = 5
	cfg.Server.RESTPort = 8800
	assert.Equal(t, int64(5), cfg.World.GetSeed())
	assert.Equal(t, 8800, cfg.Server.GetRESTPort())
}
