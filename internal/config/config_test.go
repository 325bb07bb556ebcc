package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ANJALI_RUNTIME_PATH", root)

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, root, cfg.GetRuntimePath())
	assert.Equal(t, filepath.Join(root, "anjali_memory.db"), cfg.GetDatabasePath())
	assert.Equal(t, filepath.Join(root, "vector_db"), cfg.GetVectorDir())
	assert.Equal(t, "Anjali", cfg.GetPersonaName())
	assert.Equal(t, "friendly", cfg.GetDefaultMood())
	assert.Equal(t, 10, cfg.GetContextWindowSize())
	assert.Equal(t, 3, cfg.GetRecallLimit())
	assert.True(t, cfg.IsCLISelected())
	assert.False(t, cfg.IsTelegramSelected())
}

func TestParseAppConfig_PathOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ANJALI_RUNTIME_PATH", root)
	t.Setenv("ANJALI_DB_PATH", "/data/mem.db")
	t.Setenv("ANJALI_VECTOR_DIR", "/data/vec")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "/data/mem.db", cfg.GetDatabasePath())
	assert.Equal(t, "/data/vec", cfg.GetVectorDir())
}

func TestResolveRuntimePath_Relative(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".anjali"), resolveRuntimePath(""))
	assert.Equal(t, filepath.Join(home, "custom"), resolveRuntimePath("custom"))
	assert.Equal(t, "/abs/dir", resolveRuntimePath("/abs/dir"))
}

func TestParseLLMConfig(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := ParseLLMConfig()
	require.NoError(t, err)

	assert.Equal(t, "openrouter", cfg.GetProvider())
	assert.Equal(t, "mistralai/mistral-7b-instruct:free", cfg.GetModel())
	assert.InDelta(t, 0.8, cfg.GetTemperature(), 1e-9)
	assert.Equal(t, 500, cfg.GetMaxTokens())
	assert.Equal(t, 60*time.Second, cfg.GetTimeout())
	assert.Equal(t, "sk-test", cfg.GetOpenRouterAPIKey())

	require.NoError(t, cfg.SetModel("openai/gpt-4o-mini"))
	assert.Equal(t, "openai/gpt-4o-mini", cfg.GetModel())
	assert.Error(t, cfg.SetModel("  "))
}
