package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnv(t *testing.T) {
	t.Setenv(APIKeyEnvVar, "")
	t.Setenv(LegacyAPIKeyVar, " legacy-key ")
	t.Setenv(ModelEnvVar, "some-model")
	t.Setenv(TimeoutEnvVar, "90")
	t.Setenv(MaxUploadEnvVar, "abc")

	env := ReadEnv()
	assert.Equal(t, "legacy-key", env.APIKey)
	assert.Equal(t, "some-model", env.Model)
	assert.Equal(t, 90, env.TimeoutSec)
	assert.Equal(t, 0, env.MaxUploadMB)

	t.Setenv(APIKeyEnvVar, "primary-key")
	assert.Equal(t, "primary-key", ReadEnv().APIKey)
}

func TestEnvSettings(t *testing.T) {
	s := Env{}.Settings()
	assert.Equal(t, DefaultModel, s.Model)
	assert.Equal(t, DefaultTimeoutSec*time.Second, s.Timeout)
	assert.Equal(t, int64(DefaultMaxUploadMB<<20), s.MaxUploadBytes)

	s = Env{APIKey: "k", Model: "m", TimeoutSec: 10, MaxUploadMB: 1}.Settings()
	assert.Equal(t, "k", s.APIKey)
	assert.Equal(t, "m", s.Model)
	assert.Equal(t, 10*time.Second, s.Timeout)
	assert.Equal(t, int64(1<<20), s.MaxUploadBytes)
}

func TestLoadEnvFromFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "clearview.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CLEARVIEW_MODEL=file-model\nCLEARVIEW_MAX_UPLOAD_MB=7\n"), 0600))

	t.Setenv(EnvFileVar, envFile)
	t.Setenv(ModelEnvVar, "")
	t.Setenv(MaxUploadEnvVar, "")
	os.Unsetenv(ModelEnvVar)
	os.Unsetenv(MaxUploadEnvVar)

	env := LoadEnv()
	assert.Equal(t, "file-model", env.Model)
	assert.Equal(t, 7, env.MaxUploadMB)
}

func TestResolveEnvPathUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvFileVar, "")
	assert.Equal(t, filepath.Join(home, ".clearview"), GetPath())
	assert.Empty(t, resolveEnvPath())

	require.NoError(t, os.MkdirAll(GetPath(), 0700))
	userEnv := filepath.Join(GetPath(), ".env")
	require.NoError(t, os.WriteFile(userEnv, []byte("CLEARVIEW_MODEL=user-model\n"), 0600))
	assert.Equal(t, userEnv, resolveEnvPath())
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"12", 12},
		{" 3 ", 3},
		{"-4", 0},
		{"0", 0},
		{"9999", 0},
		{"x", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, positiveInt(tt.in, 600), tt.in)
	}
}
