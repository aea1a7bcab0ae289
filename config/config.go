package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by ClearView.
const (
	EnvFileVar        = "CLEARVIEW_ENV"
	APIKeyEnvVar      = "GEMINI_API_KEY"
	LegacyAPIKeyVar   = "API_KEY"
	ModelEnvVar       = "CLEARVIEW_MODEL"
	TimeoutEnvVar     = "CLEARVIEW_TIMEOUT_SEC"
	MaxUploadEnvVar   = "CLEARVIEW_MAX_UPLOAD_MB"
	envFileName       = ".env"
	maxUploadCeilMB   = 50
	maxTimeoutCeilSec = 600
)

// Settings is the resolved runtime configuration used by the editor and the workspace.
type Settings struct {
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxUploadBytes int64
}

// Env holds values read from the process environment after the .env file has been applied.
type Env struct {
	APIKey      string
	Model       string
	TimeoutSec  int
	MaxUploadMB int
}

// GetPath returns the path to the user's config directory
func GetPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting user home directory: %v", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName))
}

// LoadEnv applies the first .env file found and returns the ClearView variables.
// Search order: next to the executable, the path in $CLEARVIEW_ENV, then the
// user's config directory.
// Variables already present in the environment are never overwritten.
func LoadEnv() Env {
	if envPath := resolveEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}
	return ReadEnv()
}

// ReadEnv reads the ClearView variables from the current environment.
func ReadEnv() Env {
	apiKey := strings.TrimSpace(os.Getenv(APIKeyEnvVar))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(LegacyAPIKeyVar))
	}
	return Env{
		APIKey:      apiKey,
		Model:       strings.TrimSpace(os.Getenv(ModelEnvVar)),
		TimeoutSec:  positiveInt(os.Getenv(TimeoutEnvVar), maxTimeoutCeilSec),
		MaxUploadMB: positiveInt(os.Getenv(MaxUploadEnvVar), maxUploadCeilMB),
	}
}

// Settings resolves the environment against the built-in defaults.
func (e Env) Settings() Settings {
	s := Settings{
		APIKey:         e.APIKey,
		Model:          e.Model,
		Timeout:        time.Duration(e.TimeoutSec) * time.Second,
		MaxUploadBytes: int64(e.MaxUploadMB) << 20,
	}
	return s.withDefaults()
}

func (s Settings) withDefaults() Settings {
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeoutSec * time.Second
	}
	if s.MaxUploadBytes <= 0 {
		s.MaxUploadBytes = DefaultMaxUploadMB << 20
	}
	return s
}

func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), envFileName)
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvFileVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	if userEnv := filepath.Join(GetPath(), envFileName); fileExists(userEnv) {
		return userEnv
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// positiveInt parses v and returns it when it is within (0, ceil], otherwise 0.
func positiveInt(v string, ceil int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 || n > ceil {
		return 0
	}
	return n
}
