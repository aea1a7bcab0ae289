package config

import (
	"errors"
	"log"
	"os/user"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/zalando/go-keyring"
)

// Preference keys
const (
	AppModelKey              = "app_model"                // AppModelKey is the key for the Gemini model name preference
	AppThemeKey              = "app_theme"                // AppThemeKey is the key for the app theme preference
	AppMaxUploadMBKey        = "app_max_upload_mb"        // AppMaxUploadMBKey is the key for the upload size limit preference
	AppTimeoutSecKey         = "app_timeout_sec"          // AppTimeoutSecKey is the key for the remote request timeout preference
	AppUpdateCheckEnabledKey = "app_update_check_enabled" // AppUpdateCheckEnabledKey is the key for the app update check enabled preference
	apiKeyKeyringKey         = "gemini_api_key"
)

// AppConfig holds the application-wide configuration.
// Plain settings live in fyne preferences, the API key lives in the OS keyring.
type AppConfig struct {
	prefs  fyne.Preferences
	env    Env
	userid string
	mu     sync.RWMutex
}

// NewAppConfig creates a new AppConfig instance. Values in env are used when
// neither the preferences nor the keyring hold a value.
func NewAppConfig(p fyne.Preferences, env Env) *AppConfig {
	userid := "default"
	if u, err := user.Current(); err == nil {
		userid = u.Uid
	}
	return &AppConfig{prefs: p, env: env, userid: userid}
}

// GetAPIKey returns the Gemini API key from the keyring, falling back to the environment.
func (c *AppConfig) GetAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, err := keyring.Get(AppID+"."+apiKeyKeyringKey, c.userid)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			log.Printf("failed to retrieve API key from keyring: %v", err)
		}
		return c.env.APIKey
	}
	return key
}

// SetAPIKey stores the Gemini API key in the keyring. An empty key removes it.
func (c *AppConfig) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		if err := keyring.Delete(AppID+"."+apiKeyKeyringKey, c.userid); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			log.Printf("failed to remove API key from keyring: %v", err)
		}
		return
	}
	if err := keyring.Set(AppID+"."+apiKeyKeyringKey, c.userid, apiKey); err != nil {
		log.Printf("failed to save API key to keyring: %v", err)
	}
}

// GetModel returns the Gemini model used for image editing.
func (c *AppConfig) GetModel() string {
	fallback := c.env.Model
	if fallback == "" {
		fallback = DefaultModel
	}
	return c.prefs.StringWithFallback(AppModelKey, fallback)
}

// SetModel sets the Gemini model used for image editing.
func (c *AppConfig) SetModel(model string) {
	c.prefs.SetString(AppModelKey, strings.TrimSpace(model))
}

// GetTheme returns the current application theme
func (c *AppConfig) GetTheme() string {
	return c.prefs.StringWithFallback(AppThemeKey, DefaultTheme)
}

// SetTheme sets the application theme
func (c *AppConfig) SetTheme(theme string) {
	c.prefs.SetString(AppThemeKey, theme)
}

// GetMaxUploadMB returns the upload size limit in megabytes.
func (c *AppConfig) GetMaxUploadMB() int {
	fallback := c.env.MaxUploadMB
	if fallback <= 0 {
		fallback = DefaultMaxUploadMB
	}
	mb := c.prefs.IntWithFallback(AppMaxUploadMBKey, fallback)
	if mb <= 0 || mb > maxUploadCeilMB {
		return DefaultMaxUploadMB
	}
	return mb
}

// SetMaxUploadMB sets the upload size limit in megabytes.
func (c *AppConfig) SetMaxUploadMB(mb int) {
	c.prefs.SetInt(AppMaxUploadMBKey, mb)
}

// GetTimeoutSec returns the remote request timeout in seconds.
func (c *AppConfig) GetTimeoutSec() int {
	fallback := c.env.TimeoutSec
	if fallback <= 0 {
		fallback = DefaultTimeoutSec
	}
	sec := c.prefs.IntWithFallback(AppTimeoutSecKey, fallback)
	if sec <= 0 || sec > maxTimeoutCeilSec {
		return DefaultTimeoutSec
	}
	return sec
}

// SetTimeoutSec sets the remote request timeout in seconds.
func (c *AppConfig) SetTimeoutSec(sec int) {
	c.prefs.SetInt(AppTimeoutSecKey, sec)
}

// GetUpdateCheckEnabled returns whether the application should check for updates
func (c *AppConfig) GetUpdateCheckEnabled() bool {
	return c.prefs.BoolWithFallback(AppUpdateCheckEnabledKey, true)
}

// SetUpdateCheckEnabled sets whether the application should check for updates
func (c *AppConfig) SetUpdateCheckEnabled(enabled bool) {
	c.prefs.SetBool(AppUpdateCheckEnabledKey, enabled)
}

// Settings returns the resolved runtime settings.
func (c *AppConfig) Settings() Settings {
	return Settings{
		APIKey:         c.GetAPIKey(),
		Model:          c.GetModel(),
		Timeout:        time.Duration(c.GetTimeoutSec()) * time.Second,
		MaxUploadBytes: int64(c.GetMaxUploadMB()) << 20,
	}.withDefaults()
}
