package config

import (
	"fmt"
	"time"
)

// Default wire contract with the backend service. The port is fixed by the
// backend itself; the paths are its two observable endpoints.
const (
	DefaultBackendPort  = 8000
	DefaultHealthPath   = "/health"
	DefaultShutdownPath = "/shutdown"
)

// Config is the top-level configuration for the desktop shell.
type Config struct {
	Backend   BackendConfig  `json:"backend" mapstructure:"backend"`
	Startup   StartupConfig  `json:"startup" mapstructure:"startup"`
	Windows   WindowsConfig  `json:"windows" mapstructure:"windows"`
	Shortcuts ShortcutConfig `json:"shortcuts" mapstructure:"shortcuts"`
	Logging   *LogConfig     `json:"logging,omitempty" mapstructure:"logging"`
}

// BackendConfig describes how to reach and launch the backend service.
type BackendConfig struct {
	Port         int    `json:"port" mapstructure:"port"`
	HealthPath   string `json:"health_path" mapstructure:"health_path"`
	ShutdownPath string `json:"shutdown_path" mapstructure:"shutdown_path"`

	// VoiceMode is passed to dev-mode spawns as the backend's --voice flag.
	VoiceMode bool `json:"voice_mode" mapstructure:"voice_mode"`

	// ShutdownTimeout bounds the best-effort POST /shutdown handshake.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// SettleTime is how long the backend gets to flush state after the
	// handshake before it is killed unconditionally.
	SettleTime time.Duration `json:"settle_time" mapstructure:"settle_time"`
}

// StartupConfig bounds the readiness and connectivity gates.
type StartupConfig struct {
	HealthAttempts       int           `json:"health_attempts" mapstructure:"health_attempts"`
	HealthInterval       time.Duration `json:"health_interval" mapstructure:"health_interval"`
	HealthTimeout        time.Duration `json:"health_timeout" mapstructure:"health_timeout"`
	ConnectivityAttempts int           `json:"connectivity_attempts" mapstructure:"connectivity_attempts"`
	ConnectivityInterval time.Duration `json:"connectivity_interval" mapstructure:"connectivity_interval"`
	ConnectivityURL      string        `json:"connectivity_url" mapstructure:"connectivity_url"`
	ConnectivityTimeout  time.Duration `json:"connectivity_timeout" mapstructure:"connectivity_timeout"`
}

// WindowSize is a logical (DPI-independent) window size.
type WindowSize struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

// WindowsConfig carries the geometry presets for the two managed windows.
type WindowsConfig struct {
	// Bubble is the edge length of the square trigger widget.
	Bubble int `json:"bubble" mapstructure:"bubble"`

	// MainDefault is used when the bubble toggles the main window open.
	MainDefault WindowSize `json:"main_default" mapstructure:"main_default"`

	// QuickSearch is the compact preset shown by the quick-search shortcut.
	QuickSearch WindowSize `json:"quick_search" mapstructure:"quick_search"`

	// FullReset is applied when hiding out of quick-search mode so the next
	// reveal starts full-size again.
	FullReset WindowSize `json:"full_reset" mapstructure:"full_reset"`

	// FullMode is the preset applied by the force-full-mode shortcut.
	FullMode WindowSize `json:"full_mode" mapstructure:"full_mode"`
}

// ShortcutConfig maps the three global shortcuts to key combinations.
// Combinations use "modifier+key" syntax, e.g. "alt+s".
type ShortcutConfig struct {
	QuickSearch string `json:"quick_search" mapstructure:"quick_search"`
	FullMode    string `json:"full_mode" mapstructure:"full_mode"`
	HideMode    string `json:"hide_mode" mapstructure:"hide_mode"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level         string `json:"level" mapstructure:"level"`
	EnableFile    bool   `json:"enable_file" mapstructure:"enable_file"`
	EnableConsole bool   `json:"enable_console" mapstructure:"enable_console"`
	Filename      string `json:"filename" mapstructure:"filename"`
	LogDir        string `json:"log_dir" mapstructure:"log_dir"`
	MaxSize       int    `json:"max_size" mapstructure:"max_size"` // megabytes
	MaxBackups    int    `json:"max_backups" mapstructure:"max_backups"`
	MaxAge        int    `json:"max_age" mapstructure:"max_age"` // days
	Compress      bool   `json:"compress" mapstructure:"compress"`
	JSONFormat    bool   `json:"json_format" mapstructure:"json_format"`
}

// DefaultConfig returns the configuration matching the shipped product
// behavior. The generous health bound covers the backend's assistant
// warm-up, which is known to take many seconds.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Port:            DefaultBackendPort,
			HealthPath:      DefaultHealthPath,
			ShutdownPath:    DefaultShutdownPath,
			VoiceMode:       true,
			ShutdownTimeout: 500 * time.Millisecond,
			SettleTime:      300 * time.Millisecond,
		},
		Startup: StartupConfig{
			HealthAttempts:       45,
			HealthInterval:       time.Second,
			HealthTimeout:        2 * time.Second,
			ConnectivityAttempts: 30,
			ConnectivityInterval: time.Second,
			ConnectivityURL:      "https://www.google.com",
			ConnectivityTimeout:  2 * time.Second,
		},
		Windows: WindowsConfig{
			Bubble:      220,
			MainDefault: WindowSize{Width: 480, Height: 640},
			QuickSearch: WindowSize{Width: 600, Height: 60},
			FullReset:   WindowSize{Width: 1000, Height: 800},
			FullMode:    WindowSize{Width: 400, Height: 600},
		},
		Shortcuts: ShortcutConfig{
			QuickSearch: "alt+s",
			FullMode:    "alt+f",
			HideMode:    "alt+m",
		},
	}
}

// BaseURL returns the backend's local base URL.
func (c *BackendConfig) BaseURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", c.Port)
}

// HealthURL returns the full health endpoint URL.
func (c *BackendConfig) HealthURL() string {
	return c.BaseURL() + c.HealthPath
}

// ShutdownURL returns the full shutdown endpoint URL.
func (c *BackendConfig) ShutdownURL() string {
	return c.BaseURL() + c.ShutdownPath
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Backend.Port <= 0 || c.Backend.Port > 65535 {
		return fmt.Errorf("backend port must be between 1 and 65535, got %d", c.Backend.Port)
	}
	if c.Startup.HealthAttempts <= 0 {
		return fmt.Errorf("health attempts must be positive, got %d", c.Startup.HealthAttempts)
	}
	if c.Startup.HealthInterval <= 0 {
		return fmt.Errorf("health interval must be positive, got %v", c.Startup.HealthInterval)
	}
	if c.Startup.HealthTimeout <= 0 {
		return fmt.Errorf("health timeout must be positive, got %v", c.Startup.HealthTimeout)
	}
	if c.Startup.ConnectivityAttempts <= 0 {
		return fmt.Errorf("connectivity attempts must be positive, got %d", c.Startup.ConnectivityAttempts)
	}
	if c.Startup.ConnectivityInterval <= 0 {
		return fmt.Errorf("connectivity interval must be positive, got %v", c.Startup.ConnectivityInterval)
	}
	if c.Startup.ConnectivityURL == "" {
		return fmt.Errorf("connectivity URL must not be empty")
	}
	for _, s := range []struct {
		name string
		size WindowSize
	}{
		{"main_default", c.Windows.MainDefault},
		{"quick_search", c.Windows.QuickSearch},
		{"full_reset", c.Windows.FullReset},
		{"full_mode", c.Windows.FullMode},
	} {
		if s.size.Width <= 0 || s.size.Height <= 0 {
			return fmt.Errorf("window preset %s must have positive dimensions, got %dx%d",
				s.name, s.size.Width, s.size.Height)
		}
	}
	for _, sc := range []struct {
		name  string
		combo string
	}{
		{"quick_search", c.Shortcuts.QuickSearch},
		{"full_mode", c.Shortcuts.FullMode},
		{"hide_mode", c.Shortcuts.HideMode},
	} {
		if sc.combo == "" {
			return fmt.Errorf("shortcut %s must not be empty", sc.name)
		}
	}
	return nil
}
