package config

import (
	"fmt"
	"os"
	"time"

	"github.com/studiowebux/apiconsole/internal/types"
	"github.com/studiowebux/apiconsole/internal/validate"
	"gopkg.in/yaml.v3"
)

// DefaultServer is the backend the original deployment listens on
const DefaultServer = "http://localhost:5000"

// Settings is the user-editable configuration in settings.yaml
type Settings struct {
	Server          string          `yaml:"server" validate:"required,endpoint_url"`
	PageSize        int             `yaml:"page_size" validate:"min=1,max=100"`
	RequestTimeout  int             `yaml:"request_timeout" validate:"min=1,max=600"`
	MessageTimeout  int             `yaml:"message_timeout" validate:"min=0,max=600"`
	LogLevel        string          `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat       string          `yaml:"log_format" validate:"omitempty,oneof=text json"`
	ActivityEnabled *bool           `yaml:"activity_enabled,omitempty"`
	TLS             types.TLSConfig `yaml:"tls,omitempty"`
}

// DefaultSettings returns the settings used when the file is absent or a key is unset
func DefaultSettings() Settings {
	enabled := true
	return Settings{
		Server:          DefaultServer,
		PageSize:        10,
		RequestTimeout:  30,
		MessageTimeout:  5,
		LogLevel:        "info",
		LogFormat:       "text",
		ActivityEnabled: &enabled,
	}
}

// LoadSettings reads path and overlays its values on the defaults.
// A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading %s: %w", path, err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}

	s.overlay(file)

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// overlay copies every set value of other onto s
func (s *Settings) overlay(other Settings) {
	if other.Server != "" {
		s.Server = other.Server
	}
	if other.PageSize != 0 {
		s.PageSize = other.PageSize
	}
	if other.RequestTimeout != 0 {
		s.RequestTimeout = other.RequestTimeout
	}
	if other.MessageTimeout != 0 {
		s.MessageTimeout = other.MessageTimeout
	}
	if other.LogLevel != "" {
		s.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		s.LogFormat = other.LogFormat
	}
	if other.ActivityEnabled != nil {
		s.ActivityEnabled = other.ActivityEnabled
	}
	if other.TLS != (types.TLSConfig{}) {
		s.TLS = other.TLS
	}
}

// Validate checks the settings against their rules
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// Marshal encodes the settings as YAML
func (s Settings) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}

// Save writes the settings to path
func (s Settings) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Timeout returns the request timeout as a duration
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// NoticeTimeout returns how long notifications stay visible; zero keeps them
func (s Settings) NoticeTimeout() time.Duration {
	return time.Duration(s.MessageTimeout) * time.Second
}

// ActivityOn reports whether the activity journal is enabled
func (s Settings) ActivityOn() bool {
	return s.ActivityEnabled == nil || *s.ActivityEnabled
}

// TLSConfig returns the TLS settings, or nil when none are set
func (s Settings) TLSConfig() *types.TLSConfig {
	if s.TLS == (types.TLSConfig{}) {
		return nil
	}
	tls := s.TLS
	return &tls
}
