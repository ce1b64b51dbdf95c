package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Player settings
	RenderMode string `json:"render_mode"` // svg, canvas
	Loop       bool   `json:"loop"`
	Autoplay   bool   `json:"autoplay"`

	// Export settings
	ExportSuffix string `json:"export_suffix"`

	// UI settings
	MessageTimeoutSeconds float64 `json:"message_timeout_seconds"`
	MaxLogLines           int     `json:"max_log_lines"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		RenderMode:            "svg",
		Loop:                  true,
		Autoplay:              true,
		ExportSuffix:          "-edited",
		MessageTimeoutSeconds: 3,
		MaxLogLines:           10,
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
