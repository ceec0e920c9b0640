// Package project persists per-user coilwinder data: the application
// config and the custom wire store, both as JSON under ~/.coilwinder/.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// maxRecentDesigns caps the recent design list.
const maxRecentDesigns = 10

// AppConfig holds user-level defaults applied when a design or command
// line does not override them.
type AppConfig struct {
	// DefaultStandard names the insulation standard used by designs that
	// do not specify one.
	DefaultStandard string `json:"default_standard"`
	// WireTablePath is a wire table (CSV or XLSX) merged into the
	// built-in catalog on every run.
	WireTablePath string   `json:"wire_table_path,omitempty"`
	RecentDesigns []string `json:"recent_designs"`
}

// DefaultAppConfig returns the configuration used when no config file
// exists.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultStandard: "Basic",
		RecentDesigns:   []string{},
	}
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.coilwinder/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".coilwinder")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentDesigns == nil {
		config.RecentDesigns = []string{}
	}
	return config, nil
}

// AddRecentDesign moves path to the front of the recent design list,
// removing any earlier occurrence and trimming the list to its cap.
func (c *AppConfig) AddRecentDesign(path string) {
	recent := []string{path}
	for _, p := range c.RecentDesigns {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentDesigns {
		recent = recent[:maxRecentDesigns]
	}
	c.RecentDesigns = recent
}
