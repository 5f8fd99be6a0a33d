package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ticktock/internal/core/model"
	"ticktock/internal/platform"
	"ticktock/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the settings file inside the app config directory.
const SettingsFileName = "settings.yaml"

// Pointer fields distinguish a missing key from an explicit false or zero.
type yamlSettings struct {
	Mode                  string `yaml:"mode,omitempty"`
	LengthSeconds         *int   `yaml:"length_seconds,omitempty"`
	AllowOverflow         *bool  `yaml:"allow_overflow,omitempty"`
	Autostart             *bool  `yaml:"autostart,omitempty"`
	IdlePause             *bool  `yaml:"idle_pause,omitempty"`
	IdlePauseAfterMinutes *int   `yaml:"idle_pause_after_minutes,omitempty"`
}

// SettingsPath returns where settings for appName are stored.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, SettingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads preferences from configPath, falling back to
// defaults for a missing file or missing keys.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to configPath, creating its directory.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	lengthSeconds := int(settings.Length / time.Second)
	idleMinutes := int(settings.IdlePauseAfter / time.Minute)
	fileData := yamlSettings{
		Mode:                  string(settings.Mode),
		LengthSeconds:         &lengthSeconds,
		AllowOverflow:         &settings.AllowOverflow,
		Autostart:             &settings.Autostart,
		IdlePause:             &settings.IdlePause,
		IdlePauseAfterMinutes: &idleMinutes,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if mode, ok := model.ParseMode(fileData.Mode); ok {
		settings.Mode = mode
	}
	if fileData.LengthSeconds != nil && *fileData.LengthSeconds >= 0 {
		settings.Length = time.Duration(*fileData.LengthSeconds) * time.Second
	}
	if fileData.AllowOverflow != nil {
		settings.AllowOverflow = *fileData.AllowOverflow
	}
	if fileData.Autostart != nil {
		settings.Autostart = *fileData.Autostart
	}
	if fileData.IdlePause != nil {
		settings.IdlePause = *fileData.IdlePause
	}
	if fileData.IdlePauseAfterMinutes != nil && *fileData.IdlePauseAfterMinutes > 0 {
		settings.IdlePauseAfter = time.Duration(*fileData.IdlePauseAfterMinutes) * time.Minute
	}
}
