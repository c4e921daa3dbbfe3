package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	xdgAppName = "goalplan"
	configFile = "config.json"
)

type Config struct {
	// CalendarID is the provider calendar used for push and pull.
	// "primary" targets the account's main calendar.
	CalendarID string `json:"calendarId"`
	// Timezone names the IANA zone used when provider events are built from
	// local wall-clock times. Empty means the process-local zone.
	Timezone string `json:"timezone,omitempty"`
	// Storage selects the persistence backend: "jsonfile" or "sqlite".
	Storage string `json:"storage"`
	// DataFile overrides the task collection location.
	DataFile string `json:"dataFile,omitempty"`
	// ListenAddr is the HTTP API bind address.
	ListenAddr string `json:"listenAddr"`
	// Model is the generative model used for chat and plan generation.
	Model string `json:"model"`
	// SyncWindowDays bounds the default pull window (now .. now+N days).
	SyncWindowDays int `json:"syncWindowDays"`
}

func defaults() *Config {
	return &Config{
		CalendarID:     "primary",
		Storage:        "jsonfile",
		ListenAddr:     ":8080",
		Model:          "gemini-1.5-flash",
		SyncWindowDays: 30,
	}
}

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, err
	}
	defer f.Close()

	cfg := defaults()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := defaults()
	if c.CalendarID == "" {
		c.CalendarID = d.CalendarID
	}
	if c.Storage == "" {
		c.Storage = d.Storage
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.SyncWindowDays <= 0 {
		c.SyncWindowDays = d.SyncWindowDays
	}
}

// DataPath resolves the task collection location, honoring the DataFile
// override and the storage backend's natural extension.
func (c *Config) DataPath() (string, error) {
	if c.DataFile != "" {
		return c.DataFile, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	name := "tasks.json"
	if c.Storage == "sqlite" {
		name = "tasks.db"
	}
	return filepath.Join(dir, name), nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
