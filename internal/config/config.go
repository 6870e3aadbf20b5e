// Package config loads the ansiview configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// GalleryConfig holds the SSH gallery server settings.
type GalleryConfig struct {
	Path                string `json:"path"`
	Host                string `json:"host"`
	Port                int    `json:"port"`
	HostKeyPath         string `json:"hostKeyPath"`
	LegacySSHAlgorithms bool   `json:"legacySshAlgorithms"`
}

// Config holds all ansiview settings.
type Config struct {
	DefaultColumns  int           `json:"defaultColumns"`  // width used when SAUCE declares none
	MaxColumns      int           `json:"maxColumns"`      // hard cap on decode width
	AutoplayDelayMs int           `json:"autoplayDelayMs"` // delay between autoplay scroll steps
	OutputMode      string        `json:"outputMode"`      // "auto", "utf8" or "cp437"
	Gallery         GalleryConfig `json:"gallery"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		DefaultColumns:  80,
		MaxColumns:      80,
		AutoplayDelayMs: 100,
		OutputMode:      "auto",
		Gallery: GalleryConfig{
			Path:        "art",
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: "ansiview_host_key",
		},
	}
}

// LoadConfig loads configuration from path. A missing file is not an
// error: defaults are returned so the viewer works out of the box.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: %s not found, using default settings", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Defaults are filled in first so a sparse file only overrides what
	// it names.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config JSON from %s: %w", path, err)
	}

	if cfg.DefaultColumns <= 0 {
		cfg.DefaultColumns = 80
	}
	if cfg.MaxColumns <= 0 {
		cfg.MaxColumns = 80
	}
	if cfg.AutoplayDelayMs <= 0 {
		cfg.AutoplayDelayMs = 100
	}

	log.Printf("INFO: Loaded configuration from %s", path)
	return cfg, nil
}
