package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// settings are the values a config file or profile may supply.
type settings struct {
	Source    string `yaml:"source"`
	URL       string `yaml:"url"`
	Algorithm string `yaml:"algorithm"`
	Direction string `yaml:"direction"`
	Depth     *int   `yaml:"depth"`
}

type configFile struct {
	// Flat format.
	settings `yaml:",inline"`
	// Profile format.
	Profiles      map[string]settings `yaml:"profiles"`
	ActiveProfile string              `yaml:"active_profile"`
}

// fileDefaults holds traversal defaults from the config file, applied when the
// corresponding flag is not set.
var fileDefaults settings

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dotwalk", "config.yaml"), nil
}

// resolveConfig fills unset global flags. Flag takes precedence, then env, then config file.
func resolveConfig() {
	if flagURL == "" {
		flagURL = os.Getenv("DOTWALK_URL")
	}
	if flagSource == "" {
		flagSource = os.Getenv("DOTWALK_SOURCE")
	}
	if flagProfile == "" {
		flagProfile = os.Getenv("DOTWALK_PROFILE")
	}

	fileDefaults = readConfigFile(flagProfile)

	if flagURL == "" {
		flagURL = fileDefaults.URL
	}
	if flagSource == "" {
		flagSource = fileDefaults.Source
	}
}

// readConfigFile returns the flat settings overlaid with the selected profile.
// A missing or unreadable file yields zero settings.
func readConfigFile(profile string) settings {
	path, err := configPath()
	if err != nil {
		return settings{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings{}
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return settings{}
	}

	out := cfg.settings
	if cfg.Profiles == nil {
		return out
	}

	if profile == "" {
		profile = cfg.ActiveProfile
	}
	if profile == "" {
		profile = "default"
	}

	p, ok := cfg.Profiles[profile]
	if !ok {
		return out
	}
	if p.Source != "" {
		out.Source = p.Source
	}
	if p.URL != "" {
		out.URL = p.URL
	}
	if p.Algorithm != "" {
		out.Algorithm = p.Algorithm
	}
	if p.Direction != "" {
		out.Direction = p.Direction
	}
	if p.Depth != nil {
		out.Depth = p.Depth
	}
	return out
}
