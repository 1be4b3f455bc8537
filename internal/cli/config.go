package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// cookieJarFile sits next to the config file and persists the session
// cookies between invocations, the way a browser's cookie store would.
const cookieJarFile = "cookies.json"

// Config represents the configuration for the stockctl CLI.
// It plays the role the browser gives localStorage: the server location
// and the persisted "was authenticated" flag that hydration reconciles
// with the server on startup. No token material is ever stored here —
// tokens live only in the cookie jar file, set by the server.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// ServerURL is the base URL of the stockd server
	ServerURL string `yaml:"server_url"`
	// Authenticated records whether the last session ended logged in
	Authenticated bool `yaml:"authenticated"`
}

var config *Config

// GetServerURL implements client.Configurator.
func (c *Config) GetServerURL() string {
	return c.ServerURL
}

// GetAuthenticated implements client.Configurator.
func (c *Config) GetAuthenticated() bool {
	return c.Authenticated
}

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/stockctl on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "stockctl", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file
// If the file does not exist a default config pointing at localhost is used.
func LoadConfig(file string) error {
	yamlStr, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			config = &Config{Version: "1", ServerURL: "http://localhost:8080"}
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the current configuration to the specified file
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// setAuthenticated persists the authenticated flag next to the current
// config file.
func setAuthenticated(v bool) error {
	cfg := GetConfig()
	if cfg == nil || cfg.Authenticated == v {
		return nil
	}
	cfg.Authenticated = v
	return cfg.WriteConfig(configFile)
}

// cookieJarPath returns the path of the persisted cookie jar, next to the
// active config file.
func cookieJarPath() string {
	return filepath.Join(filepath.Dir(configFile), cookieJarFile)
}
