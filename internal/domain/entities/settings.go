package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultInstallTimeout bounds each package manager invocation.
	DefaultInstallTimeout = 90 * time.Second
)

// Settings is the optional configuration file of the upgrader.
type Settings struct {
	Platform  Platform         `yaml:"platform"`
	Registry  RegistrySettings `yaml:"registry"`
	Install   InstallSettings  `yaml:"install"`
	Resolver  ResolverSettings `yaml:"resolver"`
	AssumeYes bool             `yaml:"assume_yes"`
}

// RegistrySettings overrides registry discovery.
type RegistrySettings struct {
	URL   string `yaml:"url"`   // Skips "<pm> config get registry" when set
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// InstallSettings tunes the install orchestrator.
type InstallSettings struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ResolverSettings tunes the registry resolver.
type ResolverSettings struct {
	Concurrency int `yaml:"concurrency"` // 0 means one task per package at once
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Platform: DefaultPlatform(),
		Install:  InstallSettings{Timeout: DefaultInstallTimeout},
	}
}

// NewSettings reads and parses a configuration file, fills defaults, expands
// environment variables and resolves token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Platform = settings.Platform.withDefaults()
	if settings.Install.Timeout == 0 {
		settings.Install.Timeout = DefaultInstallTimeout
	}
	settings.Registry.URL = expandEnv(settings.Registry.URL)
	settings.Registry.Token = resolveToken(settings.Registry.Token)

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// LoadSettings loads the file at path, or the first file found in the
// standard locations, or the defaults when there is none.
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return NewSettings(path)
	}

	found, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return DefaultSettings(), nil
	}

	logger.Debugf("Using config file: %s", found)
	return NewSettings(found)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".studiocms-upgrade.yaml",
		".studiocms-upgrade.yml",
		"studiocms-upgrade.yaml",
		"studiocms-upgrade.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := expandEnv(raw)

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read registry token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if settings.Install.Timeout < 0 {
		return fmt.Errorf("install.timeout must be positive, got %s", settings.Install.Timeout)
	}
	if settings.Resolver.Concurrency < 0 {
		return fmt.Errorf("resolver.concurrency must not be negative, got %d", settings.Resolver.Concurrency)
	}
	if settings.Platform.MainPackage == "" {
		return errors.New("platform.main_package is required")
	}
	if settings.Platform.SelfPackage == "" {
		return errors.New("platform.self_package is required")
	}
	if !strings.Contains(settings.Platform.UpgradeGuideTitle, "%d") {
		return errors.New("platform.upgrade_guide_title must contain a %d placeholder for the major version")
	}
	return nil
}
