// Package config resolves runtime settings from defaults, an optional config.yaml,
// AURALIS_* environment variables and command-line flags (highest wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAreaID   = "area_admin_life"
	DefaultAreaName = "Admin/Life"

	configFileName = "config.yaml"
	envPrefix      = "AURALIS"
)

type Settings struct {
	Dir         string              `mapstructure:"dir" yaml:"dir" json:"dir"`
	Format      string              `mapstructure:"format" yaml:"format" json:"format"`
	Pretty      bool                `mapstructure:"pretty" yaml:"pretty" json:"pretty"`
	Log         LogSettings         `mapstructure:"log" yaml:"log" json:"log"`
	DefaultArea DefaultAreaSettings `mapstructure:"default_area" yaml:"default_area" json:"defaultArea"`
}

type LogSettings struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
	// File, when set, sends logs as JSON to a rotated file instead of stderr.
	File string `mapstructure:"file" yaml:"file,omitempty" json:"file,omitempty"`
}

// DefaultAreaSettings names the reserved area that receives tasks and projects created
// without an explicit area, and inbox conversions.
type DefaultAreaSettings struct {
	ID   string `mapstructure:"id" yaml:"id" json:"id"`
	Name string `mapstructure:"name" yaml:"name" json:"name"`
}

// ConfigDir returns $AURALIS_CONFIG_DIR or ~/.auralis.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("AURALIS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".auralis"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// New returns a viper instance with defaults and environment binding applied.
// Callers may bind flags on it before calling Load.
func New() (*viper.Viper, error) {
	v := viper.New()
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	setDefaults(v, dir)

	v.SetConfigName(strings.TrimSuffix(configFileName, filepath.Ext(configFileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("dir", filepath.Join(configDir, "data"))
	v.SetDefault("format", "json")
	v.SetDefault("pretty", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("default_area.id", DefaultAreaID)
	v.SetDefault("default_area.name", DefaultAreaName)
}

// Load reads the config file if present and unmarshals the effective settings.
func Load(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func Validate(s *Settings) error {
	s.Dir = strings.TrimSpace(s.Dir)
	if s.Dir == "" {
		return errors.New("config: dir must not be empty")
	}
	switch s.Format {
	case "json", "edn", "yaml", "table":
	default:
		return fmt.Errorf("config: unknown format %q (expected json|edn|yaml|table)", s.Format)
	}
	s.DefaultArea.ID = strings.TrimSpace(s.DefaultArea.ID)
	s.DefaultArea.Name = strings.TrimSpace(s.DefaultArea.Name)
	if s.DefaultArea.ID == "" || s.DefaultArea.Name == "" {
		return errors.New("config: default_area.id and default_area.name must not be empty")
	}
	return nil
}

// WriteDefault writes the default settings to path as YAML. An existing file is left untouched.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	dir := filepath.Dir(path)
	defaults := Settings{
		Dir:         filepath.Join(dir, "data"),
		Format:      "json",
		Log:         LogSettings{Level: "warn"},
		DefaultArea: DefaultAreaSettings{ID: DefaultAreaID, Name: DefaultAreaName},
	}
	b, err := yaml.Marshal(defaults)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("error creating config dir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return false, fmt.Errorf("error writing default config file: %w", err)
	}
	return true, nil
}
