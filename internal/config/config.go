// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves mdclip settings from defaults, an optional YAML
// file and MDCLIP_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/mdclip/pkg/types"
)

const (
	appName   = "mdclip"
	envPrefix = "MDCLIP"
)

// Option describes one configuration key.
type Option struct {
	Key         string
	Default     any
	Description string
}

// Options lists every supported key with its default.
func Options() []Option {
	return []Option{
		{Key: "output_dir", Default: ".", Description: "directory that receives generated documents"},
		{Key: "file_prefix", Default: "markdown_conversion_", Description: "prefix for output file names"},
		{Key: "backend", Default: string(types.BackendPandoc), Description: "conversion backend: pandoc or container"},
		{Key: "pandoc_path", Default: "pandoc", Description: "pandoc executable for the pandoc backend"},
		{Key: "image", Default: "pandoc/core:latest", Description: "pandoc image for the container backend"},
		{Key: "timeout", Default: 30 * time.Second, Description: "upper bound for one conversion"},
		{Key: "pause_on_exit", Default: false, Description: "wait for Enter before exiting when run in a terminal"},
		{Key: "verbose", Default: false, Description: "enable debug logging"},
	}
}

// Init wires search paths, defaults and environment handling into v and reads
// the config file if one exists. cfgFile, when set, replaces the search.
// It returns the file that was read, or "" when none was found.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
	}

	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a validated Config with an absolute OutputDir.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Backend = types.ConversionBackend(strings.ToLower(strings.TrimSpace(string(cfg.Backend))))
	if !cfg.Backend.Valid() {
		return types.Config{}, fmt.Errorf("invalid backend %q: want %q or %q",
			cfg.Backend, types.BackendPandoc, types.BackendContainer)
	}
	if cfg.Timeout <= 0 {
		return types.Config{}, fmt.Errorf("invalid timeout %s: must be positive", cfg.Timeout)
	}

	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = "."
	}
	dir, err := filepath.Abs(expandHome(cfg.OutputDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving output_dir: %w", err)
	}
	cfg.OutputDir = dir
	return cfg, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
