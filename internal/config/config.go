package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

/*
Config precedence, highest to lowest:

1. Environment variables (ALPHA_* for secrets and overrides)
2. Local project config (.alpha.yaml in the working directory)
3. Global user config ($XDG_CONFIG_HOME/alpha/alpha.yaml)
4. Embedded defaults
*/

//go:embed defaults.alpha.yaml
var defaults []byte

// envVarConfig defines an environment variable mapping
type envVarConfig struct {
	key    string // key in the config
	envVar string // environment variable name
}

var envVars = []envVarConfig{
	{key: "api.key", envVar: "ALPHA_API_KEY"},
	{key: "api.baseUrl", envVar: "ALPHA_API_URL"},
}

// New loads and validates the configuration, then applies any runtime
// overrides on top.
func New(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	v.SetEnvPrefix("ALPHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, env := range envVars {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env.envVar, err)
		}
	}

	for _, path := range configFilePaths() {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	}

	var cfg ConfigSchema
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyOverrides(&cfg, overrides)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// configFilePaths returns candidate config files, global first so local
// values win the merge.
func configFilePaths() []string {
	var paths []string

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config")
		}
	}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, "alpha", "alpha.yaml"))
	}

	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ".alpha.yaml"))
	}

	return paths
}
