package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file name searched in the working and home directories.
const FileName = ".dirpulse.yaml"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for dirpulse settings.
const envPrefix = "DIRPULSE"

// flagKeys maps command-line flag names to configuration keys.
//
//nolint:gochecknoglobals // Config constant
var flagKeys = map[string]string{
	"top-size": "top_size",
	"output":   "output",
	"hidden":   "hidden",
	"follow":   "follow",
	"exclude":  "exclude",
	"depth":    "depth",
	"walker":   "walker",
	"debug":    "debug",
	"no-color": "no_color",
}

// LoadConfig loads configuration from flags, env vars, file and defaults, in
// that order of precedence. Only flags that were set on the command line
// override other sources; flags may be nil.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperCfg.AutomaticEnv()

	if err := bindFlags(viperCfg, flags); err != nil {
		return nil, err
	}

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(strings.TrimSuffix(FileName, "."+configType))
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	cfg.Output = strings.ToLower(cfg.Output)

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// bindFlags registers the known flags of the set with viper.
func bindFlags(viperCfg *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		if err := viperCfg.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}

	return nil
}

func applyDefaults(viperCfg *viper.Viper) {
	defaults := Defaults()

	viperCfg.SetDefault("top_size", defaults.TopSize)
	viperCfg.SetDefault("output", defaults.Output)
	viperCfg.SetDefault("hidden", defaults.Hidden)
	viperCfg.SetDefault("follow", defaults.Follow)
	viperCfg.SetDefault("exclude", defaults.Exclude)
	viperCfg.SetDefault("depth", defaults.Depth)
	viperCfg.SetDefault("walker", defaults.Walker)
	viperCfg.SetDefault("debug", defaults.Debug)
	viperCfg.SetDefault("no_color", defaults.NoColor)
}
