package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "polyfield"
	configFileType = "yaml"
	envPrefix      = "POLYFIELD"

	// Config keys.
	cfgKeyLogLevel = "log_level"
	cfgKeyDump     = "dump"
	cfgKeyOverlay  = "overlay"
	cfgKeyStrict   = "strict_factories"
	cfgKeyDiags    = "diagnostics"

	defaultLogLevel = "warn"
)

// flagKeys maps config keys to the persistent flags overriding them.
var flagKeys = map[string]string{
	cfgKeyLogLevel: "log-level",
	cfgKeyDump:     "dump",
	cfgKeyOverlay:  "overlay",
	cfgKeyStrict:   "strict-factories",
	cfgKeyDiags:    "diagnostics",
}

// loadConfig reads configuration with precedence flag > POLYFIELD_* env >
// config file > default. A missing default config file is not an error.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyDump, false)
	v.SetDefault(cfgKeyOverlay, "")
	v.SetDefault(cfgKeyStrict, false)
	v.SetDefault(cfgKeyDiags, false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if flagConfig != "" {
		v.SetConfigFile(flagConfig)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		return v, nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
