package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys. Flags bound with BindFlags use the same names with
// dashes, e.g. --id-column.
const (
	KeyInput                     = "input"
	KeyOutput                    = "output"
	KeySheet                     = "sheet"
	KeyViz                       = "viz"
	KeyLayout                    = "layout"
	KeyIDColumn                  = "id_column"
	KeyCitedByColumn             = "cited_by_column"
	KeyListColumns               = "list_columns"
	KeyRequireTargetInCollection = "require_target_in_collection"
	KeyMembership                = "membership"
)

var allKeys = []string{
	KeyInput, KeyOutput, KeySheet, KeyViz, KeyLayout,
	KeyIDColumn, KeyCitedByColumn, KeyListColumns,
	KeyRequireTargetInCollection, KeyMembership,
}

// NewViper returns a viper instance layered as
// flags > CITECORE_* environment > config file > defaults.
// An explicit cfgFile must exist; the global config file is optional.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyInput, def.Input)
	v.SetDefault(KeyOutput, def.Output)
	v.SetDefault(KeySheet, def.Sheet)
	v.SetDefault(KeyViz, def.Viz)
	v.SetDefault(KeyLayout, def.Layout)
	v.SetDefault(KeyIDColumn, def.IDColumn)
	v.SetDefault(KeyCitedByColumn, def.CitedByColumn)
	v.SetDefault(KeyListColumns, def.ListColumns)
	v.SetDefault(KeyRequireTargetInCollection, def.RequireTargetInCollection)
	v.SetDefault(KeyMembership, def.Membership)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return v, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return v, nil
}

// BindFlags binds every flag in fs whose name matches a configuration key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range allKeys {
		f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", f.Name, err)
		}
	}
	return nil
}

// FromViper decodes the layered configuration.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
