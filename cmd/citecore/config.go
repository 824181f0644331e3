package main

import (
	"fmt"
	"os"

	"github.com/matsen/citecore/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
	Long: `Show or initialize the citecore configuration file.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (CITECORE_INPUT, CITECORE_ID_COLUMN, ...)
  3. Config file (~/.config/citecore/config.yml, or --config)
  4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.NewViper(cfgFile)
		if err != nil {
			return configError(err)
		}
		cfg, err := config.FromViper(v)
		if err != nil {
			return configError(err)
		}

		if !humanOutput {
			return outputJSON(ConfigResponse{File: v.ConfigFileUsed(), Config: cfg})
		}

		if file := v.ConfigFileUsed(); file != "" {
			fmt.Printf("# Configuration file: %s\n", file)
		} else {
			fmt.Println("# No configuration file found (using defaults)")
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write the default configuration as YAML, to the given path or to
~/.config/citecore/config.yml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GlobalConfigPath()
		if len(args) == 1 {
			path = config.ExpandPath(args[0])
		}
		if path == "" {
			return configError(fmt.Errorf("cannot determine config path: no home directory"))
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return configError(fmt.Errorf("config file already exists: %s (use --force to overwrite)", path))
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}

		if humanOutput {
			fmt.Printf("Created default configuration: %s\n", path)
			return nil
		}
		return outputJSON(StatusResponse{Status: "created", Path: path})
	},
}

// ConfigResponse is the response for config show.
type ConfigResponse struct {
	File   string         `json:"file,omitempty"`
	Config *config.Config `json:"config"`
}
