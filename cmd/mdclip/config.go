package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdclip/internal/config"
)

// configView is the printable form of the effective configuration.
type configView struct {
	OutputDir   string `yaml:"output_dir"`
	FilePrefix  string `yaml:"file_prefix"`
	Backend     string `yaml:"backend"`
	PandocPath  string `yaml:"pandoc_path"`
	Image       string `yaml:"image"`
	Timeout     string `yaml:"timeout"`
	PauseOnExit bool   `yaml:"pause_on_exit"`
	Verbose     bool   `yaml:"verbose"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration mdclip would use, after merging defaults,
the config file and MDCLIP_* environment variables. With --keys it lists every
supported key with its default and a short description.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if keys, _ := cmd.Flags().GetBool("keys"); keys {
			for _, o := range config.Options() {
				fmt.Fprintf(out, "%-14s %-22v %s\n", o.Key, o.Default, o.Description)
			}
			return nil
		}

		data, err := yaml.Marshal(configView{
			OutputDir:   cfg.OutputDir,
			FilePrefix:  cfg.FilePrefix,
			Backend:     string(cfg.Backend),
			PandocPath:  cfg.PandocPath,
			Image:       cfg.Image,
			Timeout:     cfg.Timeout.String(),
			PauseOnExit: cfg.PauseOnExit,
			Verbose:     cfg.Verbose,
		})
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().Bool("keys", false, "list supported keys with defaults")

	rootCmd.AddCommand(configCmd)
}
