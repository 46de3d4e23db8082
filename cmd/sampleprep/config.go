// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/sampleprep/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or show the configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName + ".yaml"
		if len(args) == 1 {
			path = args[0]
		}
		return runConfigInit(cmd, prompter, path)
	},
}

// runConfigInit writes the default config to path, asking before an
// existing file is replaced.
func runConfigInit(cmd *cobra.Command, p Prompter, path string) error {
	if _, err := os.Stat(path); err == nil {
		overwrite, err := p.Confirm(path+" already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !overwrite {
			fmt.Fprintln(cmd.OutOrStdout(), "Config init cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	if err := config.Save(&cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if a.cfgFile != "" {
			fmt.Fprintf(out, "# %s\n", a.cfgFile)
		}
		fmt.Fprintf(out, "# target %s\n", a.target)
		return config.Encode(out, a.cfg)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
