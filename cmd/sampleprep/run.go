// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/ik5/sampleprep"
)

var runCmd = &cobra.Command{
	Use:   "run <root>",
	Short: "Normalize, strip and convert in one go",
	Long: `Run chains normalize, strip and convert on root. Every pass asks for its
own confirmation; declining one stops the remaining passes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		opts, err := a.options(cmd)
		if err != nil {
			return err
		}

		results, err := sampleprep.Run(args[0], a.target, opts)
		for _, res := range results {
			a.report(res)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
