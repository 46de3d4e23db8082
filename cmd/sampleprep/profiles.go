// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/sampleprep/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the built-in target profiles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range profile.All() {
			mark := " "
			if t.Name == profile.Default.Name {
				mark = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, t)
		}
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
