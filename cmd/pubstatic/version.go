package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the pubstatic version",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"config": "none"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pubstatic %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
