package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/pubstatic"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent builds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := pubstatic.NewBuildStore(siteConfig.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		builds, err := store.ListBuilds(historyLimit)
		if err != nil {
			return err
		}
		if len(builds) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No builds recorded yet.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tBUILT\tDOCS\tTAGS\tFILES\tDIGEST")
		for _, b := range builds {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.12s\n",
				b.ID, b.BuiltAt.Local().Format("2006-01-02 15:04:05"), b.Documents, b.Tags, b.Files, b.Digest)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of builds to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
