package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/pubstatic"
	"github.com/eringen/pubstatic/views"
)

var (
	outDir    string
	noHistory bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	Long: `build loads every Markdown document under the content directory, derives
the tag index and tag pages, renders the site and replaces the output
directory. Any invalid document aborts the build and leaves the previous
output in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := siteConfig
		if outDir != "" {
			cfg.OutputDir = outDir
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid --out: %w", err)
			}
		}
		b := newBuilder(cfg)

		var history *pubstatic.BuildStore
		if !noHistory {
			store, err := pubstatic.NewBuildStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()
			history = store
		}

		res, err := b.Publish(cmd.Context(), cfg.OutputDir, history)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Built %d documents, %d tags, %d files into %s\n",
			len(res.Site.Documents), len(res.Site.Index), len(res.Manifest.Files), cfg.OutputDir)
		if res.Unchanged {
			fmt.Fprintln(out, "Output unchanged since the previous build.")
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides output_dir)")
	buildCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the build in the history database")
	rootCmd.AddCommand(buildCmd)
}

// newBuilder reads content from cfg.ContentDir and renders with the default
// views.
func newBuilder(cfg pubstatic.SiteConfig) *pubstatic.Builder {
	source := pubstatic.NewFSSource(os.DirFS(cfg.ContentDir), cfg)
	return pubstatic.NewBuilder(cfg, source, views.Default(), logger)
}
