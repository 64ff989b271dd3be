package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eringen/pubstatic"
)

var tagsFormat string

// tagRow is the YAML shape of one tag index entry.
type tagRow struct {
	Tag   string `yaml:"tag"`
	Value string `yaml:"value"`
	Count int    `yaml:"count"`
	Path  string `yaml:"path"`
	URL   string `yaml:"url"`
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the tag index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := newBuilder(siteConfig).Build(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch tagsFormat {
		case "text":
			for _, e := range site.Index {
				fmt.Fprintf(out, "%s (%d)\n", e.Display, e.TotalCount)
			}
			return nil
		case "yaml":
			rows := make([]tagRow, 0, len(site.Index))
			for _, e := range site.Index {
				rows = append(rows, tagRow{
					Tag:   e.Display,
					Value: e.Value,
					Count: e.TotalCount,
					Path:  pubstatic.TagPath(e.Value),
					URL:   pubstatic.BuildURL(siteConfig.URL, "tags", e.Value),
				})
			}
			data, err := yaml.Marshal(rows)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		default:
			return fmt.Errorf("unknown format %q (want text or yaml)", tagsFormat)
		}
	},
}

func init() {
	tagsCmd.Flags().StringVarP(&tagsFormat, "format", "f", "text", "output format: text or yaml")
	rootCmd.AddCommand(tagsCmd)
}
