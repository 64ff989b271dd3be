package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pubstatic"
)

var (
	cfgFile string
	debug   bool

	siteConfig pubstatic.SiteConfig
	logger     *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pubstatic",
	Short: "Build and preview a static blog",
	Long: `pubstatic turns a directory of Markdown posts with front matter into a
static site with a home page, one page per post, an index of all tags and
one listing page per tag.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = pubstatic.NewLogger()
		if debug {
			logger.SetLevel(log.DEBUG)
		}
		if cmd.Annotations["config"] == "none" {
			return nil
		}
		return initializeConfig()
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pubstatic.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// initializeConfig loads pubstatic.yaml (or --config) and PUBSTATIC_*
// environment variables on top of the defaults.
func initializeConfig() error {
	v := viper.New()

	defaults := pubstatic.SiteConfig{}.WithDefaults()
	v.SetDefault("name", defaults.Name)
	v.SetDefault("url", defaults.URL)
	v.SetDefault("description", defaults.Description)
	v.SetDefault("author", defaults.Author)
	v.SetDefault("content_dir", defaults.ContentDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("words_per_minute", defaults.WordsPerMinute)
	v.SetDefault("posts_per_page", defaults.PostsPerPage)
	v.SetDefault("include_drafts", defaults.IncludeDrafts)
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("cache_ttl", defaults.CacheTTL)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pubstatic")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PUBSTATIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
		logger.Debugf("no pubstatic.yaml found, using defaults and environment")
	} else {
		logger.Debugf("using config file %s", v.ConfigFileUsed())
	}

	var cfg pubstatic.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	siteConfig = cfg
	return nil
}
