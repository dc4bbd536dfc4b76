package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/buildinfo"
	"github.com/matzehuels/bigbang/pkg/cache"
	"github.com/matzehuels/bigbang/pkg/config"
	"github.com/matzehuels/bigbang/pkg/observability"
	"github.com/matzehuels/bigbang/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = cache.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Bigbang lays out word-usage bubble charts",
		Long: `Bigbang turns per-character word counts into a force-directed bubble chart:
one cluster per character, bubble area proportional to how often the word is
said, the most used word of each character pulled to the cluster center.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and, in debug mode, routes pipeline,
// cache and server hooks to the logger.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetServerHooks(hooks)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := cache.Open(ctx, c.Config.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "err", err)
		return cache.NewNullCache(), nil
	}
	return cc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options populated from the config file.
// Command-line flags are applied on top.
func (c *CLI) baseOptions() pipeline.Options {
	cfg := c.Config
	params := cfg.Params()
	return pipeline.Options{
		Width:     cfg.Canvas.Width,
		Height:    cfg.Canvas.Height,
		MinRadius: cfg.Scale.MinRadius,
		MaxRadius: cfg.Scale.MaxRadius,
		Seed:      cfg.Forces.Seed,
		Params:    &params,
		Palette:   cfg.Palette,
		Margin:    cfg.Canvas.Margin,
		Logger:    c.Logger,
	}
}
