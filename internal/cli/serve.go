package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/internal/server"
	"github.com/matzehuels/bigbang/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Clients POST word-usage records to /v1/layout or /v1/render and get back a
layout or a rendered chart. Settled layouts are archived: in MongoDB when
[store] mongo_uri is configured, otherwise in memory.

Layouts and artifacts are cached with the configured backend (file or redis).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request pipeline timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, timeout time.Duration) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(runner, st, c.Logger,
		server.WithDefaults(c.baseOptions()),
		server.WithTimeout(timeout))

	printSuccess("Listening on %s", addr)
	printDetail("POST /v1/layout · POST /v1/render?format=svg · GET /v1/layouts")
	return srv.ListenAndServe(ctx, addr)
}

// openStore returns the MongoDB archive if one is configured, otherwise an
// in-memory store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Store
	if cfg.MongoURI == "" {
		c.Logger.Info("archiving layouts in memory")
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, store.MongoOptions{
		URI:        cfg.MongoURI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	c.Logger.Info("archiving layouts in mongo", "database", cfg.Database, "collection", cfg.Collection)
	return st, nil
}
