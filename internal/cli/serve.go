package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidefit/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		root    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fitting API over HTTP",
		Long: `Serve the fitting API over HTTP.

Endpoints:
  GET  /healthz     liveness check
  GET  /version     build information
  POST /v1/fit      fit a deck, returns snapshot JSON
  POST /v1/fit.png  fit a deck, returns a PNG contact sheet

With --root, requests may name a deck by "path" under that directory and
decks sent inline resolve images against it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, root, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVar(&root, "root", "", "directory that decks and images are served from")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, root string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := c.Config
	if addr != "" {
		cfg.Server.Addr = addr
	}
	var opts []server.Option
	if root != "" {
		opts = append(opts, server.WithRoot(root))
	}

	srv := server.New(runner, cfg, c.Logger, opts...)
	printInfo("Serving on %s", StyleLink.Render("http://"+cfg.Server.Addr))
	printNextStep("Try", fmt.Sprintf(`curl -d '{"markdown":"# Hello"}' http://%s/v1/fit`, cfg.Server.Addr))

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
