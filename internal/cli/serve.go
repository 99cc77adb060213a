package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/menulink/pkg/api"
	"github.com/matzehuels/menulink/pkg/registry"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the code registry over HTTP",
		Long: `Start an HTTP API for creating, listing and exporting table codes.

Codes live in memory for the lifetime of the process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := c.newServices(ctx, noCache, "")
			if err != nil {
				return err
			}
			defer svc.Close()

			handler := api.NewServer(api.Deps{
				Encoder:    svc.encoder,
				Registry:   registry.New(),
				Exporter:   svc.exporter,
				Previewer:  svc.renderer,
				Restaurant: svc.cfg.Restaurant,
				Catalog:    svc.cfg.Catalog(),
				Logger:     c.Logger,
			})
			return c.listenAndServe(ctx, addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache")
	return cmd
}

// listenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests.
func (c *CLI) listenAndServe(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	printSuccess("Listening on %s", StyleLink.Render("http://"+ln.Addr().String()))
	printDetail("Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
