package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/internal/api"
	"github.com/matzehuels/jsongraph/pkg/edit"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve the document over HTTP",
		Long: `Serve FILE through a JSON HTTP API. Mutations are persisted through the
configured backend (the file itself by default).

Routes:
  GET    /api/document             canonical text
  PUT    /api/document             replace the text
  PATCH  /api/document             {"path": "...", "value": ...} or {"path", "input", "mode"}
  DELETE /api/document             reset to {}
  GET    /api/graph                derived nodes and edges
  GET    /api/graph/nodes/{id}     one node with its editable text
  PUT    /api/graph/nodes/{id}     {"text": "..."} save a node
  GET    /api/render?format=svg    rendered graph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			mode, err := edit.ParseMode(cfg.Edit.Mode)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ws, err := c.openWorkspace(ctx, args[0], openOptions{create: true, persist: true})
			if err != nil {
				return err
			}
			defer ws.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(ws.store, ws.view, ws.runner, c.Logger, api.Options{Mode: mode}),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return c.listen(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) listen(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		printSuccess("Serving on %s", StyleLink.Render("http://"+srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
