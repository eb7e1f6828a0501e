package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-weft/weft/cmd/weft/internal/scenedoc"
	"github.com/go-weft/weft/pkg/engine"
	"github.com/go-weft/weft/pkg/scene"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve <scene.yaml>",
		Short: "Reconcile a scene document on a timer and expose the debug API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFrom(ctx)

			doc, err := scenedoc.Load(args[0])
			if err != nil {
				return err
			}

			w := scene.NewWorld(logger)
			e := engine.New(logger)
			engine.Mount(e, w, doc.Presenter(), doc)
			e.RenderRoots(w)

			srv, err := engine.StartDebugServer(e, addr)
			if err != nil {
				return err
			}
			logger.Info("serving", "doc", doc.Name, "addr", srv.Addr(), "interval", interval)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := srv.Shutdown(shutdownCtx); err != nil {
						logger.Error("debug server shutdown", "err", err)
					}
					return ctx.Err()
				case <-ticker.C:
					scene.UpdateValue(w, func(r *scenedoc.Revision) { r.N++ })
					stats := e.Update(w)
					logger.Debug("cycle", "built", stats.Built, "duration", stats.Duration)
				}
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7878", "debug API listen address")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "delay between reconcile cycles")
	return cmd
}
