package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-weft/weft/cmd/weft/internal/scenedoc"
	"github.com/go-weft/weft/pkg/engine"
	"github.com/go-weft/weft/pkg/scene"
)

func newRunCmd() *cobra.Command {
	var cycles int

	cmd := &cobra.Command{
		Use:   "run <scene.yaml>",
		Short: "Mount a scene document, run reconcile cycles, and print the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())

			doc, err := scenedoc.Load(args[0])
			if err != nil {
				return err
			}

			w := scene.NewWorld(logger)
			e := engine.New(logger)
			engine.Mount(e, w, doc.Presenter(), doc)

			stats := e.RenderRoots(w)
			for i := 1; i < cycles; i++ {
				scene.UpdateValue(w, func(r *scenedoc.Revision) { r.N++ })
				stats = e.Update(w)
			}

			logger.Info("reconciled",
				"doc", doc.Name,
				"cycles", cycles,
				"nodes", w.NodeCount(),
				"built", stats.Built,
				"duration", stats.Duration,
			)
			fmt.Fprint(cmd.OutOrStdout(), renderTree(e.TreeSnapshot()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 1, "number of reconcile cycles to run")
	return cmd
}
