package cli

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	bolt "go.etcd.io/bbolt"
)

func newSnapshotsCmd() *cobra.Command {
	var (
		dbPath string
		show   uint64
	)

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List recorded reconcile snapshots, or print one cycle's tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := bolt.Open(dbPath, 0o400, &bolt.Options{
				ReadOnly: true,
				Timeout:  time.Second,
			})
			if err != nil {
				return fmt.Errorf("open snapshot db: %w", err)
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			return db.View(func(tx *bolt.Tx) error {
				if meta := tx.Bucket(metaBucket); meta != nil {
					fmt.Fprintf(out, "doc: %s  recorded: %s\n",
						meta.Get([]byte("doc")), meta.Get([]byte("recordedAt")))
				}
				bucket := tx.Bucket(cyclesBucket)
				if bucket == nil {
					return fmt.Errorf("no snapshots in %s", dbPath)
				}
				return bucket.ForEach(func(k, v []byte) error {
					cycle := binary.BigEndian.Uint64(k)
					var rec cycleRecord
					if err := json.Unmarshal(v, &rec); err != nil {
						return fmt.Errorf("cycle %d: %w", cycle, err)
					}
					if show != 0 {
						if cycle == show {
							fmt.Fprint(out, renderTree(rec.Tree))
						}
						return nil
					}
					fmt.Fprintf(out, "cycle %d: scanned=%d dirty=%d built=%d spawned=%d despawned=%d %s\n",
						cycle, rec.Stats.Scanned, rec.Stats.Dirty, rec.Stats.Built,
						rec.Stats.Spawned, rec.Stats.Despawned, rec.Stats.Duration)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "weft.db", "snapshot database path")
	cmd.Flags().Uint64Var(&show, "cycle", 0, "print the tree for one recorded cycle")
	return cmd
}
