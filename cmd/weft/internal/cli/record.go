package cli

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	bolt "go.etcd.io/bbolt"

	"github.com/go-weft/weft/cmd/weft/internal/scenedoc"
	"github.com/go-weft/weft/pkg/engine"
	"github.com/go-weft/weft/pkg/scene"
)

var (
	cyclesBucket = []byte("cycles")
	metaBucket   = []byte("meta")
)

// cycleRecord is the JSON value stored per recorded cycle.
type cycleRecord struct {
	Stats engine.CycleStats `json:"stats"`
	Tree  []engine.TreeNode `json:"tree"`
}

func cycleKey(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

func newRecordCmd() *cobra.Command {
	var (
		dbPath string
		cycles int
	)

	cmd := &cobra.Command{
		Use:   "record <scene.yaml>",
		Short: "Run reconcile cycles and persist per-cycle snapshots to a bolt database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())

			doc, err := scenedoc.Load(args[0])
			if err != nil {
				return err
			}

			db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
			if err != nil {
				return fmt.Errorf("open snapshot db: %w", err)
			}
			defer db.Close()

			w := scene.NewWorld(logger)
			e := engine.New(logger)
			engine.Mount(e, w, doc.Presenter(), doc)

			err = db.Update(func(tx *bolt.Tx) error {
				meta, err := tx.CreateBucketIfNotExists(metaBucket)
				if err != nil {
					return err
				}
				if err := meta.Put([]byte("doc"), []byte(doc.Name)); err != nil {
					return err
				}
				if err := meta.Put([]byte("recordedAt"), []byte(time.Now().Format(time.RFC3339))); err != nil {
					return err
				}
				bucket, err := tx.CreateBucketIfNotExists(cyclesBucket)
				if err != nil {
					return err
				}

				for i := 0; i < cycles; i++ {
					var stats engine.CycleStats
					if i == 0 {
						stats = e.RenderRoots(w)
					} else {
						scene.UpdateValue(w, func(r *scenedoc.Revision) { r.N++ })
						stats = e.Update(w)
					}
					value, err := json.Marshal(cycleRecord{Stats: stats, Tree: e.TreeSnapshot()})
					if err != nil {
						return err
					}
					seq, err := bucket.NextSequence()
					if err != nil {
						return err
					}
					if err := bucket.Put(cycleKey(seq), value); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("record snapshots: %w", err)
			}

			logger.Info("recorded", "doc", doc.Name, "cycles", cycles, "db", dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "weft.db", "snapshot database path")
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 1, "number of reconcile cycles to record")
	return cmd
}
