package snapshot

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/evenl/zephyr/internal/dtv"
	"github.com/evenl/zephyr/internal/edts"
)

// Write captures one snapshot run of the given database: every device's
// flattened properties, inserted in a single transaction. Returns the
// generated run id.
//
// Devices and paths are written in sorted order so two snapshots of
// equal databases produce identical row sequences.
func (s *Store) Write(ctx context.Context, db edts.Reader) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	ids := db.DeviceIDs()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, device_count) VALUES (?, ?)
	`, runID, len(ids)); err != nil {
		return "", fmt.Errorf("write snapshot: insert run: %w", err)
	}

	for _, deviceID := range ids {
		flattened := db.DevicePropertiesFlattened(deviceID, "")

		paths := make([]string, 0, len(flattened))
		for path := range flattened {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			text, err := dtv.MarshalCanonical(flattened[path])
			if err != nil {
				return "", fmt.Errorf("write snapshot: device %q path %q: %w", deviceID, path, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO properties (run_id, device_id, path, value)
				VALUES (?, ?, ?, ?)
			`, runID, deviceID, path, string(text)); err != nil {
				return "", fmt.Errorf("write snapshot: insert property: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("write snapshot: commit: %w", err)
	}

	return runID, nil
}
