package snapshot

import (
	"context"
	"fmt"

	"github.com/evenl/zephyr/internal/dtv"
)

// Run describes one recorded snapshot.
type Run struct {
	ID          string
	CreatedAt   string
	DeviceCount int
}

// Runs returns all recorded snapshot runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, device_count FROM runs
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.DeviceCount); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Devices returns the sorted device ids captured in a run.
func (s *Store) Devices(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT device_id FROM properties
		WHERE run_id = ?
		ORDER BY device_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list devices: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return ids, nil
}

// Properties returns one device's flattened properties from a run.
// An unknown run or device yields an empty map, never an error.
func (s *Store) Properties(ctx context.Context, runID, deviceID string) (map[string]dtv.Value, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, value FROM properties
		WHERE run_id = ? AND device_id = ?
		ORDER BY path ASC
	`, runID, deviceID)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	defer rows.Close()

	props := make(map[string]dtv.Value)
	for rows.Next() {
		var path, text string
		if err := rows.Scan(&path, &text); err != nil {
			return nil, fmt.Errorf("read properties: scan: %w", err)
		}
		v, err := dtv.Unmarshal([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("read properties: path %q: %w", path, err)
		}
		props[path] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	return props, nil
}
