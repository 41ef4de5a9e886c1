package snapshot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenl/zephyr/internal/dtv"
	"github.com/evenl/zephyr/internal/edts"
)

// buildDatabase populates an edts store for snapshot tests.
func buildDatabase(t *testing.T) *edts.Store {
	t.Helper()
	db := edts.New()

	inserts := []struct {
		device, path string
		value        dtv.Value
	}{
		{"uart0", "compatible", dtv.String("ns16550")},
		{"uart0", "label", dtv.String("UART_0")},
		{"uart0", "reg", dtv.List{dtv.Int(0x4000C000), dtv.Int(0x1000)}},
		{"spi0", "compatible", dtv.String("st,stm32-spi-fifo")},
		{"spi0", "interrupts/prio", dtv.Int(3)},
	}
	for _, ins := range inserts {
		require.NoError(t, db.InsertDeviceProperty(ins.device, ins.path, ins.value))
	}
	return db
}

func TestWriteReturnsRunID(t *testing.T) {
	s := createTestStore(t)
	db := buildDatabase(t)

	runID, err := s.Write(context.Background(), db)
	require.NoError(t, err)

	_, err = uuid.Parse(runID)
	assert.NoError(t, err, "run id must be a uuid")
}

func TestWriteThenRead(t *testing.T) {
	s := createTestStore(t)
	db := buildDatabase(t)

	runID, err := s.Write(context.Background(), db)
	require.NoError(t, err)

	props, err := s.Properties(context.Background(), runID, "uart0")
	require.NoError(t, err)

	// Snapshot rows round-trip to the same values flatten produced.
	assert.Equal(t, db.DevicePropertiesFlattened("uart0", ""), props)
}

func TestDevices(t *testing.T) {
	s := createTestStore(t)
	db := buildDatabase(t)

	runID, err := s.Write(context.Background(), db)
	require.NoError(t, err)

	ids, err := s.Devices(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, []string{"spi0", "uart0"}, ids)
}

func TestRuns(t *testing.T) {
	s := createTestStore(t)
	db := buildDatabase(t)

	first, err := s.Write(context.Background(), db)
	require.NoError(t, err)
	second, err := s.Write(context.Background(), db)
	require.NoError(t, err)

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
	for _, r := range runs {
		assert.Equal(t, 2, r.DeviceCount)
	}
}

func TestPropertiesUnknownRun(t *testing.T) {
	s := createTestStore(t)

	props, err := s.Properties(context.Background(), "no-such-run", "uart0")
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestPropertiesUnknownDevice(t *testing.T) {
	s := createTestStore(t)
	db := buildDatabase(t)

	runID, err := s.Write(context.Background(), db)
	require.NoError(t, err)

	props, err := s.Properties(context.Background(), runID, "no-such-device")
	require.NoError(t, err)
	assert.Empty(t, props)
}
