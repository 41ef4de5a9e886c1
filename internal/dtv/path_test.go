package dtv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() Map {
	return Map{
		"device-id": String("uart0"),
		"label":     String("UART_0"),
		"reg":       List{Int(0x4000C000), Int(0x1000)},
		"interrupts": Map{
			"prio": Int(3),
			"irqs": List{Int(5), Int(6)},
		},
	}
}

func TestLookup(t *testing.T) {
	root := testRecord()

	tests := []struct {
		name string
		path string
		want Value
	}{
		{"top-level scalar", "label", String("UART_0")},
		{"list index", "reg/0", Int(0x4000C000)},
		{"second list index", "reg/1", Int(0x1000)},
		{"nested map", "interrupts/prio", Int(3)},
		{"nested list", "interrupts/irqs/1", Int(6)},
		{"quoted path", "'reg/0'", Int(0x4000C000)},
		{"surrounding slashes", "/interrupts/prio/", Int(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(root, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	root := testRecord()

	tests := []struct {
		name string
		path string
	}{
		{"missing key", "baud-rate"},
		{"missing nested key", "interrupts/mask"},
		{"list index out of range", "reg/2"},
		{"descend through scalar", "label/0/x"},
		{"empty path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(root, tt.path)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLookupInvalidListIndex(t *testing.T) {
	root := testRecord()

	_, err := Lookup(root, "reg/first")
	require.Error(t, err)
	assert.True(t, IsInvalidPath(err))
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLookupDefault(t *testing.T) {
	root := testRecord()

	got, err := LookupDefault(root, "baud-rate", Int(115200))
	require.NoError(t, err)
	assert.Equal(t, Int(115200), got)

	// Present values win over the default.
	got, err = LookupDefault(root, "reg/0", Int(0))
	require.NoError(t, err)
	assert.Equal(t, Int(0x4000C000), got)

	// Hard path errors are not defaulted away.
	_, err = LookupDefault(root, "reg/first", Int(0))
	assert.True(t, IsInvalidPath(err))
}

func TestInsertCreatesIntermediates(t *testing.T) {
	root := Map{}

	require.NoError(t, Insert(root, "interrupts/prio", Int(3)))

	got, err := Lookup(root, "interrupts/prio")
	require.NoError(t, err)
	assert.Equal(t, Int(3), got)
}

func TestInsertMergeScalarThenScalar(t *testing.T) {
	root := Map{}

	require.NoError(t, Insert(root, "compatible", String("ns16550")))
	require.NoError(t, Insert(root, "compatible", String("generic-uart")))

	assert.Equal(t, List{String("ns16550"), String("generic-uart")}, root["compatible"])
}

func TestInsertMergeScalarThenList(t *testing.T) {
	root := Map{}

	require.NoError(t, Insert(root, "reg", Int(1)))
	require.NoError(t, Insert(root, "reg", List{Int(2), Int(3)}))

	assert.Equal(t, List{Int(1), Int(2), Int(3)}, root["reg"])
}

func TestInsertMergeMapAppended(t *testing.T) {
	root := Map{}

	require.NoError(t, Insert(root, "ranges", Map{"base": Int(0)}))
	require.NoError(t, Insert(root, "ranges", Map{"base": Int(1)}))

	assert.Equal(t, List{Map{"base": Int(0)}, Map{"base": Int(1)}}, root["ranges"])
}

func TestInsertPathConflict(t *testing.T) {
	root := Map{}
	require.NoError(t, Insert(root, "label", String("UART_0")))

	err := Insert(root, "label/nested", Int(1))
	require.Error(t, err)
	assert.True(t, IsPathConflict(err))

	// The conflicting value is untouched.
	assert.Equal(t, String("UART_0"), root["label"])
}

func TestFlatten(t *testing.T) {
	root := testRecord()

	flattened := Flatten(root, "")

	want := map[string]Value{
		"device-id":         String("uart0"),
		"label":             String("UART_0"),
		"reg/0":             Int(0x4000C000),
		"reg/1":             Int(0x1000),
		"interrupts/prio":   Int(3),
		"interrupts/irqs/0": Int(5),
		"interrupts/irqs/1": Int(6),
	}
	assert.Equal(t, want, flattened)
}

func TestFlattenPrefix(t *testing.T) {
	flattened := Flatten(Map{"reg": List{Int(1)}}, "uart0/")
	assert.Equal(t, map[string]Value{"uart0/reg/0": Int(1)}, flattened)
}

func TestFlattenEmptyContainers(t *testing.T) {
	flattened := Flatten(Map{"empty-map": Map{}, "empty-list": List{}}, "")
	assert.Empty(t, flattened)
}

// Every path flatten emits must resolve through Lookup to the same value.
func TestFlattenLookupConsistency(t *testing.T) {
	root := testRecord()

	for path, want := range Flatten(root, "") {
		got, err := Lookup(root, path)
		require.NoError(t, err, "path %q", path)
		assert.Equal(t, want, got, "path %q", path)
	}
}
