package dtv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Verify all types implement Value (compile-time check via assignment)
	var _ Value = String("uart0")
	var _ Value = Int(42)
	var _ Value = Bool(true)
	var _ Value = List{String("a"), Int(1)}
	var _ Value = Map{"key": String("value")}
}

func TestIsScalar(t *testing.T) {
	assert.True(t, IsScalar(String("x")))
	assert.True(t, IsScalar(Int(7)))
	assert.True(t, IsScalar(Bool(false)))
	assert.False(t, IsScalar(List{}))
	assert.False(t, IsScalar(Map{}))
}

func TestMapSortedKeys(t *testing.T) {
	m := Map{
		"zebra":  String("z"),
		"apple":  String("a"),
		"banana": String("b"),
	}

	assert.Equal(t, []string{"apple", "banana", "zebra"}, m.SortedKeys())
}

func TestMapSortedKeysEmpty(t *testing.T) {
	assert.Empty(t, Map{}.SortedKeys())
}

func TestClone(t *testing.T) {
	original := Map{
		"reg": List{Int(0x4000C000), Int(0x1000)},
		"interrupts": Map{
			"prio": Int(3),
		},
	}

	copied := Clone(original).(Map)

	// Mutating the copy must not affect the original.
	copied["interrupts"].(Map)["prio"] = Int(7)
	copiedReg := copied["reg"].(List)
	copiedReg[0] = Int(0)

	assert.Equal(t, Int(3), original["interrupts"].(Map)["prio"])
	assert.Equal(t, Int(0x4000C000), original["reg"].(List)[0])
}

func TestMarshalSortedKeys(t *testing.T) {
	m := Map{
		"b": Int(2),
		"a": Int(1),
		"c": Int(3),
	}

	data, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(data))
}

func TestUnmarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Value
	}{
		{"string", `"ns16550"`, String("ns16550")},
		{"int", `1073790976`, Int(0x4000C000)},
		{"bool", `true`, Bool(true)},
		{"list", `["a",1,false]`, List{String("a"), Int(1), Bool(false)}},
		{
			"nested",
			`{"reg":[1073790976,4096],"status":"okay"}`,
			Map{"reg": List{Int(0x4000C000), Int(4096)}, "status": String("okay")},
		},
		{"empty map", `{}`, Map{}},
		{"empty list", `[]`, List{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			data, err := Marshal(got)
			require.NoError(t, err)
			back, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, back)
		})
	}
}

func TestUnmarshalLargeInt(t *testing.T) {
	// Values above 2^53 must not lose precision.
	got, err := Unmarshal([]byte(`9223372036854775807`))
	require.NoError(t, err)
	assert.Equal(t, Int(9223372036854775807), got)
}

func TestUnmarshalRejectsFloat(t *testing.T) {
	for _, bad := range []string{`1.5`, `[1, 2.0]`, `{"freq": 1e6}`} {
		t.Run(bad, func(t *testing.T) {
			_, err := Unmarshal([]byte(bad))
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalRejectsNull(t *testing.T) {
	_, err := Unmarshal([]byte(`{"status": null}`))
	assert.Error(t, err)
}

func TestFromGoIntWidths(t *testing.T) {
	got, err := FromGo(map[string]any{"a": 1, "b": int64(2), "c": uint64(3)})
	require.NoError(t, err)
	assert.Equal(t, Map{"a": Int(1), "b": Int(2), "c": Int(3)}, got)
}

func TestFromGoRejectsFloat(t *testing.T) {
	_, err := FromGo(map[string]any{"freq": 1.5})
	assert.Error(t, err)
}

func TestToGoRoundTrip(t *testing.T) {
	v := Map{
		"label": String("UART_0"),
		"reg":   List{Int(0x4000C000)},
		"dma":   Bool(true),
	}

	back, err := FromGo(ToGo(v))
	require.NoError(t, err)
	assert.Equal(t, v, back)
}
