// Package edtstest provides fixtures and golden-file helpers for tests
// that build and compare device tree databases.
package edtstest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/evenl/zephyr/internal/dtv"
	"github.com/evenl/zephyr/internal/edts"
)

// Fixture describes a test database as an ordered list of property
// inserts applied to a fresh store. Order matters: the merge policy
// makes repeated inserts at one path grow a list.
type Fixture struct {
	// Name uniquely identifies this fixture.
	Name string `yaml:"name"`

	// Description explains what this fixture models.
	Description string `yaml:"description,omitempty"`

	// Inserts are applied in order.
	Inserts []InsertStep `yaml:"inserts"`
}

// InsertStep is one InsertDeviceProperty call.
type InsertStep struct {
	// Device is the device id.
	Device string `yaml:"device"`

	// Path is the slash-separated property path.
	Path string `yaml:"path"`

	// Value is the property value. Converted via dtv.FromGo, so
	// floats and nulls are rejected.
	Value any `yaml:"value"`
}

// LoadFixture reads and parses a fixture YAML file. Unknown fields are
// rejected to catch typos in test data.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture parses fixture YAML bytes. Unknown fields are rejected.
func ParseFixture(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	if f.Name == "" {
		return nil, fmt.Errorf("fixture missing required field: name")
	}
	if len(f.Inserts) == 0 {
		return nil, fmt.Errorf("fixture %q has no inserts", f.Name)
	}
	for i, step := range f.Inserts {
		if step.Device == "" || step.Path == "" {
			return nil, fmt.Errorf("fixture %q: insert %d missing device or path", f.Name, i)
		}
	}
	return &f, nil
}

// Build applies the fixture's inserts to a fresh store.
func (f *Fixture) Build() (*edts.Store, error) {
	store := edts.New()
	for i, step := range f.Inserts {
		v, err := dtv.FromGo(step.Value)
		if err != nil {
			return nil, fmt.Errorf("fixture %q: insert %d: %w", f.Name, i, err)
		}
		if err := store.InsertDeviceProperty(step.Device, step.Path, v); err != nil {
			return nil, fmt.Errorf("fixture %q: insert %d: %w", f.Name, i, err)
		}
	}
	return store, nil
}
