package edts

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/evenl/zephyr/internal/dtv"
)

// Top-level keys of the serialized database mapping.
const (
	keyDevices     = "devices"
	keyCompatibles = "compatibles"
	keyDeviceTypes = "device-types"
)

// Export returns the whole store as a generic nested mapping with the
// three top-level keys "devices", "compatibles", and "device-types".
// Device records are deep-copied so the export shares no structure with
// the live store.
func (s *Store) Export() dtv.Map {
	devices := make(dtv.Map, len(s.devices))
	for id, dev := range s.devices {
		devices[id] = dtv.Clone(dev)
	}

	return dtv.Map{
		keyDevices:     devices,
		keyCompatibles: exportIndex(s.compatibles),
		keyDeviceTypes: exportIndex(s.deviceTypes),
	}
}

func exportIndex(index map[string][]string) dtv.Map {
	out := make(dtv.Map, len(index))
	for key, ids := range index {
		list := make(dtv.List, len(ids))
		for i, id := range ids {
			list[i] = dtv.String(id)
		}
		out[key] = list
	}
	return out
}

// Import builds a store from an exported mapping. Any of the three
// top-level keys missing from the mapping is initialized empty. The
// supplied mapping is deep-copied; the store takes no references into it.
func Import(m dtv.Map) (*Store, error) {
	s := New()

	if raw, ok := m[keyDevices]; ok {
		devices, ok := raw.(dtv.Map)
		if !ok {
			return nil, fmt.Errorf("import: %q must be a mapping, got %T", keyDevices, raw)
		}
		for id, rec := range devices {
			dev, ok := rec.(dtv.Map)
			if !ok {
				return nil, fmt.Errorf("import: device %q must be a mapping, got %T", id, rec)
			}
			s.devices[id] = dtv.Clone(dev).(dtv.Map)
		}
	}

	var err error
	if s.compatibles, err = importIndex(m, keyCompatibles); err != nil {
		return nil, err
	}
	if s.deviceTypes, err = importIndex(m, keyDeviceTypes); err != nil {
		return nil, err
	}

	return s, nil
}

func importIndex(m dtv.Map, key string) (map[string][]string, error) {
	index := make(map[string][]string)
	raw, ok := m[key]
	if !ok {
		return index, nil
	}
	mapping, ok := raw.(dtv.Map)
	if !ok {
		return nil, fmt.Errorf("import: %q must be a mapping, got %T", key, raw)
	}
	for k, v := range mapping {
		list, ok := v.(dtv.List)
		if !ok {
			return nil, fmt.Errorf("import: %s[%q] must be a list, got %T", key, k, v)
		}
		ids := make([]string, len(list))
		for i, elem := range list {
			id, ok := elem.(dtv.String)
			if !ok {
				return nil, fmt.Errorf("import: %s[%q][%d] must be a device id string, got %T", key, k, i, elem)
			}
			ids[i] = string(id)
		}
		index[k] = ids
	}
	return index, nil
}

// EncodeJSON serializes the store canonically: sorted keys, NFC
// normalized strings, deterministic bytes for equal stores.
func EncodeJSON(s *Store) ([]byte, error) {
	data, err := dtv.MarshalCanonical(s.Export())
	if err != nil {
		return nil, fmt.Errorf("encode database: %w", err)
	}
	return data, nil
}

// DecodeJSON rebuilds a store from serialized JSON.
func DecodeJSON(data []byte) (*Store, error) {
	v, err := dtv.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}
	m, ok := v.(dtv.Map)
	if !ok {
		return nil, fmt.Errorf("decode database: expected top-level mapping, got %T", v)
	}
	return Import(m)
}

// EncodeYAML serializes the store as YAML with the same three-key shape
// as the JSON encoding.
func EncodeYAML(s *Store) ([]byte, error) {
	data, err := yaml.Marshal(dtv.ToGo(s.Export()))
	if err != nil {
		return nil, fmt.Errorf("encode database: %w", err)
	}
	return data, nil
}

// DecodeYAML rebuilds a store from serialized YAML.
func DecodeYAML(data []byte) (*Store, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}
	v, err := dtv.FromGo(raw)
	if err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}
	return Import(v.(dtv.Map))
}
