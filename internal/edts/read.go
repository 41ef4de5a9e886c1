package edts

import (
	"fmt"
	"sort"

	"github.com/evenl/zephyr/internal/dtv"
)

// DeviceIDs returns all device ids in sorted order.
func (s *Store) DeviceIDs() []string {
	ids := make([]string, 0, len(s.devices))
	for id := range s.devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Device returns the record for id, or false if unknown.
func (s *Store) Device(id string) (Device, bool) {
	dev, ok := s.devices[id]
	return dev, ok
}

// DevicesByCompatible returns the union of devices registered under any
// of the given compatible strings. Devices appearing under several of
// the arguments are returned once, in first-seen order.
func (s *Store) DevicesByCompatible(compatibles ...string) []Device {
	var devices []Device
	seen := make(map[string]bool)
	for _, compatible := range compatibles {
		for _, id := range s.compatibles[compatible] {
			if seen[id] {
				continue
			}
			seen[id] = true
			devices = append(devices, s.devices[id])
		}
	}
	return devices
}

// DeviceIDsByCompatible is DevicesByCompatible for ids only.
func (s *Store) DeviceIDsByCompatible(compatibles ...string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, compatible := range compatibles {
		for _, id := range s.compatibles[compatible] {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// DeviceIDsByType returns the sorted ids registered under deviceType.
// An unknown type yields an empty slice, never an error.
func (s *Store) DeviceIDsByType(deviceType string) []string {
	ids := s.deviceTypes[deviceType]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// DeviceIDByLabel scans all devices for the first record whose label
// property equals label. Labels are unique by convention, not enforced;
// the scan visits devices in sorted id order so a duplicate label
// resolves deterministically.
func (s *Store) DeviceIDByLabel(label string) (string, bool) {
	for _, id := range s.DeviceIDs() {
		if l, ok := s.devices[id]["label"]; ok && l == dtv.String(label) {
			return id, true
		}
	}
	return "", false
}

// DeviceProperty reads the property at a slash-separated path below the
// named device's record. An unknown device id behaves exactly like an
// unknown path: dtv.ErrNotFound.
func (s *Store) DeviceProperty(deviceID, path string) (dtv.Value, error) {
	dev, ok := s.devices[deviceID]
	if !ok {
		return nil, fmt.Errorf("device %q: %w", deviceID, dtv.ErrNotFound)
	}
	return dtv.Lookup(dev, path)
}

// DevicePropertyDefault is DeviceProperty with def substituted on a
// soft miss. Hard path errors still surface.
func (s *Store) DevicePropertyDefault(deviceID, path string, def dtv.Value) (dtv.Value, error) {
	dev, ok := s.devices[deviceID]
	if !ok {
		return def, nil
	}
	return dtv.LookupDefault(dev, path, def)
}

// DevicePropertiesFlattened returns the named device's full record as
// {path: scalar} pairs, each key prefixed with prefix. An unknown
// device yields an empty map.
func (s *Store) DevicePropertiesFlattened(deviceID, prefix string) map[string]dtv.Value {
	dev, ok := s.devices[deviceID]
	if !ok {
		return map[string]dtv.Value{}
	}
	return dtv.Flatten(dev, prefix)
}
