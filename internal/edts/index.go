package edts

import "sort"

// The two derived indices are maintained synchronously on every insert
// that touches an identity property. Both updates are idempotent and
// append-only: re-adding an indexed id is a no-op and nothing is ever
// removed for the lifetime of the store. The id lists are kept sorted
// for deterministic iteration and serialization.

func (s *Store) updateCompatible(deviceID, compatible string) {
	s.compatibles[compatible] = addIndexed(s.compatibles[compatible], deviceID)
}

func (s *Store) updateType(deviceID, deviceType string) {
	s.deviceTypes[deviceType] = addIndexed(s.deviceTypes[deviceType], deviceID)
}

// addIndexed inserts id into the sorted id list if not already present.
func addIndexed(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	ids = append(ids, id)
	sort.Strings(ids)
	return ids
}
