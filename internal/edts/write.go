package edts

import (
	"fmt"
	"strings"

	"github.com/evenl/zephyr/internal/dtv"
)

// InsertDeviceProperty inserts a property value at a path below the
// named device's record, creating the record with its device-id
// pre-populated on first use.
//
// Identity properties are special-cased before the normal insert:
//   - a path starting with "compatible" registers value in the
//     compatibles index (value must be a single compatible string;
//     callers wanting several compatibles insert once per string)
//   - the exact path "device-type" registers value in the device-types
//     index under the same convention
//   - the exact path "device-id" is a no-op after record creation; the
//     id is set once and never overwritten
//
// All other paths go through dtv.Insert and its merge-on-duplicate
// policy: re-inserting at an occupied path grows a list.
func (s *Store) InsertDeviceProperty(deviceID, path string, value dtv.Value) error {
	if strings.HasPrefix(path, "compatible") {
		str, ok := value.(dtv.String)
		if !ok {
			return fmt.Errorf("device %q: compatible value must be a string, got %T", deviceID, value)
		}
		s.updateCompatible(deviceID, string(str))
	} else if path == "device-type" {
		str, ok := value.(dtv.String)
		if !ok {
			return fmt.Errorf("device %q: device-type value must be a string, got %T", deviceID, value)
		}
		s.updateType(deviceID, string(str))
	}

	dev, ok := s.devices[deviceID]
	if !ok {
		dev = Device{"device-id": dtv.String(deviceID)}
		s.devices[deviceID] = dev
	}
	if path == "device-id" {
		// Already set at record creation, immutable thereafter.
		return nil
	}

	if err := dtv.Insert(dev, path, value); err != nil {
		return fmt.Errorf("device %q: %w", deviceID, err)
	}
	return nil
}
