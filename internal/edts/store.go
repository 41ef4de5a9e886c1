package edts

import (
	"github.com/evenl/zephyr/internal/dtv"
)

// Device is one device record: a nested property tree that always
// carries its own id under the "device-id" key. The optional
// "compatible" and "device-type" keys hold a string or list of strings
// mirrored into the store's indices; the optional "label" key holds a
// human-readable lookup name.
type Device = dtv.Map

// Reader is the read-only query capability over a populated store.
// Callers that only inspect the database should be handed a Reader.
type Reader interface {
	// DeviceIDs returns all device ids in sorted order.
	DeviceIDs() []string

	// Device returns the record for id, or false if unknown.
	Device(id string) (Device, bool)

	// DevicesByCompatible returns the union of devices registered
	// under any of the given compatible strings, de-duplicated by
	// device id in first-seen order.
	DevicesByCompatible(compatibles ...string) []Device

	// DeviceIDsByCompatible is DevicesByCompatible for ids only.
	DeviceIDsByCompatible(compatibles ...string) []string

	// DeviceIDsByType returns the sorted ids registered under the
	// given device type; empty if the type is unknown.
	DeviceIDsByType(deviceType string) []string

	// DeviceIDByLabel returns the id of the first device whose label
	// property equals label, or false if none matches.
	DeviceIDByLabel(label string) (string, bool)

	// DeviceProperty reads the property at a slash-separated path
	// below the named device's record.
	DeviceProperty(deviceID, path string) (dtv.Value, error)

	// DevicePropertyDefault is DeviceProperty with a caller-supplied
	// default substituted on a soft miss.
	DevicePropertyDefault(deviceID, path string, def dtv.Value) (dtv.Value, error)

	// DevicePropertiesFlattened returns the named device's full
	// record as {path: scalar} pairs, each key prefixed with prefix.
	DevicePropertiesFlattened(deviceID, prefix string) map[string]dtv.Value
}

// Writer is the mutation capability used while the store is being
// populated from parsed configuration.
type Writer interface {
	// InsertDeviceProperty inserts a property value at a path below
	// the named device's record, creating the record on first use.
	InsertDeviceProperty(deviceID, path string, value dtv.Value) error
}

// Store is the extended device tree database. It implements both
// Reader and Writer.
type Store struct {
	devices     map[string]Device
	compatibles map[string][]string
	deviceTypes map[string][]string
}

var (
	_ Reader = (*Store)(nil)
	_ Writer = (*Store)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{
		devices:     make(map[string]Device),
		compatibles: make(map[string][]string),
		deviceTypes: make(map[string][]string),
	}
}
