// Package dtv defines the value model for extended device tree data.
//
// A Value is a closed union over the types a device tree property can
// carry: strings, integers, booleans, lists, and string-keyed maps.
// Floats have no representation - device tree cells, strings, and flags
// never carry them, and the JSON codec rejects them on decode.
//
// The package also provides the path accessors used by the device store:
//   - Lookup / LookupDefault: read a value at a slash-separated path
//   - Insert: write a value at a path with merge-on-duplicate semantics
//   - Flatten: reduce a nested value to {path: scalar} pairs
//
// Canonical serialization (sorted keys, NFC-normalized strings, no HTML
// escaping) lives in canonical.go and is the encoding used for exported
// databases and golden test fixtures.
package dtv
