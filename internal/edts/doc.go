// Package edts implements the extended device tree store: a path
// addressed database of device records extracted from a platform's
// hardware description, plus two derived indices used by downstream
// code generation.
//
// The store holds:
//   - Devices: device-id -> nested property record
//   - Compatibles: compatible string -> sorted list of device ids
//   - Device types: device type -> sorted list of device ids
//
// The indices are derived and append-only; they are maintained
// synchronously on every insert that touches an identity property and
// are never mutated directly by callers.
//
// Build/read discipline: one writer populates the store in a single
// pass via InsertDeviceProperty, then many readers query it through the
// Reader interface. No locking is provided; concurrent mutation is out
// of scope.
//
// Absence is normal, not exceptional: unknown device ids, labels,
// compatibles, and types yield empty results or dtv.ErrNotFound, never
// a hard failure. The only hard errors are malformed list indices
// (dtv.InvalidPathError) and inserts through a scalar intermediate
// segment (dtv.PathConflictError).
package edts
