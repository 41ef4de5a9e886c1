// Package schema validates serialized device tree databases against an
// embedded CUE schema before they are imported.
//
// Validation is an import-boundary concern only: the store itself never
// schema-checks inserted property values. The schema pins the three
// top-level database keys, the list-of-ids shape of the two indices,
// and the mandatory device-id field of every device record.
package schema
