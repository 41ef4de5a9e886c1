package dtv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound reports a soft miss: a path whose target does not exist.
// Callers are expected to treat it as normal sparse-data absence, not as
// a failure. Wrapped errors match via errors.Is.
var ErrNotFound = errors.New("property not found")

// InvalidPathError reports a hard path error: a segment that indexes
// into a list but does not parse as a non-negative integer.
type InvalidPathError struct {
	// Path is the full path being traversed.
	Path string

	// Segment is the offending segment.
	Segment string
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: segment %q is not a list index", e.Path, e.Segment)
}

// PathConflictError reports an insert whose intermediate segment already
// holds a non-map value, so the path cannot be created.
type PathConflictError struct {
	// Path is the full path being inserted.
	Path string

	// Segment is the segment that collided with an existing value.
	Segment string
}

// Error implements the error interface.
func (e *PathConflictError) Error() string {
	return fmt.Sprintf("path conflict at %q: segment %q already holds a non-map value", e.Path, e.Segment)
}

// IsInvalidPath returns true if the error is an InvalidPathError.
// Uses errors.As to handle wrapped errors.
func IsInvalidPath(err error) bool {
	var pe *InvalidPathError
	return errors.As(err, &pe)
}

// IsPathConflict returns true if the error is a PathConflictError.
func IsPathConflict(err error) bool {
	var pe *PathConflictError
	return errors.As(err, &pe)
}

// splitPath strips surrounding quotes and slashes from a path and
// splits it into segments. Matches the addressing convention of the
// extracted device tree data: 'reg/0', interrupts/prio, device-id.
func splitPath(path string) []string {
	path = strings.Trim(path, "'\"")
	path = strings.Trim(path, "/")
	return strings.Split(path, "/")
}

// Lookup reads the value at a slash-separated path below root.
//
// Soft misses - a missing map key, a list index out of range, or a
// scalar encountered while segments remain - return ErrNotFound.
// A non-integer segment applied to a list returns *InvalidPathError.
func Lookup(root Value, path string) (Value, error) {
	current := root
	for _, seg := range splitPath(path) {
		switch val := current.(type) {
		case Map:
			next, ok := val[seg]
			if !ok {
				return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
			}
			current = next
		case List:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, &InvalidPathError{Path: path, Segment: seg}
			}
			if idx < 0 || idx >= len(val) {
				return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
			}
			current = val[idx]
		default:
			// Scalar with segments remaining.
			return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
		}
	}
	return current, nil
}

// LookupDefault reads the value at path, substituting def on a soft
// miss. Hard path errors still surface.
func LookupDefault(root Value, path string, def Value) (Value, error) {
	v, err := Lookup(root, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def, nil
		}
		return nil, err
	}
	return v, nil
}

// Insert writes value at a slash-separated path below root, creating
// intermediate maps as needed.
//
// If the final segment already holds a value, the merge policy applies:
// an existing non-list value is first promoted to a one-element list,
// then a list value appends its elements and any other value appends as
// a single element. Inserting the same scalar twice therefore yields a
// two-element list - callers needing idempotent re-insertion must
// pre-check.
//
// An intermediate segment that already holds a non-map value returns
// *PathConflictError; the insert is never applied partially past the
// conflicting segment.
func Insert(root Map, path string, value Value) error {
	segs := splitPath(path)
	current := root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := current[seg]
		if !ok {
			child := Map{}
			current[seg] = child
			current = child
			continue
		}
		child, ok := next.(Map)
		if !ok {
			return &PathConflictError{Path: path, Segment: seg}
		}
		current = child
	}

	last := segs[len(segs)-1]
	existing, ok := current[last]
	if !ok {
		current[last] = value
		return nil
	}

	merged, isList := existing.(List)
	if !isList {
		merged = List{existing}
	}
	if lv, ok := value.(List); ok {
		merged = append(merged, lv...)
	} else {
		merged = append(merged, value)
	}
	current[last] = merged
	return nil
}

// Flatten reduces a nested value to {path: scalar} pairs. Map keys and
// list indices are joined with '/'; every emitted key is prefixed with
// prefix. Empty containers contribute no entries.
func Flatten(root Value, prefix string) map[string]Value {
	flattened := make(map[string]Value)
	flatten(root, "", flattened, prefix)
	return flattened
}

func flatten(v Value, path string, flattened map[string]Value, prefix string) {
	switch val := v.(type) {
	case Map:
		for k, elem := range val {
			flatten(elem, joinPath(path, k), flattened, prefix)
		}
	case List:
		for i, elem := range val {
			flatten(elem, joinPath(path, strconv.Itoa(i)), flattened, prefix)
		}
	default:
		flattened[prefix+path] = v
	}
}

func joinPath(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "/" + seg
}
