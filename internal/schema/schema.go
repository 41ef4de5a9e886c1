package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError describes one schema violation in a database file.
type ValidationError struct {
	// Message is a human-readable description.
	Message string

	// Pos is the CUE position of the violation, if available.
	Pos token.Pos
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// databaseSchema compiles the embedded schema once and returns the
// #Database definition.
func databaseSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile embedded schema: %w", err)
			return
		}
		schemaValue = v.LookupPath(cue.ParsePath("#Database"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Database: %w", err)
		}
	})
	return schemaValue, schemaErr
}

// ValidateJSON checks serialized database JSON against the embedded
// schema. Returns all violations found, or nil if the document
// conforms. The filename is used only for error positions.
func ValidateJSON(filename string, data []byte) []error {
	sv, err := databaseSchema()
	if err != nil {
		return []error{err}
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return []error{&ValidationError{Message: fmt.Sprintf("parse JSON: %v", err)}}
	}

	ctx := sv.Context()
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return []error{&ValidationError{Message: fmt.Sprintf("build document: %v", err)}}
	}

	unified := sv.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return convertCUEErrors(err)
	}
	return nil
}

// convertCUEErrors flattens a CUE error list into ValidationErrors with
// position info where available.
func convertCUEErrors(err error) []error {
	var out []error
	for _, e := range cueerrors.Errors(err) {
		out = append(out, &ValidationError{
			Message: e.Error(),
			Pos:     e.Position(),
		})
	}
	if len(out) == 0 {
		out = append(out, &ValidationError{Message: err.Error()})
	}
	return out
}
