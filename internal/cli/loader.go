package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evenl/zephyr/internal/edts"
)

// LoadError represents an error that occurred during database loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E002" // Database file not found
	ErrCodeUnknownFormat = "E003" // Unrecognized file extension
	ErrCodeDecodeFailed  = "E004" // Database decode failed
	ErrCodeWriteFailed   = "E005" // File write error
	ErrCodeQueryFailed   = "E006" // Property lookup failed
	ErrCodeSchemaInvalid = "E101" // Database does not conform to schema
)

// LoadDatabase reads and decodes a device tree database file. The
// encoding is chosen by extension: .json, or .yaml/.yml.
func LoadDatabase(path string) (*edts.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("database not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error reading database: %v", err)}
	}

	var store *edts.Store
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		store, err = edts.DecodeJSON(data)
	case ".yaml", ".yml":
		store, err = edts.DecodeYAML(data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnknownFormat,
			Message: fmt.Sprintf("unrecognized database extension %q (want .json, .yaml, or .yml)", filepath.Ext(path)),
		}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding %s: %v", path, err)}
	}
	return store, nil
}
