package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evenl/zephyr/internal/edts"
	"github.com/evenl/zephyr/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <database>",
		Short: "Validate a database file against the schema",
		Long: `Validate a serialized device tree database against the embedded schema.

Checks the three top-level keys, the list-of-ids shape of both indices,
and the mandatory device-id field of every device record. YAML databases
are canonicalized to JSON before validation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(rootOpts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	data, err := validationJSON(dbPath)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	errs := schema.ValidateJSON(dbPath, data)
	if len(errs) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fmt.Fprintln(formatter.Writer, "✓ Database valid")
		return nil
	}

	if formatter.Format == "json" {
		result := ValidationResult{Valid: false}
		for _, e := range errs {
			result.Errors = append(result.Errors, e.Error())
		}
		_ = formatter.Error(ErrCodeSchemaInvalid, "database does not conform to schema", result)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

// validationJSON returns the database file as JSON bytes. JSON files
// are validated as-is so schema errors carry real file positions; YAML
// files are decoded and re-encoded canonically so one schema serves both.
func validationJSON(path string) ([]byte, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("database not found: %s", path)}
			}
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error reading database: %v", err)}
		}
		return data, nil
	}

	store, err := LoadDatabase(path)
	if err != nil {
		return nil, err
	}
	data, err := edts.EncodeJSON(store)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("re-encoding %s: %v", path, err)}
	}
	return data, nil
}
