package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evenl/zephyr/internal/edts"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	Out      string
	Encoding string // "json" | "yaml"
}

// ValidEncodings defines the allowed export encodings.
var ValidEncodings = []string{"json", "yaml"}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <database>",
		Short: "Re-emit a database canonically",
		Long: `Export a device tree database in canonical form.

JSON output has sorted keys and NFC-normalized strings, so two exports
of structurally equal databases are byte-identical. Useful for diffing
databases and for converting between JSON and YAML.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "json", "output encoding (json|yaml)")

	return cmd
}

func runExport(rootOpts *RootOptions, opts *ExportOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	if !isValidEncoding(opts.Encoding) {
		err := fmt.Errorf("invalid encoding %q: must be one of %v", opts.Encoding, ValidEncodings)
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid encoding", err)
	}

	store, err := LoadDatabase(dbPath)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	var data []byte
	switch opts.Encoding {
	case "yaml":
		data, err = edts.EncodeYAML(store)
	default:
		data, err = edts.EncodeJSON(store)
		data = append(data, '\n')
	}
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "encode database", err)
	}

	if opts.Out == "" {
		_, err = formatter.Writer.Write(data)
		return err
	}
	if err := os.WriteFile(opts.Out, data, 0o644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "write output", err)
	}
	formatter.VerboseLog("Wrote %d bytes to %s", len(data), opts.Out)
	return nil
}

func isValidEncoding(encoding string) bool {
	for _, e := range ValidEncodings {
		if e == encoding {
			return true
		}
	}
	return false
}
