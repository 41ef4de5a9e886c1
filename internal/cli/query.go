package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evenl/zephyr/internal/dtv"
	"github.com/evenl/zephyr/internal/edts"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	Device      string
	Path        string
	Label       string
	Compatibles []string
	DeviceType  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <database>",
		Short: "Query a device tree database",
		Long: `Query a device tree database file.

Exactly one query mode must be selected:

  --device ID --path PATH   look up one property of one device
  --label LABEL             resolve a device id by label
  --compatible STRING       list device ids by compatible (repeatable)
  --type TYPE               list device ids by device type

Unknown devices, paths, labels, compatibles, and types are reported as
absent, not as errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Device, "device", "", "device id for property lookup")
	cmd.Flags().StringVar(&opts.Path, "path", "", "slash-separated property path")
	cmd.Flags().StringVar(&opts.Label, "label", "", "device label to resolve")
	cmd.Flags().StringArrayVar(&opts.Compatibles, "compatible", nil, "compatible string (repeatable)")
	cmd.Flags().StringVar(&opts.DeviceType, "type", "", "device type")

	return cmd
}

func runQuery(rootOpts *RootOptions, opts *QueryOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	if err := checkQueryMode(opts); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid query", err)
	}

	store, err := LoadDatabase(dbPath)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	switch {
	case opts.Device != "":
		return queryProperty(formatter, store, opts.Device, opts.Path)
	case opts.Label != "":
		id, ok := store.DeviceIDByLabel(opts.Label)
		if !ok {
			return formatter.Success(map[string]any{"label": opts.Label, "device_id": nil})
		}
		return formatter.Success(map[string]any{"label": opts.Label, "device_id": id})
	case len(opts.Compatibles) > 0:
		ids := store.DeviceIDsByCompatible(opts.Compatibles...)
		return outputIDs(formatter, ids)
	default:
		ids := store.DeviceIDsByType(opts.DeviceType)
		return outputIDs(formatter, ids)
	}
}

// checkQueryMode enforces exactly one query mode.
func checkQueryMode(opts *QueryOptions) error {
	modes := 0
	if opts.Device != "" {
		modes++
		if opts.Path == "" {
			return errors.New("--device requires --path")
		}
	} else if opts.Path != "" {
		return errors.New("--path requires --device")
	}
	if opts.Label != "" {
		modes++
	}
	if len(opts.Compatibles) > 0 {
		modes++
	}
	if opts.DeviceType != "" {
		modes++
	}
	if modes != 1 {
		return errors.New("select exactly one of --device/--path, --label, --compatible, --type")
	}
	return nil
}

func queryProperty(formatter *OutputFormatter, store *edts.Store, deviceID, path string) error {
	v, err := store.DeviceProperty(deviceID, path)
	if err != nil {
		if errors.Is(err, dtv.ErrNotFound) {
			// Absence is a soft result, not a command failure.
			return formatter.Success(map[string]any{
				"device_id": deviceID,
				"path":      path,
				"value":     nil,
			})
		}
		_ = formatter.Error(ErrCodeQueryFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "query failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"device_id": deviceID,
			"path":      path,
			"value":     dtv.ToGo(v),
		})
	}
	text, err := dtv.MarshalCanonical(v)
	if err != nil {
		return WrapExitError(ExitCommandError, "format value", err)
	}
	fmt.Fprintln(formatter.Writer, string(text))
	return nil
}

func outputIDs(formatter *OutputFormatter, ids []string) error {
	if formatter.Format == "json" {
		if ids == nil {
			ids = []string{}
		}
		return formatter.Success(map[string]any{"device_ids": ids})
	}
	fmt.Fprintln(formatter.Writer, strings.Join(ids, "\n"))
	return nil
}

// reportLoadError prints a load error and maps it to a command exit code.
func reportLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return WrapExitError(ExitCommandError, "load database", err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "load database", err)
}
