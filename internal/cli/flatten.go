package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/evenl/zephyr/internal/dtv"
)

// FlattenOptions holds flags for the flatten command.
type FlattenOptions struct {
	Prefix string
}

// NewFlattenCommand creates the flatten command.
func NewFlattenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FlattenOptions{}

	cmd := &cobra.Command{
		Use:   "flatten <database> <device-id>",
		Short: "Print one device's properties as flat path/value pairs",
		Long: `Flatten one device's nested property tree into {path: value} pairs.

Map keys and list indices are joined with '/'. An unknown device id
produces empty output, not an error.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "prefix prepended to every emitted path")

	return cmd
}

func runFlatten(rootOpts *RootOptions, opts *FlattenOptions, dbPath, deviceID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	store, err := LoadDatabase(dbPath)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	flattened := store.DevicePropertiesFlattened(deviceID, opts.Prefix)
	formatter.VerboseLog("%d propert(ies) under device %q", len(flattened), deviceID)

	paths := make([]string, 0, len(flattened))
	for path := range flattened {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	if formatter.Format == "json" {
		props := make(map[string]any, len(flattened))
		for path, v := range flattened {
			props[path] = dtv.ToGo(v)
		}
		return formatter.Success(map[string]any{
			"device_id":  deviceID,
			"properties": props,
		})
	}

	for _, path := range paths {
		text, err := dtv.MarshalCanonical(flattened[path])
		if err != nil {
			return WrapExitError(ExitCommandError, "format value", err)
		}
		fmt.Fprintf(formatter.Writer, "%s: %s\n", path, string(text))
	}
	return nil
}
