package cli

import (
	"github.com/spf13/cobra"

	"github.com/evenl/zephyr/internal/snapshot"
)

// SnapshotOptions holds flags for the snapshot command.
type SnapshotOptions struct {
	Out string
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot <database>",
		Short: "Write a SQLite snapshot of flattened device properties",
		Long: `Snapshot a device tree database into SQLite.

Every device's flattened properties are written as one immutable run,
so downstream build tooling can query path/value pairs without loading
the full database. Repeated snapshots of the same database append new
runs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "edts-snapshot.db", "snapshot database file")

	return cmd
}

func runSnapshot(rootOpts *RootOptions, opts *SnapshotOptions, dbPath string, cmd *cobra.Command) error {
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

	snap, err := snapshot.Open(opts.Out)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open snapshot", err)
	}
	defer snap.Close()

	runID, err := snap.Write(cmd.Context(), store)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "write snapshot", err)
	}

	formatter.VerboseLog("Snapshot of %d device(s) written to %s", len(store.DeviceIDs()), opts.Out)
	return formatter.Success(map[string]any{"run_id": runID, "out": opts.Out})
}
