package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDatabaseJSON = `{
	"devices": {
		"uart0": {
			"device-id": "uart0",
			"compatible": "ns16550",
			"device-type": "UART",
			"label": "UART_0",
			"reg": [1073859584, 4096]
		},
		"uart1": {
			"device-id": "uart1",
			"compatible": "ns16550",
			"device-type": "UART",
			"label": "UART_1"
		}
	},
	"compatibles": {"ns16550": ["uart0", "uart1"]},
	"device-types": {"UART": ["uart0", "uart1"]}
}`

// writeTestDatabase writes the shared test database to a temp file and
// returns its path.
func writeTestDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edts.json")
	require.NoError(t, os.WriteFile(path, []byte(testDatabaseJSON), 0o644))
	return path
}

// runCommand executes the root command with args, capturing stdout and
// stderr.
func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
