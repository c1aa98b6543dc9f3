package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"smuverify/internal/cli"
	"smuverify/internal/domain/tables"
)

func runTables(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewTablesCommand(&cli.RootOptions{Format: format})
	cmd.SetArgs(args)

	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestTablesList(t *testing.T) {
	rq := require.New(t)

	out, err := runTables(t, cli.FormatText)
	rq.NoError(err)

	for _, table := range tables.All() {
		rq.Contains(out, table.ID)
	}

	rq.Contains(out, "Mainframe output voltage accuracy")
}

func TestTablesShow(t *testing.T) {
	rq := require.New(t)

	out, err := runTables(t, cli.FormatText, "18-11")
	rq.NoError(err)

	rq.Contains(out, "1pA")
	rq.Contains(out, "R_NOM")
}

func TestTablesShowJSON(t *testing.T) {
	rq := require.New(t)

	out, err := runTables(t, cli.FormatJSON, "18-3")
	rq.NoError(err)

	rq.Contains(out, `"id": "18-3"`)
	rq.Contains(out, `"range_name"`)
}

func TestTablesUnknownID(t *testing.T) {
	rq := require.New(t)

	_, err := runTables(t, cli.FormatText, "18-99")
	rq.Error(err)
	rq.Equal(cli.ExitCommandError, cli.GetExitCode(err))
}
