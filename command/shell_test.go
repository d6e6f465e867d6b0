package command

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runShellInput(t *testing.T, dir, input string) (string, string) {
	t.Helper()
	app := App()
	var out, errOut bytes.Buffer
	app.Reader = strings.NewReader(input)
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run([]string{"dietlog", "--config", filepath.Join(dir, "config.yaml"), "--data-dir", dir, "--no-color", "shell"})
	require.NoError(t, err)
	return out.String(), errOut.String()
}

func TestShell_SharesStoresAcrossLines(t *testing.T) {
	dir := testDir(t)

	input := strings.Join([]string{
		"meal add --date 1/1/2024 -f 3 -f 4",
		"meal add --date 2/1/2024 -f 2",
		`exercise add --name "long walk" --calories 150 --date 2/1/2024`,
		"meal delete 0",
		"meal list",
		"exit",
		"meal list",
	}, "\n")

	out, errOut := runShellInput(t, dir, input)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "dietlog> ")
	assert.Contains(t, out, "Meal was successfully added! (index 1)")
	assert.Contains(t, out, "Deleted meal 0 from 1/1/2024.")
	assert.Equal(t, 1, strings.Count(out, "INDEX"), "commands after exit must not run")

	assert.Equal(t, "Date,Foods\r\n2/1/2024,2\r\n", readFile(t, filepath.Join(dir, "meals.csv")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "exercises.csv")), "long walk,,150,2/1/2024")
}

func TestShell_ReportsErrorsAndContinues(t *testing.T) {
	dir := testDir(t)

	out, errOut := runShellInput(t, dir, "meal show 5\nfood show 2\n")
	assert.Contains(t, errOut, "error: index 5 out of range [0, 0)")
	assert.Contains(t, out, "rolled oats (40g)")
}

func TestShell_UnterminatedQuote(t *testing.T) {
	_, errOut := runShellInput(t, testDir(t), `exercise add --name "oops`+"\n")
	assert.Contains(t, errOut, "unterminated quote")
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"meal list", []string{"meal", "list"}},
		{"  meal   show\t2 ", []string{"meal", "show", "2"}},
		{`exercise add --name "long walk" --description ""`, []string{"exercise", "add", "--name", "long walk", "--description", ""}},
		{`say a"b c"d`, []string{"say", "ab cd"}},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.line)
	}
}
