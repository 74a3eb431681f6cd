package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/flow/internal/config"
	"github.com/robalobadob/flow/internal/game"
	"github.com/robalobadob/flow/internal/generator"
)

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "generate", "check", "replay"})

	_, err := execute(t, "check", "--format", "yaml", "3", "ABBA")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGenerate_SeededOutputIsStable(t *testing.T) {
	args := []string{"generate", "--rows", "4", "--colors", "3", "--seed", "5", "--count", "2"}
	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	lines := strings.Split(strings.TrimSpace(first), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		assert.Equal(t, "4", fields[0])
		st, err := game.ParseScheme(4, fields[1])
		require.NoError(t, err)
		assert.Equal(t, 3, st.ColorCount())
	}
}

func TestGenerate_JSONWithSolution(t *testing.T) {
	out, err := execute(t, "generate", "--rows", "5", "--colors", "4", "--seed", "9", "--format", "json")
	require.NoError(t, err)
	var puzzles []generator.Puzzle
	require.NoError(t, json.Unmarshal([]byte(out), &puzzles))
	require.Len(t, puzzles, 1)
	assert.Len(t, puzzles[0].Solution, 4)

	out, err = execute(t, "generate", "--rows", "3", "--colors", "2", "--seed", "1", "--solution")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, row := range lines[1:] {
		assert.NotContains(t, row, ".", "solved boards have no empty cells")
	}

	_, err = execute(t, "generate", "--rows", "2", "--colors", "5")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "3", "--", "--ABB-A--")
	require.NoError(t, err)
	assert.Equal(t, "..A\nBB.\nA..\nok: 3x3, 2 colors\n", out)

	out, err = execute(t, "check", "--format", "json", "2", "AB", "BA")
	require.NoError(t, err)
	var res checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ABBA", res.Scheme)
	assert.Equal(t, []game.ColorID{"A", "B"}, res.Colors)

	_, err = execute(t, "check", "2", "A-")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, game.ErrInvalidScheme)

	_, err = execute(t, "check", "x", "ABBA")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestUsageErrors_ExitWithCommandError(t *testing.T) {
	cases := [][]string{
		{"check", "3"},
		{"replay"},
		{"generate", "--bogus"},
		{"generate", "extra"},
		{"check", "--rows", "3", "ABBA"},
		{"serve", "--port"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestReplay(t *testing.T) {
	scenario := filepath.Join("..", "script", "testdata", "solve-three.yaml")
	out, err := execute(t, "replay", scenario)
	require.NoError(t, err)
	assert.Equal(t, "PASS solve-three ("+scenario+"): 10 moves, flows 2/2, progress 100%\n", out)

	out, err = execute(t, "replay", "--transcript", scenario)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# solve-three (3x3)\n"))

	failing := filepath.Join(t.TempDir(), "half.yaml")
	require.NoError(t, os.WriteFile(failing, []byte(`name: half
rows: 3
scheme: "--ABB-A--"
events: [press 3, enter 0]
expect:
  solved: true
`), 0o644))
	out, err = execute(t, "replay", scenario, failing)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL half")
	assert.Contains(t, out, "solved = false, want true")

	_, err = execute(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	cfg := config.Load()
	cfg.Port = "0"
	cfg.DBPath = filepath.Join(t.TempDir(), "flow.db")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	_, err := os.Stat(cfg.DBPath)
	assert.NoError(t, err, "database file is created")
}
