package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tgienger/dispatch/internal/dispatch"
	"github.com/tgienger/dispatch/internal/ui"
)

type testEnv struct {
	dir    string
	dbPath string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, key := range []string{"DISPATCH_DB_PATH", "DISPATCH_LOG_PATH", "DISPATCH_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(dir)
	return &testEnv{dir: dir, dbPath: filepath.Join(dir, "dispatch.db")}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	root.runUI = func(*ui.App) error { return errors.New("ui not available in tests") }

	var out bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetErr(&out)
	root.Command().SetArgs(append(args, "--db", e.dbPath))

	err := root.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "dispatch 1.2.3 (commit: abc, built: today)\n", out)
}

func TestEmployeeAddAndList(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "employee", "add", "--first", "Anna", "--last", "Ivanova")
	require.NoError(t, err)
	assert.Equal(t, "Added employee #1 Anna Ivanova\n", out)

	out, err = env.run(t, "employee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Anna Ivanova")
}

func TestEmployeeAddRequiresSurname(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "employee", "add", "--first", "Anna")
	require.Error(t, err)
	assert.Equal(t, "Invalid name: First name and last name are required", FormatError(err))

	out, err := env.run(t, "employee", "list", "-o", "json")
	require.NoError(t, err)
	var rows []employeeRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Empty(t, rows)
}

func TestTaskAddJoinsWords(t *testing.T) {
	env := setupTestEnv(t)

	out, err := env.run(t, "task", "add", "Fix", "router")
	require.NoError(t, err)
	assert.Equal(t, "Added task #1 Fix router\n", out)

	out, err = env.run(t, "task", "list", "--output", "json")
	require.NoError(t, err)

	var rows []taskRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Fix router", rows[0].Name)
	assert.Nil(t, rows[0].AssignedTo)
}

func TestAssignFlow(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "task", "add", "Fix router")
	require.NoError(t, err)

	_, err = env.run(t, "assign")
	require.ErrorIs(t, err, dispatch.ErrInsufficientEmployees)
	assert.Contains(t, FormatError(err), "Not enough employees")

	_, err = env.run(t, "employee", "add", "--first", "Anna", "--last", "Ivanova")
	require.NoError(t, err)

	out, err := env.run(t, "assign")
	require.NoError(t, err)
	assert.Equal(t, "Assigned 1 task(s) among 1 employee(s)\n", out)

	out, err = env.run(t, "assign")
	require.NoError(t, err)
	assert.Equal(t, "No unassigned tasks\n", out)

	out, err = env.run(t, "task", "list", "-o", "yaml")
	require.NoError(t, err)
	var rows []taskRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].AssignedTo)
	assert.Equal(t, "Anna Ivanova", *rows[0].AssignedTo)

	out, err = env.run(t, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ASSIGNED TO")
	assert.Contains(t, out, "Anna Ivanova")
}

func TestUnknownOutputFormat(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "task", "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRootLaunchesUI(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui not available")

	_, statErr := os.Stat(env.dbPath)
	assert.NoError(t, statErr, "store is opened before the UI starts")
}

func TestLogFileWritten(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.run(t, "task", "add", "Fix router", "--log-level", "debug")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.dir, "dispatch.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "task added")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))
	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))
}
