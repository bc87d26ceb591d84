package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCreatesAndSeeds(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "teststore")

	out, _, err := execute(t, "--db", dbURL)
	require.NoError(t, err)
	assert.Equal(t, "Database created successfully\nSeedResult{RowsAffected:1 LastInsertID:1}\n", out)

	out, _, err = execute(t, "run", "--db", dbURL)
	require.NoError(t, err)
	assert.Equal(t, "Database already exists\nSeedResult{RowsAffected:1 LastInsertID:2}\n", out)

	out, _, err = execute(t, "db", "verify", "--db", dbURL)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "ready (2 settings rows)\n"), out)
}

func TestDBSubcommands(t *testing.T) {
	dbURL := "sqlite:" + filepath.Join(t.TempDir(), "sqlite.db")

	_, _, err := execute(t, "db", "seed", "--db", dbURL)
	assert.Error(t, err, "seed requires an existing store")

	out, _, err := execute(t, "db", "verify", "--db", dbURL)
	assert.Error(t, err)
	assert.Contains(t, out, "missing")

	out, _, err = execute(t, "db", "create", "--db", dbURL)
	require.NoError(t, err)
	assert.Equal(t, "Database created successfully\n", out)

	out, _, err = execute(t, "db", "create", "--db", dbURL)
	require.NoError(t, err)
	assert.Equal(t, "Database already exists\n", out)

	out, _, err = execute(t, "db", "seed", "--db", dbURL)
	require.NoError(t, err)
	assert.Equal(t, "SeedResult{RowsAffected:1 LastInsertID:1}\n", out)
}

func TestRootDirectoryLocationFails(t *testing.T) {
	out, stderr, err := execute(t, "--db", t.TempDir())
	assert.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "[ERROR]")
}

func TestJSONLogging(t *testing.T) {
	dbURL := filepath.Join(t.TempDir(), "sqlite.db")

	_, stderr, err := execute(t, "--db", dbURL, "--log-format", "json", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"level":"debug"`)
}

func TestInvalidLogFormat(t *testing.T) {
	_, _, err := execute(t, "--db", filepath.Join(t.TempDir(), "sqlite.db"), "--log-format", "xml")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
}
