package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDL(t *testing.T) {
	stmts := splitDDL("CREATE TABLE a (x INT64) PRIMARY KEY (x);\r\n\r\nCREATE INDEX b ON a (x);\n  ;")
	assert.Equal(t, []string{"CREATE TABLE a (x INT64) PRIMARY KEY (x)", "CREATE INDEX b ON a (x)"}, stmts)
}

func TestSchemaFileSplitsIntoStatements(t *testing.T) {
	stmts, err := readDDLStatements(filepath.Join("..", "..", "migrations", "001_initial_schema.sql"))
	require.NoError(t, err)
	assert.Len(t, stmts, 11)
}

func TestSQLCommandMigratesSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "reflist.db")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"sql", "--dialect", "SQLite", "--dsn", dsn})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "(sqlite)")

	_, err := os.Stat(dsn)
	assert.NoError(t, err)
}

func TestSQLCommandRejectsDialect(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"sql", "--dialect", "oracle", "--dsn", "x"})
	assert.Error(t, cmd.Execute())
}

func TestSpannerCommandRequiresDatabase(t *testing.T) {
	t.Setenv("SPANNER_DATABASE", "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"spanner"})
	assert.Error(t, cmd.Execute())
}

func TestPrintCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"print", "--dialect", "postgres"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "CREATE TABLE IF NOT EXISTS essential_oils")
	assert.Contains(t, out.String(), "TIMESTAMPTZ")
}
