// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// fakeMigrator implements Migrator for testing.
type fakeMigrator struct {
	version     uint
	dirty       bool
	pending     []uint
	upCalled    bool
	upError     error
	downCalled  bool
	forced      *int
	closeCalled bool
	closeError  error
}

func (m *fakeMigrator) Up() error {
	m.upCalled = true
	return m.upError
}

func (m *fakeMigrator) Down() error {
	m.downCalled = true
	return nil
}

func (m *fakeMigrator) Steps(int) error { return nil }

func (m *fakeMigrator) Version() (uint, bool, error) { return m.version, m.dirty, nil }

func (m *fakeMigrator) Force(version int) error {
	m.forced = &version
	return nil
}

func (m *fakeMigrator) PendingMigrations() ([]uint, error) { return m.pending, nil }

func (m *fakeMigrator) Close() error {
	m.closeCalled = true
	return m.closeError
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func TestParseForceVersion(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantVersion int
		wantErr     bool
	}{
		{name: "valid integer", input: "3", wantVersion: 3},
		{name: "zero is valid", input: "0", wantVersion: 0},
		{name: "non-numeric returns error", input: "abc", wantErr: true},
		{name: "float parses as integer", input: "1.5", wantVersion: 1},
		{name: "trailing chars are ignored", input: "3abc", wantVersion: 3},
		{name: "negative parses", input: "-1", wantVersion: -1},
		{name: "empty string returns error", input: "", wantErr: true},
		{name: "whitespace only returns error", input: "   ", wantErr: true},
		{name: "leading whitespace is handled", input: "  42", wantVersion: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseForceVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, "INVALID_VERSION")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, got)
		})
	}
}

func TestRunMigrateUp(t *testing.T) {
	t.Run("applies pending migrations", func(t *testing.T) {
		cmd, buf := testCommand()
		m := &fakeMigrator{pending: []uint{1, 2}}

		require.NoError(t, runMigrateUp(cmd, m))
		assert.True(t, m.upCalled)
		assert.Contains(t, buf.String(), "Applying 2 migration(s)")
		assert.Contains(t, buf.String(), "Migrations completed successfully")
	})

	t.Run("skips when up to date", func(t *testing.T) {
		cmd, buf := testCommand()
		m := &fakeMigrator{version: 2}

		require.NoError(t, runMigrateUp(cmd, m))
		assert.False(t, m.upCalled)
		assert.Contains(t, buf.String(), "Database is up to date")
	})

	t.Run("wraps failures", func(t *testing.T) {
		cmd, _ := testCommand()
		m := &fakeMigrator{pending: []uint{1}, upError: errors.New("syntax error")}

		err := runMigrateUp(cmd, m)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "MIGRATION_FAILED")
	})
}

func TestRunMigrateDown_RequiresConfirmation(t *testing.T) {
	cmd, _ := testCommand()
	m := &fakeMigrator{}

	err := runMigrateDown(cmd, m, false)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "MIGRATION_CONFIRMATION_REQUIRED")
	assert.False(t, m.downCalled)

	require.NoError(t, runMigrateDown(cmd, m, true))
	assert.True(t, m.downCalled)
}

func TestRunMigrateStatus(t *testing.T) {
	cmd, buf := testCommand()
	m := &fakeMigrator{version: 1, dirty: true, pending: []uint{2}}

	require.NoError(t, runMigrateStatus(cmd, m))
	out := buf.String()
	assert.Contains(t, out, "Current version: 1 (dirty)")
	assert.Contains(t, out, "Pending migrations (1)")
	assert.Contains(t, out, "000002_care")
}

func TestRunMigrateForce(t *testing.T) {
	cmd, buf := testCommand()
	m := &fakeMigrator{}

	require.NoError(t, runMigrateForce(cmd, m, 2))
	require.NotNil(t, m.forced)
	assert.Equal(t, 2, *m.forced)
	assert.Contains(t, buf.String(), "Forced migration version to 2")
}

func TestWithMigrator_ClosesMigrator(t *testing.T) {
	configFile, envFile = "", ""
	t.Setenv("CAREHAVEN_DATABASE__URL", "postgres://test@localhost/carehaven")

	m := &fakeMigrator{}
	deps := &Deps{MigratorFactory: func(url string) (Migrator, error) {
		assert.Equal(t, "postgres://test@localhost/carehaven", url)
		return m, nil
	}}

	cmd, _ := testCommand()
	called := false
	err := withMigrator(cmd, deps, func(got Migrator) error {
		called = true
		assert.Same(t, m, got)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.True(t, m.closeCalled)
}

func TestMigrateCommand_MissingDatabaseURL(t *testing.T) {
	configFile, envFile = "", ""
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CAREHAVEN_DATABASE__URL", "")

	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"migrate", "status"})

	err := root.Execute()
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	assert.Contains(t, err.Error(), "database.url")
}

func TestMigrateCommand_HasSubcommands(t *testing.T) {
	cmd := NewMigrateCmd()
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "status", "force"}, names)

	down, _, err := cmd.Find([]string{"down"})
	require.NoError(t, err)
	assert.NotNil(t, down.Flags().Lookup("yes"))

	version, _, err := cmd.Find([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "status", version.Name())
}
