// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/internal/config"
	"github.com/carehaven/carehaven/pkg/errutil"
)

func TestNewSeedCmd(t *testing.T) {
	cmd := NewSeedCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "seed", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.RunE)

	timeout, err := cmd.Flags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout, "default timeout should be 30s")
}

func TestRunSeed_InvalidCatalogFailsBeforeConnecting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1.0.0\nservices: []\n"), 0o600))

	connected := false
	deps := &Deps{DatabaseFactory: func(context.Context, config.DatabaseConfig) (Database, error) {
		connected = true
		return nil, errors.New("unreachable")
	}}

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&bytes.Buffer{})

	err := runSeedWithDeps(cmd, &seedConfig{file: path, timeout: time.Second}, testAppConfig(), discardLogger(), deps)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CATALOG_INVALID")
	assert.False(t, connected)
}

func TestRunSeed_ConnectFailure(t *testing.T) {
	deps := &Deps{DatabaseFactory: func(context.Context, config.DatabaseConfig) (Database, error) {
		return nil, errors.New("connection refused")
	}}

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&bytes.Buffer{})

	err := runSeedWithDeps(cmd, &seedConfig{timeout: time.Second}, testAppConfig(), discardLogger(), deps)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "DB_CONNECT_FAILED")
}

func TestSeedValidate_BuiltInCatalog(t *testing.T) {
	configFile, envFile = "", ""
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"seed", "validate"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "is valid")
}

func TestSeedSchema_PrintsJSONSchema(t *testing.T) {
	configFile, envFile = "", ""
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"seed", "schema"})

	require.NoError(t, root.Execute())

	var schema map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	assert.Contains(t, schema, "properties")
}
