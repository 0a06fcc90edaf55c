// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/pkg/errutil"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestPingWithRetry(t *testing.T) {
	opts := ConnectOptions{Attempts: 3, BaseBackoff: time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		p := &flakyPinger{failures: 2}
		require.NoError(t, PingWithRetry(context.Background(), p, opts))
		assert.Equal(t, 3, p.calls)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		p := &flakyPinger{failures: 10}
		err := PingWithRetry(context.Background(), p, opts)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "DB_CONNECT_FAILED")
		errutil.AssertErrorContext(t, err, "attempts", 4)
		assert.Equal(t, 4, p.calls)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := &flakyPinger{failures: 10}
		err := PingWithRetry(ctx, p, ConnectOptions{Attempts: 100, BaseBackoff: time.Second})
		require.Error(t, err)
		assert.LessOrEqual(t, p.calls, 1)
	})
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://u:p@localhost:notaport/care", DefaultConnectOptions())
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "DB_CONFIG_INVALID")
}
