package server

import (
	"bytes"
	"context"
	"testing"

	"github.com/deppfellow/coffee-demo/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, buf *bytes.Buffer) *Server {
	t.Helper()

	log := zerolog.New(buf)
	s, err := New(testutil.SQLiteConfig(t), &log, nil)
	require.NoError(t, err)
	return s
}

func TestCheckHealth_Healthy(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := newTestServer(t, &buf)
	t.Cleanup(func() { _ = s.Shutdown() })

	require.NoError(t, s.CheckHealth(context.Background()))
	assert.Contains(t, buf.String(), "database health check passed")
}

func TestCheckHealth_ClosedDatabase(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := newTestServer(t, &buf)
	require.NoError(t, s.Shutdown())

	err := s.CheckHealth(context.Background())
	require.ErrorIs(t, err, ErrUnhealthy)
	assert.Contains(t, buf.String(), "database health check failed")
}

func TestCheckHealth_Disabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := newTestServer(t, &buf)
	require.NoError(t, s.Shutdown())

	s.Config.Observability.HealthChecks.Enabled = false
	assert.NoError(t, s.CheckHealth(context.Background()))
}

func TestNew_BadSQLitePath(t *testing.T) {
	t.Parallel()

	cfg := testutil.SQLiteConfig(t)
	cfg.Database.Path = t.TempDir() + "/missing/dir/coffee.db"
	log := zerolog.Nop()

	_, err := New(cfg, &log, nil)
	assert.Error(t, err)
}
