package ssh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntpusu/lawtext/internal/app"
	"github.com/ntpusu/lawtext/internal/config"
	"github.com/ntpusu/lawtext/internal/session"
)

type testContext struct {
	ssh.Context
	values map[any]any
}

func (c *testContext) SetValue(key, value any) { c.values[key] = value }

func (c *testContext) Value(key any) any { return c.values[key] }

type testSession struct {
	ssh.Session
	ctx *testContext
}

func (s testSession) Context() ssh.Context { return s.ctx }

func newTestSession() testSession {
	return testSession{ctx: &testContext{values: map[any]any{}}}
}

func TestCloseAppMiddleware(t *testing.T) {
	cfg := config.Default()
	cfg.LibraryPath = t.TempDir()

	sess := newTestSession()
	a := app.New(cfg)
	trackApp(sess, &a)

	statePath := filepath.Join(cfg.StateDir(), session.FileName)
	_, err := os.Stat(statePath)
	require.True(t, os.IsNotExist(err), "state saved before the session ended")

	called := false
	closeAppMiddleware()(func(ssh.Session) { called = true })(sess)

	assert.True(t, called)
	_, err = os.Stat(statePath)
	assert.NoError(t, err, "app was not closed")
}

func TestCloseAppMiddleware_NoApp(t *testing.T) {
	called := false
	closeAppMiddleware()(func(ssh.Session) { called = true })(newTestSession())
	assert.True(t, called)
}
