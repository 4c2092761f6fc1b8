package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notesrv/pkg/core"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "notesrv version "))
}

func TestOfflineLifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	out, err := run(t, "", "write", "alpha", "-c", dir, "--text", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	out, err = run(t, "", "read", "alpha", "-c", dir)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	_, err = run(t, "bye", "update", "alpha", "-c", dir)
	require.NoError(t, err)

	out, err = run(t, "", "read", "alpha", "--cache", dir, "--json")
	require.NoError(t, err)
	var note core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &note))
	assert.Equal(t, core.Note{Name: "alpha", Text: "bye"}, note)

	out, err = run(t, "", "list", "-c", dir)
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", out)

	_, err = run(t, "", "delete", "alpha", "-c", dir)
	require.NoError(t, err)

	out, err = run(t, "", "list", "-c", dir, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestOfflineErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	_, err := run(t, "", "write", "dup", "-c", dir, "--text", "x")
	require.NoError(t, err)

	_, err = run(t, "", "write", "dup", "-c", dir, "--text", "y")
	assert.ErrorIs(t, err, core.ErrExists)

	_, err = run(t, "", "read", "missing", "-c", dir)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = run(t, "", "update", "missing", "-c", dir, "--text", "z")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = run(t, "", "read", "../etc", "-c", dir)
	assert.ErrorIs(t, err, core.ErrInvalidName)

	_, err = run(t, "", "list")
	assert.ErrorContains(t, err, `required flag(s) "cache" not set`)

	_, err = run(t, "", "list", "-c", filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestServe_RequiresFlags(t *testing.T) {
	_, err := run(t, "")
	require.Error(t, err)
	for _, flag := range []string{"host", "port", "cache"} {
		assert.Contains(t, err.Error(), flag)
	}
}

func TestHelpWithHostShorthand(t *testing.T) {
	out, err := run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "-h, --host")
	assert.Contains(t, out, "--help")
}

func TestServe_InvalidConfig(t *testing.T) {
	_, err := run(t, "", "-h", "127.0.0.1", "-p", "70000", "-c", t.TempDir())
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestServe_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notesrv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\n"), 0o644))

	_, err := run(t, "", "--config", path, "version")
	assert.Error(t, err)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServe(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	port := freePort(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-h", "127.0.0.1", "-p", strconv.Itoa(port), "-c", dir, "--audit"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	base := "http://127.0.0.1:" + strconv.Itoa(port)
	require.Eventually(t, func() bool {
		res, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	res, err := http.Get(base + "/notes")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.PostForm(base+"/write", url.Values{"note_name": {"alpha"}, "note": {"hi"}})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	data, err := os.ReadFile(filepath.Join(dir, "alpha.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	res, err = http.Get(base + "/notes/alpha")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "hi", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
