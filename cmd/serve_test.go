package cmd

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestServeCommand_ServesUntilCancelled(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	seedEpisodes(t, dbPath)
	port := freePort(t)

	root := NewRootCmd()
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serve.SetContext(ctx)
	t.Cleanup(func() { serve.SetContext(context.Background()) })

	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"serve", "--config", cfgPath, "--host", "127.0.0.1", "--port", strconv.Itoa(port)})

	done := make(chan error, 1)
	go func() { done <- root.Execute() }()

	base := "http://127.0.0.1:" + strconv.Itoa(port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/api/v1/episodes?topic=Operations")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
}

func TestServeCommand_RejectsBadPort(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := run(t, "serve", "--config", cfgPath, "--port", "invalid")
	assert.Error(t, err)
}
