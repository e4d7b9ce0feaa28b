package utils

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeFailureReleasesSignalHandler(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	srv := NewServer("", http.NotFoundHandler(), time.Second, time.Second)
	srv.listener = ln
	assert.Error(t, srv.serve())

	select {
	case _, ok := <-srv.signalChan:
		assert.False(t, ok, "signal channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("signal channel left open")
	}
}

func TestListenAndServeBadAddress(t *testing.T) {
	srv := NewServer("127.0.0.1:-1", http.NotFoundHandler(), time.Second, time.Second)
	assert.ErrorContains(t, srv.ListenAndServe(), "net.Listen")
}
