//go:build !integration

package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/bond-optimizer/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "ok")
})

func TestNewServer(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.ServerConfig
		addr         string
		writeTimeout time.Duration
	}{
		{
			name:         "default write timeout",
			cfg:          config.ServerConfig{Port: "8080"},
			addr:         ":8080",
			writeTimeout: defaultWriteTimeout,
		},
		{
			name:         "write timeout follows request timeout",
			cfg:          config.ServerConfig{Port: "9090", RequestTimeout: time.Minute},
			addr:         ":9090",
			writeTimeout: time.Minute + writeTimeoutSlack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(okHandler, tt.cfg).httpServer

			assert.Equal(t, tt.addr, srv.Addr)
			assert.Equal(t, tt.writeTimeout, srv.WriteTimeout)
			assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
			assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
		})
	}
}

func TestServer_ServeUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(okHandler, config.ServerConfig{}).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_DrainsInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	entered := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		time.Sleep(100 * time.Millisecond)
		_, _ = io.WriteString(w, "finished")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(slow, config.ServerConfig{}).Serve(ctx, ln) }()

	got := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err != nil {
			got <- err.Error()
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		got <- string(body)
	}()

	<-entered
	cancel()

	assert.Equal(t, "finished", <-got)
	assert.NoError(t, <-done)
}

func TestServer_RunInvalidPort(t *testing.T) {
	err := NewServer(okHandler, config.ServerConfig{Port: "invalid-port"}).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on :invalid-port")
}

func TestServer_ShutdownTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	stuck := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		close(entered)
		<-release
	})

	s := NewServer(stuck, config.ServerConfig{})
	s.drain = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()
	go func() { _, _ = http.Get("http://" + ln.Addr().String() + "/") }()

	<-entered
	cancel()

	assert.ErrorIs(t, <-done, context.DeadlineExceeded)
}
