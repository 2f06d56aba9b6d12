// Package testutil provides shared test utilities for the module's tests.
package testutil

import (
	"net"
	"testing"
	"time"
)

// RequireUDP skips the test when loopback UDP sockets are unavailable, as in
// some sandboxed CI environments. ICE gathering and connectivity tests need
// at least a loopback socket.
func RequireUDP(t *testing.T) {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Skipf("loopback UDP unavailable: %v", err)
	}
	_ = conn.Close()
}

// WaitTimeout waits for ch to close and reports whether it did before the
// timeout elapsed.
func WaitTimeout(ch <-chan struct{}, timeout time.Duration) bool {
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}
