// internal/transport/tcp.go
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

const dialTimeout = 10 * time.Second

// TCP is the plain socket transport, one *net.TCPConn per server.
type TCP struct {
	address string

	mu      sync.Mutex
	writeMu sync.Mutex
	conn    net.Conn
	buf     []byte
}

// NewTCP creates a TCP transport for the given host:port address.
func NewTCP(address string) *TCP {
	return &TCP{address: address, buf: make([]byte, 4096)}
}

// Connect dials the server.
func (t *TCP) Connect(ctx context.Context) error {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.address)
	if err != nil {
		return fmt.Errorf("dial %s: %w", t.address, err)
	}
	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
	return nil
}

// Read blocks for the next chunk of bytes from the socket.
func (t *TCP) Read() ([]byte, error) {
	conn := t.current()
	if conn == nil {
		return nil, fmt.Errorf("not connected to %s", t.address)
	}
	n, err := conn.Read(t.buf)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, t.buf[:n])
	return out, nil
}

// SendLine writes one line followed by the wire delimiter.
func (t *TCP) SendLine(line string) error {
	conn := t.current()
	if conn == nil {
		return fmt.Errorf("not connected to %s", t.address)
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_, err := conn.Write([]byte(line + "\r\n"))
	return err
}

// Close shuts the socket down, unblocking any pending Read.
func (t *TCP) Close() error {
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (t *TCP) current() net.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}
