// internal/transport/ws.go
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
)

// WebSocket carries lines over a websocket connection, one text message
// per chunk, for gateways that bridge IRC over ws:// or wss://.
type WebSocket struct {
	url string

	mu      sync.Mutex
	writeMu sync.Mutex // serialises all conn writes (lines and pings)
	conn    *websocket.Conn
	cancel  context.CancelFunc
}

// NewWebSocket creates a websocket transport for the given ws:// or
// wss:// URL.
func NewWebSocket(url string) *WebSocket {
	return &WebSocket{url: url}
}

// Connect dials the gateway and starts the keep-alive ping loop.
func (w *WebSocket) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", w.url, err)
	}

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		return nil
	})
	conn.SetReadDeadline(time.Now().Add(wsPongTimeout))

	pingCtx, pingCancel := context.WithCancel(ctx)

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.conn = conn
	w.cancel = pingCancel
	w.mu.Unlock()

	go w.pingLoop(pingCtx, conn)
	return nil
}

// Read blocks for the next message from the gateway.
func (w *WebSocket) Read() ([]byte, error) {
	conn := w.current()
	if conn == nil {
		return nil, fmt.Errorf("not connected to %s", w.url)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SendLine writes one line as a text message, delimiter included.
func (w *WebSocket) SendLine(line string) error {
	conn := w.current()
	if conn == nil {
		return fmt.Errorf("not connected to %s", w.url)
	}
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, []byte(line+"\r\n"))
}

// Close stops the ping loop and tears the connection down.
func (w *WebSocket) Close() error {
	w.mu.Lock()
	conn := w.conn
	w.conn = nil
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// pingLoop sends periodic pings on the given connection. It exits when the
// context is cancelled or the connection changes.
func (w *WebSocket) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.current() != conn {
				return
			}
			w.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			w.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (w *WebSocket) current() *websocket.Conn {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn
}
