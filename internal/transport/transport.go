// internal/transport/transport.go
package transport

import "context"

// Transport carries raw bytes to and from a server. Implementations append
// the line delimiter in SendLine; everything above this layer works with
// delimiter-free lines.
type Transport interface {
	// Connect establishes the connection. It is an error to call Read or
	// SendLine before Connect succeeds.
	Connect(ctx context.Context) error

	// Read blocks until data arrives and returns it as-is, chunk
	// boundaries included. The framing layer reassembles lines.
	Read() ([]byte, error)

	// SendLine writes one line, appending the wire delimiter.
	SendLine(line string) error

	// Close tears the connection down. Read unblocks with an error.
	Close() error
}
