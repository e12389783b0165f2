// internal/irc/framer.go
package irc

import "bytes"

// Framer accumulates raw transport bytes and yields complete lines. Lines
// end with '\n', optionally preceded by '\r'; the undelimited tail stays
// buffered until its delimiter arrives. One Framer serves one connection
// and must only be touched by that connection's read loop.
type Framer struct {
	buf []byte
}

// Push appends data to the buffer and returns every complete line found,
// delimiter stripped, in arrival order. Empty input is a no-op.
func (f *Framer) Push(data []byte) []string {
	f.buf = append(f.buf, data...)

	var lines []string
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(f.buf[:i], []byte{'\r'})
		lines = append(lines, string(line))
		f.buf = f.buf[i+1:]
	}
	return lines
}

// Pending returns the buffered remainder that has not yet seen its
// delimiter.
func (f *Framer) Pending() string {
	return string(f.buf)
}
