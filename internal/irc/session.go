// internal/irc/session.go
package irc

import "sync"

// Session holds the identity one connection has negotiated with its
// server. Every field starts unset and is only written by the documented
// triggers: sending USER records the local identity, the welcome and
// your-host numerics record what the server announced, and a NICK change
// for our own nick updates it. Nothing ever clears a field implicitly.
//
// The accessors are safe for concurrent reads; writes come from the single
// goroutine that parses the connection's lines.
type Session struct {
	mu            sync.RWMutex
	nick          string
	ident         string
	host          string
	server        string
	serverVersion string
	network       string
	name          string
}

// NewSession returns an empty Session for a fresh connection.
func NewSession() *Session {
	return &Session{}
}

// Nick returns the current nickname, if known.
func (s *Session) Nick() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nick, s.nick != ""
}

// Ident returns the current ident, if known.
func (s *Session) Ident() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident, s.ident != ""
}

// Host returns the current host, if known.
func (s *Session) Host() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.host, s.host != ""
}

// Server returns the server name, if known.
func (s *Session) Server() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.server, s.server != ""
}

// ServerVersion returns the server version, if known.
func (s *Session) ServerVersion() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverVersion, s.serverVersion != ""
}

// Network returns the network name, if known.
func (s *Session) Network() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network, s.network != ""
}

// Name returns the real name, if known.
func (s *Session) Name() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name, s.name != ""
}

func (s *Session) setNick(nick string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nick = nick
}

func (s *Session) setIdent(ident string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = ident
}

func (s *Session) setHost(host string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host = host
}

func (s *Session) setServer(server string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.server = server
}

func (s *Session) setServerVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverVersion = version
}

func (s *Session) setNetwork(network string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.network = network
}

// setLocalUser records the identity declared by an outgoing USER command.
func (s *Session) setLocalUser(ident, host, server, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = ident
	s.host = host
	s.server = server
	s.name = name
}
