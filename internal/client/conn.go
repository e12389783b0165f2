// internal/client/conn.go
package client

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/user/ircwire/internal/dispatch"
	"github.com/user/ircwire/internal/irc"
	"github.com/user/ircwire/internal/transport"
	"github.com/user/ircwire/internal/types"
)

// Options configures one connection.
type Options struct {
	Server   string   // host:port, or ws:// URL for websocket transports
	Nick     string
	Ident    string
	RealName string
	Password string   // optional; sent as PASS before registration
	Channels []string // joined once the server finishes its MOTD
}

// Conn drives one server connection: it dials the transport, registers,
// reassembles lines, and publishes parsed events on the bus. Replying to
// server PINGs and joining the configured channels after the MOTD are
// installed as bus handlers so they follow the same delivery path as
// user-supplied handlers.
type Conn struct {
	id        types.ConnID
	opts      Options
	transport transport.Transport
	bus       *dispatch.Bus
	session   *irc.Session
	parser    *irc.Parser
	framer    *irc.Framer
	format    irc.Formatter
	retry     *transport.RetryPolicy

	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.Mutex
	subs []types.SubscriptionID
}

// NewConn creates a Conn over the given transport. The bus receives every
// event the connection produces.
func NewConn(tr transport.Transport, bus *dispatch.Bus, opts Options) *Conn {
	session := irc.NewSession()
	return &Conn{
		id:        types.NewConnID(),
		opts:      opts,
		transport: tr,
		bus:       bus,
		session:   session,
		parser:    irc.NewParser(session),
		framer:    &irc.Framer{},
		format:    irc.NewFormatter(session),
		retry:     transport.DefaultRetryPolicy(),
		done:      make(chan struct{}),
	}
}

// ID returns the connection's identifier, as seen by bus handlers.
func (c *Conn) ID() types.ConnID {
	return c.id
}

// Session exposes the identity negotiated with the server.
func (c *Conn) Session() *irc.Session {
	return c.session
}

// Start dials the server (with backoff), registers, and begins the read
// loop. It returns once registration commands are on the wire; the caller
// observes the rest through the bus.
func (c *Conn) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	if err := c.retry.Execute(ctx, func() error {
		return c.transport.Connect(ctx)
	}); err != nil {
		return err
	}

	c.installDefaults()

	if err := c.register(); err != nil {
		return err
	}

	go c.readLoop(ctx)
	return nil
}

// Stop unsubscribes the default handlers, announces the departure, and
// closes the transport. The read loop exits on the closed connection.
func (c *Conn) Stop(message string) {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()
	for _, id := range subs {
		c.bus.Unsubscribe(id)
	}

	if err := c.transport.SendLine(c.format.Quit(message)); err != nil {
		slog.Debug("quit not sent", "conn_id", string(c.id), "error", err)
	}
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.transport.Close(); err != nil {
		slog.Debug("transport close", "conn_id", string(c.id), "error", err)
	}
	<-c.done
}

// register sends the session-opening commands: PASS when configured, then
// NICK and USER.
func (c *Conn) register() error {
	if c.opts.Password != "" {
		if err := c.transport.SendLine(c.format.Pass(c.opts.Password)); err != nil {
			return err
		}
	}
	if err := c.transport.SendLine(c.format.Nick(c.opts.Nick, nil)); err != nil {
		return err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	server := c.opts.Server
	if host, _, err := net.SplitHostPort(server); err == nil {
		server = host
	}
	return c.transport.SendLine(c.format.User(c.opts.Ident, hostname, server, c.opts.RealName))
}

// installDefaults wires the protocol obligations: answer PING, join the
// configured channels once the MOTD ends (or the server has none).
func (c *Conn) installDefaults() {
	pingSub := c.bus.Subscribe(irc.KindPing, func(connID types.ConnID, ev irc.Event) error {
		if connID != c.id {
			return nil
		}
		return c.transport.SendLine(c.format.Pong(ev.(irc.Ping).Target))
	})

	motdSub := c.bus.Subscribe(irc.KindNumeric, func(connID types.ConnID, ev irc.Event) error {
		if connID != c.id {
			return nil
		}
		code := ev.(irc.Numeric).Code
		if code != irc.RplEndOfMotd && code != irc.ErrNoMotd {
			return nil
		}
		var lastErr error
		for _, channel := range c.opts.Channels {
			if err := c.Join(channel, ""); err != nil {
				lastErr = err
			}
		}
		return lastErr
	})

	c.mu.Lock()
	c.subs = append(c.subs, pingSub, motdSub)
	c.mu.Unlock()
}

// readLoop pulls chunks off the transport, reassembles lines, and
// publishes a Raw event plus any typed events for each. A malformed line
// is logged and skipped; the connection lives on.
func (c *Conn) readLoop(ctx context.Context) {
	defer close(c.done)
	for {
		data, err := c.transport.Read()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				slog.Error("read failed", "conn_id", string(c.id), "error", err)
			}
			return
		}

		for _, line := range c.framer.Push(data) {
			c.bus.Publish(c.id, irc.Raw{Line: line})

			events, err := c.parser.Parse(line)
			if err != nil {
				slog.Warn("line skipped", "conn_id", string(c.id), "line", line, "error", err)
				continue
			}
			for _, ev := range events {
				c.bus.Publish(c.id, ev)
			}
		}
	}
}

// Say sends a message to a channel or nick.
func (c *Conn) Say(target, text string) error {
	return c.transport.SendLine(c.format.Privmsg(target, text))
}

// Notice sends a notice to a channel or nick.
func (c *Conn) Notice(target, text string) error {
	return c.transport.SendLine(c.format.Notice(target, text))
}

// Join enters a channel, with an optional key.
func (c *Conn) Join(channel, key string) error {
	return c.transport.SendLine(c.format.Join(channel, key))
}

// Part leaves a channel.
func (c *Conn) Part(channel, message string) error {
	return c.transport.SendLine(c.format.Part(channel, message))
}

// Ping probes the server.
func (c *Conn) Ping(target string) error {
	return c.transport.SendLine(c.format.Ping(target))
}

// SendRaw puts an already-formatted line on the wire.
func (c *Conn) SendRaw(line string) error {
	return c.transport.SendLine(line)
}
