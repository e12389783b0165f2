// internal/irc/commands.go
package irc

import (
	"fmt"
)

// Formatter renders outgoing commands as exact wire lines, without the
// trailing delimiter (the transport appends \r\n). Servers parse these
// positionally, so field order and punctuation matter. A Formatter may be
// bound to a Session so that User records the identity it declares.
//
// Commands that servers relay on behalf of others take an optional source
// prefix as a trailing variadic argument.
type Formatter struct {
	session *Session
}

// NewFormatter creates a Formatter bound to the given session. A nil
// session is allowed; User then formats without recording anything.
func NewFormatter(session *Session) Formatter {
	return Formatter{session: session}
}

// Pass formats a connection password.
func (f Formatter) Pass(password string) string {
	return "PASS " + password
}

// Server formats a server introduction.
func (f Formatter) Server(name string, hops, token int, description string) string {
	return fmt.Sprintf("SERVER %s %d %d :%s", name, hops, token, description)
}

// User declares the local identity and records it on the session,
// mirroring the protocol: sending USER is what fixes ident, host, server
// and real name for this connection.
func (f Formatter) User(ident, host, server, name string) string {
	if f.session != nil {
		f.session.setLocalUser(ident, host, server, name)
	}
	return fmt.Sprintf("USER %s \"%s\" \"%s\" :%s", ident, host, server, name)
}

// NickFields carries the optional fields of an extended NICK introduction.
// The extended wire form is only produced when every field is present;
// anything less falls back to the plain NICK.
type NickFields struct {
	Idle   *int64
	Signon *int64
	Ident  *string
	Host   *string
	Server *string
	Hops   *int
	Name   *string
}

func (nf *NickFields) complete() bool {
	return nf != nil &&
		nf.Idle != nil && nf.Signon != nil && nf.Ident != nil &&
		nf.Host != nil && nf.Server != nil && nf.Hops != nil && nf.Name != nil
}

// Nick formats a nick change, or a full user introduction when fields is
// complete. Neither form touches the session; the nick is only recorded
// once the server confirms it in the welcome greeting.
func (f Formatter) Nick(nick string, fields *NickFields) string {
	if fields.complete() {
		return fmt.Sprintf("NICK %s %d %d %s %s %s %d :%s",
			nick, *fields.Idle, *fields.Signon, *fields.Ident, *fields.Host,
			*fields.Server, *fields.Hops, *fields.Name)
	}
	return "NICK " + nick
}

// Ping formats a keep-alive probe.
func (f Formatter) Ping(target string) string {
	return "PING :" + target
}

// Pong formats the answer to a Ping.
func (f Formatter) Pong(target string) string {
	return "PONG :" + target
}

// Quit formats a departure notice.
func (f Formatter) Quit(message string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s QUIT :%s", source[0], message)
	}
	return "QUIT :" + message
}

// Join formats a channel join. An empty key is omitted from the line.
func (f Formatter) Join(channel, key string, source ...string) string {
	line := "JOIN " + channel
	if key != "" {
		line += " " + key
	}
	if sourced(source) {
		line = ":" + source[0] + " " + line
	}
	return line
}

// Part formats a channel departure.
func (f Formatter) Part(channel, message string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s PART %s :%s", source[0], channel, message)
	}
	return fmt.Sprintf("PART %s :%s", channel, message)
}

// Privmsg formats a message to a channel or nick.
func (f Formatter) Privmsg(target, message string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s PRIVMSG %s :%s", source[0], target, message)
	}
	return fmt.Sprintf("PRIVMSG %s :%s", target, message)
}

// Notice formats a notice to a channel or nick.
func (f Formatter) Notice(target, message string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s NOTICE %s :%s", source[0], target, message)
	}
	return fmt.Sprintf("NOTICE %s :%s", target, message)
}

// Ctcp formats a client-to-client request carried in a PRIVMSG body.
func (f Formatter) Ctcp(target, ctcpType, message string, source ...string) string {
	return f.Privmsg(target, ctcpType+" "+message, source...)
}

// CtcpReply formats a client-to-client reply carried in a NOTICE body.
func (f Formatter) CtcpReply(target, ctcpType, message string, source ...string) string {
	return f.Notice(target, ctcpType+" "+message, source...)
}

// Kick formats a forced channel removal.
func (f Formatter) Kick(channel, target, message string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s KICK %s %s :%s", source[0], channel, target, message)
	}
	return fmt.Sprintf("KICK %s %s :%s", channel, target, message)
}

// Topic formats a topic change.
func (f Formatter) Topic(channel, topic string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s TOPIC %s :%s", source[0], channel, topic)
	}
	return fmt.Sprintf("TOPIC %s :%s", channel, topic)
}

// TopicWithMeta formats a topic change that also states who set the topic
// and when.
func (f Formatter) TopicWithMeta(channel, whoSet string, whenSet int64, topic string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s TOPIC %s %s %d :%s", source[0], channel, whoSet, whenSet, topic)
	}
	return fmt.Sprintf("TOPIC %s %s %d :%s", channel, whoSet, whenSet, topic)
}

// Mode formats a mode change. An empty channel addresses the connection's
// own user modes.
func (f Formatter) Mode(modes, channel string, source ...string) string {
	var line string
	if channel == "" {
		line = "MODE :" + modes
	} else {
		line = fmt.Sprintf("MODE %s :%s", channel, modes)
	}
	if sourced(source) {
		line = ":" + source[0] + " " + line
	}
	return line
}

// Kill formats a forced disconnect of a user.
func (f Formatter) Kill(target, message string) string {
	return fmt.Sprintf("KILL %s :%s", target, message)
}

// Invite formats an invitation of a user into a channel.
func (f Formatter) Invite(target, channel string, source ...string) string {
	if sourced(source) {
		return fmt.Sprintf(":%s INVITE %s %s", source[0], target, channel)
	}
	return fmt.Sprintf("INVITE %s %s", target, channel)
}

func sourced(source []string) bool {
	return len(source) > 0 && source[0] != ""
}
