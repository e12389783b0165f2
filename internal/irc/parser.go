// internal/irc/parser.go
package irc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ctcpDelim wraps CTCP payloads inside a PRIVMSG body.
const ctcpDelim = "\x01"

// ErrMalformedLine reports a line that matched a known command shape but
// did not carry enough tokens for it. The caller should log and move on;
// one bad line never stops the connection.
var ErrMalformedLine = errors.New("malformed irc line")

func malformed(command, line string) error {
	return fmt.Errorf("%w: %s line has too few tokens: %q", ErrMalformedLine, command, line)
}

// Parser turns framed lines into typed events. Lines that carry identity
// information (the welcome numerics, a self nick change) update the bound
// Session as a side effect. One Parser serves one connection.
type Parser struct {
	session *Session
	now     func() time.Time
}

// NewParser creates a Parser bound to the given session.
func NewParser(session *Session) *Parser {
	return &Parser{session: session, now: time.Now}
}

// Parse classifies one framed line. It returns (nil, nil) when the line
// matches no known command shape; the caller still sees the line as a Raw
// event. A matched shape with too few tokens returns an error wrapping
// ErrMalformedLine. JOIN lines with a comma-separated channel list return
// one Join event per channel, in list order; every other match returns
// exactly one event.
func (p *Parser) Parse(line string) ([]Event, error) {
	tokens := strings.Split(line, " ")

	switch tokens[0] {
	case "PING":
		if len(tokens) < 2 {
			return nil, malformed("PING", line)
		}
		return one(Ping{Target: strings.ToLower(stripColon(tokens[1]))}), nil
	case "NICK":
		return p.parseNewNick(tokens, line)
	case "TOPIC":
		return p.parseTopic(tokens, line)
	case "NETINFO":
		return p.parseNetInfo(tokens, line)
	}

	if len(tokens) < 2 {
		return nil, nil
	}

	if allDigits(tokens[1]) {
		return p.parseNumeric(tokens, line)
	}

	switch tokens[1] {
	case "PRIVMSG":
		return p.parsePrivmsg(tokens, line)
	case "NOTICE":
		if len(tokens) < 3 {
			return nil, malformed("NOTICE", line)
		}
		return one(Notice{
			Source: prefixNick(tokens[0]),
			Target: strings.ToLower(tokens[2]),
			Text:   stripColon(strings.Join(tokens[3:], " ")),
		}), nil
	case "JOIN":
		if len(tokens) < 3 {
			return nil, malformed("JOIN", line)
		}
		source := prefixNick(tokens[0])
		channels := strings.ToLower(stripColon(tokens[2]))
		var events []Event
		for _, channel := range strings.Split(channels, ",") {
			events = append(events, Join{Source: source, Channel: channel})
		}
		return events, nil
	case "PART":
		if len(tokens) < 3 {
			return nil, malformed("PART", line)
		}
		return one(Part{
			Source:  prefixNick(tokens[0]),
			Channel: strings.ToLower(stripColon(tokens[2])),
			Message: stripColon(strings.Join(tokens[3:], " ")),
		}), nil
	case "QUIT":
		return one(Quit{
			Source:  prefixNick(tokens[0]),
			Message: stripColon(strings.Join(tokens[2:], " ")),
		}), nil
	case "NICK":
		return p.parseNickChange(tokens, line)
	case "MOTD":
		if len(tokens) < 3 {
			return nil, malformed("MOTD", line)
		}
		return one(Motd{
			Source: prefixNick(tokens[0]),
			Server: strings.ToLower(stripColon(tokens[2])),
		}), nil
	}

	return nil, nil
}

// parseNewNick handles the prefixless server-to-server NICK introduction:
// NICK <nick> <idle> <signon> <ident> <host> <server> <hops> :<realname>
func (p *Parser) parseNewNick(tokens []string, line string) ([]Event, error) {
	if len(tokens) < 8 {
		return nil, malformed("NICK", line)
	}
	idle, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return nil, malformed("NICK", line)
	}
	signon, err := strconv.ParseInt(tokens[3], 10, 64)
	if err != nil {
		return nil, malformed("NICK", line)
	}
	hops, err := strconv.Atoi(tokens[7])
	if err != nil {
		return nil, malformed("NICK", line)
	}
	return one(NewNick{
		Nick:     strings.ToLower(tokens[1]),
		Idle:     idle,
		Signon:   signon,
		Ident:    strings.ToLower(tokens[4]),
		Host:     strings.ToLower(tokens[5]),
		Server:   strings.ToLower(tokens[6]),
		Hops:     hops,
		RealName: stripColon(strings.Join(tokens[8:], " ")),
	}), nil
}

// parseNickChange handles a prefixed NICK from a peer or from ourselves.
// A rename of our own nick updates the session before the event goes out.
func (p *Parser) parseNickChange(tokens []string, line string) ([]Event, error) {
	if len(tokens) < 3 {
		return nil, malformed("NICK", line)
	}
	source := prefixNick(tokens[0])
	newNick := strings.ToLower(stripColon(tokens[2]))

	changedAt := p.now()
	if len(tokens) >= 4 {
		secs, err := strconv.ParseInt(stripColon(tokens[3]), 10, 64)
		if err != nil {
			return nil, malformed("NICK", line)
		}
		changedAt = time.Unix(secs, 0)
	}

	if current, ok := p.session.Nick(); ok && strings.EqualFold(source, current) {
		p.session.setNick(newNick)
	}

	return one(Nick{Source: source, NewNick: newNick, ChangedAt: changedAt}), nil
}

// parseTopic handles the prefixless bulk TOPIC form:
// TOPIC <channel> <whoset> <whenset> :<text>
// The who/when fields are optional; a bare "TOPIC <channel> :<text>" is
// accepted with both left unset.
func (p *Parser) parseTopic(tokens []string, line string) ([]Event, error) {
	if len(tokens) < 3 {
		return nil, malformed("TOPIC", line)
	}
	if strings.HasPrefix(tokens[2], ":") {
		return one(Topic{
			Channel: tokens[1],
			Text:    stripColon(strings.Join(tokens[2:], " ")),
		}), nil
	}
	if len(tokens) < 4 {
		return nil, malformed("TOPIC", line)
	}
	whenSet, err := strconv.ParseInt(tokens[3], 10, 64)
	if err != nil {
		return nil, malformed("TOPIC", line)
	}
	return one(Topic{
		Channel: tokens[1],
		WhoSet:  tokens[2],
		WhenSet: whenSet,
		Text:    stripColon(strings.Join(tokens[4:], " ")),
	}), nil
}

// parseNetInfo handles the NETINFO burst:
// NETINFO <maxglobal> <time> <protocol> <cloakhash> <f1> <f2> <f3> :<network>
func (p *Parser) parseNetInfo(tokens []string, line string) ([]Event, error) {
	if len(tokens) < 8 {
		return nil, malformed("NETINFO", line)
	}
	maxGlobal, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, malformed("NETINFO", line)
	}
	when, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return nil, malformed("NETINFO", line)
	}
	return one(NetInfo{
		MaxGlobal: maxGlobal,
		Time:      when,
		Protocol:  tokens[3],
		CloakHash: tokens[4],
		Flags:     [3]string{tokens[5], tokens[6], tokens[7]},
		Network:   stripColon(strings.Join(tokens[8:], " ")),
	}), nil
}

// parseNumeric handles any reply whose command token is all digits. The
// welcome and your-host codes additionally feed the session bootstrap; the
// Numeric event is emitted either way.
func (p *Parser) parseNumeric(tokens []string, line string) ([]Event, error) {
	if len(tokens) < 4 {
		return nil, malformed(tokens[1], line)
	}
	source := prefixNick(tokens[0])
	target := strings.ToLower(tokens[2])
	code, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, malformed(tokens[1], line)
	}

	var arg, message string
	if strings.HasPrefix(tokens[3], ":") {
		message = stripColon(strings.Join(tokens[3:], " "))
	} else {
		arg = tokens[3]
		message = stripColon(strings.Join(tokens[4:], " "))
	}

	switch ReplyCode(code) {
	case RplWelcome:
		p.interpretWelcome(message)
	case RplYourHost:
		p.interpretYourHost(message)
	}

	return one(Numeric{
		Source:  source,
		Target:  target,
		Code:    ReplyCode(code),
		Arg:     arg,
		Message: message,
	}), nil
}

// parsePrivmsg handles PRIVMSG, splitting off CTCP requests: a body whose
// first byte is the 0x01 delimiter is re-tokenized into a CTCP type and
// its text.
func (p *Parser) parsePrivmsg(tokens []string, line string) ([]Event, error) {
	if len(tokens) < 3 {
		return nil, malformed("PRIVMSG", line)
	}
	source := prefixNick(tokens[0])
	target := strings.ToLower(tokens[2])
	text := stripColon(strings.Join(tokens[3:], " "))

	if strings.HasPrefix(text, ctcpDelim) {
		body := strings.ReplaceAll(text, ctcpDelim, "")
		ctcpType, rest, _ := strings.Cut(body, " ")
		return one(Ctcp{
			Source:   source,
			Target:   target,
			CtcpType: strings.ToLower(ctcpType),
			Text:     rest,
		}), nil
	}

	return one(Message{Source: source, Target: target, Text: text}), nil
}

// prefixNick strips the leading ':' from a prefix token, lower-cases it,
// and keeps only the nick part of a nick!ident@host origin.
func prefixNick(token string) string {
	nick, _, _ := SplitSource(stripColon(strings.ToLower(token)))
	return nick
}

// stripColon removes at most one leading ':'. The wire marks trailing
// parameters with it but it is not part of the value.
func stripColon(s string) string {
	if strings.HasPrefix(s, ":") {
		return s[1:]
	}
	return s
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func one(ev Event) []Event {
	return []Event{ev}
}
