// internal/irc/greeting.go
package irc

import (
	"log/slog"
	"regexp"
	"strings"
)

// The human-readable welcome text of numeric 001 differs between ircds.
// These cover the phrasings seen on UnderNet, GameSurge and RFC-style
// daemons, for example:
//
//	Welcome to the UnderNet IRC Network, kdb
//	Welcome to the Internet Relay Network kdb!-kdb@202.63.43.101
//	Welcome to the GameSurge IRC Network via burstfire.net, prologic
//
// Patterns are tried in order; the first match wins. networkGroup marks
// which submatch carries the network name, 0 meaning the phrasing has
// none.
type welcomePattern struct {
	re           *regexp.Regexp
	networkGroup int
	userGroup    int
}

var welcomePatterns = []welcomePattern{
	{regexp.MustCompile(`^Welcome to the (.*) (?:IRC|Internet Relay(?: Chat)?) Network (.*)`), 1, 2},
	{regexp.MustCompile(`^Welcome to the Internet Relay Network (.*)`), 0, 1},
	{regexp.MustCompile(`^Welcome to the (.*) IRC Network, (.*)`), 1, 2},
}

// interpretWelcome bootstraps the session from the numeric 001 greeting.
// An unrecognised phrasing is recoverable: the caller still emits the
// Numeric event, the session just stays unset.
func (p *Parser) interpretWelcome(message string) {
	for _, pat := range welcomePatterns {
		m := pat.re.FindStringSubmatch(message)
		if m == nil {
			continue
		}

		if pat.networkGroup > 0 && m[pat.networkGroup] != "" {
			p.session.setNetwork(m[pat.networkGroup])
		}

		nick, ident, host := SplitSource(m[pat.userGroup])
		p.session.setNick(nick)
		if ident != "" {
			p.session.setIdent(ident)
		}
		if host != "" {
			p.session.setHost(host)
		}
		return
	}

	slog.Warn("unrecognised welcome greeting", "message", message)
}

// interpretYourHost extracts the server name and version from the numeric
// 002 reply, e.g. "Your host is irc.example.net[1.2.3.4], running version
// u2.10.12.10".
func (p *Parser) interpretYourHost(message string) {
	tokens := strings.Split(message, " ")
	if len(tokens) < 7 {
		slog.Warn("unrecognised your-host reply", "message", message)
		return
	}
	p.session.setServer(strings.TrimRight(tokens[3], ","))
	p.session.setServerVersion(tokens[6])
}
