// internal/irc/parser_test.go
package irc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, p *Parser, line string) Event {
	t.Helper()
	events, err := p.Parse(line)
	require.NoError(t, err)
	require.Len(t, events, 1)
	return events[0]
}

func TestParsePing(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, "PING :irc.example.net")
	assert.Equal(t, Ping{Target: "irc.example.net"}, ev)
}

func TestParsePingLowercasesTarget(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, "PING :IRC.Example.NET")
	assert.Equal(t, Ping{Target: "irc.example.net"}, ev)
}

func TestParsePrivmsg(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":Alice!a@host PRIVMSG #chan :Hello there")
	assert.Equal(t, Message{Source: "alice", Target: "#chan", Text: "Hello there"}, ev)
}

func TestParsePrivmsgEmptyText(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":Alice!a@host PRIVMSG #chan :")
	assert.Equal(t, Message{Source: "alice", Target: "#chan", Text: ""}, ev)
}

func TestParseCtcp(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":Alice!a@host PRIVMSG #chan :\x01VERSION\x01")
	assert.Equal(t, Ctcp{Source: "alice", Target: "#chan", CtcpType: "version", Text: ""}, ev)
}

func TestParseCtcpWithArgs(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":Alice!a@host PRIVMSG bob :\x01ACTION waves hello\x01")
	assert.Equal(t, Ctcp{Source: "alice", Target: "bob", CtcpType: "action", Text: "waves hello"}, ev)
}

func TestParseNoticeNeverCtcp(t *testing.T) {
	// NOTICE bodies are not inspected for CTCP framing.
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":Alice!a@host NOTICE #chan :\x01VERSION\x01")
	assert.Equal(t, Notice{Source: "alice", Target: "#chan", Text: "\x01VERSION\x01"}, ev)
}

func TestParseJoinFanOut(t *testing.T) {
	p := NewParser(NewSession())
	events, err := p.Parse(":a!i@h JOIN #x,#y")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, Join{Source: "a", Channel: "#x"}, events[0])
	assert.Equal(t, Join{Source: "a", Channel: "#y"}, events[1])
}

func TestParseJoinSingle(t *testing.T) {
	p := NewParser(NewSession())
	events, err := p.Parse(":a!i@h JOIN :#Chan")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, Join{Source: "a", Channel: "#chan"}, events[0])
}

func TestParsePart(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":a!i@h PART #chan :gone fishing")
	assert.Equal(t, Part{Source: "a", Channel: "#chan", Message: "gone fishing"}, ev)
}

func TestParseQuit(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":a!i@h QUIT :bye now")
	assert.Equal(t, Quit{Source: "a", Message: "bye now"}, ev)
}

func TestParseQuitNoMessage(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":a!i@h QUIT")
	assert.Equal(t, Quit{Source: "a", Message: ""}, ev)
}

func TestParseNickChange(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":Alice!a@host NICK :Bob 1700000000")
	nick, ok := ev.(Nick)
	require.True(t, ok)
	assert.Equal(t, "alice", nick.Source)
	assert.Equal(t, "bob", nick.NewNick)
	assert.Equal(t, time.Unix(1700000000, 0), nick.ChangedAt)
}

func TestParseNickChangeDefaultsToNow(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewParser(NewSession())
	p.now = func() time.Time { return fixed }

	ev := parseOne(t, p, ":Alice!a@host NICK :Bob")
	nick, ok := ev.(Nick)
	require.True(t, ok)
	assert.Equal(t, fixed, nick.ChangedAt)
}

func TestParseNickChangeUpdatesOwnSession(t *testing.T) {
	session := NewSession()
	session.setNick("alice")
	p := NewParser(session)

	parseOne(t, p, ":Alice!a@host NICK :NewAlice")

	nick, ok := session.Nick()
	require.True(t, ok)
	assert.Equal(t, "newalice", nick)
}

func TestParseNickChangeBadTimeLeavesSessionIntact(t *testing.T) {
	session := NewSession()
	session.setNick("alice")
	p := NewParser(session)

	events, err := p.Parse(":Alice!a@host NICK :Bob notanumber")
	require.ErrorIs(t, err, ErrMalformedLine)
	assert.Nil(t, events)

	nick, ok := session.Nick()
	require.True(t, ok)
	assert.Equal(t, "alice", nick)
}

func TestParseNickChangeIgnoresOtherUsers(t *testing.T) {
	session := NewSession()
	session.setNick("alice")
	p := NewParser(session)

	parseOne(t, p, ":Carol!c@host NICK :Dave")

	nick, _ := session.Nick()
	assert.Equal(t, "alice", nick)
}

func TestParseNewNick(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, "NICK Alice 0 1600000000 Ident Host.net Srv.net 2 :Alice Example")
	assert.Equal(t, NewNick{
		Nick:     "alice",
		Idle:     0,
		Signon:   1600000000,
		Ident:    "ident",
		Host:     "host.net",
		Server:   "srv.net",
		Hops:     2,
		RealName: "Alice Example",
	}, ev)
}

func TestParseTopicBulk(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, "TOPIC #chan alice 1600000000 :All about Go")
	assert.Equal(t, Topic{
		Channel: "#chan",
		WhoSet:  "alice",
		WhenSet: 1600000000,
		Text:    "All about Go",
	}, ev)
}

func TestParseTopicWithoutMeta(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, "TOPIC #chan :All about Go")
	assert.Equal(t, Topic{Channel: "#chan", Text: "All about Go"}, ev)
}

func TestParseNetInfo(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, "NETINFO 42 1600000000 6000 SHA256 0 0 0 :ExampleNet")
	assert.Equal(t, NetInfo{
		MaxGlobal: 42,
		Time:      1600000000,
		Protocol:  "6000",
		CloakHash: "SHA256",
		Flags:     [3]string{"0", "0", "0"},
		Network:   "ExampleNet",
	}, ev)
}

func TestParseMotd(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":a!i@h MOTD :irc.Example.net")
	assert.Equal(t, Motd{Source: "a", Server: "irc.example.net"}, ev)
}

func TestParseNumericWithMessage(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":irc.example.net 375 bob :- irc.example.net Message of the Day -")
	assert.Equal(t, Numeric{
		Source:  "irc.example.net",
		Target:  "bob",
		Code:    RplMotdStart,
		Arg:     "",
		Message: "- irc.example.net Message of the Day -",
	}, ev)
}

func TestParseNumericWithArg(t *testing.T) {
	p := NewParser(NewSession())
	ev := parseOne(t, p, ":irc.example.net 401 bob carol :No such nick")
	assert.Equal(t, Numeric{
		Source:  "irc.example.net",
		Target:  "bob",
		Code:    ErrNoSuchNick,
		Arg:     "carol",
		Message: "No such nick",
	}, ev)
}

func TestParseUnknownNumericHasNoSideEffect(t *testing.T) {
	session := NewSession()
	p := NewParser(session)

	ev := parseOne(t, p, ":irc.example.net 999 bob :strange reply")
	num, ok := ev.(Numeric)
	require.True(t, ok)
	assert.Equal(t, ReplyCode(999), num.Code)

	_, ok = session.Nick()
	assert.False(t, ok)
}

func TestParseUnknownCommand(t *testing.T) {
	p := NewParser(NewSession())
	events, err := p.Parse(":srv WALLOPS :everyone listen up")
	assert.NoError(t, err)
	assert.Nil(t, events)
}

func TestParseUnknownSingleToken(t *testing.T) {
	p := NewParser(NewSession())
	events, err := p.Parse("GIBBERISH")
	assert.NoError(t, err)
	assert.Nil(t, events)
}

func TestParseMalformedLines(t *testing.T) {
	p := NewParser(NewSession())
	for _, line := range []string{
		"PING",
		"NICK shorty",
		"TOPIC #chan",
		"NETINFO 1 2",
		":srv 001 bob",
		":a!i@h PRIVMSG",
		":a!i@h JOIN",
		":a!i@h PART",
		":a!i@h NICK",
		":a!i@h MOTD",
		":a!i@h NICK :Bob notanumber",
	} {
		events, err := p.Parse(line)
		assert.ErrorIs(t, err, ErrMalformedLine, "line %q", line)
		assert.Nil(t, events, "line %q", line)
	}
}

// A malformed line must not poison the parser for the lines after it.
func TestParseRecoversAfterMalformedLine(t *testing.T) {
	p := NewParser(NewSession())

	_, err := p.Parse("PING")
	require.Error(t, err)

	ev := parseOne(t, p, "PING :irc.example.net")
	assert.Equal(t, Ping{Target: "irc.example.net"}, ev)
}
