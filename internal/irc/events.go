// internal/irc/events.go
package irc

import "time"

// EventKind identifies one variant of the protocol event set. Subscribers
// on the dispatch bus declare interest by kind.
type EventKind string

const (
	KindRaw     EventKind = "raw"
	KindNumeric EventKind = "numeric"
	KindNetInfo EventKind = "netinfo"
	KindNewNick EventKind = "newnick"
	KindNick    EventKind = "nick"
	KindQuit    EventKind = "quit"
	KindMessage EventKind = "message"
	KindNotice  EventKind = "notice"
	KindPing    EventKind = "ping"
	KindJoin    EventKind = "join"
	KindPart    EventKind = "part"
	KindCtcp    EventKind = "ctcp"
	KindMode    EventKind = "mode"
	KindTopic   EventKind = "topic"
	KindInvite  EventKind = "invite"
	KindKick    EventKind = "kick"
	KindMotd    EventKind = "motd"
)

// Event is the closed set of inbound protocol events. Every framed line
// yields a Raw plus, when it matches a known command shape, exactly one
// typed variant (JOIN with a channel list fans out into one Join each).
type Event interface {
	Kind() EventKind
}

// Raw carries one framed line verbatim, delimiter stripped.
type Raw struct {
	Line string `json:"line"`
}

// Ping is a server keep-alive probe that must be answered with PONG.
type Ping struct {
	Target string `json:"target"`
}

// NewNick introduces a user to the network (server-to-server NICK form).
type NewNick struct {
	Nick     string `json:"nick"`
	Idle     int64  `json:"idle"`
	Signon   int64  `json:"signon"`
	Ident    string `json:"ident"`
	Host     string `json:"host"`
	Server   string `json:"server"`
	Hops     int    `json:"hops"`
	RealName string `json:"real_name"`
}

// Nick reports a nick change by a connected user.
type Nick struct {
	Source    string    `json:"source"`
	NewNick   string    `json:"new_nick"`
	ChangedAt time.Time `json:"changed_at"`
}

// Quit reports a user leaving the network.
type Quit struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Message is a PRIVMSG addressed to a channel or nick.
type Message struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Text   string `json:"text"`
}

// Notice is like Message but must never be replied to automatically.
type Notice struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Text   string `json:"text"`
}

// Join reports a user entering a channel.
type Join struct {
	Source  string `json:"source"`
	Channel string `json:"channel"`
}

// Part reports a user leaving a channel.
type Part struct {
	Source  string `json:"source"`
	Channel string `json:"channel"`
	Message string `json:"message"`
}

// Ctcp is a client-to-client request embedded in a PRIVMSG body.
type Ctcp struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	CtcpType string `json:"ctcp_type"`
	Text     string `json:"text"`
}

// Mode carries an unparsed mode change line.
type Mode struct {
	Raw string `json:"raw"`
}

// Topic reports a channel topic, with who set it and when if the server
// included them. WhenSet is zero when the line carried no timestamp.
type Topic struct {
	Channel string `json:"channel"`
	WhoSet  string `json:"who_set"`
	WhenSet int64  `json:"when_set"`
	Text    string `json:"text"`
}

// Invite reports an invitation of a user into a channel.
type Invite struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Channel string `json:"channel"`
}

// Kick reports a forced removal from a channel.
type Kick struct {
	Channel string `json:"channel"`
	Target  string `json:"target"`
	Message string `json:"message"`
}

// Motd reports a request for a server's message of the day.
type Motd struct {
	Source string `json:"source"`
	Server string `json:"server"`
}

// Numeric is a three-digit server reply. Arg is empty when the reply
// carried only a trailing message.
type Numeric struct {
	Source  string    `json:"source"`
	Target  string    `json:"target"`
	Code    ReplyCode `json:"code"`
	Arg     string    `json:"arg"`
	Message string    `json:"message"`
}

// NetInfo carries the NETINFO burst some ircds send after registration.
type NetInfo struct {
	MaxGlobal int       `json:"max_global"`
	Time      int64     `json:"time"`
	Protocol  string    `json:"protocol"`
	CloakHash string    `json:"cloak_hash"`
	Flags     [3]string `json:"flags"`
	Network   string    `json:"network"`
}

func (Raw) Kind() EventKind     { return KindRaw }
func (Ping) Kind() EventKind    { return KindPing }
func (NewNick) Kind() EventKind { return KindNewNick }
func (Nick) Kind() EventKind    { return KindNick }
func (Quit) Kind() EventKind    { return KindQuit }
func (Message) Kind() EventKind { return KindMessage }
func (Notice) Kind() EventKind  { return KindNotice }
func (Join) Kind() EventKind    { return KindJoin }
func (Part) Kind() EventKind    { return KindPart }
func (Ctcp) Kind() EventKind    { return KindCtcp }
func (Mode) Kind() EventKind    { return KindMode }
func (Topic) Kind() EventKind   { return KindTopic }
func (Invite) Kind() EventKind  { return KindInvite }
func (Kick) Kind() EventKind    { return KindKick }
func (Motd) Kind() EventKind    { return KindMotd }
func (Numeric) Kind() EventKind { return KindNumeric }
func (NetInfo) Kind() EventKind { return KindNetInfo }
