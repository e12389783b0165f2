// internal/irc/source_test.go
package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSource(t *testing.T) {
	nick, ident, host := SplitSource("Joe!Blogs@localhost")
	assert.Equal(t, "Joe", nick)
	assert.Equal(t, "Blogs", ident)
	assert.Equal(t, "localhost", host)
}

func TestSplitSourceBareNick(t *testing.T) {
	// A bare nick or server name is a valid origin, not an error.
	nick, ident, host := SplitSource("irc.example.net")
	assert.Equal(t, "irc.example.net", nick)
	assert.Empty(t, ident)
	assert.Empty(t, host)
}

func TestSplitSourceEmptyIdent(t *testing.T) {
	nick, ident, host := SplitSource("kdb!@202.63.43.101")
	assert.Equal(t, "kdb", nick)
	assert.Empty(t, ident)
	assert.Equal(t, "202.63.43.101", host)
}

func TestJoinSource(t *testing.T) {
	assert.Equal(t, "Joe!Blogs@localhost", JoinSource("Joe", "Blogs", "localhost"))
}

func TestSourceRoundTrip(t *testing.T) {
	for _, src := range []string{
		"alice!a@host.example.com",
		"Bob!~ident@10.0.0.1",
		"x!y@z",
	} {
		nick, ident, host := SplitSource(src)
		assert.Equal(t, src, JoinSource(nick, ident, host))
	}
}
