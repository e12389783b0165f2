// internal/irc/source.go
package irc

import (
	"fmt"
	"regexp"
)

// sourcePattern matches the nick!ident@host origin form. The nick must not
// begin with '!'.
var sourcePattern = regexp.MustCompile(`^([^!].*)!(.*)@(.*)$`)

// SplitSource splits a message origin of the form nick!ident@host into its
// parts. A string that does not match is returned whole as the nick with
// empty ident and host; bare nicks and server names are valid origins, not
// errors.
func SplitSource(source string) (nick, ident, host string) {
	m := sourcePattern.FindStringSubmatch(source)
	if m == nil {
		return source, "", ""
	}
	return m[1], m[2], m[3]
}

// JoinSource reassembles an origin previously taken apart by SplitSource.
func JoinSource(nick, ident, host string) string {
	return fmt.Sprintf("%s!%s@%s", nick, ident, host)
}
