// Package mention extracts @-mentions from free text. Parsing is pure: no
// I/O, no user lookup, safe to call on any string.
package mention

import (
	"regexp"
	"unicode/utf8"
)

// Mention is one @-mention hit in a text.
type Mention struct {
	// Username is the word-character run after the @.
	Username string
	// Start is the zero-based character offset of the @ itself.
	Start int
	// Length is the full match length including the @, so 1 + len(Username).
	Length int
}

// An @ followed by one or more word characters. Deliberately no lookbehind:
// "user@domain" yields a mention for "domain", matching the stored mention
// semantics of the rest of the system.
var pattern = regexp.MustCompile(`@(\w+)`)

// Parse scans text left to right and returns every @-mention in order.
// Duplicate usernames at different offsets are all returned. Offsets and
// lengths are counted in characters, not bytes.
func Parse(text string) []Mention {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	mentions := make([]Mention, 0, len(matches))
	for _, m := range matches {
		username := text[m[2]:m[3]]
		mentions = append(mentions, Mention{
			Username: username,
			Start:    utf8.RuneCountInString(text[:m[0]]),
			Length:   1 + utf8.RuneCountInString(username),
		})
	}
	return mentions
}

// Usernames returns just the usernames from Parse, in match order.
func Usernames(text string) []string {
	mentions := Parse(text)
	if len(mentions) == 0 {
		return nil
	}
	names := make([]string, len(mentions))
	for i, m := range mentions {
		names[i] = m.Username
	}
	return names
}
