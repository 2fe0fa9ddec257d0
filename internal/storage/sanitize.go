package storage

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename turns a client supplied filename into a safe storage key.
//
// The name is NFKD normalised and reduced to ASCII, "/" becomes whitespace,
// whitespace runs are joined with "_", anything outside [A-Za-z0-9_.-] is
// dropped (a backslash included) and leading or trailing dots and underscores
// are trimmed. The result may be empty.
//
//	"My cool photo.jpg"            -> "My_cool_photo.jpg"
//	"../../etc/passwd"             -> "etc_passwd"
//	"i contain cool ümläuts.txt"   -> "i_contain_cool_umlauts.txt"
//	`a\b.png`                      -> "ab.png"
func SanitizeFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= utf8.RuneSelf:
			continue
		case r == '/':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(b.String()), "_")
	return strings.Trim(unsafeFilenameChars.ReplaceAllString(joined, ""), "._")
}
