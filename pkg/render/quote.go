package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Quote returns s as a double-quoted string literal that is valid in both
// JavaScript and TypeScript source.
func Quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal; invalid UTF-8 is replaced, not rejected.
		panic(err)
	}
	return string(b)
}

// CSSString returns s as a double-quoted CSS string. Quotes and backslashes
// are backslash-escaped, control characters become hex escapes followed by a
// space, and everything else is written as is.
func CSSString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
