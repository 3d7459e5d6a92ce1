package hml

import (
	"fmt"
	"strconv"
	"strings"
)

// Escape selection flags. '&' and '<' are always escaped; flags add
// the rest.
const (
	EscapeQuote = 1  // '"' as &quot;
	EscapeApos  = 2  // '\'' as &apos;
	EscapeGT    = 4  // '>' as &gt;
	EscapeLF    = 8  // '\n' as &#10;
	EscapeCR    = 16 // '\r' as &#13;

	// EscapeAttr escapes everything unsafe inside attribute values.
	EscapeAttr = EscapeQuote | EscapeApos | EscapeGT | EscapeLF | EscapeCR
	// EscapePCDATA escapes only the characters unsafe in text content.
	EscapePCDATA = 0
)

// Escape rewrites s with XML character references selected by flags.
func Escape(s string, flags int) string {
	if !strings.ContainsAny(s, "&<>\"'\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>' && flags&EscapeGT != 0:
			b.WriteString("&gt;")
		case r == '"' && flags&EscapeQuote != 0:
			b.WriteString("&quot;")
		case r == '\'' && flags&EscapeApos != 0:
			b.WriteString("&apos;")
		case r == '\n' && flags&EscapeLF != 0:
			b.WriteString("&#10;")
		case r == '\r' && flags&EscapeCR != 0:
			b.WriteString("&#13;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ReplaceEntities substitutes the predefined XML entities and numeric
// character references in s. Unknown entities and bare ampersands are
// left as written.
func ReplaceEntities(s string) (string, error) {
	if !strings.Contains(s, "&") {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteByte(c)
			i++
			continue
		}
		ent := s[i+1 : i+end]
		if strings.ContainsAny(ent, "& \t\n") {
			b.WriteByte(c)
			i++
			continue
		}
		switch ent {
		case "amp", "AMP":
			b.WriteByte('&')
		case "lt", "LT":
			b.WriteByte('<')
		case "gt", "GT":
			b.WriteByte('>')
		case "apos", "APOS":
			b.WriteByte('\'')
		case "quot", "QUOT":
			b.WriteByte('"')
		default:
			if len(ent) > 1 && ent[0] == '#' {
				r, err := parseCharRef(ent[1:])
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			} else {
				b.WriteString(s[i : i+end+1])
			}
		}
		i += end + 1
	}
	return b.String(), nil
}

func parseCharRef(digits string) (rune, error) {
	ref := digits
	base := 10
	if len(digits) > 0 && digits[0] == 'x' {
		base = 16
		digits = digits[1:]
	}
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid character reference &#%s;", ref)
	}
	if n < 0 || n > 0x10FFFF {
		return 0, fmt.Errorf("character reference &#%s; out of range", ref)
	}
	return rune(n), nil
}
