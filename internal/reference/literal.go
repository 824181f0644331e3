package reference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformedList is returned when a cell cannot be parsed as a list literal.
var ErrMalformedList = errors.New("malformed list literal")

// ParseList parses a list literal such as ['a', "b", 3] into its items.
// Items may be single- or double-quoted strings with backslash escapes, or
// bare numeric tokens, which are kept as text. A trailing comma is allowed.
func ParseList(text string) ([]string, error) {
	p := listParser{src: text}
	items, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
	}
	return items, nil
}

type listParser struct {
	src string
	pos int
}

func (p *listParser) parse() ([]string, error) {
	p.skipSpace()
	if !p.consume('[') {
		return nil, fmt.Errorf("expected '[' at offset %d", p.pos)
	}

	items := []string{}
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}

		item, err := p.item()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		if p.consume(']') {
			break
		}
		if !p.consume(',') {
			return nil, fmt.Errorf("expected ',' or ']' at offset %d", p.pos)
		}
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected trailing text at offset %d", p.pos)
	}
	return items, nil
}

func (p *listParser) item() (string, error) {
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("unterminated list")
	}
	switch c := p.src[p.pos]; {
	case c == '\'' || c == '"':
		return p.quoted(c)
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	default:
		return "", fmt.Errorf("unexpected %q at offset %d", c, p.pos)
	}
}

func (p *listParser) quoted(delim byte) (string, error) {
	start := p.pos
	p.pos++ // opening quote

	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == delim:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string starting at offset %d", start)
}

func (p *listParser) escape(sb *strings.Builder) error {
	if p.pos+1 >= len(p.src) {
		return fmt.Errorf("dangling escape at offset %d", p.pos)
	}
	c := p.src[p.pos+1]
	p.pos += 2

	switch c {
	case '\\', '\'', '"':
		sb.WriteByte(c)
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'x':
		return p.codepoint(sb, 2)
	case 'u':
		return p.codepoint(sb, 4)
	default:
		// Unknown escapes are kept verbatim.
		sb.WriteByte('\\')
		sb.WriteByte(c)
	}
	return nil
}

func (p *listParser) codepoint(sb *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return fmt.Errorf("truncated escape at offset %d", p.pos)
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return fmt.Errorf("invalid escape at offset %d", p.pos)
	}
	sb.WriteRune(rune(n))
	p.pos += digits
	return nil
}

func (p *listParser) number() (string, error) {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte("+-.0123456789eE", p.src[p.pos]) >= 0 {
		p.pos++
	}
	tok := p.src[start:p.pos]
	if _, err := strconv.ParseFloat(tok, 64); err != nil {
		return "", fmt.Errorf("invalid number %q at offset %d", tok, start)
	}
	return tok, nil
}

func (p *listParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// FormatList renders items as a list literal that ParseList reads back.
// Strings use single quotes unless they contain one and no double quote.
func FormatList(items []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quote(item))
	}
	sb.WriteByte(']')
	return sb.String()
}

func quote(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}

	var sb strings.Builder
	sb.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '\\' || r == rune(q):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == utf8.RuneError && size == 1:
			sb.WriteByte(s[i])
		default:
			sb.WriteRune(r)
		}
		i += size
	}
	sb.WriteByte(q)
	return sb.String()
}
