package jsobject

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the type of a parsed Value.
type Kind int

// Value kinds.
const (
	KindObject Kind = iota + 1
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a parsed literal. Start and End delimit its source text; for
// strings the span includes the quotes.
type Value struct {
	Kind  Kind
	Start int
	End   int

	Str     string  // KindString, unescaped
	Quote   byte    // KindString, the quote character used
	Num     float64 // KindNumber
	Bool    bool    // KindBool
	Entries []Entry // KindObject, in source order
	Items   []*Value
}

// Entry is one key-value property of an object.
type Entry struct {
	Key   string
	Value *Value
}

// Get returns the value of key. When a key repeats, the last one wins.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}
	for i := len(v.Entries) - 1; i >= 0; i-- {
		if v.Entries[i].Key == key {
			return v.Entries[i].Value, true
		}
	}
	return nil, false
}

// Text returns the value's source text within src.
func (v *Value) Text(src []byte) string {
	return string(src[v.Start:v.End])
}

// Parse parses the literal that starts at offset start of src.
func Parse(src []byte, start int) (*Value, error) {
	p := &parser{scanner{src: src, pos: start}}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	return p.value(0)
}

const maxDepth = 256

type parser struct {
	scanner
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) value(depth int) (*Value, error) {
	if depth > maxDepth {
		return nil, p.errorf("nesting deeper than %d", maxDepth)
	}
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}

	switch c := p.peek(); {
	case c == '{':
		return p.object(depth)
	case c == '[':
		return p.array(depth)
	case isQuote(c):
		return p.str()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		start := p.pos
		word := p.ident()
		switch word {
		case "true", "false":
			return &Value{Kind: KindBool, Start: start, End: p.pos, Bool: word == "true"}, nil
		case "null":
			return &Value{Kind: KindNull, Start: start, End: p.pos}, nil
		}
		p.pos = start
		return nil, p.errorf("unsupported expression %q", word)
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *parser) object(depth int) (*Value, error) {
	v := &Value{Kind: KindObject, Start: p.pos}
	p.pos++ // {

	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() == '}' {
			p.pos++
			v.End = p.pos
			return v, nil
		}

		key, err := p.key()
		if err != nil {
			return nil, err
		}
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after key %q", key)
		}
		p.pos++
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		val, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		v.Entries = append(v.Entries, Entry{Key: key, Value: val})

		if err := p.delimit('}'); err != nil {
			return nil, err
		}
	}
}

func (p *parser) array(depth int) (*Value, error) {
	v := &Value{Kind: KindArray, Start: p.pos}
	p.pos++ // [

	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() == ']' {
			p.pos++
			v.End = p.pos
			return v, nil
		}

		item, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		v.Items = append(v.Items, item)

		if err := p.delimit(']'); err != nil {
			return nil, err
		}
	}
}

// delimit consumes the ',' after an element, or stops before the closer.
func (p *parser) delimit(closer byte) error {
	if err := p.skipSpace(); err != nil {
		return err
	}
	switch p.peek() {
	case ',':
		p.pos++
		return nil
	case closer:
		return nil
	default:
		if p.eof() {
			return p.errorf("unexpected end of input, expected %q", closer)
		}
		return p.errorf("expected ',' or %q, got %q", closer, p.peek())
	}
}

func (p *parser) key() (string, error) {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		v, err := p.str()
		if err != nil {
			return "", err
		}
		return v.Str, nil
	case isIdentStart(c):
		return p.ident(), nil
	case isDigit(c):
		v, err := p.number()
		if err != nil {
			return "", err
		}
		return p.textOf(v), nil
	default:
		return "", p.errorf("expected property key, got %q", c)
	}
}

func (p *parser) textOf(v *Value) string {
	return string(p.src[v.Start:v.End])
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) number() (*Value, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for !p.eof() {
		c := p.peek()
		if !isDigit(c) && c != '.' && c != 'e' && c != 'E' && c != '_' &&
			!((c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')) {
			break
		}
		p.pos++
	}

	text := strings.ReplaceAll(string(p.src[start:p.pos]), "_", "")
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return nil, p.errorf("malformed number %q", text)
	}
	return &Value{Kind: KindNumber, Start: start, End: p.pos, Num: n}, nil
}

func (p *parser) str() (*Value, error) {
	start := p.pos
	quote := p.peek()
	if err := p.skipString(); err != nil {
		return nil, err
	}
	body := p.src[start+1 : p.pos-1]
	if quote == '`' && strings.Contains(string(body), "${") {
		p.pos = start
		return nil, p.errorf("template literal substitutions are not supported")
	}
	return &Value{Kind: KindString, Start: start, End: p.pos, Str: unescape(body), Quote: quote}, nil
}

// unescape decodes the escape sequences of a string literal body.
func unescape(body []byte) string {
	if !strings.ContainsRune(string(body), '\\') {
		return string(body)
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'u':
			if i+4 < len(body) {
				if r, err := strconv.ParseUint(string(body[i+1:i+5]), 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			b.WriteByte(e)
		case 'x':
			if i+2 < len(body) {
				if r, err := strconv.ParseUint(string(body[i+1:i+3]), 16, 8); err == nil {
					b.WriteRune(rune(r))
					i += 2
					continue
				}
			}
			b.WriteByte(e)
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

// Quote renders s as a string literal using quote, which must be one of
// ', " or `.
func Quote(s string, quote byte) string {
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == utf8.RuneError:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
