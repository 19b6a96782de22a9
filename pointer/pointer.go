package pointer

import (
	"strconv"
	"strings"
)

// Pointer is an ordered sequence of RFC 6901 reference tokens. The zero
// value is the root pointer.
type Pointer struct {
	tokens []string
}

// Root returns the empty (root) pointer.
func Root() Pointer { return Pointer{} }

// New builds a Pointer from unescaped token strings.
func New(tokens ...string) Pointer {
	cp := make([]string, len(tokens))
	copy(cp, tokens)

	return Pointer{tokens: cp}
}

// Parse decodes an RFC 6901 string representation ("" or "/a/0/b~1c~0d").
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Root(), nil
	}

	if !strings.HasPrefix(s, "/") {
		return Pointer{}, &InvalidPointerError{Pointer: s, Reason: "must start with '/' or be empty"}
	}

	parts := strings.Split(s[1:], "/")
	tokens := make([]string, len(parts))

	for i, p := range parts {
		tokens[i] = unescape(p)
	}

	return Pointer{tokens: tokens}, nil
}

// InvalidPointerError is returned by [Parse] for malformed input.
type InvalidPointerError struct {
	Pointer string
	Reason  string
}

func (e *InvalidPointerError) Error() string {
	return "invalid json pointer " + strconv.Quote(e.Pointer) + ": " + e.Reason
}

// Tokens returns the unescaped reference tokens, in order.
func (p Pointer) Tokens() []string {
	return p.tokens
}

// Len returns the number of tokens.
func (p Pointer) Len() int { return len(p.tokens) }

// IsRoot reports whether p has no tokens.
func (p Pointer) IsRoot() bool { return len(p.tokens) == 0 }

// Child returns a new Pointer with token appended.
func (p Pointer) Child(token string) Pointer {
	tokens := make([]string, len(p.tokens)+1)
	copy(tokens, p.tokens)
	tokens[len(p.tokens)] = token

	return Pointer{tokens: tokens}
}

// ChildIndex returns a new Pointer with an array index token appended.
func (p Pointer) ChildIndex(i int) Pointer {
	return p.Child(strconv.Itoa(i))
}

// Join concatenates p and other; concatenation is associative.
func (p Pointer) Join(other Pointer) Pointer {
	tokens := make([]string, 0, len(p.tokens)+len(other.tokens))
	tokens = append(tokens, p.tokens...)
	tokens = append(tokens, other.tokens...)

	return Pointer{tokens: tokens}
}

// String renders the RFC 6901 string form, escaping '~' as "~0" and '/' as
// "~1" in each token.
func (p Pointer) String() string {
	if p.IsRoot() {
		return ""
	}

	var sb strings.Builder

	for _, t := range p.tokens {
		sb.WriteByte('/')
		sb.WriteString(escape(t))
	}

	return sb.String()
}

func escape(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}

	var sb strings.Builder

	for _, r := range token {
		switch r {
		case '~':
			sb.WriteString("~0")
		case '/':
			sb.WriteString("~1")
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}

	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")

	return token
}
