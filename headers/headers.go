package headers

import (
	"fmt"
	"strings"

	"github.com/devmarvs/csphead"
	"github.com/devmarvs/csphead/apperr"
)

// Header is one header line: a field name plus a serialized value.
type Header interface {
	FieldName() string
	FieldValue() string
	String() string
}

// Field is a plain name/value header.
type Field struct {
	name  string
	value string
}

// NewField creates a plain header. The name must be a token of letters,
// digits, hyphens, underscores or dots, and the value must not contain CR
// or LF.
func NewField(name, value string) (Field, error) {
	if !validFieldName(name) {
		return Field{}, apperr.InvalidArgument(fmt.Sprintf("invalid header field name %q", name), nil)
	}
	if strings.ContainsAny(value, "\r\n") {
		return Field{}, apperr.InvalidArgument(fmt.Sprintf("header %s: value contains a line break", name), nil)
	}
	return Field{name: name, value: value}, nil
}

// FieldName returns the header name.
func (f Field) FieldName() string {
	return f.name
}

// FieldValue returns the header value.
func (f Field) FieldValue() string {
	return f.value
}

// String returns the header line without a line terminator.
func (f Field) String() string {
	return f.name + ": " + f.value
}

func validFieldName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}

// Parse turns one raw header line into a typed header. Content-Security-
// Policy lines come back as *csphead.Header; anything else becomes a plain
// Field with the value trimmed of leading space.
func Parse(line string) (Header, error) {
	trimmed := strings.TrimSuffix(line, "\r\n")
	name, value, found := strings.Cut(trimmed, ":")
	if !found {
		return nil, apperr.InvalidArgument(`header line must match the form "Name: value"`, nil)
	}
	switch {
	case strings.EqualFold(name, csphead.HeaderName):
		return csphead.Parse(line)
	case strings.EqualFold(name, csphead.HeaderNameReportOnly):
		return csphead.ParseReportOnly(line)
	}
	return NewField(name, strings.TrimLeft(value, " \t"))
}

// List is an ordered header collection. Repeated names are kept as
// repeated lines, the way user agents expect policy headers to arrive.
// The zero value is ready to use.
type List struct {
	items []Header
}

// Add appends a header.
func (l *List) Add(h Header) *List {
	if h != nil {
		l.items = append(l.items, h)
	}
	return l
}

// AddLine parses and appends one raw header line.
func (l *List) AddLine(line string) error {
	h, err := Parse(line)
	if err != nil {
		return err
	}
	l.Add(h)
	return nil
}

// Get returns the first header with the given field name, matched
// case-insensitively.
func (l *List) Get(name string) (Header, bool) {
	for _, h := range l.items {
		if strings.EqualFold(h.FieldName(), name) {
			return h, true
		}
	}
	return nil, false
}

// Has reports whether any header carries the given field name.
func (l *List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// All returns the headers in insertion order.
func (l *List) All() []Header {
	return append([]Header(nil), l.items...)
}

// Len returns the number of headers.
func (l *List) Len() int {
	return len(l.items)
}

// String serializes the collection as CRLF-terminated lines.
func (l *List) String() string {
	var b strings.Builder
	for _, h := range l.items {
		b.WriteString(h.String())
		b.WriteString("\r\n")
	}
	return b.String()
}
