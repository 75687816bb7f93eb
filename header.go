package csphead

import (
	"fmt"
	"strings"

	"github.com/devmarvs/csphead/apperr"
)

// Wire field names the two policy variants serialize under.
const (
	HeaderName           = "Content-Security-Policy"
	HeaderNameReportOnly = "Content-Security-Policy-Report-Only"
)

// Directive is a named policy rule and its source tokens.
type Directive struct {
	Name    string
	Sources []string
}

// Header is a Content-Security-Policy header value: an ordered mapping of
// directive names to source tokens, tagged with the field name it
// serializes under. Construct with New, NewReportOnly or the Parse
// functions; the zero value has no field name and is not usable.
type Header struct {
	field      string
	directives map[string][]string
	order      []string
}

// New creates an empty enforcing policy header.
func New() *Header {
	return &Header{field: HeaderName, directives: make(map[string][]string)}
}

// NewReportOnly creates an empty report-only policy header.
func NewReportOnly() *Header {
	return &Header{field: HeaderNameReportOnly, directives: make(map[string][]string)}
}

// FieldName returns the wire field name.
func (h *Header) FieldName() string {
	return h.field
}

// ReportOnly reports whether the policy serializes under the report-only
// field name.
func (h *Header) ReportOnly() bool {
	return h.field == HeaderNameReportOnly
}

// SetDirective replaces the named directive's source list. The name must be
// on the directive allow-list and every source must be a single token free
// of line breaks, otherwise the header is left unchanged and an
// invalid_argument error is returned.
//
// An empty source list stores the 'none' keyword. report-uri is the
// exception: setting it with no sources removes the directive instead,
// since "report-uri 'none'" is not a resolvable endpoint.
func (h *Header) SetDirective(name string, sources ...string) error {
	name = normalizeDirective(name)
	if _, ok := directiveNames[name]; !ok {
		return apperr.InvalidArgument(fmt.Sprintf("invalid directive name %q", name), nil)
	}
	if err := checkSources(name, sources); err != nil {
		return err
	}
	if len(sources) == 0 {
		if name == ReportURI {
			h.remove(name)
			return nil
		}
		h.store(name, []string{SourceNone})
		return nil
	}
	h.store(name, append([]string(nil), sources...))
	return nil
}

// MustSet is SetDirective for chained literals; it panics on error.
func (h *Header) MustSet(name string, sources ...string) *Header {
	if err := h.SetDirective(name, sources...); err != nil {
		panic(err)
	}
	return h
}

// store keeps the first-set position of a directive on overwrite.
func (h *Header) store(name string, sources []string) {
	if h.directives == nil {
		h.directives = make(map[string][]string)
	}
	if _, ok := h.directives[name]; !ok {
		h.order = append(h.order, name)
	}
	h.directives[name] = sources
}

func (h *Header) remove(name string) {
	if _, ok := h.directives[name]; !ok {
		return
	}
	delete(h.directives, name)
	for i, existing := range h.order {
		if existing == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Directive returns the stored sources for name and whether it is set.
func (h *Header) Directive(name string) ([]string, bool) {
	sources, ok := h.directives[normalizeDirective(name)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), sources...), true
}

// Directives returns every directive in insertion order.
func (h *Header) Directives() []Directive {
	out := make([]Directive, 0, len(h.order))
	for _, name := range h.order {
		out = append(out, Directive{Name: name, Sources: append([]string(nil), h.directives[name]...)})
	}
	return out
}

// Len returns the number of stored directives.
func (h *Header) Len() int {
	return len(h.order)
}

// EffectiveSources returns the sources that govern name once the fetch
// directive fallback chain is applied: frame-src and worker-src defer to
// child-src, and every fetch directive ultimately defers to default-src.
// It returns nil when neither the directive nor a fallback is set.
func (h *Header) EffectiveSources(name string) []string {
	name = normalizeDirective(name)
	if sources, ok := h.directives[name]; ok {
		return append([]string(nil), sources...)
	}
	for _, fallback := range fallbacks[name] {
		if sources, ok := h.directives[fallback]; ok {
			return append([]string(nil), sources...)
		}
	}
	return nil
}

// Clone returns an independent copy of the header.
func (h *Header) Clone() *Header {
	clone := &Header{
		field:      h.field,
		directives: make(map[string][]string, len(h.directives)),
		order:      append([]string(nil), h.order...),
	}
	for name, sources := range h.directives {
		clone.directives[name] = append([]string(nil), sources...)
	}
	return clone
}

// FieldValue serializes the directives without the field name. Every
// directive ends with a semicolon and clauses are joined by a single
// space, so an empty header yields an empty string.
func (h *Header) FieldValue() string {
	var b strings.Builder
	for i, name := range h.order {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		for _, source := range h.directives[name] {
			b.WriteByte(' ')
			b.WriteString(source)
		}
		b.WriteByte(';')
	}
	return b.String()
}

// String returns the full header line without a line terminator.
func (h *Header) String() string {
	return h.field + ": " + h.FieldValue()
}

// StringMultiple serializes the header together with any additional
// headers as repeated wire occurrences, one CRLF-terminated line per
// header. User agents combine repeated policy headers into one policy
// set, which only makes sense when every line carries the same field
// name; a variant mismatch returns a runtime error.
func (h *Header) StringMultiple(others ...*Header) (string, error) {
	var b strings.Builder
	b.WriteString(h.String())
	b.WriteString("\r\n")
	for _, other := range others {
		if other == nil {
			return "", apperr.Runtime("cannot serialize a nil header", nil)
		}
		if other.field != h.field {
			return "", apperr.Runtime(fmt.Sprintf("can only serialize %s headers together, got %s", h.field, other.field), nil)
		}
		b.WriteString(other.String())
		b.WriteString("\r\n")
	}
	return b.String(), nil
}
