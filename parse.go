package csphead

import (
	"fmt"
	"strings"

	"github.com/devmarvs/csphead/apperr"
)

// Parse parses a raw "Content-Security-Policy: ..." header line into a
// Header. A single trailing CRLF is tolerated; any other CR or LF in the
// line fails with an invalid_argument error, as does a field name other
// than Content-Security-Policy (matched case-insensitively) or a directive
// the allow-list does not contain. Directive clauses run through
// SetDirective, so duplicates resolve last-wins and empty clauses follow
// the 'none' and report-uri rules.
func Parse(line string) (*Header, error) {
	return parseNamed(HeaderName, line)
}

// ParseReportOnly parses a "Content-Security-Policy-Report-Only: ..."
// header line. The rules match Parse.
func ParseReportOnly(line string) (*Header, error) {
	return parseNamed(HeaderNameReportOnly, line)
}

func parseNamed(field, line string) (*Header, error) {
	line = strings.TrimSuffix(line, "\r\n")
	if strings.ContainsAny(line, "\r\n") {
		return nil, apperr.InvalidArgument("header line contains a line break", nil)
	}
	name, value, found := strings.Cut(line, ":")
	if !found {
		return nil, apperr.InvalidArgument(`header line must match the form "Name: value"`, nil)
	}
	if !strings.EqualFold(name, field) {
		return nil, apperr.InvalidArgument(fmt.Sprintf("invalid header line for %s: %q", field, name), nil)
	}

	header := &Header{field: field, directives: make(map[string][]string)}
	for _, clause := range strings.Split(value, ";") {
		tokens := strings.Fields(clause)
		if len(tokens) == 0 {
			continue
		}
		if err := header.SetDirective(tokens[0], tokens[1:]...); err != nil {
			return nil, err
		}
	}
	return header, nil
}
