package csphead

import (
	"fmt"
	"strings"

	"github.com/devmarvs/csphead/apperr"
)

// ValidSource reports whether s can be stored as a single source token. A
// valid token is non-empty and contains no whitespace, control bytes or
// semicolons, so a serialized policy always parses back to the same
// directives.
func ValidSource(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r', '\n', ' ', '\t', ';', 0:
			return false
		}
	}
	return true
}

// FilterSource strips the bytes that ValidSource rejects. It is a
// convenience for building tokens out of untrusted input; the result may
// still be empty and therefore invalid.
func FilterSource(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r', '\n', ' ', '\t', ';', 0:
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func checkSources(name string, sources []string) error {
	for _, source := range sources {
		if strings.ContainsAny(source, "\r\n") {
			return apperr.InvalidArgument(fmt.Sprintf("directive %s: source %q contains a line break", name, source), nil)
		}
		if !ValidSource(source) {
			return apperr.InvalidArgument(fmt.Sprintf("directive %s: invalid source token %q", name, source), nil)
		}
	}
	return nil
}
