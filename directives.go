package csphead

import (
	"sort"
	"strings"
)

// Directive names accepted by SetDirective. Only directives that carry a
// source list are included; valueless directives such as
// upgrade-insecure-requests are not part of this header model.
const (
	ChildSrc    = "child-src"
	ConnectSrc  = "connect-src"
	DefaultSrc  = "default-src"
	FontSrc     = "font-src"
	FrameSrc    = "frame-src"
	ImgSrc      = "img-src"
	ManifestSrc = "manifest-src"
	MediaSrc    = "media-src"
	ObjectSrc   = "object-src"
	ScriptSrc   = "script-src"
	StyleSrc    = "style-src"
	WorkerSrc   = "worker-src"

	BaseURI     = "base-uri"
	PluginTypes = "plugin-types"
	Sandbox     = "sandbox"

	FormAction     = "form-action"
	FrameAncestors = "frame-ancestors"

	ReportTo  = "report-to"
	ReportURI = "report-uri"
)

var directiveNames = map[string]struct{}{
	ChildSrc:       {},
	ConnectSrc:     {},
	DefaultSrc:     {},
	FontSrc:        {},
	FrameSrc:       {},
	ImgSrc:         {},
	ManifestSrc:    {},
	MediaSrc:       {},
	ObjectSrc:      {},
	ScriptSrc:      {},
	StyleSrc:       {},
	WorkerSrc:      {},
	BaseURI:        {},
	PluginTypes:    {},
	Sandbox:        {},
	FormAction:     {},
	FrameAncestors: {},
	ReportTo:       {},
	ReportURI:      {},
}

// fallbacks holds the lookup chain consulted when a fetch directive is not
// set. Deeper entries are tried in order.
var fallbacks = map[string][]string{
	ChildSrc:    {DefaultSrc},
	ConnectSrc:  {DefaultSrc},
	FontSrc:     {DefaultSrc},
	FrameSrc:    {ChildSrc, DefaultSrc},
	ImgSrc:      {DefaultSrc},
	ManifestSrc: {DefaultSrc},
	MediaSrc:    {DefaultSrc},
	ObjectSrc:   {DefaultSrc},
	ScriptSrc:   {DefaultSrc},
	StyleSrc:    {DefaultSrc},
	WorkerSrc:   {ChildSrc, ScriptSrc, DefaultSrc},
}

// ValidDirective reports whether name is an accepted directive name.
// Matching is case-insensitive.
func ValidDirective(name string) bool {
	_, ok := directiveNames[normalizeDirective(name)]
	return ok
}

// DirectiveNames returns the accepted directive names in sorted order.
func DirectiveNames() []string {
	names := make([]string, 0, len(directiveNames))
	for name := range directiveNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeDirective(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
