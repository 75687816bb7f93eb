package csphead

import (
	"strings"
	"testing"

	"github.com/devmarvs/csphead/apperr"
)

func TestSetDirective(t *testing.T) {
	h := New()
	if err := h.SetDirective(DefaultSrc, SourceSelf); err != nil {
		t.Fatalf("set default-src: %v", err)
	}
	if err := h.SetDirective(ScriptSrc, SourceSelf, "cdn.example.com"); err != nil {
		t.Fatalf("set script-src: %v", err)
	}

	expected := "Content-Security-Policy: default-src 'self'; script-src 'self' cdn.example.com;"
	if got := h.String(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestSetDirectiveRejectsUnknownName(t *testing.T) {
	h := New()
	err := h.SetDirective("made-up-src", SourceSelf)
	if err == nil {
		t.Fatalf("expected error for unknown directive")
	}
	if !apperr.IsCode(err, apperr.CodeInvalidArgument) {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("expected header unchanged, got %d directives", h.Len())
	}
}

func TestSetDirectiveNormalizesName(t *testing.T) {
	h := New()
	if err := h.SetDirective(" Img-Src ", SourceWildcard); err != nil {
		t.Fatalf("set img-src: %v", err)
	}
	sources, ok := h.Directive(ImgSrc)
	if !ok {
		t.Fatalf("expected img-src to be set")
	}
	if len(sources) != 1 || sources[0] != SourceWildcard {
		t.Fatalf("expected [*], got %v", sources)
	}
}

func TestSetDirectiveEmptyStoresNone(t *testing.T) {
	h := New()
	if err := h.SetDirective(ObjectSrc); err != nil {
		t.Fatalf("set object-src: %v", err)
	}
	expected := "object-src 'none';"
	if got := h.FieldValue(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestSetDirectiveEmptyReportURIRemoves(t *testing.T) {
	h := New()
	if err := h.SetDirective(ReportURI, "https://example.com/csp"); err != nil {
		t.Fatalf("set report-uri: %v", err)
	}
	if err := h.SetDirective(ReportURI); err != nil {
		t.Fatalf("clear report-uri: %v", err)
	}
	if _, ok := h.Directive(ReportURI); ok {
		t.Fatalf("expected report-uri to be removed")
	}
	if got := h.FieldValue(); got != "" {
		t.Fatalf("expected empty field value, got %q", got)
	}

	// Clearing a directive that was never set is a no-op.
	if err := h.SetDirective(ReportURI); err != nil {
		t.Fatalf("clear absent report-uri: %v", err)
	}
}

func TestSetDirectiveRejectsLineBreaks(t *testing.T) {
	cases := []string{
		"evil\r\nSet-Cookie: pwned=1",
		"evil\ninjected",
		"evil\rinjected",
	}

	for _, source := range cases {
		h := New()
		if err := h.SetDirective(DefaultSrc, SourceSelf); err != nil {
			t.Fatalf("set default-src: %v", err)
		}
		err := h.SetDirective(ScriptSrc, source)
		if err == nil {
			t.Fatalf("expected error for source %q", source)
		}
		if !apperr.IsCode(err, apperr.CodeInvalidArgument) {
			t.Fatalf("expected invalid_argument for %q, got %v", source, err)
		}
		if _, ok := h.Directive(ScriptSrc); ok {
			t.Fatalf("expected script-src to stay unset after %q", source)
		}
		if got := h.FieldValue(); got != "default-src 'self';" {
			t.Fatalf("expected header unchanged after %q, got %q", source, got)
		}
	}
}

func TestSetDirectiveRejectsBadTokens(t *testing.T) {
	cases := []string{"", " ", "two tokens", "a;b", "tab\tbed", "nul\x00byte"}

	for _, source := range cases {
		err := New().SetDirective(DefaultSrc, source)
		if err == nil {
			t.Fatalf("expected error for source %q", source)
		}
		if !apperr.IsCode(err, apperr.CodeInvalidArgument) {
			t.Fatalf("expected invalid_argument for %q, got %v", source, err)
		}
	}
}

func TestSetDirectiveLastWinsKeepsPosition(t *testing.T) {
	h := New()
	if err := h.SetDirective(DefaultSrc, SourceSelf); err != nil {
		t.Fatalf("set default-src: %v", err)
	}
	if err := h.SetDirective(ImgSrc, SourceWildcard); err != nil {
		t.Fatalf("set img-src: %v", err)
	}
	if err := h.SetDirective(DefaultSrc, SourceNone); err != nil {
		t.Fatalf("overwrite default-src: %v", err)
	}

	expected := "default-src 'none'; img-src *;"
	if got := h.FieldValue(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
	if h.Len() != 2 {
		t.Fatalf("expected 2 directives, got %d", h.Len())
	}
}

func TestMustSetPanicsOnInvalidDirective(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown directive")
		}
	}()
	New().MustSet("made-up-src", SourceSelf)
}

func TestDirectivesInsertionOrder(t *testing.T) {
	h := New().
		MustSet(ScriptSrc, SourceSelf).
		MustSet(DefaultSrc, SourceNone).
		MustSet(StyleSrc, SourceSelf, SourceUnsafeInline)

	directives := h.Directives()
	names := make([]string, 0, len(directives))
	for _, d := range directives {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, ","); got != "script-src,default-src,style-src" {
		t.Fatalf("unexpected order %q", got)
	}
	if got := strings.Join(directives[2].Sources, " "); got != "'self' 'unsafe-inline'" {
		t.Fatalf("unexpected style-src sources %q", got)
	}
}

func TestDirectiveReturnsCopy(t *testing.T) {
	h := New().MustSet(DefaultSrc, SourceSelf)
	sources, _ := h.Directive(DefaultSrc)
	sources[0] = "mutated"
	if got := h.FieldValue(); got != "default-src 'self';" {
		t.Fatalf("expected stored sources untouched, got %q", got)
	}
}

func TestEmptyHeaderSerialization(t *testing.T) {
	h := New()
	if got := h.FieldValue(); got != "" {
		t.Fatalf("expected empty field value, got %q", got)
	}
	if got := h.String(); got != "Content-Security-Policy: " {
		t.Fatalf("expected bare field name line, got %q", got)
	}
}

func TestReportOnlyFieldName(t *testing.T) {
	h := NewReportOnly().MustSet(DefaultSrc, SourceSelf)
	if h.FieldName() != HeaderNameReportOnly {
		t.Fatalf("expected %q, got %q", HeaderNameReportOnly, h.FieldName())
	}
	if !h.ReportOnly() {
		t.Fatalf("expected report-only header")
	}
	expected := "Content-Security-Policy-Report-Only: default-src 'self';"
	if got := h.String(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestEffectiveSources(t *testing.T) {
	h := New().
		MustSet(DefaultSrc, SourceSelf).
		MustSet(ChildSrc, SourceNone).
		MustSet(StyleSrc, SourceSelf, SourceUnsafeInline)

	cases := []struct {
		name string
		want string
	}{
		{StyleSrc, "'self' 'unsafe-inline'"},
		{ScriptSrc, "'self'"},
		{FrameSrc, "'none'"},
		{WorkerSrc, "'none'"},
		{ImgSrc, "'self'"},
		{BaseURI, ""},
	}

	for _, tc := range cases {
		if got := strings.Join(h.EffectiveSources(tc.name), " "); got != tc.want {
			t.Fatalf("EffectiveSources(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestClone(t *testing.T) {
	h := New().MustSet(DefaultSrc, SourceSelf)
	clone := h.Clone()
	clone.MustSet(DefaultSrc, SourceNone).MustSet(ImgSrc, SourceWildcard)

	if got := h.FieldValue(); got != "default-src 'self';" {
		t.Fatalf("expected original untouched, got %q", got)
	}
	if got := clone.FieldValue(); got != "default-src 'none'; img-src *;" {
		t.Fatalf("unexpected clone value %q", got)
	}
}

func TestStringMultiple(t *testing.T) {
	first := New().MustSet(DefaultSrc, SourceNone)
	second := New().MustSet(ImgSrc, SourceWildcard)

	got, err := first.StringMultiple(second)
	if err != nil {
		t.Fatalf("serialize multiple: %v", err)
	}
	expected := "Content-Security-Policy: default-src 'none';\r\n" +
		"Content-Security-Policy: img-src *;\r\n"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestStringMultipleAlone(t *testing.T) {
	h := New().MustSet(DefaultSrc, SourceSelf)
	got, err := h.StringMultiple()
	if err != nil {
		t.Fatalf("serialize multiple: %v", err)
	}
	if got != h.String()+"\r\n" {
		t.Fatalf("expected single terminated line, got %q", got)
	}
}

func TestStringMultipleRejectsVariantMismatch(t *testing.T) {
	enforce := New().MustSet(DefaultSrc, SourceSelf)
	reportOnly := NewReportOnly().MustSet(DefaultSrc, SourceSelf)

	if _, err := enforce.StringMultiple(reportOnly); !apperr.IsCode(err, apperr.CodeRuntime) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if _, err := reportOnly.StringMultiple(enforce); !apperr.IsCode(err, apperr.CodeRuntime) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if _, err := enforce.StringMultiple(nil); !apperr.IsCode(err, apperr.CodeRuntime) {
		t.Fatalf("expected runtime error for nil header, got %v", err)
	}
}
