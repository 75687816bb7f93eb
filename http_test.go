package csphead_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devmarvs/csphead"
	"github.com/devmarvs/csphead/middleware"
	"github.com/devmarvs/csphead/report"
	"github.com/devmarvs/csphead/testutil"
)

func TestServedPolicyHeaders(t *testing.T) {
	policy := csphead.NewBuilder().
		DefaultSrc(csphead.SourceSelf).
		ObjectSrc(csphead.SourceNone).
		MustBuild()
	trial := csphead.NewReportOnlyBuilder().
		DefaultSrc(csphead.SourceNone).
		ReportURI("/csp-reports").
		MustBuild()

	testutil.RunMiddlewareCases(t, []testutil.MiddlewareCase{
		{
			Name: "enforcing policy",
			Middleware: []func(http.Handler) http.Handler{
				middleware.CSP(middleware.CSPOptions{Policy: policy}),
			},
			Assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				testutil.MustStatus(t, rec, http.StatusOK)
				testutil.MustHeader(t, rec, "Content-Security-Policy", "default-src 'self'; object-src 'none';")
			},
		},
		{
			Name: "report-only trial alongside",
			Middleware: []func(http.Handler) http.Handler{
				middleware.CSP(middleware.CSPOptions{Policy: policy, ReportOnly: trial}),
			},
			Assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				testutil.MustStatus(t, rec, http.StatusOK)
				testutil.MustHeader(t, rec, "Content-Security-Policy-Report-Only", "default-src 'none'; report-uri /csp-reports;")
			},
		},
		{
			Name: "security header bundle",
			Middleware: []func(http.Handler) http.Handler{
				middleware.SecurityHeaders(middleware.SecurityHeadersOptions{
					ContentSecurityPolicy: policy,
				}),
			},
			Assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				testutil.MustHeader(t, rec, "Content-Security-Policy", policy.FieldValue())
				testutil.MustHeader(t, rec, "X-Content-Type-Options", "nosniff")
				testutil.MustHeader(t, rec, "X-Frame-Options", "DENY")
			},
		},
	})
}

func TestCollectorRoundTrip(t *testing.T) {
	router := report.NewRouter(report.RouterOptions{Store: report.NewMemoryStore(8)})

	payload := `{"csp-report": {
		"document-uri": "https://example.com/",
		"blocked-uri": "https://evil.example/x.js",
		"effective-directive": "script-src",
		"disposition": "enforce"
	}}`
	req := httptest.NewRequest(http.MethodPost, "/csp-reports", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/csp-report")
	rec := testutil.Do(t, router, req)
	testutil.MustStatus(t, rec, http.StatusNoContent)

	rec = testutil.Do(t, router, httptest.NewRequest(http.MethodGet, "/reports", nil))
	testutil.MustStatus(t, rec, http.StatusOK)
	testutil.MustHeader(t, rec, "Content-Type", "application/json")

	var listed []report.Received
	testutil.DecodeJSON(t, rec, &listed)
	if len(listed) != 1 || listed[0].Body.Directive() != "script-src" {
		t.Fatalf("unexpected reports: %+v", listed)
	}
}
