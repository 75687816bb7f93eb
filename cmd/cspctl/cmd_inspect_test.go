package main

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func resetInspectFlags() {
	inspectFile = ""
	inspectDirective = ""
	inspectJSON = false
}

func TestInspectListsDirectives(t *testing.T) {
	resetInspectFlags()

	out, err := executeCommand("inspect", "Content-Security-Policy: default-src 'self'; script-src 'self' cdn.example.com;")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "Content-Security-Policy\n") {
		t.Fatalf("missing field name in %q", out)
	}
	if !strings.Contains(out, "script-src") || !strings.Contains(out, "cdn.example.com") {
		t.Fatalf("missing directive listing in %q", out)
	}
}

func TestInspectEffectiveDirective(t *testing.T) {
	resetInspectFlags()

	out, err := executeCommand("inspect",
		"--directive", "worker-src",
		"Content-Security-Policy: default-src 'self'; child-src workers.example.com;")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "worker-src workers.example.com") {
		t.Fatalf("expected child-src fallback, got %q", out)
	}
}

func TestInspectUnknownDirective(t *testing.T) {
	resetInspectFlags()

	_, err := executeCommand("inspect", "--directive", "bogus-src",
		"Content-Security-Policy: default-src 'self';")
	if err == nil || !strings.Contains(err.Error(), "unknown directive") {
		t.Fatalf("expected unknown directive error, got %v", err)
	}
}

func TestInspectJSON(t *testing.T) {
	resetInspectFlags()

	out, err := executeCommand("inspect", "--json",
		"Content-Security-Policy-Report-Only: script-src 'self'; img-src *;")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, out)
	}

	var policy inspectedPolicy
	if err := sonic.Unmarshal([]byte(out), &policy); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !policy.ReportOnly {
		t.Fatalf("expected report-only policy, got %+v", policy)
	}
	if len(policy.Directives) != 2 || policy.Directives[0].Name != "script-src" {
		t.Fatalf("unexpected directives %+v", policy.Directives)
	}
}

func TestInspectPipedResponseHeaders(t *testing.T) {
	resetInspectFlags()

	input := "HTTP/1.1 200 OK\r\nContent-Security-Policy: default-src 'none';\r\n\r\n"
	out, err := executeCommandWithInput(input, "inspect")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "default-src") || !strings.Contains(out, "'none'") {
		t.Fatalf("unexpected output %q", out)
	}
}
