package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetCheckFlags() {
	checkFile = ""
	checkValue = false
	checkReportOnly = false
}

func TestCheckValidLine(t *testing.T) {
	resetCheckFlags()

	out, err := executeCommand("check", "Content-Security-Policy: default-src 'self'; img-src *;")
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[OK] Content-Security-Policy (2 directives)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheckInvalidDirective(t *testing.T) {
	resetCheckFlags()

	out, err := executeCommand("check", "Content-Security-Policy: made-up-src 'self';")
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected check failure, got %v", err)
	}
	if !strings.Contains(out, "[FAIL] line 1:") || !strings.Contains(out, "made-up-src") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheckBareValue(t *testing.T) {
	resetCheckFlags()

	out, err := executeCommand("check", "--value", "default-src 'self'")
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[OK] Content-Security-Policy (1 directives)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheckBareValueReportOnly(t *testing.T) {
	resetCheckFlags()

	out, err := executeCommand("check", "--value", "--report-only", "script-src 'self'")
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[OK] Content-Security-Policy-Report-Only") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheckPipedResponseHeaders(t *testing.T) {
	resetCheckFlags()

	input := strings.Join([]string{
		"HTTP/1.1 200 OK",
		"Content-Type: text/html; charset=utf-8",
		"Content-Security-Policy: default-src 'self';",
		"X-Frame-Options: DENY",
		"",
	}, "\r\n")

	out, err := executeCommandWithInput(input, "check")
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if strings.Count(out, "[OK]") != 1 {
		t.Fatalf("expected exactly one checked line, got %q", out)
	}
}

func TestCheckNoPolicyLines(t *testing.T) {
	resetCheckFlags()

	_, err := executeCommandWithInput("Content-Type: text/html\r\n", "check")
	if err == nil || !strings.Contains(err.Error(), "no Content-Security-Policy header lines") {
		t.Fatalf("expected missing-policy error, got %v", err)
	}
}

func TestCheckFromFile(t *testing.T) {
	resetCheckFlags()

	path := filepath.Join(t.TempDir(), "headers.txt")
	content := "Content-Security-Policy: default-src 'none';\nContent-Security-Policy-Report-Only: script-src 'self';\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out, err := executeCommand("check", "--file", path)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if strings.Count(out, "[OK]") != 2 {
		t.Fatalf("expected two checked lines, got %q", out)
	}
}
