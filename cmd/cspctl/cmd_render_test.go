package main

import (
	"os"
	"path/filepath"
	"testing"
)

func resetRenderFlags() {
	renderConfig = ""
	renderEnvPrefix = "CSPHEAD_"
	renderValueOnly = false
}

const renderTestConfig = `policy:
  directives:
    - directive: default-src
      sources: ["'self'"]
    - directive: img-src
      sources: ["*"]
`

func TestRenderFromConfig(t *testing.T) {
	resetRenderFlags()

	path := filepath.Join(t.TempDir(), "csphead.yaml")
	if err := os.WriteFile(path, []byte(renderTestConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := executeCommand("render", "--config", path)
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, out)
	}
	expected := "Content-Security-Policy: default-src 'self'; img-src *;\r\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestRenderValueOnly(t *testing.T) {
	resetRenderFlags()

	path := filepath.Join(t.TempDir(), "csphead.yaml")
	if err := os.WriteFile(path, []byte(renderTestConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := executeCommand("render", "--config", path, "--value-only")
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, out)
	}
	if out != "default-src 'self'; img-src *;\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderReportOnlyEnvOverride(t *testing.T) {
	resetRenderFlags()
	t.Setenv("CSPHEAD_POLICY_REPORT_ONLY", "true")

	path := filepath.Join(t.TempDir(), "csphead.yaml")
	if err := os.WriteFile(path, []byte(renderTestConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := executeCommand("render", "--config", path)
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, out)
	}
	expected := "Content-Security-Policy-Report-Only: default-src 'self'; img-src *;\r\n"
	if out != expected {
		t.Fatalf("expected %q, got %q", expected, out)
	}
}

func TestRenderRejectsBadPolicy(t *testing.T) {
	resetRenderFlags()

	path := filepath.Join(t.TempDir(), "csphead.yaml")
	bad := "policy:\n  directives:\n    - directive: made-up-src\n      sources: [\"'self'\"]\n"
	if err := os.WriteFile(path, []byte(bad), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := executeCommand("render", "--config", path); err == nil {
		t.Fatal("expected render to fail on an invalid directive")
	}
}
