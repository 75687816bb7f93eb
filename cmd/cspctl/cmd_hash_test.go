package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashFile(t *testing.T) {
	hashAlg = "sha256"

	path := filepath.Join(t.TempDir(), "inline.js")
	if err := os.WriteFile(path, []byte("doSomething();"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out, err := executeCommand("hash", path)
	if err != nil {
		t.Fatalf("hash failed: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != "'sha256-RFWPLDbv2BY+rCkDzsE+0fr8ylGr2R2faWMhq4lfEQc='" {
		t.Fatalf("unexpected token %q", out)
	}
}

func TestHashStdin(t *testing.T) {
	hashAlg = "sha256"

	out, err := executeCommandWithInput("doSomething();", "hash", "--alg", "sha384")
	if err != nil {
		t.Fatalf("hash failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "'sha384-") {
		t.Fatalf("unexpected token %q", out)
	}
}

func TestHashUnknownAlgorithm(t *testing.T) {
	hashAlg = "sha256"

	_, err := executeCommandWithInput("doSomething();", "hash", "--alg", "md5")
	if err == nil || !strings.Contains(err.Error(), "unknown hash algorithm") {
		t.Fatalf("expected algorithm error, got %v", err)
	}
}
