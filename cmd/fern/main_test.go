package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fernlang/fern/fern"
)

func TestRunCLIUnknownCommand(t *testing.T) {
	if err := runCLI([]string{"fern", "frobnicate"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestRunCLINoArgs(t *testing.T) {
	if err := runCLI([]string{"fern"}); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"fern", "help"}); err != nil {
		t.Fatalf("help failed: %v", err)
	}
}

func TestTokensCommandMissingPath(t *testing.T) {
	if err := tokensCommand(nil); err == nil {
		t.Fatalf("expected error without a source path")
	}
}

func TestTokensCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.fern")
	src := "def greet\n  name <- \"world\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if err := tokensCommand([]string{"-plain", path}); err != nil {
		t.Fatalf("tokens command failed: %v", err)
	}
}

func TestTokensCommandSurfacesScanErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.fern")
	if err := os.WriteFile(path, []byte("x ~ y\n"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	err := tokensCommand([]string{"-plain", path})
	if err == nil || !strings.Contains(err.Error(), "tokenize failed") {
		t.Fatalf("expected tokenize failure, got %v", err)
	}
}

func TestRenderTokenTable(t *testing.T) {
	out, err := fern.TokenizeString("use lib\\io::puts", nil)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	table := renderTokenTable(out, false)
	for _, want := range []string{"use", "identifier lib", `\`, "identifier io", "::", "identifier puts", "6 tokens"} {
		if !strings.Contains(table, want) {
			t.Fatalf("table missing %q:\n%s", want, table)
		}
	}
}

func TestTokenLabelLiterals(t *testing.T) {
	out, err := fern.TokenizeString(`x <- "hi" 'y' true`, nil)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	labels := make([]string, out.Len())
	for i := 0; i < out.Len(); i++ {
		labels[i] = tokenLabel(out, out.At(i).Token)
	}
	want := []string{"identifier x", "<-", `string "hi"`, `character 'y'`, "boolean true"}
	for i, w := range want {
		if labels[i] != w {
			t.Fatalf("label %d = %q, want %q", i, labels[i], w)
		}
	}
}
