package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Repl.Prompt != ">> " {
		t.Errorf("prompt = %q, want %q", c.Repl.Prompt, ">> ")
	}
	if c.Repl.ContinuePrompt != ".. " {
		t.Errorf("continue prompt = %q, want %q", c.Repl.ContinuePrompt, ".. ")
	}
	if c.VM.Trace {
		t.Error("tracing on by default")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tally.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing tally.toml: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, `
[repl]
prompt = "tally> "

[vm]
trace = true
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Repl.Prompt != "tally> " {
		t.Errorf("prompt = %q, want %q", c.Repl.Prompt, "tally> ")
	}
	// Unset keys keep their defaults.
	if c.Repl.ContinuePrompt != ".. " {
		t.Errorf("continue prompt = %q, want default", c.Repl.ContinuePrompt)
	}
	if !c.VM.Trace {
		t.Error("trace = false, want true")
	}
	if c.Dir != dir {
		t.Errorf("dir = %q, want %q", c.Dir, dir)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := writeConfig(t, "[repl\nprompt =")
	if _, err := Load(dir); err == nil {
		t.Error("malformed file loads without error")
	}
}

func TestFindAndLoadFallsBackToDefaults(t *testing.T) {
	c, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c.Repl.Prompt != Default().Repl.Prompt {
		t.Errorf("prompt = %q, want the default", c.Repl.Prompt)
	}
}

func TestFindAndLoadReadsExistingFile(t *testing.T) {
	dir := writeConfig(t, `[repl]
welcome = "hi"
`)
	c, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c.Repl.Welcome != "hi" {
		t.Errorf("welcome = %q, want %q", c.Repl.Welcome, "hi")
	}
}
