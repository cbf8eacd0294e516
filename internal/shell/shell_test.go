package shell

import (
	"bytes"
	"strings"
	"testing"
)

func TestShellPrintsPromptOnlyWhenTTY(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(""), &out, &bytes.Buffer{}, true)
	s.Run()
	if !strings.HasPrefix(out.String(), Prompt) {
		t.Fatalf("expected prompt %q, got %q", Prompt, out.String())
	}

	out.Reset()
	s = New(strings.NewReader(""), &out, &bytes.Buffer{}, false)
	s.Run()
	if strings.Contains(out.String(), Prompt) {
		t.Fatalf("prompt should not print on a non-TTY, got %q", out.String())
	}
}

func TestShellExitsCleanlyOnEOF(t *testing.T) {
	s := New(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, false)
	if status := s.Run(); status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
}

func TestShellBlankLineContinues(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("\n\nenv\n"), &out, &bytes.Buffer{}, false)
	s.Env.Set("FOO", "bar")
	if status := s.Run(); status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if !strings.Contains(out.String(), "FOO=bar") {
		t.Fatalf("expected env output after blank lines, got %q", out.String())
	}
}

func TestShellExecutesEachLine(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("setenv FOO bar\nenv\n"), &out, &bytes.Buffer{}, false)
	s.Run()
	if !strings.Contains(out.String(), "FOO=bar") {
		t.Fatalf("expected FOO=bar to persist across lines, got %q", out.String())
	}
}

func TestShellExitBuiltinStopsLoop(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("echo reached\nexit\necho unreachable\n"), &out, &bytes.Buffer{}, false)
	s.Env.Set("PATH", "/bin:/usr/bin")
	status := s.Run()
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if strings.Contains(out.String(), "unreachable") {
		t.Fatalf("a line after exit was executed, got %q", out.String())
	}
}

func TestShellRunsFinalLineWithoutTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("setenv FOO bar\nenv"), &out, &bytes.Buffer{}, false)
	s.Run()
	if !strings.Contains(out.String(), "FOO=bar") {
		t.Fatalf("expected the final, newline-less line to still execute, got %q", out.String())
	}
}

func TestShellErrorsDoNotStopTheLoop(t *testing.T) {
	var out, errOut bytes.Buffer
	s := New(strings.NewReader("nonesuch\nenv\n"), &out, &errOut, false)
	s.Env.Set("PATH", "/bin:/usr/bin")
	s.Env.Set("FOO", "bar")
	status := s.Run()
	if status != 0 {
		t.Fatalf("status = %d, want 0", status)
	}
	if !strings.Contains(errOut.String(), "nonesuch: Command not found.") {
		t.Fatalf("expected command-not-found message, got %q", errOut.String())
	}
	if !strings.Contains(out.String(), "FOO=bar") {
		t.Fatalf("expected env to still run after the failed command, got %q", out.String())
	}
}
