package main

import (
	"bufio"
	"strings"
	"testing"
)

// swapStdin points the prompts at a fixed input and restores the real
// reader afterwards.
func swapStdin(t *testing.T, input string) {
	t.Helper()
	old := stdin
	stdin = bufio.NewReader(strings.NewReader(input))
	t.Cleanup(func() { stdin = old })
}

func TestPromptReadsTrimmedLine(t *testing.T) {
	swapStdin(t, "  customer@gmail.com  \n")

	got, err := prompt("Email")
	if err != nil {
		t.Fatalf("prompt failed: %v", err)
	}
	if got != "customer@gmail.com" {
		t.Errorf("prompt = %q, want trimmed input", got)
	}
}

func TestPromptLastLineWithoutNewline(t *testing.T) {
	// Piped input often ends without a trailing newline; the typed value
	// still counts.
	swapStdin(t, "password123")

	got, err := prompt("Password")
	if err != nil {
		t.Fatalf("prompt failed: %v", err)
	}
	if got != "password123" {
		t.Errorf("prompt = %q, want %q", got, "password123")
	}
}

func TestPromptErrorsOnExhaustedInput(t *testing.T) {
	swapStdin(t, "")

	if _, err := prompt("Email"); err == nil {
		t.Fatal("expected an error once input is exhausted")
	}

	// Every further read must keep failing so interactive loops stop
	// instead of re-asking a closed stream.
	if _, err := prompt("Email"); err == nil {
		t.Fatal("expected the error to persist on repeat reads")
	}
}

func TestConfirmDefaultsToNoOnExhaustedInput(t *testing.T) {
	swapStdin(t, "")

	if confirm("Cancel this appointment?") {
		t.Fatal("exhausted input must not count as consent")
	}
}
