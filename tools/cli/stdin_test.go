package main

import (
	"io"
	"os"
	"testing"
)

func TestIsStdinPiped(t *testing.T) {
	if isStdinPiped() {
		t.Error("IsStdinPiped() returned true when stdin is not piped")
	}
}

func TestOpenInputFromPipe(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "single report line",
			input: "Sensor at x=2, y=18: closest beacon is at x=-2, y=15\n",
		},
		{
			name:  "multiple lines without trailing newline",
			input: "1 2 3 4\n5 6 7 8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save original stdin and restore it after the test
			oldStdin := os.Stdin
			defer func() { os.Stdin = oldStdin }()

			r, w, err := os.Pipe()
			if err != nil {
				t.Fatalf("Failed to create pipe: %v", err)
			}
			os.Stdin = r

			go func() {
				defer func() {
					_ = w.Close()
				}()
				if _, err := w.Write([]byte(tt.input)); err != nil {
					t.Errorf("Failed to write to pipe: %v", err)
				}
			}()

			name, input, err := openInput("")
			if err != nil {
				t.Fatalf("openInput() error = %v", err)
			}
			if name != "" {
				t.Errorf("openInput() name = %q, want empty for stdin", name)
			}
			got, err := io.ReadAll(input)
			if err != nil {
				t.Fatalf("reading input: %v", err)
			}
			if string(got) != tt.input {
				t.Errorf("openInput() read %q, want %q", got, tt.input)
			}
		})
	}
}

func TestOpenInputFromFile(t *testing.T) {
	name, input, err := openInput("testdata/example.txt")
	if err != nil {
		t.Fatalf("openInput() error = %v", err)
	}
	if name != "testdata/example.txt" {
		t.Errorf("openInput() name = %q", name)
	}
	data, _ := io.ReadAll(input)
	if len(data) == 0 {
		t.Error("expected file contents")
	}

	if _, _, err := openInput("testdata/missing.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpenInputRequiresFileWithoutPipe(t *testing.T) {
	if _, _, err := openInput(""); err == nil {
		t.Error("expected error when no file is given and stdin is a terminal")
	}
}
