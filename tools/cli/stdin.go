package main

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// isStdinPiped checks if stdin is being piped to the program
func isStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin buffers all of stdin so the report can be parsed after the pipe closes
func readStdin() (io.Reader, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.Wrap(err, "error reading from stdin")
	}
	return bytes.NewReader(data), nil
}

// openInput returns the report named by path, or stdin when path is empty and piped
func openInput(path string) (string, io.Reader, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, errors.Wrap(err, "error reading input")
		}
		return path, bytes.NewReader(data), nil
	}
	if !isStdinPiped() {
		return "", nil, errors.New("an input file is required when stdin is not piped")
	}
	r, err := readStdin()
	return "", r, err
}
