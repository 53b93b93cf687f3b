package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/multimediallc/sensor-coverage/internal/app"
	"github.com/multimediallc/sensor-coverage/internal/config"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cliApp := newApp()
	cliApp.Writer = &stdout
	cliApp.ErrWriter = &stderr
	err := cliApp.Run(append([]string{"sensorcover-cli"}, args...))
	return stdout.String(), stderr.String(), err
}

func setupConfigDir(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "excluded with row flag",
			args: []string{"excluded", "--row", "10", "testdata/example.txt"},
			want: "26\n",
		},
		{
			name: "signal with bound flag",
			args: []string{"signal", "-b", "20", "testdata/example.txt"},
			want: "56000011\n",
		},
		{
			name: "signal with workers",
			args: []string{"signal", "-b", "20", "-w", "3", "testdata/example.txt"},
			want: "56000011\n",
		},
		{
			name: "intervals one-line",
			args: []string{"intervals", "-r", "10", "-f", "one-line", "testdata/example.txt"},
			want: "row 10: [-2, 24] excluded=26\n",
		},
		{
			name: "solve default format",
			args: []string{"solve", "--row", "10", "--bound", "20", "testdata/example.txt"},
			want: "26\n56000011\n",
		},
		{
			name: "verify",
			args: []string{"verify", "testdata/example.txt"},
			want: "testdata/example.txt: 14 sensors, 6 distinct beacons\n",
		},
		{
			name:    "invalid format",
			args:    []string{"intervals", "-f", "xml", "testdata/example.txt"},
			wantErr: true,
		},
		{
			name:    "missing input file",
			args:    []string{"excluded", "testdata/missing.txt"},
			wantErr: true,
		},
		{
			name:    "fully covered square",
			args:    []string{"signal", "-b", "20", "testdata/covered.txt"},
			wantErr: true,
		},
		{
			name:    "negative bound",
			args:    []string{"signal", "-b", "-1", "testdata/example.txt"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := runCLI(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("run %v error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("run %v = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestConfigFileSuppliesDefaults(t *testing.T) {
	dir := setupConfigDir(t, `
row = 10
bound = 20
[output]
format = "json"
`)
	got, _, err := runCLI(t, "solve", "--config", dir, "testdata/example.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var output app.OutputData
	if err := json.Unmarshal([]byte(got), &output); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", got, err)
	}
	if output.Excluded != 26 || output.Signal != 56_000_011 || !output.Success {
		t.Errorf("unexpected output %+v", output)
	}
	if output.Position == nil || output.Position.X != 14 || output.Position.Y != 11 {
		t.Errorf("expected position (14, 11), got %v", output.Position)
	}

	// flags win over the config file
	got, _, err = runCLI(t, "excluded", "--config", dir, "--row", "11", "testdata/example.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "26\n" {
		t.Errorf("expected row flag to override config row, got %q", got)
	}
}

func TestBatchCommand(t *testing.T) {
	example, err := os.ReadFile("testdata/example.txt")
	if err != nil {
		t.Fatalf("failed to read example: %v", err)
	}
	root := t.TempDir()
	for name, content := range map[string]string{
		"one.txt":      string(example),
		"nested/2.txt": string(example),
		"skip/3.txt":   "garbage\n",
	} {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	got, _, err := runCLI(t, "batch", "-r", "10", "-b", "20", "-f", "one-line", "--ignore", "skip/**", root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "nested/2.txt: excluded=26 signal=56000011\none.txt: excluded=26 signal=56000011\n"
	if got != want {
		t.Errorf("batch output = %q, want %q", got, want)
	}

	got, _, err = runCLI(t, "batch", "-r", "10", "-b", "20", "-f", "one-line", root)
	if err == nil || !strings.Contains(err.Error(), "1 of 3 reports failed") {
		t.Errorf("expected one failed report, got %v", err)
	}
	if !strings.Contains(got, "skip/3.txt") {
		t.Errorf("expected failed report in output, got %q", got)
	}

	if _, _, err := runCLI(t, "batch", filepath.Join(root, "one.txt")); err == nil {
		t.Error("expected error when the batch root is a file")
	}
}
