package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// makeStubConverter writes an executable that creates the file named by the
// --output argument and exits cleanly.
func makeStubConverter(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "stub-convert")
	script := `#!/bin/sh
while [ $# -gt 0 ]; do
    if [ "$1" = "--output" ]; then
        : > "$2"
        shift
    fi
    shift
done
exit 0
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub converter: %v", err)
	}
	return path
}

func writeTestConfig(t *testing.T, base, toolBinary string) string {
	t.Helper()
	content := fmt.Sprintf(`
[paths]
work_dir = %q
ledger_path = %q
lock_path = %q
destination_dir = %q

[library]
release = "3.0"
particles = ["neutron"]

[download]
enabled = false
progress = false

[extract]
enabled = false

[convert]
tool_binary = %q

[logging]
level = "error"
`,
		filepath.Join(base, "work"),
		filepath.Join(base, "ledger.db"),
		filepath.Join(base, "run.lock"),
		filepath.Join(base, "library"),
		toolBinary,
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunCommandConvertsStagedFiles(t *testing.T) {
	base := t.TempDir()
	tool := makeStubConverter(t, base)
	configPath := writeTestConfig(t, base, tool)

	staging := filepath.Join(base, "work", "fendl-3.0-ace", "ace")
	if err := os.MkdirAll(staging, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"1001.ace":    "1001.70c  0.999167  2.5301E-08\n",
		"19K_039.ace": "19039.70c header\n 1.0 Inf 3.0\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(staging, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, _, err := runCLI(t, configPath, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Library written to") {
		t.Fatalf("missing completion line: %q", out)
	}
	if !strings.Contains(out, "WARNING") || !strings.Contains(out, "19K_039.ace") {
		t.Fatalf("missing defect warning: %q", out)
	}

	if _, err := os.Stat(filepath.Join(base, "library", "neutron", "H1.h5")); err != nil {
		t.Fatalf("missing converted container: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "library", "cross_sections.xml")); err != nil {
		t.Fatalf("missing library index: %v", err)
	}

	out, _, err = runCLI(t, configPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out, "3.0") || !strings.Contains(out, "neutron") {
		t.Fatalf("runs listing missing entry: %q", out)
	}
}

func TestRunCommandRejectsUnknownRelease(t *testing.T) {
	base := t.TempDir()
	tool := makeStubConverter(t, base)
	configPath := writeTestConfig(t, base, tool)

	_, _, err := runCLI(t, configPath, "run", "--release", "9.9")
	if err == nil {
		t.Fatal("expected error for unknown release")
	}
	if !strings.Contains(err.Error(), "library.release") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("init output missing path: %q", out)
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}

	out, _, err = runCLI(t, target, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[library]") || !strings.Contains(out, "release") {
		t.Fatalf("show output missing sections: %q", out)
	}
}

func TestHelpListsCommands(t *testing.T) {
	out, _, err := runCLI(t, "", "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	if !strings.Contains(out, "run") || !strings.Contains(out, "config") {
		t.Fatalf("help missing commands: %q", out)
	}
}
