package physics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"fendlconv/internal/services"
)

func captureTool(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "CONVERT_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func TestToolConvertACEInvocation(t *testing.T) {
	captured := captureTool(t, "success")

	tool := NewTool(WithBinary("converter"))
	err := tool.ConvertACE(context.Background(), "/in/1001.ace", "/out/H1.h5", LibVerEarliest)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"ace", "--libver", "earliest", "--output", "/out/H1.h5", "/in/1001.ace"}
	if len(*captured) != len(want) {
		t.Fatalf("unexpected args %v", *captured)
	}
	for i, arg := range want {
		if (*captured)[i] != arg {
			t.Fatalf("arg %d = %q, want %q", i, (*captured)[i], arg)
		}
	}
}

func TestToolConvertENDFInvocation(t *testing.T) {
	captured := captureTool(t, "success")

	err := NewTool().ConvertENDF(context.Background(), "/in/H1.endf", "/out/H1.h5", LibVerLatest)
	if err != nil {
		t.Fatal(err)
	}
	if (*captured)[0] != "endf" {
		t.Fatalf("expected endf subcommand, got %v", *captured)
	}
}

func TestToolRejectsBadLibVer(t *testing.T) {
	err := NewTool().ConvertACE(context.Background(), "/in/a.ace", "/out/a.h5", LibVer("newest"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestToolSurfacesFailure(t *testing.T) {
	captureTool(t, "failure")

	err := NewTool().ConvertACE(context.Background(), "/in/a.ace", "/out/a.h5", LibVerEarliest)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("CONVERT_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "conversion failed: unsupported table")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
