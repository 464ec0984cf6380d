package test_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI builds the sbom-snapshot CLI binary for testing
func buildCLI(t *testing.T) string {
	t.Helper()

	// Use a shared build directory
	buildDir := filepath.Join("..", "test-dist", "cli-bin")
	if err := os.MkdirAll(buildDir, 0750); err != nil {
		t.Fatalf("Failed to create build dir: %v", err)
	}

	cliPath, err := filepath.Abs(filepath.Join(buildDir, "sbom-snapshot"))
	if err != nil {
		t.Fatalf("Failed to resolve CLI path: %v", err)
	}

	// Check if already built
	if _, err := os.Stat(cliPath); err == nil {
		return cliPath
	}

	t.Log("Building sbom-snapshot CLI...")
	cmd := exec.Command("go", "build", "-o", cliPath, "../cmd/sbom-snapshot") // #nosec G204 -- test code with controlled input
	cmd.Dir = filepath.Join("..", "test")

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, output)
	}

	t.Log("CLI built successfully")
	return cliPath
}

// runCLI runs the binary and returns its combined output and exit code
func runCLI(t *testing.T, cliPath, dir string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(cliPath, args...) // #nosec G204 -- test code with controlled input
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), exitErr.ExitCode()
		}
		t.Fatalf("Failed to run CLI: %v", err)
	}
	return string(output), 0
}

// TestCLI_Help tests help output for all commands
func TestCLI_Help(t *testing.T) {
	cliPath := buildCLI(t)

	commands := []struct {
		name     string
		contains string
	}{
		{name: "", contains: "sbom-snapshot"},
		{name: "run", contains: "--config"},
		{name: "scan", contains: "--output"},
		{name: "find", contains: "--pattern"},
		{name: "verify", contains: "--key"},
	}

	for _, tc := range commands {
		t.Run("help_"+tc.name, func(t *testing.T) {
			args := []string{"--help"}
			if tc.name != "" {
				args = []string{tc.name, "--help"}
			}

			output, code := runCLI(t, cliPath, t.TempDir(), args...)
			if code != 0 {
				t.Fatalf("help exited with %d: %s", code, output)
			}
			if !strings.Contains(output, tc.contains) {
				t.Errorf("help output missing %q:\n%s", tc.contains, output)
			}
		})
	}
}

// TestCLI_Find tests Dockerfile discovery on a real tree
func TestCLI_Find(t *testing.T) {
	cliPath := buildCLI(t)
	root := t.TempDir()

	for _, rel := range []string{"Dockerfile", "svc/Dockerfile.prod", "svc/main.go"} {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("FROM scratch\n"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	output, code := runCLI(t, cliPath, root, "find")
	if code != 0 {
		t.Fatalf("find exited with %d: %s", code, output)
	}

	lines := strings.Fields(output)
	if len(lines) != 2 || lines[0] != "Dockerfile" || lines[1] != "svc/Dockerfile.prod" {
		t.Errorf("find output = %q, want [Dockerfile svc/Dockerfile.prod]", lines)
	}

	output, code = runCLI(t, cliPath, root, "find", "--pattern", "svc/main")
	if code != 0 || strings.TrimSpace(output) != "svc/main.go" {
		t.Errorf("find --pattern output = %q (exit %d)", output, code)
	}
}

// TestCLI_Errors tests that invalid invocations fail with a non-zero exit
func TestCLI_Errors(t *testing.T) {
	cliPath := buildCLI(t)

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "unknown command", args: []string{"explode"}, contains: "unknown command"},
		{name: "invalid config", args: []string{"run", "-c", `{"token": `}, contains: "failed to parse configuration"},
		{name: "scan output", args: []string{"scan", "--output", "xml"}, contains: "unsupported output"},
		{name: "verify without key", args: []string{"verify", "report.json"}, contains: "key"},
		{name: "verify bad report name", args: []string{"verify", "report.json", "--key", "/nonexistent.asc"}, contains: "not a report file name"},
		{name: "verify missing key file", args: []string{"verify", "report.json", "--key", "/nonexistent.asc", "--skip-checksum"}, contains: "failed to open key file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, code := runCLI(t, cliPath, t.TempDir(), tt.args...)
			if code == 0 {
				t.Fatalf("expected failure, got success: %s", output)
			}
			if !strings.Contains(output, tt.contains) {
				t.Errorf("output missing %q:\n%s", tt.contains, output)
			}
		})
	}
}
