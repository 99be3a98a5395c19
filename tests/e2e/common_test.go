package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildQuillBinary builds the quill binary in the specified directory and returns its path.
func buildQuillBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "quill.exe")
	// Assumes tests are running from tests/e2e.
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/quill")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build quill: %v\n%s", err, string(out))
	}
	return bin
}

// runCmd runs the binary in dir and returns stdout. It fails the test on a
// non-zero exit.
func runCmd(t *testing.T, dir string, bin string, args ...string) string {
	t.Helper()
	out, err := runCmdErr(dir, bin, args...)
	if err != nil {
		t.Fatalf("quill %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func runCmdErr(dir string, bin string, args ...string) (string, error) {
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "QUILL_PATH=")
	out, err := cmd.CombinedOutput()
	return string(out), err
}
