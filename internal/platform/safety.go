package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolvePath determines the actual notes location based on safety rules.
// When forceTemp is set, paths outside the system temp directory are
// re-rooted under <tmp>/quill-dev so real notes are never touched.
func ResolvePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		return userPath
	}

	clean := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), clean)
	if err == nil && filepath.IsAbs(clean) && !strings.HasPrefix(rel, "..") {
		// Already sandboxed (e.g. t.TempDir()).
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(os.PathSeparator) {
		name = DefaultFileName
	}
	return filepath.Join(os.TempDir(), "quill-dev", name)
}
