package integration_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Common test constants
const (
	TestTimeout      = 60 * time.Second
	ShortTestTimeout = 5 * time.Second
)

func setupTestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// buildCLIBinary compiles cmd/kw3c into a temporary directory.
func buildCLIBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("builds the kw3c binary")
	}

	name := "kw3c-test"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binaryPath := filepath.Join(t.TempDir(), name)

	cmd := exec.Command("go", "build", "-o", binaryPath, "../cmd/kw3c")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI binary: %s", output)
	return binaryPath
}

// installValidator creates <root>/KW3CValidator/KW3C.exe as a shell script
// that records that it ran.
func installValidator(t *testing.T, root string) (validator, marker string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("the fake validator is a shell script")
	}

	dir := filepath.Join(root, "KW3CValidator")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	validator = filepath.Join(dir, "KW3C.exe")
	marker = filepath.Join(dir, "ran")
	script := "#!/bin/sh\necho \"$#\" > '" + marker + "'\n"
	require.NoError(t, os.WriteFile(validator, []byte(script), 0o755))
	return validator, marker
}

// cleanEnv returns the process environment without KW3C_* and locale
// variables, pointing the config directory at dir.
func cleanEnv(dir string, extra ...string) []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "KW3C_") ||
			strings.HasPrefix(kv, "LC_") ||
			strings.HasPrefix(kv, "LANG=") ||
			strings.HasPrefix(kv, "XDG_CONFIG_HOME=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "XDG_CONFIG_HOME="+dir, "LANG=C")
	return append(env, extra...)
}
