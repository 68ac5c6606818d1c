package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestRepoRootContainsGoMod(t *testing.T) {
	root := RepoRoot(t)
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("expected go.mod under repo root %s: %v", root, err)
	}
}

func TestWriteFileCopyFileAndRead(t *testing.T) {
	workDir := t.TempDir()
	source := filepath.Join(workDir, "nested", "trace.json")
	WriteFile(t, source, []byte(`{"version":1}`))
	target := filepath.Join(workDir, "copy", "trace.json")
	CopyFile(t, source, target)
	if got := string(MustReadFile(t, target)); got != `{"version":1}` {
		t.Fatalf("unexpected copied content: %q", got)
	}
}

func TestAssertGoldenFileMatches(t *testing.T) {
	AssertGoldenFile(t, "internal/e2e/testdata/cmake_trace.golden.txt", MustReadFile(t, filepath.Join(RepoRoot(t), "internal", "e2e", "testdata", "cmake_trace.golden.txt")))
}

func TestCommandExitCode(t *testing.T) {
	if CommandExitCode(t, nil) != 0 {
		t.Fatalf("nil error must map to exit 0")
	}
	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcessExit$")
	cmd.Env = append(os.Environ(), "TRACELOG_HELPER_EXIT=1")
	err := cmd.Run()
	if code := CommandExitCode(t, err); code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
}

func TestHelperProcessExit(t *testing.T) {
	if os.Getenv("TRACELOG_HELPER_EXIT") != "1" {
		return
	}
	os.Exit(3)
}
