package e2e

import (
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davidahmann/tracelog/internal/testutil"
)

func TestCLIConvertMatchesGoldens(t *testing.T) {
	root := testutil.RepoRoot(t)
	binPath := testutil.BuildConvertBinary(t, root)

	for _, fixture := range []string{"cmake_trace", "unicode_trace"} {
		fixture := fixture
		t.Run(fixture, func(t *testing.T) {
			workDir := t.TempDir()
			input := filepath.Join(workDir, fixture+".json")
			testutil.CopyFile(t, filepath.Join(root, "internal", "e2e", "testdata", fixture+".json"), input)

			convert := exec.Command(binPath, input)
			convert.Dir = workDir
			out, err := convert.CombinedOutput()
			if err != nil {
				t.Fatalf("convert failed: %v\n%s", err, string(out))
			}
			if !strings.Contains(string(out), "convert ok:") {
				t.Fatalf("unexpected convert output: %s", string(out))
			}

			structuredPath := filepath.Join(workDir, fixture+".log.json")
			textPath := structuredPath + ".txt"
			structured := testutil.MustReadFile(t, structuredPath)
			text := testutil.MustReadFile(t, textPath)
			testutil.AssertGoldenFile(t, "internal/e2e/testdata/"+fixture+".golden.json", structured)
			testutil.AssertGoldenFile(t, "internal/e2e/testdata/"+fixture+".golden.txt", text)

			rerun := exec.Command(binPath, fixture+".json")
			rerun.Dir = workDir
			if out, err := rerun.CombinedOutput(); err != nil {
				t.Fatalf("second convert failed: %v\n%s", err, string(out))
			}
			if string(testutil.MustReadFile(t, structuredPath)) != string(structured) {
				t.Fatalf("structured artifact changed across runs")
			}
			if string(testutil.MustReadFile(t, textPath)) != string(text) {
				t.Fatalf("text artifact changed across runs")
			}
		})
	}
}

func TestCLIUsageExitCode(t *testing.T) {
	root := testutil.RepoRoot(t)
	binPath := testutil.BuildConvertBinary(t, root)

	usage := exec.Command(binPath)
	out, err := usage.Output()
	if code := testutil.CommandExitCode(t, err); code != 1 {
		t.Fatalf("expected exit 1 without input, got %d", code)
	}
	if !strings.HasPrefix(string(out), "Usage: convert") {
		t.Fatalf("expected usage on stdout, got %q", string(out))
	}
}

func TestCLIMalformedTraceJSON(t *testing.T) {
	root := testutil.RepoRoot(t)
	binPath := testutil.BuildConvertBinary(t, root)

	workDir := t.TempDir()
	input := filepath.Join(workDir, "broken.json")
	testutil.WriteFile(t, input, []byte("{\"version\":1}\n{\"file\":\"a.c\",\"line\":1}\n"))

	convert := exec.Command(binPath, "--json", input)
	out, err := convert.Output()
	if code := testutil.CommandExitCode(t, err); code != 6 {
		t.Fatalf("expected exit 6 for malformed trace, got %d", code)
	}
	var result struct {
		OK        bool   `json:"ok"`
		Error     string `json:"error"`
		ErrorCode string `json:"error_code"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("parse json output: %v\n%s", err, string(out))
	}
	if result.OK || result.ErrorCode != "trace_malformed" || !strings.Contains(result.Error, "trace line 2") {
		t.Fatalf("unexpected result: %s", string(out))
	}
}
