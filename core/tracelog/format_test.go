package tracelog

import (
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatCommand(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{name: "no_args", cmd: "sync", args: nil, want: "sync()"},
		{name: "single", cmd: "open", args: []string{"a.c"}, want: "open(a.c)"},
		{name: "space_joined", cmd: "read", args: []string{"fd", "1024"}, want: "read(fd 1024)"},
		{name: "space_quoted", cmd: "echo", args: []string{"hello world"}, want: `echo("hello world")`},
		{name: "newline_quoted", cmd: "write", args: []string{"a\nb", "x"}, want: "write(\"a\nb\" x)"},
		{name: "quote_not_escaped", cmd: "say", args: []string{`he said "hi" now`}, want: `say("he said "hi" now")`},
		{name: "tab_not_quoted", cmd: "tab", args: []string{"a\tb"}, want: "tab(a\tb)"},
		{name: "empty_arg", cmd: "set", args: []string{"", "v"}, want: "set( v)"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatCommand(testCase.cmd, testCase.args); got != testCase.want {
				t.Fatalf("FormatCommand: got %q want %q", got, testCase.want)
			}
		})
	}
}

func TestFormatCommandLeavesArgsUntouched(t *testing.T) {
	args := []string{"hello world", "x"}
	_ = FormatCommand("echo", args)
	if diff := cmp.Diff([]string{"hello world", "x"}, args); diff != "" {
		t.Fatalf("args mutated (-want +got):\n%s", diff)
	}
}

func TestCommandLineAndFileBoundary(t *testing.T) {
	if got := CommandLine("open", []string{"a.c"}); got != "  open(a.c)" {
		t.Fatalf("unexpected command line: %q", got)
	}
	if got := FileBoundary("src/a.c", 42); got != "src/a.c:42" {
		t.Fatalf("unexpected boundary: %q", got)
	}
}

func TestTimestampKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		seconds float64
		want    string
	}{
		{seconds: 0, want: "0"},
		{seconds: 0.001, want: "1"},
		{seconds: 0.0019, want: "1"},
		{seconds: 1.5, want: "1500"},
		{seconds: 12.3456, want: "12345"},
		{seconds: -0.0004, want: "0"},
		{seconds: -1.0019, want: "-1001"},
		{seconds: 1700000000.5, want: "1700000000500"},
		{seconds: 1e20, want: "100000000000000000000"},
	}
	for _, testCase := range testCases {
		if got := TimestampKey(testCase.seconds); got != testCase.want {
			t.Fatalf("TimestampKey(%v): got %q want %q", testCase.seconds, got, testCase.want)
		}
	}
}

func TestTimestampKeyMatchesTruncation(t *testing.T) {
	for _, seconds := range []float64{0.1, 0.2, 0.3, 2.675, 1234.5678} {
		want := int64(math.Trunc(seconds * 1000))
		got := TimestampKey(seconds)
		if got != strconv.FormatInt(want, 10) {
			t.Fatalf("TimestampKey(%v): got %q want %d", seconds, got, want)
		}
	}
}
