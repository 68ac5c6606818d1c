package tracelog

import (
	"path/filepath"
	"strings"
)

// TextSuffix is appended to the structured artifact path to name the flat log.
const TextSuffix = ".txt"

// Outputs names the two artifacts produced for one trace.
type Outputs struct {
	Structured string
	Text       string
}

// OutputName inserts ".log" before the last extension of input, or appends it
// when input has no dot. The last dot anywhere in the string counts, so a dot
// in a directory component is treated the same way.
func OutputName(input string) string {
	dot := strings.LastIndex(input, ".")
	if dot < 0 {
		dot = len(input)
	}
	return input[:dot] + ".log" + input[dot:]
}

// ResolveOutputs derives both artifact paths for input. With a non-empty
// outputDir the derived basename is placed there instead of beside input.
func ResolveOutputs(input, outputDir string) Outputs {
	structured := OutputName(input)
	if dir := strings.TrimSpace(outputDir); dir != "" {
		structured = filepath.Join(dir, OutputName(filepath.Base(input)))
	}
	return Outputs{
		Structured: structured,
		Text:       structured + TextSuffix,
	}
}
