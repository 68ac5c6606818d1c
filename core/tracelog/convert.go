package tracelog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	coreerrors "github.com/davidahmann/tracelog/core/errors"
	"github.com/davidahmann/tracelog/core/fsx"
	"github.com/davidahmann/tracelog/core/jcs"
)

const artifactMode os.FileMode = 0o644

type Options struct {
	InputPath string
	OutputDir string
	Logger    *zap.Logger
}

// Result summarizes one conversion. It carries no wall-clock data so two runs
// over the same input compare equal.
type Result struct {
	InputPath      string `json:"input_path"`
	StructuredPath string `json:"structured_path"`
	TextPath       string `json:"text_path"`
	Records        int    `json:"records"`
	HeadersSkipped int    `json:"headers_skipped"`
	FileBoundaries int    `json:"file_boundaries"`
	Lines          int    `json:"lines"`
	Buckets        int    `json:"buckets"`
	ContentDigest  string `json:"content_digest"`
}

// Rendered holds both artifacts for a trace, ready to be written.
type Rendered struct {
	Structured     []byte
	Text           []byte
	Records        int
	FileBoundaries int
	Lines          int
	Buckets        int
	ContentDigest  string
}

// Render builds the time-bucketed and flat logs for trace and serializes them.
func Render(trace Trace) (Rendered, error) {
	builder := NewBuilder()
	for _, record := range trace.Records {
		builder.Add(record)
	}
	timeline := builder.Timeline()
	lines := builder.Lines()

	structured, err := timeline.Indented()
	if err != nil {
		return Rendered{}, encodeFailure(err)
	}
	digest, err := contentDigest(timeline, lines)
	if err != nil {
		return Rendered{}, encodeFailure(err)
	}
	return Rendered{
		Structured:     structured,
		Text:           []byte(strings.Join(lines, "\n")),
		Records:        builder.Records(),
		FileBoundaries: builder.Boundaries(),
		Lines:          len(lines),
		Buckets:        timeline.Len(),
		ContentDigest:  digest,
	}, nil
}

// contentDigest hashes the canonical form of the flat lines, the timeline
// buckets and the bucket key order. Canonical JSON sorts object members, so
// the order is carried separately in "keys".
func contentDigest(timeline *Timeline, lines []string) (string, error) {
	compact, err := timeline.MarshalJSON()
	if err != nil {
		return "", err
	}
	return jcs.DigestValue(map[string]any{
		"keys":     timeline.Keys(),
		"lines":    lines,
		"timeline": json.RawMessage(compact),
	})
}

// Convert reads the trace at options.InputPath and writes the structured log
// and the flat text log next to it, or into options.OutputDir.
func Convert(options Options) (Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	inputPath := options.InputPath
	if strings.TrimSpace(inputPath) == "" {
		return Result{}, coreerrors.InvalidInput(fmt.Errorf("input trace path is required"), coreerrors.CodeUsage, "pass the trace file to convert")
	}

	// #nosec G304 -- input path is explicit local user input.
	file, err := os.Open(inputPath)
	if err != nil {
		return Result{}, coreerrors.IOFailure(fmt.Errorf("open trace: %w", err), coreerrors.CodeTraceRead, "check that the trace file exists and is readable")
	}
	trace, err := ReadTrace(file)
	_ = file.Close()
	if err != nil {
		return Result{}, err
	}
	logger.Debug("decoded trace",
		zap.String("input", inputPath),
		zap.Int("records", len(trace.Records)),
		zap.Int("headers_skipped", trace.HeadersSkipped))

	rendered, err := Render(trace)
	if err != nil {
		return Result{}, err
	}
	outputs := ResolveOutputs(inputPath, options.OutputDir)
	if err := fsx.WriteArtifacts([]fsx.Artifact{
		{Path: outputs.Structured, Content: rendered.Structured, Mode: artifactMode},
		{Path: outputs.Text, Content: rendered.Text, Mode: artifactMode},
	}); err != nil {
		return Result{}, coreerrors.IOFailure(err, coreerrors.CodeArtifactWrite, "check that the output directory is writable")
	}
	logger.Debug("wrote artifacts",
		zap.String("structured", outputs.Structured),
		zap.String("text", outputs.Text),
		zap.Int("buckets", rendered.Buckets),
		zap.Int("lines", rendered.Lines))

	return Result{
		InputPath:      inputPath,
		StructuredPath: outputs.Structured,
		TextPath:       outputs.Text,
		Records:        rendered.Records,
		HeadersSkipped: trace.HeadersSkipped,
		FileBoundaries: rendered.FileBoundaries,
		Lines:          rendered.Lines,
		Buckets:        rendered.Buckets,
		ContentDigest:  rendered.ContentDigest,
	}, nil
}

func encodeFailure(err error) error {
	return coreerrors.Wrap(fmt.Errorf("encode log: %w", err), coreerrors.CategoryInternalFailure, coreerrors.CodeEncodeFailed, "", false)
}
