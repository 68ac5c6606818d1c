package tracelog

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"math"

	"github.com/valyala/fastjson"

	coreerrors "github.com/davidahmann/tracelog/core/errors"
	schematrace "github.com/davidahmann/tracelog/core/schema/v1/trace"
	"github.com/davidahmann/tracelog/core/schema/validate"
)

const maxTraceLineBytes = 10 * 1024 * 1024

const malformedHint = "fix or remove the reported trace line and retry"

// Trace is the decoded content of one trace file.
type Trace struct {
	Records        []schematrace.Record
	HeadersSkipped int
}

// IsHeader reports whether a decoded line is a metadata line to be skipped.
func IsHeader(value *fastjson.Value) bool {
	return value != nil && value.Type() == fastjson.TypeObject && value.Exists(schematrace.HeaderKey)
}

// ReadTrace decodes newline-delimited trace records. Header lines are dropped
// wherever they appear. The first malformed line fails the whole read.
func ReadTrace(reader io.Reader) (Trace, error) {
	validator, err := validate.TraceRecord()
	if err != nil {
		return Trace{}, coreerrors.Wrap(err, coreerrors.CategoryInternalFailure, coreerrors.CodeSchemaCompile, "", false)
	}

	var parser fastjson.Parser
	trace := Trace{Records: []schematrace.Record{}}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTraceLineBytes)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		raw := scanner.Bytes()
		value, err := parser.ParseBytes(raw)
		if err != nil {
			return Trace{}, malformedLine(lineNumber, err)
		}
		if IsHeader(value) {
			trace.HeadersSkipped++
			continue
		}
		if err := validator.ValidateJSON(raw); err != nil {
			return Trace{}, malformedLine(lineNumber, err)
		}
		record, err := recordFromValue(value)
		if err != nil {
			return Trace{}, malformedLine(lineNumber, err)
		}
		trace.Records = append(trace.Records, record)
	}
	if err := scanner.Err(); err != nil {
		if stderrors.Is(err, bufio.ErrTooLong) {
			return Trace{}, malformedLine(lineNumber+1, err)
		}
		return Trace{}, coreerrors.IOFailure(fmt.Errorf("read trace: %w", err), coreerrors.CodeTraceRead, "check that the trace file is readable")
	}
	return trace, nil
}

func recordFromValue(value *fastjson.Value) (schematrace.Record, error) {
	line, err := value.Get("line").Int64()
	if err != nil {
		return schematrace.Record{}, fmt.Errorf("line: %w", err)
	}
	seconds, err := value.Get("time").Float64()
	if err != nil {
		return schematrace.Record{}, fmt.Errorf("time: %w", err)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return schematrace.Record{}, fmt.Errorf("time must be finite")
	}
	if math.IsInf(seconds*1000, 0) {
		return schematrace.Record{}, fmt.Errorf("time %g overflows a millisecond count", seconds)
	}
	items, err := value.Get("args").Array()
	if err != nil {
		return schematrace.Record{}, fmt.Errorf("args: %w", err)
	}
	args := make([]string, 0, len(items))
	for index, item := range items {
		arg, err := item.StringBytes()
		if err != nil {
			return schematrace.Record{}, fmt.Errorf("args[%d]: %w", index, err)
		}
		args = append(args, string(arg))
	}
	return schematrace.Record{
		File: string(value.GetStringBytes("file")),
		Line: line,
		Time: seconds,
		Cmd:  string(value.GetStringBytes("cmd")),
		Args: args,
	}, nil
}

func malformedLine(lineNumber int, cause error) error {
	return coreerrors.InvalidInput(fmt.Errorf("trace line %d: %w", lineNumber, cause), coreerrors.CodeTraceMalformed, malformedHint)
}
