package tracelog

import (
	schematrace "github.com/davidahmann/tracelog/core/schema/v1/trace"
)

// Builder accumulates the time-bucketed and flat logs for one trace. It is
// owned by a single caller and not safe for concurrent use.
type Builder struct {
	currentFile string
	seenFile    bool
	timeline    *Timeline
	lines       []string
	records     int
	boundaries  int
}

func NewBuilder() *Builder {
	return &Builder{timeline: NewTimeline()}
}

// Add appends the lines for one record: a file boundary marker when the
// record's file differs from the previous record's, then the command line.
func (b *Builder) Add(record schematrace.Record) {
	key := TimestampKey(record.Time)
	if !b.seenFile || record.File != b.currentFile {
		b.seenFile = true
		b.currentFile = record.File
		b.boundaries++
		b.append(key, FileBoundary(record.File, record.Line))
	}
	b.append(key, CommandLine(record.Cmd, record.Args))
	b.records++
}

func (b *Builder) append(key, line string) {
	b.timeline.Append(key, line)
	b.lines = append(b.lines, line)
}

func (b *Builder) Timeline() *Timeline {
	return b.timeline
}

func (b *Builder) Lines() []string {
	return append([]string(nil), b.lines...)
}

func (b *Builder) Records() int {
	return b.records
}

func (b *Builder) Boundaries() int {
	return b.boundaries
}
