package trace

import _ "embed"

// HeaderKey marks a metadata line that carries no command invocation.
const HeaderKey = "version"

//go:embed record.schema.json
var RecordSchema []byte

// Record is one command invocation line of a trace.
type Record struct {
	File string   `json:"file"`
	Line int64    `json:"line"`
	Time float64  `json:"time"`
	Cmd  string   `json:"cmd"`
	Args []string `json:"args"`
}
