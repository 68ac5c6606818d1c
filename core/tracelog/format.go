package tracelog

import (
	"math"
	"strconv"
	"strings"
)

const commandIndent = "  "

// FormatCommand renders cmd(arg1 arg2 ...). Arguments holding a space or a
// newline are wrapped in double quotes; embedded quotes are left as is.
func FormatCommand(cmd string, args []string) string {
	var builder strings.Builder
	builder.WriteString(cmd)
	builder.WriteByte('(')
	for index, arg := range args {
		if index > 0 {
			builder.WriteByte(' ')
		}
		if strings.ContainsAny(arg, " \n") {
			builder.WriteByte('"')
			builder.WriteString(arg)
			builder.WriteByte('"')
			continue
		}
		builder.WriteString(arg)
	}
	builder.WriteByte(')')
	return builder.String()
}

// FileBoundary is the marker emitted when the traced file changes.
func FileBoundary(file string, line int64) string {
	return file + ":" + strconv.FormatInt(line, 10)
}

// CommandLine is the indented rendering of one invocation.
func CommandLine(cmd string, args []string) string {
	return commandIndent + FormatCommand(cmd, args)
}

// TimestampKey converts seconds to whole milliseconds, truncating toward
// zero, and renders the count in base 10. seconds must be finite.
func TimestampKey(seconds float64) string {
	millis := math.Trunc(seconds * 1000)
	if millis == 0 {
		return "0"
	}
	return strconv.FormatFloat(millis, 'f', 0, 64)
}
