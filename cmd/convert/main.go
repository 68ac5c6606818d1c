package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	coreerrors "github.com/davidahmann/tracelog/core/errors"
	"github.com/davidahmann/tracelog/core/projectconfig"
	"github.com/davidahmann/tracelog/core/tracelog"
)

const (
	exitOK              = 0
	exitInternalFailure = 1
	exitUsage           = 1
	exitInvalidInput    = 6
)

type convertOutput struct {
	OK            bool             `json:"ok"`
	Result        *tracelog.Result `json:"result,omitempty"`
	Error         string           `json:"error,omitempty"`
	ErrorCode     string           `json:"error_code,omitempty"`
	ErrorCategory string           `json:"error_category,omitempty"`
	Hint          string           `json:"hint,omitempty"`
}

func main() {
	os.Exit(run(os.Args))
}

const explainText = "Convert a newline-delimited JSON command trace into a millisecond-bucketed JSON log and a flat text log."

func run(arguments []string) int {
	if len(arguments) < 2 {
		printUsage()
		return exitUsage
	}
	return runConvert(arguments[1:])
}

func runConvert(arguments []string) int {
	arguments = reorderInterspersedFlags(arguments, map[string]bool{
		"config":  true,
		"out-dir": true,
	})

	flagSet := flag.NewFlagSet("convert", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var jsonOutput bool
	var verbose bool
	var configPath string
	var outputDir string
	var helpFlag bool
	var explainFlag bool

	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&verbose, "verbose", false, "log conversion progress to stderr")
	flagSet.StringVar(&configPath, "config", "", "path to optional YAML config")
	flagSet.StringVar(&outputDir, "out-dir", "", "write artifacts into this directory")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")
	flagSet.BoolVar(&explainFlag, "explain", false, "describe what convert does")

	if err := flagSet.Parse(arguments); err != nil {
		return writeConvertError(jsonOutput, coreerrors.InvalidInput(err, coreerrors.CodeUsage, ""))
	}
	if helpFlag {
		printUsage()
		return exitOK
	}
	if explainFlag {
		fmt.Println(explainText)
		return exitOK
	}
	remaining := flagSet.Args()
	if len(remaining) == 0 {
		printUsage()
		return exitUsage
	}
	if len(remaining) > 1 {
		return writeConvertError(jsonOutput, coreerrors.InvalidInput(
			fmt.Errorf("expected one input trace path, got %d", len(remaining)), coreerrors.CodeUsage, ""))
	}

	if strings.TrimSpace(configPath) != "" {
		configuration, err := projectconfig.Load(configPath, false)
		if err != nil {
			return writeConvertError(jsonOutput, coreerrors.InvalidInput(err, coreerrors.CodeConfigInvalid, "fix the config file or drop --config"))
		}
		if outputDir == "" {
			outputDir = configuration.Output.Dir
		}
		jsonOutput = jsonOutput || configuration.Output.JSON
		verbose = verbose || configuration.Logging.Verbose
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return writeConvertError(jsonOutput, coreerrors.Wrap(err, coreerrors.CategoryInternalFailure, "logger_init_failed", "", false))
	}
	defer func() {
		_ = logger.Sync()
	}()

	result, err := tracelog.Convert(tracelog.Options{
		InputPath: remaining[0],
		OutputDir: outputDir,
		Logger:    logger,
	})
	if err != nil {
		return writeConvertError(jsonOutput, err)
	}
	return writeConvertOutput(jsonOutput, convertOutput{OK: true, Result: &result}, exitOK)
}

func writeConvertError(jsonOutput bool, err error) int {
	exitCode := exitCodeForError(err, exitInvalidInput)
	return writeConvertOutput(jsonOutput, convertOutput{
		OK:            false,
		Error:         err.Error(),
		ErrorCode:     coreerrors.CodeOf(err),
		ErrorCategory: string(coreerrors.CategoryOf(err)),
		Hint:          coreerrors.HintOf(err),
	}, exitCode)
}

func writeConvertOutput(jsonOutput bool, output convertOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.OK && output.Result != nil {
		fmt.Printf("convert ok: %s\n", output.Result.StructuredPath)
		fmt.Printf("text log: %s\n", output.Result.TextPath)
		return exitCode
	}
	fmt.Fprintf(os.Stderr, "convert error: %s\n", output.Error)
	if output.Hint != "" {
		fmt.Fprintf(os.Stderr, "hint: %s\n", output.Hint)
	}
	return exitCode
}

func printUsage() {
	fmt.Println("Usage: convert <input-trace-file> [--json] [--config <path>] [--out-dir <dir>] [--verbose] [--explain]")
}
