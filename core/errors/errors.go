package errors

import "errors"

type Category string

const (
	CategoryInvalidInput    Category = "invalid_input"
	CategoryIOFailure       Category = "io_failure"
	CategoryInternalFailure Category = "internal_failure"
)

const (
	CodeUsage          = "usage"
	CodeConfigInvalid  = "config_invalid"
	CodeTraceMalformed = "trace_malformed"
	CodeTraceRead      = "trace_read_failed"
	CodeArtifactWrite  = "artifact_write_failed"
	CodeEncodeFailed   = "encode_failed"
	CodeSchemaCompile  = "schema_compile_failed"
)

type classifiedError struct {
	category  Category
	code      string
	hint      string
	retryable bool
	cause     error
}

func (e *classifiedError) Error() string {
	if e.cause == nil {
		return "unknown error"
	}
	return e.cause.Error()
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

func (e *classifiedError) Category() Category {
	return e.category
}

func (e *classifiedError) Code() string {
	return e.code
}

func (e *classifiedError) Hint() string {
	return e.hint
}

func (e *classifiedError) Retryable() bool {
	return e.retryable
}

// Wrap attaches a category, a stable machine code and an operator hint to
// cause. A nil cause stays nil so call sites can wrap unconditionally.
func Wrap(cause error, category Category, code, hint string, retryable bool) error {
	if cause == nil {
		return nil
	}
	return &classifiedError{
		category:  category,
		code:      code,
		hint:      hint,
		retryable: retryable,
		cause:     cause,
	}
}

// InvalidInput classifies a malformed trace, bad flag or bad config value.
func InvalidInput(cause error, code, hint string) error {
	return Wrap(cause, CategoryInvalidInput, code, hint, false)
}

// IOFailure classifies an unreadable input or unwritable artifact.
func IOFailure(cause error, code, hint string) error {
	return Wrap(cause, CategoryIOFailure, code, hint, false)
}

func CategoryOf(err error) Category {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.category
	}
	return ""
}

func CodeOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.code
	}
	return ""
}

func HintOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.hint
	}
	return ""
}

func RetryableOf(err error) bool {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.retryable
	}
	return false
}
