package outputwriter

import (
	"fmt"

	"github.com/oss-crawler/webcrawl/pkg/failure"
)

type OutputErrorCause string

const (
	ErrCauseWriteFailure       OutputErrorCause = "write failed"
	ErrCauseFrontmatterInvalid OutputErrorCause = "frontmatter could not be serialized"
)

type OutputError struct {
	Message   string
	Retryable bool
	Cause     OutputErrorCause
	Path      string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("outputwriter error: %s (%s)", e.Cause, e.Path)
}

func (e *OutputError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
