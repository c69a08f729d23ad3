package llm

import (
	"fmt"

	"github.com/oss-crawler/webcrawl/pkg/failure"
)

type LLMErrorCause string

const (
	// ErrCauseUnsupportedProvider means the configured provider name has no
	// registered endpoint. This is a configuration error: fatal, never
	// retried.
	ErrCauseUnsupportedProvider LLMErrorCause = "unsupported provider"
	// ErrCauseInvocation means the provider was reached but returned a
	// malformed response or a non-2xx status.
	ErrCauseInvocation LLMErrorCause = "invocation failed"
	// ErrCauseTimeout means the call site's resolved timeout elapsed before
	// the provider responded.
	ErrCauseTimeout LLMErrorCause = "timed out"
)

// LLMError is the single error type every Provider implementation returns.
// Severity is always Recoverable except for ErrCauseUnsupportedProvider,
// which can never succeed on retry.
type LLMError struct {
	Message  string
	Cause    LLMErrorCause
	CallSite CallSite
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm %s [%s]: %s", e.Cause, e.CallSite, e.Message)
}

func (e *LLMError) Severity() failure.Severity {
	if e.Cause == ErrCauseUnsupportedProvider {
		return failure.SeverityFatal
	}
	return failure.SeverityRecoverable
}
