package sanitizer

import (
	"fmt"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

type SanitizationErrorCause string

const (
	ErrCauseBrokenDOM           SanitizationErrorCause = "broken dom"
	ErrCauseUnparseableHTML     SanitizationErrorCause = "unparseable html"
	ErrCauseCompetingRoots      SanitizationErrorCause = "competing roots"
	ErrCauseNoStructuralAnchor  SanitizationErrorCause = "no structural anchor"
	ErrCauseMultipleH1NoRoot    SanitizationErrorCause = "multiple h1 no root"
	ErrCauseImpliedMultipleDocs SanitizationErrorCause = "implied multiple docs"
	ErrCauseAmbiguousDOM        SanitizationErrorCause = "ambiguous dom"
)

type SanitizationError struct {
	Message   string
	Retryable bool
	Cause     SanitizationErrorCause
}

func (e *SanitizationError) Error() string {
	return fmt.Sprintf("sanitization error: %s", e.Cause)
}

func (e *SanitizationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSanitizationErrorToMetadataCause maps sanitizer-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSanitizationErrorToMetadataCause(err SanitizationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseBrokenDOM, ErrCauseUnparseableHTML, ErrCauseCompetingRoots, ErrCauseNoStructuralAnchor,
		ErrCauseMultipleH1NoRoot, ErrCauseImpliedMultipleDocs, ErrCauseAmbiguousDOM:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
