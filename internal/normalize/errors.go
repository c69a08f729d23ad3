package normalize

import (
	"fmt"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

type NormalizationErrorCause string

const (
	ErrCauseBrokenH1Invariant       NormalizationErrorCause = "broken H1 invariant"
	ErrCauseEmptyContent            NormalizationErrorCause = "markdown content is empty"
	ErrCauseBrokenAtomicBlock       NormalizationErrorCause = "heading inside atomic block"
	ErrCauseOrphanContent           NormalizationErrorCause = "content before first H1"
	ErrCauseSkippedHeadingLevels    NormalizationErrorCause = "heading level skipped"
	ErrCauseHashComputationFailed   NormalizationErrorCause = "hash computation failed"
	ErrCauseSectionDerivationFailed NormalizationErrorCause = "section derivation failed"
	ErrCauseTitleExtractionFailed   NormalizationErrorCause = "title extraction failed"
)

type NormalizationError struct {
	Message   string
	Retryable bool
	Cause     NormalizationErrorCause
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error: %s", e.Cause)
}

func (e *NormalizationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapNormalizationErrorToMetadataCause maps normalize-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapNormalizationErrorToMetadataCause(err NormalizationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseBrokenH1Invariant, ErrCauseBrokenAtomicBlock, ErrCauseOrphanContent, ErrCauseSkippedHeadingLevels:
		return metadata.CauseInvariantViolation
	case ErrCauseEmptyContent, ErrCauseSectionDerivationFailed, ErrCauseTitleExtractionFailed:
		return metadata.CauseContentInvalid
	case ErrCauseHashComputationFailed:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
