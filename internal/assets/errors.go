package assets

import (
	"fmt"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

type AssetsErrorCause string

const (
	ErrCauseImageDownloadFailure  = "failed to download image"
	ErrCauseNetworkFailure        = "network failure"
	ErrCauseRequest5xx            = "server error"
	ErrCauseRequestTooMany        = "too many requests"
	ErrCauseRequestPageForbidden  = "request forbidden"
	ErrCauseRedirectLimitExceeded = "redirect limit exceeded"
	ErrCauseReadResponseBodyError = "failed to read response body"
	ErrCauseAssetTooLarge         = "asset exceeds max size"
	ErrCauseDiskFull              = "disk full"
	ErrCauseWriteFailure          = "failed to write asset"
	ErrCausePathError             = "asset directory path error"
	ErrCauseHashError             = "failed to hash asset content"
)

type AssetsError struct {
	Message   string
	Retryable bool
	Cause     AssetsErrorCause
}

func (e *AssetsError) Error() string {
	return fmt.Sprintf("assets error: %s", e.Cause)
}

func (e *AssetsError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapAssetsErrorToMetadataCause maps assets-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapAssetsErrorToMetadataCause(err AssetsError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseImageDownloadFailure, ErrCauseNetworkFailure, ErrCauseRequest5xx,
		ErrCauseRequestTooMany, ErrCauseRedirectLimitExceeded, ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	case ErrCauseRequestPageForbidden:
		return metadata.CausePolicyDisallow
	case ErrCauseAssetTooLarge:
		return metadata.CauseContentInvalid
	case ErrCauseDiskFull, ErrCauseWriteFailure, ErrCausePathError:
		return metadata.CauseStorageFailure
	case ErrCauseHashError:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
