package scheduler

import (
	"github.com/oss-crawler/webcrawl/internal/outputwriter"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// CrawlingExecution is the result of a completed crawl run.
type CrawlingExecution struct {
	WriteResults []outputwriter.WriteResult
}

// PipelineOutcome classifies how a pipeline-stage error should be treated
// once the stage itself has already recorded it to the metadata sink:
// Continue means keep crawling (the page itself may still be skipped),
// Abort means the error is fatal to the whole run.
type PipelineOutcome struct {
	Continue bool
	Abort    bool
}

// classifyOutcome turns a stage's ClassifiedError into a PipelineOutcome. A
// nil error always continues; a fatal error aborts the crawl; anything else
// is recoverable and only costs the current page.
func classifyOutcome(err failure.ClassifiedError) PipelineOutcome {
	if err == nil {
		return PipelineOutcome{Continue: true}
	}
	if err.Severity() == failure.SeverityFatal {
		return PipelineOutcome{Abort: true}
	}
	return PipelineOutcome{Continue: true}
}
