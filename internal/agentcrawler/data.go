package agentcrawler

import (
	"time"

	"github.com/oss-crawler/webcrawl/internal/linkextract"
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/internal/outputwriter"
)

/*
Responsibilities

- Hold the crawler's temporary, single-owner scratch storage: pages the
  model has fetched but not yet decided to keep or discard
- Record the permanent outcome of every page the loop touches: stored,
  or skipped with a reason

Agent mode never writes a page to disk on fetch - only storePage does
that - so tempEntry is the only place a fetched-but-undecided page lives.
*/

// tempEntry is one page sitting in temporary storage: fetched, summarized,
// and link-extracted, but not yet stored or marked irrelevant.
type tempEntry struct {
	canonicalURL string
	doc          normalize.NormalizedMarkdownDoc
	links        []linkextract.Link
	summary      string
}

// SkippedPage is a page the loop decided not to keep, along with why.
type SkippedPage struct {
	URL    string
	Reason string
}

// Execution is what Run returns once the tool loop has terminated.
type Execution struct {
	StoredPages  []string
	SkippedPages []SkippedPage
	WriteResults []outputwriter.WriteResult
	Duration     time.Duration
}
