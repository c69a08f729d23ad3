package frontier

/*
Frontier Responsibilities
- Maintain BFS ordering
- Deduplicate URLs
- Track crawl depth
- Prevent infinite traversal
- Knows nothing about:
	- fetching
	- extraction
	- markdown
	- storage

It is a data structure + policy module, not a pipeline executor.
*/

import (
	"sync"

	"github.com/oss-crawler/webcrawl/internal/config"
	"github.com/oss-crawler/webcrawl/pkg/urlutil"
)

// CrawlFrontier maintains strict BFS ordering across discovered URLs: one
// FIFO queue per depth level, drained lowest-depth-first. Deduplication is
// keyed on the canonicalized URL string, never on url.URL itself (its
// pointer fields make it unsuitable as a map key for semantic equality).
type CrawlFrontier struct {
	mu sync.Mutex

	maxDepth int
	maxPages int

	queuesByDepth map[int]*FIFOQueue[CrawlToken]
	visited       Set[string]
}

// NewCrawlFrontier returns an uninitialized frontier. Init must be called
// before Submit/Dequeue.
func NewCrawlFrontier() *CrawlFrontier {
	return &CrawlFrontier{
		queuesByDepth: make(map[int]*FIFOQueue[CrawlToken]),
		visited:       NewSet[string](),
	}
}

// Init configures the frontier's limits from cfg. A zero MaxDepth/MaxPages
// means unlimited.
func (f *CrawlFrontier) Init(cfg config.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.maxDepth = cfg.MaxDepth()
	f.maxPages = cfg.MaxPages()
}

// Submit admits an already-policy-approved candidate into the frontier.
// Duplicates (by canonicalized URL) are silently dropped. A candidate
// whose depth exceeds maxDepth, or submitted once VisitedCount has
// already reached maxPages, is rejected.
func (f *CrawlFrontier) Submit(candidate CrawlAdmissionCandidate) {
	f.mu.Lock()
	defer f.mu.Unlock()

	depth := candidate.DiscoveryMetadata().Depth()
	if f.maxDepth > 0 && depth > f.maxDepth {
		return
	}
	if f.maxPages > 0 && f.visited.Size() >= f.maxPages {
		return
	}

	canonical := urlutil.Canonicalize(candidate.TargetURL())
	key := canonical.String()
	if f.visited.Contains(key) {
		return
	}
	f.visited.Add(key)

	queue, ok := f.queuesByDepth[depth]
	if !ok {
		queue = NewFIFOQueue[CrawlToken]()
		f.queuesByDepth[depth] = queue
	}
	queue.Enqueue(NewCrawlToken(candidate.TargetURL(), depth))
}

// Dequeue returns the next token in strict BFS order: the lowest depth
// with a pending token, earliest-submitted first. It returns false once
// every depth level is empty.
func (f *CrawlFrontier) Dequeue() (CrawlToken, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	depth := f.currentMinDepthLocked()
	if depth == -1 {
		return CrawlToken{}, false
	}
	return f.queuesByDepth[depth].Dequeue()
}

// IsDepthExhausted reports whether depth has no pending tokens. Depths
// that were never submitted to, and negative depths, are exhausted.
func (f *CrawlFrontier) IsDepthExhausted(depth int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if depth < 0 {
		return true
	}
	queue, ok := f.queuesByDepth[depth]
	if !ok {
		return true
	}
	return queue.Size() == 0
}

// CurrentMinDepth returns the lowest depth with a pending token, or -1 if
// the frontier is empty.
func (f *CrawlFrontier) CurrentMinDepth() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.currentMinDepthLocked()
}

func (f *CrawlFrontier) currentMinDepthLocked() int {
	minDepth := -1
	for depth, queue := range f.queuesByDepth {
		if queue.Size() == 0 {
			continue
		}
		if minDepth == -1 || depth < minDepth {
			minDepth = depth
		}
	}
	return minDepth
}

// VisitedCount returns the number of unique URLs ever admitted by Submit.
// It never decreases: the visited set is append-only and is not affected
// by Dequeue.
func (f *CrawlFrontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.visited.Size()
}
