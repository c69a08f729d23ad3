package scheduler_test

import (
	"net/url"
	"time"

	"github.com/oss-crawler/webcrawl/internal/config"
	"github.com/oss-crawler/webcrawl/internal/frontier"
	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/robots"
	"github.com/oss-crawler/webcrawl/pkg/timeutil"
	"github.com/stretchr/testify/mock"
)

// recordingSink is a metadata.MetadataSink that just counts calls, so tests
// can assert on error volume without caring about log formatting.
type recordingSink struct {
	errorCount int
}

func (r *recordingSink) RecordFetch(string, int, time.Duration, string, int, int) {}
func (r *recordingSink) RecordAssetFetch(string, int, time.Duration, int)         {}
func (r *recordingSink) RecordArtifact(metadata.ArtifactKind, string, []metadata.Attribute) {
}
func (r *recordingSink) RecordFinalCrawlStats(int, int, int, time.Duration) {}
func (r *recordingSink) RecordError(time.Time, string, string, metadata.ErrorCause, string, []metadata.Attribute) {
	r.errorCount++
}

// robotMock is a testify mock of scheduler.Robot.
type robotMock struct {
	mock.Mock
}

func (m *robotMock) Init(userAgent string) {
	m.Called(userAgent)
}

func (m *robotMock) Decide(target url.URL) (robots.Decision, error) {
	args := m.Called(target)
	var err error
	if args.Get(1) != nil {
		err = args.Get(1).(error)
	}
	return args.Get(0).(robots.Decision), err
}

// rateLimiterMock is a testify mock of limiter.RateLimiter, pre-wired with
// permissive default expectations so tests only need to override what they
// care about.
type rateLimiterMock struct {
	mock.Mock
}

func (m *rateLimiterMock) SetBaseDelay(d time.Duration)               { m.Called(d) }
func (m *rateLimiterMock) SetJitter(d time.Duration)                  { m.Called(d) }
func (m *rateLimiterMock) SetRandomSeed(seed int64)                   { m.Called(seed) }
func (m *rateLimiterMock) SetBackoffParam(p timeutil.BackoffParam)    { m.Called(p) }
func (m *rateLimiterMock) SetCrawlDelay(host string, d time.Duration) { m.Called(host, d) }
func (m *rateLimiterMock) Backoff(host string)                        { m.Called(host) }
func (m *rateLimiterMock) ResetBackoff(host string)                   { m.Called(host) }
func (m *rateLimiterMock) MarkLastFetchAsNow(host string)             { m.Called(host) }
func (m *rateLimiterMock) SetRNG(rng interface{})                     { m.Called(rng) }
func (m *rateLimiterMock) ResolveDelay(host string) time.Duration {
	args := m.Called(host)
	return args.Get(0).(time.Duration)
}

func newPermissiveRateLimiterMock() *rateLimiterMock {
	m := new(rateLimiterMock)
	m.On("ResetBackoff", mock.Anything).Return()
	m.On("SetCrawlDelay", mock.Anything, mock.Anything).Return()
	m.On("Backoff", mock.Anything).Return()
	return m
}

// frontierMock is a testify mock of scheduler.Frontier, used to observe
// which candidates SubmitUrlForAdmission admits.
type frontierMock struct {
	mock.Mock
}

func (m *frontierMock) Init(cfg config.Config) { m.Called(cfg) }

func (m *frontierMock) Submit(candidate frontier.CrawlAdmissionCandidate) {
	m.Called(candidate)
}

func (m *frontierMock) Dequeue() (frontier.CrawlToken, bool) {
	args := m.Called()
	tok, _ := args.Get(0).(frontier.CrawlToken)
	return tok, args.Bool(1)
}

func (m *frontierMock) VisitedCount() int {
	args := m.Called()
	return args.Int(0)
}
