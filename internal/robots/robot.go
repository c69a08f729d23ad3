package robots

/*
Responsibilities

- Fetch robots.txt per host
- Cache rules for crawl duration
- Enforce allow/disallow rules before enqueue

Robots checks occur before a URL enters the frontier.
*/

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/robots/cache"
)

// robotState holds the mutable state behind a CachedRobot. CachedRobot
// itself is a thin, comparable handle over a pointer to this struct so
// zero-value CachedRobot{} (before Init) is distinguishable from an
// initialized one.
type robotState struct {
	sink      metadata.MetadataSink
	userAgent string
	cache     cache.Cache
	fetcher   *RobotsFetcher

	mu       sync.Mutex
	ruleSets map[string]ruleSet
}

// CachedRobot decides whether a URL may be crawled according to the
// target host's robots.txt, fetching and parsing it at most once per
// host for the life of the crawl.
type CachedRobot struct {
	state *robotState
}

// NewCachedRobot creates a CachedRobot that reports fetches and errors to sink.
// Init or InitWithCache must be called before the first Decide.
func NewCachedRobot(sink metadata.MetadataSink) CachedRobot {
	return CachedRobot{
		state: &robotState{
			sink:     sink,
			ruleSets: make(map[string]ruleSet),
		},
	}
}

// Init configures the robot with a user agent and an in-memory cache.
func (r CachedRobot) Init(userAgent string) {
	r.InitWithCache(userAgent, cache.NewMemoryCache())
}

// InitWithCache configures the robot with a user agent and a custom
// robots.txt response cache.
func (r CachedRobot) InitWithCache(userAgent string, c cache.Cache) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	r.state.userAgent = userAgent
	r.state.cache = c
	r.state.fetcher = NewRobotsFetcher(r.state.sink, userAgent, c)
}

// Decide reports whether target may be fetched according to the target
// host's robots.txt.
func (r CachedRobot) Decide(target url.URL) (Decision, error) {
	host := target.Hostname()
	if port := target.Port(); port != "" {
		host = host + ":" + port
	}
	scheme := target.Scheme
	if scheme == "" {
		scheme = "https"
	}
	key := scheme + "://" + host

	r.state.mu.Lock()
	rs, cached := r.state.ruleSets[key]
	r.state.mu.Unlock()

	if !cached {
		var fetchErr error
		rs, fetchErr = r.fetchRuleSet(scheme, host)
		if fetchErr != nil {
			return Decision{}, fetchErr
		}

		r.state.mu.Lock()
		r.state.ruleSets[key] = rs
		r.state.mu.Unlock()
	}

	return decideFromRuleSet(rs, target), nil
}

// fetchRuleSet fetches and maps a host's robots.txt, recording the fetch
// (or error) to the metadata sink.
func (r CachedRobot) fetchRuleSet(scheme, host string) (ruleSet, error) {
	start := time.Now()
	result, fetchErr := r.state.fetcher.Fetch(context.Background(), scheme, host)
	duration := time.Since(start)

	if fetchErr != nil {
		r.state.sink.RecordError(time.Now(), "robots", "fetch_robots_txt", mapRobotsErrorToMetadataCause(fetchErr), fetchErr.Error(), nil)
		return ruleSet{}, fetchErr
	}

	r.state.sink.RecordFetch(result.SourceURL, result.HTTPStatus, duration, result.ContentType, 0, 0)

	if result.Response.IsEmpty() {
		return ruleSet{
			host:      host,
			userAgent: r.state.userAgent,
			fetchedAt: result.FetchedAt,
			sourceURL: result.SourceURL,
			hasGroups: false,
		}, nil
	}

	return MapResponseToRuleSet(result.Response, r.state.userAgent, result.FetchedAt), nil
}
