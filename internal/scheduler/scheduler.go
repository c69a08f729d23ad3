package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oss-crawler/webcrawl/internal/assets"
	"github.com/oss-crawler/webcrawl/internal/build"
	"github.com/oss-crawler/webcrawl/internal/config"
	"github.com/oss-crawler/webcrawl/internal/cookiejar"
	"github.com/oss-crawler/webcrawl/internal/extractor"
	"github.com/oss-crawler/webcrawl/internal/fetcher"
	"github.com/oss-crawler/webcrawl/internal/fetchqueue"
	"github.com/oss-crawler/webcrawl/internal/frontier"
	"github.com/oss-crawler/webcrawl/internal/linkextract"
	"github.com/oss-crawler/webcrawl/internal/linkgate"
	"github.com/oss-crawler/webcrawl/internal/llm"
	"github.com/oss-crawler/webcrawl/internal/mdconvert"
	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/internal/outputwriter"
	"github.com/oss-crawler/webcrawl/internal/robots"
	"github.com/oss-crawler/webcrawl/internal/sanitizer"
	"github.com/oss-crawler/webcrawl/pkg/failure"
	"github.com/oss-crawler/webcrawl/pkg/hashutil"
	"github.com/oss-crawler/webcrawl/pkg/limiter"
	"github.com/oss-crawler/webcrawl/pkg/retry"
	"github.com/oss-crawler/webcrawl/pkg/timeutil"
	"github.com/oss-crawler/webcrawl/pkg/urlutil"
)

/*
 Scheduler is the sole control-plane authority of the crawl.

 Determinism and admission guarantees:
 - Scheduler is the ONLY component allowed to decide whether a URL
   may enter the crawl frontier.
 - All semantic admission checks (robots.txt, scope, depth, limits)
   MUST be completed before submitting a URL to the frontier.
 - No other component may enqueue, reject, or reorder URLs.
 - The frontier should only accept already-admitted URLs.
 - Pipeline stages may detect and classify failure, but must never decide retry, continuation, or abortion.

 The scheduler coordinates pipeline execution but does not delegate
 control-flow decisions to downstream stages.

 Metadata emission is observational only and MUST NOT influence
 scheduling, retries, or crawl termination.

 Concurrency model:
 - A single goroutine (ExecuteCrawling's own) owns Dequeue: it is the
   only caller that mutates frontier ordering.
 - Each dequeued token is handed to a bounded fetchqueue.FetchQueue as an
   independent job; jobs run the full per-page pipeline and may call back
   into SubmitUrlForAdmission from worker goroutines, which is safe since
   the frontier guards its own state with a mutex.
 - Aggregate counters (errors, assets) are protected by a mutex; a fatal
   stage error flips an atomic flag and cancels the shared context so
   in-flight and future fetches stop promptly.
*/

// Robot is the subset of robots.CachedRobot the scheduler depends on. It is
// declared locally because the robots package exposes no interface of its
// own.
type Robot interface {
	Init(userAgent string)
	Decide(target url.URL) (robots.Decision, error)
}

// Frontier is the subset of frontier.CrawlFrontier the scheduler depends on.
type Frontier interface {
	Init(cfg config.Config)
	Submit(candidate frontier.CrawlAdmissionCandidate)
	Dequeue() (frontier.CrawlToken, bool)
	VisitedCount() int
}

// Extractor is the subset of extractor.DomExtractor the scheduler depends
// on.
type Extractor interface {
	SetExtractParam(params extractor.ExtractParam)
	Extract(sourceUrl url.URL, htmlByte []byte) (extractor.ExtractionResult, failure.ClassifiedError)
}

type Scheduler struct {
	ctx context.Context

	metadataSink           metadata.MetadataSink
	robot                  Robot
	frontier               Frontier
	htmlFetcher            fetcher.Fetcher
	domExtractor           Extractor
	htmlSanitizer          sanitizer.Sanitizer
	markdownConversionRule mdconvert.ConvertRule
	assetResolver          assets.Resolver
	markdownConstraint     normalize.Constraint
	outputWriter           outputwriter.OutputWriter
	linkGate               linkgate.Gate
	rateLimiter            limiter.RateLimiter
	sleeper                timeutil.Sleeper
	cookieJar              *cookiejar.Jar

	fetchQueue *fetchqueue.FetchQueue

	statsMu      sync.Mutex
	writeResults []outputwriter.WriteResult
	totalErrors  int
	totalAssets  int

	aborted  atomic.Bool
	abortErr atomic.Value // failure.ClassifiedError
}

// NewScheduler wires the bundled default implementation of every pipeline
// stage behind a fresh metadata recorder.
func NewScheduler() Scheduler {
	recorder := metadata.NewRecorder(nil)
	cachedRobot := robots.NewCachedRobot(recorder)
	crawlFrontier := frontier.NewCrawlFrontier()
	htmlFetcher := fetcher.NewHtmlFetcher(recorder)
	ext := extractor.NewDomExtractor(recorder)
	htmlSanitizer := sanitizer.NewHTMLSanitizer(recorder)
	conversionRule := mdconvert.NewRule(recorder)
	resolver := assets.NewLocalResolver(recorder, &http.Client{}, "docs-crawler/1.0")
	markdownConstraint := normalize.NewMarkdownConstraint(recorder)
	rateLimiter := limiter.NewConcurrentRateLimiter()
	sleeper := timeutil.NewRealSleeper()
	return Scheduler{
		metadataSink:           recorder,
		robot:                  cachedRobot,
		frontier:               crawlFrontier,
		htmlFetcher:            &htmlFetcher,
		domExtractor:           &ext,
		htmlSanitizer:          &htmlSanitizer,
		markdownConversionRule: conversionRule,
		assetResolver:          &resolver,
		markdownConstraint:     &markdownConstraint,
		rateLimiter:            rateLimiter,
		sleeper:                sleeper,
		cookieJar:              cookiejar.NewJar(),
	}
}

// NewSchedulerWithDeps creates a Scheduler with injected dependencies for testing.
// This constructor allows tests to provide mock implementations to verify
// behavior without relying on real infrastructure.
func NewSchedulerWithDeps(
	ctx context.Context,
	metadataSink metadata.MetadataSink,
	rateLimiter limiter.RateLimiter,
	htmlFetcher fetcher.Fetcher,
	robot Robot,
	domExtractor Extractor,
	htmlSanitizer sanitizer.Sanitizer,
	rule mdconvert.ConvertRule,
	resolver assets.Resolver,
	sleeper timeutil.Sleeper,
) Scheduler {
	markdownConstraint := normalize.NewMarkdownConstraint(metadataSink)
	return Scheduler{
		ctx:                    ctx,
		metadataSink:           metadataSink,
		robot:                  robot,
		frontier:               frontier.NewCrawlFrontier(),
		htmlFetcher:            htmlFetcher,
		domExtractor:           domExtractor,
		htmlSanitizer:          htmlSanitizer,
		markdownConversionRule: rule,
		assetResolver:          resolver,
		markdownConstraint:     &markdownConstraint,
		rateLimiter:            rateLimiter,
		sleeper:                sleeper,
		cookieJar:              cookiejar.NewJar(),
	}
}

// SetOutputWriter injects the persistence stage for testing. This is a test
// helper method; ExecuteCrawling builds one from cfg when none is set.
func (s *Scheduler) SetOutputWriter(w outputwriter.OutputWriter) {
	s.outputWriter = w
}

// SetLinkGate injects the link-admission stage for testing. This is a test
// helper method; ExecuteCrawling builds one from cfg when none is set.
func (s *Scheduler) SetLinkGate(g linkgate.Gate) {
	s.linkGate = g
}

// SubmitUrlForAdmission performs all semantic checks required for a URL
// to enter the crawl frontier.
//
// This function is the single admission choke point for the system.
// A nil return means either that the URL was submitted to the frontier or
// that it was dropped: disallowed by robots.txt, or the robots check failed
// with an error that is not a *robots.RobotsError.
//
// No other code path may call Frontier.Submit.
// - Only the scheduler imports frontier
// - Only the scheduler constructs CrawlAdmissionCandidate
// - Pipeline stages never see frontier types
func (s *Scheduler) SubmitUrlForAdmission(
	targetURL url.URL,
	sourceContext frontier.SourceContext,
	depth int,
) failure.ClassifiedError {
	robotsDecision, robotsError := s.robot.Decide(targetURL)
	if robotsError != nil {
		robotsErr, ok := robotsError.(*robots.RobotsError)
		if !ok {
			return nil
		}
		s.recordRobotsErrorAndBackoff(robotsErr, targetURL)
		return robotsErr
	}

	if s.rateLimiter != nil {
		s.rateLimiter.ResetBackoff(targetURL.Host)
	}

	if robotsDecision.CrawlDelay > 0 && s.rateLimiter != nil {
		s.rateLimiter.SetCrawlDelay(targetURL.Host, robotsDecision.CrawlDelay)
	}

	// Robots explicitly disallowed → normal, terminal outcome. Metadata has
	// already been emitted by the robots cache itself; no retry, no abort,
	// no frontier submission.
	if !robotsDecision.Allowed {
		return nil
	}

	candidate := frontier.NewCrawlAdmissionCandidate(
		robotsDecision.Url,
		sourceContext,
		frontier.NewDiscoveryMetadata(depth, nil),
	)
	s.frontier.Submit(candidate)
	return nil
}

// ExecuteCrawling runs a full crawl to completion, driven by the config at
// configPath. It blocks until the frontier and every in-flight worker job
// have drained, or until a fatal stage error aborts the run.
func (s *Scheduler) ExecuteCrawling(configPath string) (CrawlingExecution, error) {
	cfg, err := config.WithConfigFile(configPath)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"config",
			"config.WithConfigFile",
			metadata.CauseContentInvalid,
			err.Error(),
			[]metadata.Attribute{metadata.NewAttr(metadata.AttrField, "config_file")},
		)
		return CrawlingExecution{}, err
	}
	return s.ExecuteCrawlingWithConfig(cfg)
}

// ExecuteCrawlingWithConfig is ExecuteCrawling for an already-built Config,
// the entry point used by the CLI (flags are parsed into a Config directly,
// with no config-file round-trip required). It blocks until the frontier
// and every in-flight worker job have drained, or until a fatal stage error
// aborts the run.
func (s *Scheduler) ExecuteCrawlingWithConfig(cfg config.Config) (CrawlingExecution, error) {
	crawlStartTime := time.Now()

	defer func() {
		crawlDuration := time.Since(crawlStartTime)
		totalPages := s.frontier.VisitedCount()
		s.statsMu.Lock()
		totalErrors := s.totalErrors
		totalAssets := s.totalAssets
		s.statsMu.Unlock()
		s.metadataSink.RecordFinalCrawlStats(totalPages, totalErrors, totalAssets, crawlDuration)
	}()

	if len(cfg.SeedURLs()) == 0 {
		err := fmt.Errorf("no seed URLs configured")
		s.metadataSink.RecordError(
			time.Now(), "config", "config validation",
			metadata.CauseContentInvalid, err.Error(), []metadata.Attribute{},
		)
		return CrawlingExecution{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()
	if s.ctx == nil {
		s.ctx = ctx
	}

	if cfg.CookieFile() != "" {
		jar, jarErr := cookiejar.LoadNetscape(cfg.CookieFile())
		if jarErr != nil {
			s.metadataSink.RecordError(
				time.Now(), "cookiejar", "LoadNetscape",
				metadata.CauseContentInvalid, jarErr.Error(),
				[]metadata.Attribute{metadata.NewAttr(metadata.AttrField, cfg.CookieFile())},
			)
		} else {
			s.cookieJar = jar
		}
	}

	s.rateLimiter.SetBaseDelay(cfg.BaseDelay())
	s.rateLimiter.SetJitter(cfg.Jitter())
	s.rateLimiter.SetRandomSeed(cfg.RandomSeed())
	s.rateLimiter.SetBackoffParam(timeutil.NewBackoffParam(
		cfg.BackoffInitialDuration(), cfg.BackoffMultiplier(), cfg.BackoffMaxDuration(),
	))

	if cfg.IgnoreRobots() {
		s.robot = allowAllRobot{}
	}
	s.robot.Init(cfg.UserAgent())
	s.frontier.Init(cfg)

	if s.outputWriter == nil {
		s.outputWriter = buildOutputWriter(cfg, s.metadataSink)
	}
	if s.linkGate == nil {
		gate, gateErr := buildLinkGate(cfg)
		if gateErr != nil {
			return CrawlingExecution{}, gateErr
		}
		s.linkGate = gate
	}
	s.domExtractor.SetExtractParam(extractor.ExtractParam{
		BodySpecificityBias:  cfg.BodySpecificityBias(),
		LinkDensityThreshold: cfg.LinkDensityThreshold(),
		ScoreMultiplier: extractor.ContentScoreMultiplier{
			NonWhitespaceDivisor: cfg.ScoreMultiplierNonWhitespaceDivisor(),
			Paragraphs:           cfg.ScoreMultiplierParagraphs(),
			Headings:             cfg.ScoreMultiplierHeadings(),
			CodeBlocks:           cfg.ScoreMultiplierCodeBlocks(),
			ListItems:            cfg.ScoreMultiplierListItems(),
		},
		Threshold: extractor.MeaningfulThreshold{
			MinNonWhitespace:    cfg.ThresholdMinNonWhitespace(),
			MinHeadings:         cfg.ThresholdMinHeadings(),
			MinParagraphsOrCode: cfg.ThresholdMinParagraphsOrCode(),
			MaxLinkDensity:      cfg.ThresholdMaxLinkDensity(),
		},
	})

	seedHost := cfg.SeedURLs()[0].Host
	seedScheme := cfg.SeedURLs()[0].Scheme

	if admissionErr := s.SubmitUrlForAdmission(cfg.SeedURLs()[0], frontier.SourceSeed, 0); admissionErr != nil {
		return CrawlingExecution{}, admissionErr
	}

	s.fetchQueue = fetchqueue.NewFetchQueue(cfg.Concurrency())
	retryParam := RetryParam(cfg)

	for {
		if s.aborted.Load() {
			break
		}

		token, ok := s.frontier.Dequeue()
		if !ok {
			s.fetchQueue.OnIdle()
			// A worker may have submitted new URLs while we were waiting;
			// only stop once the frontier is still empty right after idle.
			token, ok = s.frontier.Dequeue()
			if !ok {
				break
			}
		}

		t := token
		s.fetchQueue.Add(func() {
			s.processPage(cfg, t, seedScheme, seedHost, retryParam)
		})
	}

	s.fetchQueue.Close()

	if s.aborted.Load() {
		if abortErr, ok := s.abortErr.Load().(failure.ClassifiedError); ok && abortErr != nil {
			return CrawlingExecution{}, abortErr
		}
	}

	s.statsMu.Lock()
	writeResults := s.writeResults
	s.statsMu.Unlock()

	if !cfg.DryRun() && !cfg.NoIndex() && !cfg.SingleFile() {
		if indexErr := outputwriter.WriteIndex(cfg.OutputDir(), writeResults, s.metadataSink); indexErr != nil {
			s.metadataSink.RecordError(
				time.Now(), "outputwriter", "WriteIndex",
				metadata.CauseStorageFailure, indexErr.Error(), []metadata.Attribute{},
			)
		}
	}

	return CrawlingExecution{WriteResults: writeResults}, nil
}

// buildOutputWriter selects the persistence layout from cfg's output
// flags: --single-file wins over --flat, which wins over the default
// mirror tree.
func buildOutputWriter(cfg config.Config, sink metadata.MetadataSink) outputwriter.OutputWriter {
	switch {
	case cfg.SingleFile():
		return outputwriter.NewSingleFileWriter(cfg.OutputDir(), sink)
	case cfg.Flat():
		return outputwriter.NewFlatWriter(cfg.OutputDir(), sink)
	default:
		return outputwriter.NewMirrorWriter(cfg.OutputDir(), sink)
	}
}

// buildLinkGate resolves the link-admission stage for cfg.Mode(). Simple
// and Agent crawls admit every in-scope link unconditionally; Smart crawls
// route discovered links through an LLM relevance check.
func buildLinkGate(cfg config.Config) (linkgate.Gate, failure.ClassifiedError) {
	if cfg.Mode() != config.ModeSmart {
		return linkgate.AllowAllGate{}, nil
	}
	provider, _, err := llm.NewProviderFromCrawlConfig(cfg.Provider(), cfg.LLMConfigPath())
	if err != nil {
		return nil, err
	}
	return linkgate.NewSmartGate(provider, cfg.Description(), cfg.LinkClassification()), nil
}

// allowAllRobot satisfies Robot while admitting every URL, used when
// --ignore-robots is set.
type allowAllRobot struct{}

func (allowAllRobot) Init(string) {}

func (allowAllRobot) Decide(target url.URL) (robots.Decision, error) {
	return robots.Decision{Url: target, Allowed: true, Reason: robots.AllowedByRobots}, nil
}

// processPage runs the full per-page pipeline (fetch → extract → sanitize →
// discover+resubmit links → convert → resolve assets → normalize → write)
// for a single frontier token. It never returns a value: failures are
// recorded to the metadata sink by the stage that produced them and folded
// into the scheduler's aggregate counters here.
func (s *Scheduler) processPage(
	cfg config.Config,
	token frontier.CrawlToken,
	seedScheme string,
	seedHost string,
	retryParam retry.RetryParam,
) {
	host := token.URL().Host

	delay := s.rateLimiter.ResolveDelay(host)
	s.sleeper.Sleep(delay)

	cookie := ""
	if s.cookieJar != nil {
		cookie = s.cookieJar.Match(token.URL(), time.Now())
	}
	fetchParam := fetcher.NewFetchParamWithHeaders(token.URL(), cfg.UserAgent(), cookie, cfg.Headers())

	fetchResult, err := s.htmlFetcher.Fetch(s.ctx, token.Depth(), fetchParam, retryParam)
	s.rateLimiter.MarkLastFetchAsNow(host)
	if err != nil {
		s.backoffOnFetchError(err, host)
		s.recordOutcome(err)
		return
	}

	extractionResult, err := s.domExtractor.Extract(fetchResult.URL(), fetchResult.Body())
	if !s.recordOutcome(err) {
		return
	}
	if err != nil {
		return
	}

	sanitizedHtml, err := s.htmlSanitizer.Sanitize(extractionResult.ContentNode)
	if !s.recordOutcome(err) {
		return
	}
	if err != nil {
		return
	}

	// Discovered links are resolved against the page's own scheme/host
	// (they may be scheme/host-relative) and then filtered down to the
	// seed's host before being fed back through admission. Smart crawls
	// route candidates through an LLM relevance gate first, using the
	// block-level context linkextract pulls out around each anchor.
	var admittedLinks []url.URL
	if cfg.Mode() == config.ModeSmart {
		linkOpts := linkextract.Options{
			SameDomainOnly:  true,
			IncludePatterns: cfg.IncludePatterns(),
			ExcludePatterns: cfg.ExcludePatterns(),
		}
		links, _ := linkextract.Extract(string(fetchResult.Body()), fetchResult.URL(), linkOpts)
		gated, gateErr := s.linkGate.Gate(s.ctx, fetchResult.URL(), links)
		if !s.recordOutcome(gateErr) {
			return
		}
		admittedLinks = gated
	} else {
		discoveredURLs := sanitizedHtml.GetDiscoveredURLs()
		resolvedURLs := make([]url.URL, 0, len(discoveredURLs))
		for _, u := range discoveredURLs {
			resolvedURLs = append(resolvedURLs, urlutil.Resolve(u, seedScheme, host))
		}
		admittedLinks = urlutil.FilterByHost(seedHost, resolvedURLs)
	}
	for _, discovered := range admittedLinks {
		if submissionErr := s.SubmitUrlForAdmission(discovered, frontier.SourceCrawl, token.Depth()+1); submissionErr != nil {
			s.recordOutcome(submissionErr)
		}
	}

	markdownDoc, err := s.markdownConversionRule.Convert(sanitizedHtml)
	if !s.recordOutcome(err) {
		return
	}
	if err != nil {
		return
	}

	resolveParam := assets.NewResolveParam(cfg.OutputDir(), cfg.MaxAssetSize())
	assetfulMarkdown, err := s.assetResolver.Resolve(s.ctx, fetchResult.URL(), markdownDoc, resolveParam, retryParam)
	if !s.recordOutcome(err) {
		return
	}
	// Missing assets are reported, not fatal: keep processing the page even
	// when err != nil here (severity is never Fatal for asset resolution).
	s.statsMu.Lock()
	s.totalAssets += len(assetfulMarkdown.LocalAssets())
	s.statsMu.Unlock()

	normalizeParam := normalize.NewNormalizeParam(
		build.FullVersion(),
		fetchResult.FetchedAt(),
		hashutil.HashAlgoBLAKE3,
		token.Depth(),
		cfg.AllowedPathPrefix(),
	)
	normalizedMarkdown, err := s.markdownConstraint.Normalize(fetchResult.URL(), assetfulMarkdown, normalizeParam)
	if !s.recordOutcome(err) {
		return
	}
	if err != nil {
		return
	}

	if cfg.DryRun() {
		return
	}

	writeResult, err := s.outputWriter.WritePage(normalizedMarkdown)
	if !s.recordOutcome(err) {
		return
	}
	if err != nil {
		return
	}

	s.statsMu.Lock()
	s.writeResults = append(s.writeResults, writeResult)
	s.statsMu.Unlock()
}

// recordOutcome folds a stage's ClassifiedError into the scheduler's
// aggregate counters and, on a fatal error, flips the abort flag so
// ExecuteCrawling's main loop stops handing out new work. It returns false
// once the crawl has been aborted (by this call or a concurrent one), so
// callers can short-circuit the remaining pipeline stages for this page.
func (s *Scheduler) recordOutcome(err failure.ClassifiedError) bool {
	outcome := classifyOutcome(err)
	if err != nil {
		s.statsMu.Lock()
		s.totalErrors++
		s.statsMu.Unlock()
	}
	if outcome.Abort {
		if s.aborted.CompareAndSwap(false, true) {
			s.abortErr.Store(err)
		}
		return false
	}
	return !s.aborted.Load()
}

// backoffOnFetchError applies adaptive backoff for fetch failures that
// indicate the host wants the crawler to slow down (429, 5xx). Other fetch
// failures are left to the retry layer and ordinary error accounting.
func (s *Scheduler) backoffOnFetchError(err failure.ClassifiedError, host string) {
	fetchErr, ok := err.(*fetcher.FetchError)
	if !ok || s.rateLimiter == nil {
		return
	}
	if fetchErr.Cause == fetcher.ErrCauseRequestTooMany || fetchErr.Cause == fetcher.ErrCauseRequest5xx {
		s.rateLimiter.Backoff(host)
	}
}

// recordRobotsErrorAndBackoff handles robots errors whose cause is 429/5xx
// while fetching robots.txt itself: it records them using metadataSink and
// triggers exponential backoff on the rate limiter. Other causes are neither
// recorded nor backed off here.
func (s *Scheduler) recordRobotsErrorAndBackoff(robotsErr *robots.RobotsError, targetURL url.URL) {
	if robotsErr == nil {
		return
	}
	if robotsErr.Cause == robots.ErrCauseHttpTooManyRequests || robotsErr.Cause == robots.ErrCauseHttpServerError {
		s.metadataSink.RecordError(
			time.Now(),
			"scheduler",
			"SubmitUrlForAdmission",
			metadata.CauseNetworkFailure,
			robotsErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, targetURL.String()),
				metadata.NewAttr(metadata.AttrHost, targetURL.Host),
				metadata.NewAttr(metadata.AttrPath, targetURL.Path),
			},
		)
		if s.rateLimiter != nil {
			s.rateLimiter.Backoff(targetURL.Host)
		}
	}
}

func RetryParam(cfg config.Config) retry.RetryParam {
	return retry.NewRetryParam(
		cfg.BaseDelay(),
		cfg.Jitter(),
		cfg.RandomSeed(),
		cfg.MaxAttempt(),
		timeutil.NewBackoffParam(
			cfg.BackoffInitialDuration(),
			cfg.BackoffMultiplier(),
			cfg.BackoffMaxDuration(),
		),
	)
}

// ---------------------------------------------------------------------------
// Test Helper Methods
// These methods are exported to enable testing of SubmitUrlForAdmission()
// and other scheduler internals. They are not part of the public API.
// ---------------------------------------------------------------------------

// InitWith initializes the dependencies with the given data.
// This is a test helper method.
func (s *Scheduler) InitWith(userAgent string, baseDelay time.Duration, jitter time.Duration, randomSeed int64) {
	s.robot.Init(userAgent)
	s.rateLimiter.SetBaseDelay(baseDelay)
	s.rateLimiter.SetJitter(jitter)
	s.rateLimiter.SetRandomSeed(randomSeed)
}

// FrontierVisitedCount returns the number of URLs in the frontier's visited set.
// This is a test helper method to verify frontier state.
func (s *Scheduler) FrontierVisitedCount() int {
	if s.frontier == nil {
		return 0
	}
	return s.frontier.VisitedCount()
}

// DequeueFromFrontier dequeues a token from the frontier.
// This is a test helper method to verify frontier contents.
func (s *Scheduler) DequeueFromFrontier() (frontier.CrawlToken, bool) {
	if s.frontier == nil {
		return frontier.CrawlToken{}, false
	}
	return s.frontier.Dequeue()
}

// SetConvertRule sets the markdown conversion rule for testing.
// This is a test helper method to inject mock conversion rules.
func (s *Scheduler) SetConvertRule(rule mdconvert.ConvertRule) {
	s.markdownConversionRule = rule
}

// SetFrontier replaces the frontier for testing. This is a test helper
// method to inject a fake frontier without going through config.
func (s *Scheduler) SetFrontier(f Frontier) {
	s.frontier = f
}
