package agentcrawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oss-crawler/webcrawl/internal/assets"
	"github.com/oss-crawler/webcrawl/internal/build"
	"github.com/oss-crawler/webcrawl/internal/config"
	"github.com/oss-crawler/webcrawl/internal/cookiejar"
	"github.com/oss-crawler/webcrawl/internal/extractor"
	"github.com/oss-crawler/webcrawl/internal/fetcher"
	"github.com/oss-crawler/webcrawl/internal/linkextract"
	"github.com/oss-crawler/webcrawl/internal/llm"
	"github.com/oss-crawler/webcrawl/internal/mdconvert"
	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/internal/outputwriter"
	"github.com/oss-crawler/webcrawl/internal/sanitizer"
	"github.com/oss-crawler/webcrawl/pkg/failure"
	"github.com/oss-crawler/webcrawl/pkg/hashutil"
	"github.com/oss-crawler/webcrawl/pkg/retry"
	"github.com/oss-crawler/webcrawl/pkg/timeutil"
)

/*
Responsibilities

- Drive the agent crawl mode's LLM tool loop: the model, not the
  scheduler's frontier, decides which pages get fetched, kept, or
  discarded
- Reuse the same fetch -> extract -> sanitize -> convert -> resolve
  assets -> normalize pipeline the Simple and Smart crawlers run, one
  page at a time, strictly serially
- Translate the model's tool calls into that pipeline plus the temporary
  scratch storage the tools read and write

Agent mode is strictly single-threaded: there is no frontier, no
fetchqueue, no concurrent workers. The tool loop executes tools one at a
time, in the order the model emits them, and nothing else touches
tempStorage or the output writer concurrently.
*/

const (
	// toolStepBudget bounds how many tool calls the loop will execute
	// before forcing termination, independent of maxPages. It exists so a
	// model stuck in a fetch/inspect cycle without ever storing or
	// finishing can't run forever.
	toolStepBudget = 10
	// summaryTruncateChars bounds how much of a fetched page's markdown is
	// sent to the summarizer call site.
	summaryTruncateChars = 8000
	// summaryFallbackChars is how much of the markdown is used as the
	// cached summary when the summarizer call itself fails.
	summaryFallbackChars = 500
)

const notFoundMessage = "Page not found in temporary storage — must fetch it first"

const (
	toolFetchPage      = "fetchPage"
	toolStorePage      = "storePage"
	toolMarkIrrelevant = "markIrrelevant"
	toolGetLinks       = "getLinks"
	toolDone           = "done"
)

// domExtractor is the subset of extractor.DomExtractor the agent crawler
// depends on, declared locally the way scheduler.Extractor is.
type domExtractor interface {
	SetExtractParam(params extractor.ExtractParam)
	Extract(sourceUrl url.URL, htmlByte []byte) (extractor.ExtractionResult, failure.ClassifiedError)
}

// Crawler runs the agent crawl mode described by a Config whose Mode is
// config.ModeAgent: an LLM decides, turn by turn, which pages to fetch,
// keep, or discard.
type Crawler struct {
	metadataSink           metadata.MetadataSink
	provider               llm.Provider
	htmlFetcher            fetcher.Fetcher
	domExtractor           domExtractor
	htmlSanitizer          sanitizer.Sanitizer
	markdownConversionRule mdconvert.ConvertRule
	assetResolver          assets.Resolver
	markdownConstraint     normalize.Constraint
	outputWriter           outputwriter.OutputWriter
	cookieJar              *cookiejar.Jar

	temp         map[string]*tempEntry
	storedPages  []string
	skippedPages []SkippedPage
	writeResults []outputwriter.WriteResult
	storedCount  int
	finished     bool
}

// NewCrawler wires the bundled default implementation of every pipeline
// stage, the same ones scheduler.NewScheduler uses, plus an llm.Provider
// resolved from cfg and an OutputWriter matching cfg's output layout.
func NewCrawler(cfg config.Config, metadataSink metadata.MetadataSink) (*Crawler, failure.ClassifiedError) {
	provider, _, err := llm.NewProviderFromCrawlConfig(cfg.Provider(), cfg.LLMConfigPath())
	if err != nil {
		return nil, err
	}

	htmlFetcher := fetcher.NewHtmlFetcher(metadataSink)
	ext := extractor.NewDomExtractor(metadataSink)
	ext.SetExtractParam(extractor.ExtractParam{
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
	htmlSanitizer := sanitizer.NewHTMLSanitizer(metadataSink)
	conversionRule := mdconvert.NewRule(metadataSink)
	resolver := assets.NewLocalResolver(metadataSink, &http.Client{}, cfg.UserAgent())
	markdownConstraint := normalize.NewMarkdownConstraint(metadataSink)

	cookieJar := cookiejar.NewJar()
	if cfg.CookieFile() != "" {
		jar, jarErr := cookiejar.LoadNetscape(cfg.CookieFile())
		if jarErr == nil {
			cookieJar = jar
		}
	}

	return &Crawler{
		metadataSink:           metadataSink,
		provider:               provider,
		htmlFetcher:            &htmlFetcher,
		domExtractor:           &ext,
		htmlSanitizer:          &htmlSanitizer,
		markdownConversionRule: conversionRule,
		assetResolver:          &resolver,
		markdownConstraint:     &markdownConstraint,
		outputWriter:           buildOutputWriter(cfg, metadataSink),
		cookieJar:              cookieJar,
		temp:                   make(map[string]*tempEntry),
	}, nil
}

// buildOutputWriter mirrors scheduler.buildOutputWriter: --single-file wins
// over --flat, which wins over the default mirror tree.
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

// Run drives the tool loop to completion against cfg's root URL and
// description, terminating on the done tool, a text-only model response, the
// maxPages limit, the tool-step budget, or an LLM error. It never returns an
// error itself: partial results are always returned, with failures recorded
// to the metadata sink.
func (c *Crawler) Run(ctx context.Context, cfg config.Config) Execution {
	start := time.Now()
	rootURL := cfg.SeedURLs()[0]
	retryParam := retry.NewRetryParam(
		cfg.BaseDelay(), cfg.Jitter(), cfg.RandomSeed(), cfg.MaxAttempt(),
		timeutil.NewBackoffParam(cfg.BackoffInitialDuration(), cfg.BackoffMultiplier(), cfg.BackoffMaxDuration()),
	)

	var transcript strings.Builder
	fmt.Fprintf(&transcript, systemPreamble, cfg.Description(), rootURL.String(), cfg.MaxPages())

	for step := 0; step < toolStepBudget && c.storedCount < cfg.MaxPages() && !c.finished; step++ {
		response, err := c.provider.InvokeStructured(ctx, transcript.String(), routerSchema(), llm.InvokeOptions{CallSite: llm.CallSiteAgentRouter})
		if err != nil {
			c.metadataSink.RecordError(
				time.Now(), "agentcrawler", "Run",
				metadata.CauseNetworkFailure, err.Error(),
				[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, rootURL.String())},
			)
			break
		}

		tool, _ := response["tool"].(string)
		if tool == "" {
			// Text-only response, no tool calls: the model is done talking.
			break
		}

		targetURL, _ := response["url"].(string)
		result := c.dispatch(ctx, cfg, retryParam, tool, targetURL)
		fmt.Fprintf(&transcript, "\nTool call: %s(%s)\nResult: %s\n", tool, targetURL, result)

		if tool == toolDone {
			break
		}
	}

	for canonicalURL := range c.temp {
		c.skippedPages = append(c.skippedPages, SkippedPage{URL: canonicalURL, Reason: "Fetched but not stored"})
		delete(c.temp, canonicalURL)
	}

	if !cfg.NoIndex() && !cfg.SingleFile() {
		if indexErr := outputwriter.WriteIndex(cfg.OutputDir(), c.writeResults, c.metadataSink); indexErr != nil {
			c.metadataSink.RecordError(
				time.Now(), "outputwriter", "WriteIndex",
				metadata.CauseStorageFailure, indexErr.Error(), []metadata.Attribute{},
			)
		}
	}

	return Execution{
		StoredPages:  c.storedPages,
		SkippedPages: c.skippedPages,
		WriteResults: c.writeResults,
		Duration:     time.Since(start),
	}
}

const systemPreamble = "You are crawling documentation to satisfy this goal: %s\n" +
	"Root URL: %s\nYou may store at most %d pages.\n" +
	"Available tools: fetchPage {url}, storePage {url}, markIrrelevant {url}, getLinks {url}, done {}.\n" +
	"Respond with a JSON object naming the tool to call and its url, or with no tool to stop.\n"

func routerSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tool": map[string]any{"type": "string"},
			"url":  map[string]any{"type": "string"},
			"text": map[string]any{"type": "string"},
		},
	}
}

func (c *Crawler) dispatch(ctx context.Context, cfg config.Config, retryParam retry.RetryParam, tool string, targetURL string) string {
	switch tool {
	case toolFetchPage:
		return c.fetchPage(ctx, cfg, retryParam, targetURL)
	case toolStorePage:
		return c.storePage(cfg, targetURL)
	case toolMarkIrrelevant:
		return c.markIrrelevant(targetURL)
	case toolGetLinks:
		return c.getLinks(targetURL)
	case toolDone:
		c.finished = true
		return fmt.Sprintf("Crawl complete: %d pages stored", c.storedCount)
	default:
		return fmt.Sprintf("Unknown tool: %s", tool)
	}
}

func (c *Crawler) fetchPage(ctx context.Context, cfg config.Config, retryParam retry.RetryParam, rawURL string) string {
	target, parseErr := url.Parse(rawURL)
	if parseErr != nil {
		return fmt.Sprintf("Failed to fetch page: invalid url %q", rawURL)
	}
	canonical := target.String()

	if existing, ok := c.temp[canonical]; ok {
		return fmt.Sprintf("Page already fetched: %s", existing.summary)
	}

	cookie := ""
	if c.cookieJar != nil {
		cookie = c.cookieJar.Match(*target, time.Now())
	}
	fetchParam := fetcher.NewFetchParamWithHeaders(*target, cfg.UserAgent(), cookie, cfg.Headers())

	fetchResult, err := c.htmlFetcher.Fetch(ctx, 0, fetchParam, retryParam)
	if err != nil {
		return fmt.Sprintf("Failed to fetch page: %s", err.Error())
	}

	extractionResult, err := c.domExtractor.Extract(fetchResult.URL(), fetchResult.Body())
	if err != nil {
		return fmt.Sprintf("Failed to fetch page: %s", err.Error())
	}

	sanitizedHtml, err := c.htmlSanitizer.Sanitize(extractionResult.ContentNode)
	if err != nil {
		return fmt.Sprintf("Failed to fetch page: %s", err.Error())
	}

	markdownDoc, err := c.markdownConversionRule.Convert(sanitizedHtml)
	if err != nil {
		return fmt.Sprintf("Failed to fetch page: %s", err.Error())
	}

	resolveParam := assets.NewResolveParam(cfg.OutputDir(), cfg.MaxAssetSize())
	assetfulMarkdown, err := c.assetResolver.Resolve(ctx, fetchResult.URL(), markdownDoc, resolveParam, retryParam)
	if err != nil && err.Severity() == failure.SeverityFatal {
		return fmt.Sprintf("Failed to fetch page: %s", err.Error())
	}

	normalizeParam := normalize.NewNormalizeParam(
		build.FullVersion(), fetchResult.FetchedAt(), hashutil.HashAlgoBLAKE3, 0, cfg.AllowedPathPrefix(),
	)
	normalizedMarkdown, err := c.markdownConstraint.Normalize(fetchResult.URL(), assetfulMarkdown, normalizeParam)
	if err != nil {
		return fmt.Sprintf("Failed to fetch page: %s", err.Error())
	}

	linkOpts := linkextract.Options{
		SameDomainOnly:  true,
		IncludePatterns: cfg.IncludePatterns(),
		ExcludePatterns: cfg.ExcludePatterns(),
	}
	links, _ := linkextract.Extract(string(fetchResult.Body()), fetchResult.URL(), linkOpts)

	summary := c.summarize(ctx, normalizedMarkdown.Content())

	c.temp[canonical] = &tempEntry{
		canonicalURL: canonical,
		doc:          normalizedMarkdown,
		links:        links,
		summary:      summary,
	}

	return fmt.Sprintf("Page fetched successfully: %s", summary)
}

func (c *Crawler) summarize(ctx context.Context, markdown []byte) string {
	truncated := markdown
	if len(truncated) > summaryTruncateChars {
		truncated = truncated[:summaryTruncateChars]
	}
	summary, err := c.provider.Invoke(ctx, string(truncated), llm.InvokeOptions{CallSite: llm.CallSitePageSummarizer})
	if err != nil {
		fallback := markdown
		if len(fallback) > summaryFallbackChars {
			return string(fallback[:summaryFallbackChars]) + "..."
		}
		return string(fallback)
	}
	return summary
}

func (c *Crawler) storePage(cfg config.Config, rawURL string) string {
	target, parseErr := url.Parse(rawURL)
	canonical := rawURL
	if parseErr == nil {
		canonical = target.String()
	}

	entry, ok := c.temp[canonical]
	if !ok {
		return notFoundMessage
	}

	if c.storedCount >= cfg.MaxPages() {
		return fmt.Sprintf("Cannot store page: maxPages limit (%d) reached", cfg.MaxPages())
	}

	writeResult, err := c.outputWriter.WritePage(entry.doc)
	if err != nil {
		return fmt.Sprintf("Failed to store page: %s", err.Error())
	}

	c.storedCount++
	c.storedPages = append(c.storedPages, canonical)
	c.writeResults = append(c.writeResults, writeResult)
	delete(c.temp, canonical)

	return fmt.Sprintf("Page stored (%d/%d). Links found: %s", c.storedCount, cfg.MaxPages(), formatLinks(entry.links))
}

func (c *Crawler) markIrrelevant(rawURL string) string {
	target, parseErr := url.Parse(rawURL)
	canonical := rawURL
	if parseErr == nil {
		canonical = target.String()
	}

	entry, ok := c.temp[canonical]
	if !ok {
		return notFoundMessage
	}
	delete(c.temp, canonical)
	c.skippedPages = append(c.skippedPages, SkippedPage{URL: canonical, Reason: "irrelevant"})

	return fmt.Sprintf("Marked irrelevant. Links found: %s", formatLinks(entry.links))
}

func (c *Crawler) getLinks(rawURL string) string {
	target, parseErr := url.Parse(rawURL)
	canonical := rawURL
	if parseErr == nil {
		canonical = target.String()
	}

	entry, ok := c.temp[canonical]
	if !ok {
		return notFoundMessage
	}
	return formatLinks(entry.links)
}

func formatLinks(links []linkextract.Link) string {
	if len(links) == 0 {
		return "(none)"
	}
	parts := make([]string, len(links))
	for i, link := range links {
		parts[i] = link.URL.String()
	}
	return strings.Join(parts, ", ")
}
