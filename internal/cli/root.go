package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/oss-crawler/webcrawl/internal/agentcrawler"
	"github.com/oss-crawler/webcrawl/internal/config"
	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/scheduler"
	"github.com/spf13/cobra"
)

var (
	cfgFile           string
	seedURLs          []string
	maxDepth          int
	concurrency       int
	outputDir         string
	dryRun            bool
	maxPages          int
	userAgent         string
	timeout           time.Duration
	baseDelay         time.Duration
	jitter            time.Duration
	randomSeed        int64
	allowedHosts      []string
	allowedPathPrefix []string

	cookieFile         string
	maxAssetSize       int64
	headers            []string
	ignoreRobots       bool
	mode               string
	description        string
	includePatterns    []string
	excludePatterns    []string
	linkClassification string
	provider           string
	model              string
	llmConfigPath      string
	flat               bool
	singleFile         bool
	noIndex            bool
	conversion         string
	optimizeConversion bool
	prefix             string
	verbose            bool
	quiet              bool
)

// parseStringSliceToSet converts a string slice to a map[string]struct{} set
func parseStringSliceToSet(strings []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, s := range strings {
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// parseSeedURLs converts a string slice of URLs to []url.URL
func parseSeedURLs(urlStrings []string) ([]url.URL, error) {
	if len(urlStrings) == 0 {
		return nil, fmt.Errorf("seed URLs cannot be empty")
	}

	var urls []url.URL
	for _, urlStr := range urlStrings {
		parsedURL, err := url.Parse(urlStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing seed URL %s: %w", urlStr, err)
		}
		urls = append(urls, *parsedURL)
	}
	return urls, nil
}

// parseHeaders converts "Key: Value" strings (the --header flag's form) into
// a map, silently dropping entries with no colon.
func parseHeaders(raw []string) map[string]string {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		key, value, found := strings.Cut(h, ":")
		if !found {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webcrawl",
	Short: "A local-only documentation crawler.",
	Long: `webcrawl is a CLI application that crawls static documentation
websites and converts their content into clean, semantically faithful Markdown,
optimized for LLM Retrieval-Augmented Generation (RAG) workflows.

Three crawl modes are available: simple (breadth-first, every in-scope link),
smart (an LLM narrows which discovered links are worth following), and agent
(an LLM drives the crawl itself, one tool call at a time).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(seedURLs) == 0 {
			fmt.Fprintf(os.Stderr, "Error: --seed-url is required. Please provide at least one seed URL to start crawling.\n")
			cmd.Usage()
			os.Exit(1)
		}

		parsedURLs, err := parseSeedURLs(seedURLs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		cfg := InitConfig(parsedURLs)

		if runErr := RunCrawl(cfg); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", runErr)
			os.Exit(1)
		}
	},
}

// RunCrawl dispatches cfg to the crawl mode it names and prints a short
// summary of the outcome. Simple and Smart crawls share the scheduler's
// frontier-driven pipeline; Agent crawls run their own LLM tool loop.
func RunCrawl(cfg config.Config) error {
	recorder := metadata.NewRecorder(nil)

	if cfg.Mode() == config.ModeAgent {
		crawler, err := agentcrawler.NewCrawler(cfg, recorder)
		if err != nil {
			return err
		}
		execution := crawler.Run(context.Background(), cfg)
		fmt.Printf("Crawl complete: %d pages stored, %d pages skipped\n", len(execution.StoredPages), len(execution.SkippedPages))
		return nil
	}

	s := scheduler.NewScheduler()
	execution, err := s.ExecuteCrawlingWithConfig(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Crawl complete: %d pages written\n", len(execution.WriteResults))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be available to all subcommands in the webcrawl application.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringArrayVar(&seedURLs, "seed-url", []string{}, "one or more starting URLs (can be repeated)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 5, "maximum link depth from seed URL")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 3, "number of concurrent fetch workers")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "output", "root output directory for crawled content")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "crawl without writing output")
	rootCmd.PersistentFlags().IntVar(&maxPages, "max-pages", 0, "maximum number of pages to fetch (0 for default)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&baseDelay, "base-delay", 0, "base delay between HTTP requests to the same host")
	rootCmd.PersistentFlags().DurationVar(&jitter, "jitter", 0, "random jitter added to base delay")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for random number generation (0 for current time)")
	rootCmd.PersistentFlags().StringArrayVar(&allowedHosts, "allowed-host", []string{}, "explicit hostname allowlist (defaults to seed host)")
	rootCmd.PersistentFlags().StringArrayVar(&allowedPathPrefix, "allowed-path-prefix", []string{}, "restrict crawl to paths like `/docs`, `/guide`")

	rootCmd.PersistentFlags().StringVar(&cookieFile, "cookie-file", "", "Netscape-format cookie file to send with every request")
	rootCmd.PersistentFlags().Int64Var(&maxAssetSize, "max-asset-size", 0, "maximum size in bytes of an asset to download (0 for default)")
	rootCmd.PersistentFlags().StringArrayVar(&headers, "header", []string{}, `extra request header as "Key: Value" (can be repeated)`)
	rootCmd.PersistentFlags().BoolVar(&ignoreRobots, "ignore-robots", false, "disable robots.txt enforcement")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "crawl mode: simple, smart, or agent (default simple)")
	rootCmd.PersistentFlags().StringVar(&description, "description", "", "free-text crawl goal, required by smart and agent modes")
	rootCmd.PersistentFlags().StringArrayVar(&includePatterns, "include-pattern", []string{}, "glob pattern a discovered link's path must match")
	rootCmd.PersistentFlags().StringArrayVar(&excludePatterns, "exclude-pattern", []string{}, "glob pattern that excludes a discovered link's path")
	rootCmd.PersistentFlags().StringVar(&linkClassification, "link-classification", "", "smart mode link classification cadence: batch or per-link (default batch)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "LLM provider name, required by smart and agent modes")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "LLM model identifier (stored on the config; not sent with LLM requests)")
	rootCmd.PersistentFlags().StringVar(&llmConfigPath, "llm-config", "", "path to the LLM provider endpoint/timeout config file")
	rootCmd.PersistentFlags().BoolVar(&flat, "flat", false, "write every page to outputDir's root, joining its path segments with \"_\"")
	rootCmd.PersistentFlags().BoolVar(&singleFile, "single-file", false, "concatenate every page into one Markdown file")
	rootCmd.PersistentFlags().BoolVar(&noIndex, "no-index", false, "skip writing the aggregate index file")
	rootCmd.PersistentFlags().StringVar(&conversion, "conversion", "", "Markdown conversion strategy: default, readability or custom (default \"default\"); stored on the config, every page goes through the same converter")
	rootCmd.PersistentFlags().BoolVar(&optimizeConversion, "optimize-conversion", false, "LLM optimization of converted Markdown (stored on the config; no optimization pass runs)")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "path prefix (stored on the config; neither the crawl scope nor the output paths use it)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose diagnostics (stored on the config; the log level is not changed); excludes --quiet")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "quiet diagnostics (stored on the config; the log level is not changed); excludes --verbose")
}

// InitConfig builds the config from the config file if one is set, otherwise
// from the CLI flags. It exits the process on error.
// seedUrls is a mandatory parameter and must contain at least one valid URL.
func InitConfig(seedUrls []url.URL) config.Config {
	cfg, err := InitConfigWithError(seedUrls)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError builds the config from the config file if one is set,
// otherwise from the CLI flags, returning any errors.
// seedUrls is a mandatory parameter and must contain at least one valid URL.
// This makes it easier to test error cases.
func InitConfigWithError(seedUrls []url.URL) (config.Config, error) {
	if len(seedUrls) == 0 {
		return config.Config{}, fmt.Errorf("%w: seedUrls cannot be empty", config.ErrInvalidConfig)
	}

	if cfgFile != "" {
		fmt.Printf("Initializing config from file: %s\n", cfgFile)
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Build config from CLI flags using the With... functions with method chaining
	fmt.Println("No config file specified. Using default flag values")

	// Start with default config using provided seed URLs and apply overrides using method chaining
	configBuilder := config.WithDefault(seedUrls)

	// Override with CLI flag values where provided
	if maxDepth > 0 {
		configBuilder = configBuilder.WithMaxDepth(maxDepth)
	}

	if concurrency > 0 {
		configBuilder = configBuilder.WithConcurrency(concurrency)
	}

	if outputDir != "" && outputDir != "output" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	if maxPages > 0 {
		configBuilder = configBuilder.WithMaxPages(maxPages)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if baseDelay > 0 {
		configBuilder = configBuilder.WithBaseDelay(baseDelay)
	}

	if jitter > 0 {
		configBuilder = configBuilder.WithJitter(jitter)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	if len(allowedHosts) > 0 {
		configBuilder = configBuilder.WithAllowedHosts(parseStringSliceToSet(allowedHosts))
	}

	if len(allowedPathPrefix) > 0 {
		configBuilder = configBuilder.WithAllowedPathPrefix(allowedPathPrefix)
	}

	if cookieFile != "" {
		configBuilder = configBuilder.WithCookieFile(cookieFile)
	}

	if maxAssetSize > 0 {
		configBuilder = configBuilder.WithMaxAssetSize(maxAssetSize)
	}

	if len(headers) > 0 {
		configBuilder = configBuilder.WithHeaders(parseHeaders(headers))
	}

	if ignoreRobots {
		configBuilder = configBuilder.WithIgnoreRobots(ignoreRobots)
	}

	if mode != "" {
		configBuilder = configBuilder.WithMode(config.Mode(mode))
	}

	if description != "" {
		configBuilder = configBuilder.WithDescription(description)
	}

	if len(includePatterns) > 0 {
		configBuilder = configBuilder.WithIncludePatterns(includePatterns)
	}

	if len(excludePatterns) > 0 {
		configBuilder = configBuilder.WithExcludePatterns(excludePatterns)
	}

	if linkClassification != "" {
		configBuilder = configBuilder.WithLinkClassification(config.LinkClassificationMode(linkClassification))
	}

	if provider != "" {
		configBuilder = configBuilder.WithProvider(provider)
	}

	if model != "" {
		configBuilder = configBuilder.WithModel(model)
	}

	if llmConfigPath != "" {
		configBuilder = configBuilder.WithLLMConfigPath(llmConfigPath)
	}

	if flat {
		configBuilder = configBuilder.WithFlat(flat)
	}

	if singleFile {
		configBuilder = configBuilder.WithSingleFile(singleFile)
	}

	if noIndex {
		configBuilder = configBuilder.WithNoIndex(noIndex)
	}

	if conversion != "" {
		configBuilder = configBuilder.WithConversion(config.ConversionStrategy(conversion))
	}

	if optimizeConversion {
		configBuilder = configBuilder.WithOptimizeConversion(optimizeConversion)
	}

	if prefix != "" {
		configBuilder = configBuilder.WithPrefix(prefix)
	}

	if verbose {
		configBuilder = configBuilder.WithVerbose(verbose)
	}

	if quiet {
		configBuilder = configBuilder.WithQuiet(quiet)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	seedURLs = []string{}
	maxDepth = 0
	concurrency = 0
	outputDir = ""
	dryRun = false
	maxPages = 0
	userAgent = ""
	timeout = 0
	baseDelay = 0
	jitter = 0
	randomSeed = 0
	allowedHosts = []string{}
	allowedPathPrefix = []string{}

	cookieFile = ""
	maxAssetSize = 0
	headers = []string{}
	ignoreRobots = false
	mode = ""
	description = ""
	includePatterns = []string{}
	excludePatterns = []string{}
	linkClassification = ""
	provider = ""
	model = ""
	llmConfigPath = ""
	flat = false
	singleFile = false
	noIndex = false
	conversion = ""
	optimizeConversion = false
	prefix = ""
	verbose = false
	quiet = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetSeedURLsForTest(urls []string) {
	seedURLs = urls
}

func SetMaxDepthForTest(depth int) {
	maxDepth = depth
}

func SetConcurrencyForTest(conc int) {
	concurrency = conc
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}

func SetMaxPagesForTest(pages int) {
	maxPages = pages
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetBaseDelayForTest(delay time.Duration) {
	baseDelay = delay
}

func SetJitterForTest(j time.Duration) {
	jitter = j
}

func SetRandomSeedForTest(seed int64) {
	randomSeed = seed
}

func SetAllowedHostsForTest(hosts []string) {
	allowedHosts = hosts
}

func SetAllowedPathPrefixForTest(prefixes []string) {
	allowedPathPrefix = prefixes
}

func SetCookieFileForTest(path string) {
	cookieFile = path
}

func SetMaxAssetSizeForTest(size int64) {
	maxAssetSize = size
}

func SetHeadersForTest(raw []string) {
	headers = raw
}

func SetIgnoreRobotsForTest(ignore bool) {
	ignoreRobots = ignore
}

func SetModeForTest(m string) {
	mode = m
}

func SetDescriptionForTest(d string) {
	description = d
}

func SetIncludePatternsForTest(patterns []string) {
	includePatterns = patterns
}

func SetExcludePatternsForTest(patterns []string) {
	excludePatterns = patterns
}

func SetLinkClassificationForTest(v string) {
	linkClassification = v
}

func SetProviderForTest(p string) {
	provider = p
}

func SetModelForTest(m string) {
	model = m
}

func SetLLMConfigPathForTest(path string) {
	llmConfigPath = path
}

func SetFlatForTest(v bool) {
	flat = v
}

func SetSingleFileForTest(v bool) {
	singleFile = v
}

func SetNoIndexForTest(v bool) {
	noIndex = v
}

func SetConversionForTest(v string) {
	conversion = v
}

func SetOptimizeConversionForTest(v bool) {
	optimizeConversion = v
}

func SetPrefixForTest(v string) {
	prefix = v
}

func SetVerboseForTest(v bool) {
	verbose = v
}

func SetQuietForTest(v bool) {
	quiet = v
}
