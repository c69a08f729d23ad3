package config

// Mode selects which crawl strategy ExecuteCrawling runs: Simple walks the
// frontier exhaustively, Smart gates link admission through an LLM
// classifier, Agent hands control of fetch/store/skip decisions to an LLM
// tool loop entirely.
type Mode string

const (
	ModeSimple Mode = "simple"
	ModeSmart  Mode = "smart"
	ModeAgent  Mode = "agent"
)

// ConversionStrategy selects how fetched HTML is turned into Markdown.
type ConversionStrategy string

const (
	ConversionDefault     ConversionStrategy = "default"
	ConversionReadability ConversionStrategy = "readability"
	ConversionCustom      ConversionStrategy = "custom"
)

// LinkClassificationMode selects how the Smart crawler invokes the
// link-classifier call site: in one batched call per page (the default) or
// once per discovered link.
type LinkClassificationMode string

const (
	LinkClassificationBatch   LinkClassificationMode = "batch"
	LinkClassificationPerLink LinkClassificationMode = "per-link"
)
