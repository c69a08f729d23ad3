package outputwriter

/*
Responsibilities

- Turn a normalized Markdown document into a file path, deterministic from
  its canonical URL alone
- Serialize its Frontmatter as a YAML preamble ahead of the Markdown body
- Persist it under outputDir with overwrite-safe, idempotent semantics

Two layouts are provided: MirrorWriter (URL path -> nested directory tree,
a trailing-slash URL becomes index.md) and FlatWriter (URL path segments
joined with "_" into one file per page, all in outputDir's root).
SingleFileWriter (every page appended to outputDir/crawl.md) and
ContentHashWriter (storage.Sink's hash-named files) are the other two
writers. All four satisfy the same OutputWriter contract so the crawler
never branches on which layout is active.
*/

// WriteResult is what a successful OutputWriter.WritePage call returns:
// enough to build an aggregate index and to record a metadata.Artifact.
type WriteResult struct {
	path        string
	urlHash     string
	contentHash string
	title       string
	sourceURL   string
}

func NewWriteResult(path, urlHash, contentHash, title, sourceURL string) WriteResult {
	return WriteResult{
		path:        path,
		urlHash:     urlHash,
		contentHash: contentHash,
		title:       title,
		sourceURL:   sourceURL,
	}
}

func (w WriteResult) Path() string        { return w.path }
func (w WriteResult) URLHash() string     { return w.urlHash }
func (w WriteResult) ContentHash() string { return w.contentHash }
func (w WriteResult) Title() string       { return w.title }
func (w WriteResult) SourceURL() string   { return w.sourceURL }
