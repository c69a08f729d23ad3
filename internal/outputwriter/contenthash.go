package outputwriter

import (
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/internal/storage"
	"github.com/oss-crawler/webcrawl/pkg/failure"
	"github.com/oss-crawler/webcrawl/pkg/hashutil"
)

// ContentHashWriter adapts storage.Sink (the teacher's original single-
// directory, content-hash-named writer) to the OutputWriter contract. It
// writes bare Markdown with no frontmatter preamble, matching the
// teacher's original output exactly - useful for embedding pipelines that
// want the old flat-hash layout without YAML front matter mixed in.
type ContentHashWriter struct {
	sink      storage.Sink
	outputDir string
	hashAlgo  hashutil.HashAlgo
}

func NewContentHashWriter(sink storage.Sink, outputDir string, hashAlgo hashutil.HashAlgo) *ContentHashWriter {
	return &ContentHashWriter{sink: sink, outputDir: outputDir, hashAlgo: hashAlgo}
}

func (w *ContentHashWriter) URLToFilePath(canonicalURL string) string {
	return urlHashOf(canonicalURL) + ".md"
}

func (w *ContentHashWriter) WritePage(doc normalize.NormalizedMarkdownDoc) (WriteResult, failure.ClassifiedError) {
	result, err := w.sink.Write(w.outputDir, doc, w.hashAlgo)
	if err != nil {
		return WriteResult{}, err
	}
	fm := doc.Frontmatter()
	return NewWriteResult(result.Path(), result.URLHash(), result.ContentHash(), fm.Title(), fm.SourceURL()), nil
}
