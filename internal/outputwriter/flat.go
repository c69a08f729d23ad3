package outputwriter

import (
	"path/filepath"
	"strings"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// FlatWriter lays persisted pages out as a single flat directory: the
// URL path's segments are joined with "_" into one filename, so /docs/guide
// becomes docs_guide.md. Chosen via --flat when a deeply nested mirror tree
// is undesirable (e.g. bulk ingestion into a flat-file index).
type FlatWriter struct {
	outputDir    string
	metadataSink metadata.MetadataSink
}

func NewFlatWriter(outputDir string, metadataSink metadata.MetadataSink) *FlatWriter {
	return &FlatWriter{outputDir: outputDir, metadataSink: metadataSink}
}

func (w *FlatWriter) URLToFilePath(canonicalURL string) string {
	segments, isDir := pathSegments(canonicalURL)
	if len(segments) == 0 {
		return filepath.Join(w.outputDir, "index.md")
	}
	joined := strings.Join(segments, "_")
	if isDir {
		joined += "_index"
	}
	return filepath.Join(w.outputDir, joined+".md")
}

func (w *FlatWriter) WritePage(doc normalize.NormalizedMarkdownDoc) (WriteResult, failure.ClassifiedError) {
	fm := doc.Frontmatter()
	body, outErr := render(doc)
	if outErr != nil {
		recordError(w.metadataSink, "FlatWriter.WritePage", outErr, fm.SourceURL())
		return WriteResult{}, outErr
	}

	path := w.URLToFilePath(fm.CanonicalURL())
	if outErr := writeFile(path, body); outErr != nil {
		recordError(w.metadataSink, "FlatWriter.WritePage", outErr, fm.SourceURL())
		return WriteResult{}, outErr
	}

	result := NewWriteResult(path, urlHashOf(fm.CanonicalURL()), fm.ContentHash(), fm.Title(), fm.SourceURL())
	recordWrite(w.metadataSink, result)
	return result, nil
}
