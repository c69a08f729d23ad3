package outputwriter

import (
	"path/filepath"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// MirrorWriter lays persisted pages out as a directory tree that mirrors
// the crawled site's URL paths: /docs/guide becomes docs/guide.md, and any
// URL whose path is empty or trailing-slash (a directory index) becomes
// .../index.md.
type MirrorWriter struct {
	outputDir    string
	metadataSink metadata.MetadataSink
}

func NewMirrorWriter(outputDir string, metadataSink metadata.MetadataSink) *MirrorWriter {
	return &MirrorWriter{outputDir: outputDir, metadataSink: metadataSink}
}

func (w *MirrorWriter) URLToFilePath(canonicalURL string) string {
	segments, isDir := pathSegments(canonicalURL)
	if isDir {
		return filepath.Join(append(append([]string{w.outputDir}, segments...), "index.md")...)
	}
	dir := segments[:len(segments)-1]
	filename := segments[len(segments)-1] + ".md"
	return filepath.Join(append(append([]string{w.outputDir}, dir...), filename)...)
}

func (w *MirrorWriter) WritePage(doc normalize.NormalizedMarkdownDoc) (WriteResult, failure.ClassifiedError) {
	fm := doc.Frontmatter()
	body, outErr := render(doc)
	if outErr != nil {
		recordError(w.metadataSink, "MirrorWriter.WritePage", outErr, fm.SourceURL())
		return WriteResult{}, outErr
	}

	path := w.URLToFilePath(fm.CanonicalURL())
	if outErr := writeFile(path, body); outErr != nil {
		recordError(w.metadataSink, "MirrorWriter.WritePage", outErr, fm.SourceURL())
		return WriteResult{}, outErr
	}

	result := NewWriteResult(path, urlHashOf(fm.CanonicalURL()), fm.ContentHash(), fm.Title(), fm.SourceURL())
	recordWrite(w.metadataSink, result)
	return result, nil
}
