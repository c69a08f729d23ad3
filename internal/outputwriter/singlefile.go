package outputwriter

import (
	"os"
	"sync"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/pkg/failure"
)

// SingleFileWriter concatenates every crawled page into one Markdown file
// at outputDir/crawl.md, each page separated by a horizontal rule, for
// --single-file. Every page still carries its own YAML frontmatter block,
// so downstream chunking tools can still split on the "---" fences.
type SingleFileWriter struct {
	path         string
	metadataSink metadata.MetadataSink

	mu      sync.Mutex
	wrote   bool
}

func NewSingleFileWriter(outputDir string, metadataSink metadata.MetadataSink) *SingleFileWriter {
	return &SingleFileWriter{path: outputDir + string(os.PathSeparator) + "crawl.md", metadataSink: metadataSink}
}

func (w *SingleFileWriter) URLToFilePath(_ string) string {
	return w.path
}

func (w *SingleFileWriter) WritePage(doc normalize.NormalizedMarkdownDoc) (WriteResult, failure.ClassifiedError) {
	fm := doc.Frontmatter()
	body, outErr := render(doc)
	if outErr != nil {
		recordError(w.metadataSink, "SingleFileWriter.WritePage", outErr, fm.SourceURL())
		return WriteResult{}, outErr
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if !w.wrote {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	file, err := os.OpenFile(w.path, flags, 0644)
	if err != nil {
		outErr := &OutputError{Message: err.Error(), Retryable: false, Cause: ErrCauseWriteFailure, Path: w.path}
		recordError(w.metadataSink, "SingleFileWriter.WritePage", outErr, fm.SourceURL())
		return WriteResult{}, outErr
	}
	defer file.Close()

	if w.wrote {
		if _, err := file.WriteString("\n\n"); err != nil {
			outErr := &OutputError{Message: err.Error(), Retryable: false, Cause: ErrCauseWriteFailure, Path: w.path}
			recordError(w.metadataSink, "SingleFileWriter.WritePage", outErr, fm.SourceURL())
			return WriteResult{}, outErr
		}
	}
	if _, err := file.Write(body); err != nil {
		outErr := &OutputError{Message: err.Error(), Retryable: false, Cause: ErrCauseWriteFailure, Path: w.path}
		recordError(w.metadataSink, "SingleFileWriter.WritePage", outErr, fm.SourceURL())
		return WriteResult{}, outErr
	}
	w.wrote = true

	result := NewWriteResult(w.path, urlHashOf(fm.CanonicalURL()), fm.ContentHash(), fm.Title(), fm.SourceURL())
	recordWrite(w.metadataSink, result)
	return result, nil
}
