package outputwriter

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oss-crawler/webcrawl/internal/metadata"
	"github.com/oss-crawler/webcrawl/internal/normalize"
	"github.com/oss-crawler/webcrawl/pkg/failure"
	"github.com/oss-crawler/webcrawl/pkg/fileutil"
	"github.com/oss-crawler/webcrawl/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

// OutputWriter is the external collaborator every crawl mode persists
// through: given a normalized document it decides where it lives on disk,
// writes it, and reports back a stable identity for idempotent re-runs.
type OutputWriter interface {
	WritePage(doc normalize.NormalizedMarkdownDoc) (WriteResult, failure.ClassifiedError)
	URLToFilePath(canonicalURL string) string
}

type frontmatterDTO struct {
	Title          string    `yaml:"title"`
	Source         string    `yaml:"source"`
	CanonicalURL   string    `yaml:"canonicalURL"`
	CrawlDepth     int       `yaml:"crawlDepth"`
	Section        string    `yaml:"section,omitempty"`
	DocID          string    `yaml:"docID"`
	ContentHash    string    `yaml:"contentHash"`
	FetchedAt      time.Time `yaml:"fetchedAt"`
	CrawlerVersion string    `yaml:"crawlerVersion"`
}

func toDTO(fm normalize.Frontmatter) frontmatterDTO {
	return frontmatterDTO{
		Title:          fm.Title(),
		Source:         fm.SourceURL(),
		CanonicalURL:   fm.CanonicalURL(),
		CrawlDepth:     fm.CrawlDepth(),
		Section:        fm.Section(),
		DocID:          fm.DocID(),
		ContentHash:    fm.ContentHash(),
		FetchedAt:      fm.FetchedAt(),
		CrawlerVersion: fm.CrawlerVersion(),
	}
}

// render prefixes content with doc's Frontmatter, YAML-encoded between
// "---" fences.
func render(doc normalize.NormalizedMarkdownDoc) ([]byte, *OutputError) {
	encoded, err := yaml.Marshal(toDTO(doc.Frontmatter()))
	if err != nil {
		return nil, &OutputError{Message: err.Error(), Retryable: false, Cause: ErrCauseFrontmatterInvalid}
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(encoded)
	b.WriteString("---\n\n")
	b.Write(doc.Content())
	return []byte(b.String()), nil
}

// writeFile ensures fullPath's parent directory exists and persists body,
// mapping filesystem failures onto OutputError the same way storage.Sink
// does for the teacher's content-hash writer.
func writeFile(fullPath string, body []byte) *OutputError {
	if err := fileutil.EnsureDir(filepath.Dir(fullPath)); err != nil {
		var fileErr *fileutil.FileError
		errors.As(err, &fileErr)
		return &OutputError{Message: err.Error(), Retryable: false, Cause: ErrCauseWriteFailure, Path: fullPath}
	}
	if err := os.WriteFile(fullPath, body, 0644); err != nil {
		return &OutputError{Message: err.Error(), Retryable: false, Cause: ErrCauseWriteFailure, Path: fullPath}
	}
	return nil
}

func urlHashOf(canonicalURL string) string {
	full, err := hashutil.HashBytes([]byte(canonicalURL), hashutil.HashAlgoBLAKE3)
	if err != nil {
		return ""
	}
	return full[:12]
}

// pathSegments splits a canonical URL's path into its non-empty segments,
// reporting whether the URL itself named a directory (empty or
// trailing-slash path).
func pathSegments(canonicalURL string) ([]string, bool) {
	parsed, err := url.Parse(canonicalURL)
	if err != nil {
		return nil, true
	}
	trimmed := strings.Trim(parsed.Path, "/")
	isDir := parsed.Path == "" || strings.HasSuffix(parsed.Path, "/")
	if trimmed == "" {
		return nil, isDir
	}
	return strings.Split(trimmed, "/"), isDir
}

func recordWrite(sink metadata.MetadataSink, writeResult WriteResult) {
	if sink == nil {
		return
	}
	sink.RecordArtifact(
		metadata.ArtifactMarkdownPage,
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrURL, writeResult.SourceURL()),
			metadata.NewAttr(metadata.AttrField, writeResult.URLHash()),
			metadata.NewAttr(metadata.AttrField, writeResult.ContentHash()),
		},
	)
}

func recordError(sink metadata.MetadataSink, action string, outputErr *OutputError, sourceURL string) {
	if sink == nil {
		return
	}
	sink.RecordError(
		time.Now(),
		"outputwriter",
		action,
		metadata.CauseStorageFailure,
		outputErr.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, sourceURL),
			metadata.NewAttr(metadata.AttrWritePath, outputErr.Path),
		},
	)
}
