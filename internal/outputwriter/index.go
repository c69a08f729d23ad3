package outputwriter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oss-crawler/webcrawl/internal/metadata"
)

// WriteIndex writes outputDir/index.md, a flat table of contents linking
// every page written this crawl. Callers skip this entirely when --no-index
// is set.
func WriteIndex(outputDir string, results []WriteResult, metadataSink metadata.MetadataSink) error {
	var b strings.Builder
	b.WriteString("# Crawl Index\n\n")
	for _, r := range results {
		title := r.Title()
		if title == "" {
			title = r.SourceURL()
		}
		rel, err := filepath.Rel(outputDir, r.Path())
		if err != nil {
			rel = r.Path()
		}
		fmt.Fprintf(&b, "- [%s](%s) - %s\n", title, rel, r.SourceURL())
	}

	path := filepath.Join(outputDir, "index.md")
	if outErr := writeFile(path, []byte(b.String())); outErr != nil {
		return outErr
	}
	if metadataSink != nil {
		metadataSink.RecordArtifact(metadata.ArtifactIndex, path, nil)
	}
	return nil
}
