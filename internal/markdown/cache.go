package markdown

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/xtruder/chrome-bookmarks/internal/bookmarks"
)

// Cache maps note IDs to the URL of already exported bookmarks
type Cache map[string]string

// BuildCache builds the cache from markdown files in the output directory
func BuildCache(outputDir string) (Cache, error) {
	slog.Debug("building markdown cache", "dir", outputDir)
	cache := make(Cache)

	err := filepath.WalkDir(outputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == outputDir && os.IsNotExist(err) {
				return filepath.SkipDir
			}
			slog.Warn("failed to access file", "path", path, "error", err)
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			slog.Warn("failed to open note", "path", path, "error", err)
			return nil
		}
		defer f.Close()

		var matter Frontmatter
		if _, err := frontmatter.Parse(f, &matter); err != nil {
			slog.Warn("failed to parse frontmatter", "path", path, "error", err)
			return nil
		}

		if matter.ID != "" {
			cache[matter.ID] = matter.URL
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error building cache: %w", err)
	}

	slog.Debug("markdown cache built", "entries", len(cache))
	return cache, nil
}

// Has reports whether the entry was exported before
func (c Cache) Has(entry *bookmarks.Node) bool {
	_, ok := c[noteID(entry)]
	return ok
}

// CountNew returns how many entries are not in the cache
func (c Cache) CountNew(entries iter.Seq[*bookmarks.Node]) int {
	var n int
	for entry := range entries {
		if !c.Has(entry) {
			n++
		}
	}
	return n
}

// noteID identifies an entry across exports. Stores written by Chrome
// always carry ids; hand written ones fall back to the URL.
func noteID(entry *bookmarks.Node) string {
	if entry.ID != "" {
		return entry.ID
	}
	return "url:" + entry.URL
}
