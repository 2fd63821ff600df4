package markdown

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xtruder/chrome-bookmarks/internal/bookmarks"
)

// ProcessorOptions contains configuration for markdown processing
type ProcessorOptions struct {
	OutputDir      string
	IgnoredFolders []string
}

// Frontmatter is the YAML header of every exported note
type Frontmatter struct {
	Title      string   `yaml:"title"`
	URL        string   `yaml:"url"`
	Path       string   `yaml:"path"`
	CreatedAt  string   `yaml:"created_at,omitempty"`
	ID         string   `yaml:"id"`
	CSSClasses []string `yaml:"cssclasses,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
}

// Render returns the frontmatter block including its "---" delimiters
func (f Frontmatter) Render() (string, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---", nil
}

// Stats counts what an export did
type Stats struct {
	Written int
	Skipped int
}

// Processor handles markdown file generation
type Processor struct {
	outputDir      string
	ignoredFolders []string
	cache          Cache
	stats          Stats
}

// NewProcessor creates a new markdown processor
func NewProcessor(opts ProcessorOptions, cache Cache) *Processor {
	if cache == nil {
		cache = make(Cache)
	}
	return &Processor{
		outputDir:      opts.OutputDir,
		ignoredFolders: opts.IgnoredFolders,
		cache:          cache,
	}
}

// Stats returns counters of the work done so far
func (p *Processor) Stats() Stats {
	return p.stats
}

// ExportFolder exports folder into a directory named after it.
func (p *Processor) ExportFolder(ctx context.Context, folder bookmarks.Node) error {
	return p.ProcessBookmarks(ctx, folder, sanitizeName(folder.Name))
}

// ProcessBookmarks writes a note for every entry below folder, mirroring
// nested folders as directories under currentPath.
func (p *Processor) ProcessBookmarks(ctx context.Context, folder bookmarks.Node, currentPath string) error {
	folderPath := filepath.Join(p.outputDir, currentPath)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", folderPath, err)
	}

	for i := range folder.Children {
		if err := ctx.Err(); err != nil {
			return err
		}

		child := &folder.Children[i]
		if !child.IsFolder() {
			if p.cache.Has(child) {
				p.stats.Skipped++
				continue
			}
			if err := p.createBookmarkFile(child, currentPath); err != nil {
				return fmt.Errorf("failed to export %q: %w", child.Name, err)
			}
			p.cache[noteID(child)] = child.URL
			p.stats.Written++
			continue
		}

		if p.shouldIgnoreFolder(child.Name) {
			slog.Info("skipping ignored folder", "folder", child.Name)
			continue
		}

		newPath := filepath.Join(currentPath, sanitizeName(child.Name))
		if err := p.ProcessBookmarks(ctx, *child, newPath); err != nil {
			return fmt.Errorf("failed to process folder %s: %w", newPath, err)
		}
	}

	return nil
}

func (p *Processor) createBookmarkFile(entry *bookmarks.Node, currentPath string) error {
	slog.Debug("creating markdown file",
		"title", entry.Name,
		"url", entry.URL,
		"path", currentPath)

	matter := Frontmatter{
		Title:      entry.Name,
		URL:        entry.URL,
		Path:       filepath.ToSlash(currentPath),
		ID:         noteID(entry),
		CSSClasses: []string{"line3"},
		Tags:       []string{"bookmark"},
	}
	if added := entry.Added(); !added.IsZero() {
		matter.CreatedAt = added.Format(time.DateOnly)
	}

	header, err := matter.Render()
	if err != nil {
		return err
	}
	content := fmt.Sprintf("%s\n[%s](%s)\n", header, entry.Name, entry.URL)

	filename := sanitizeFilename(entry.Name, entry.URL)
	filePath := filepath.Join(p.outputDir, currentPath, filename)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (p *Processor) shouldIgnoreFolder(name string) bool {
	for _, ignored := range p.ignoredFolders {
		if strings.TrimSpace(ignored) == name {
			return true
		}
	}
	return false
}

var unsafeChars = strings.NewReplacer(
	"/", " ", "\\", " ", ":", " ", "*", " ", "?", " ",
	"\"", " ", "<", " ", ">", " ", "|", " ",
)

func sanitizeName(name string) string {
	name = strings.Join(strings.Fields(unsafeChars.Replace(name)), " ")
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// sanitizeFilename builds a note filename prefixed with the URL's domain.
func sanitizeFilename(title, rawURL string) string {
	title = sanitizeName(title)

	domain := extractDomain(rawURL)
	if domain != "" && !strings.HasPrefix(strings.ToLower(title), strings.ToLower(domain)) {
		return fmt.Sprintf("%s - %s.md", domain, title)
	}
	return title + ".md"
}

func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// CreateYearIndexes writes a dataview index note for each year entries were
// added in.
func (p *Processor) CreateYearIndexes(entries iter.Seq[*bookmarks.Node]) error {
	years := make(map[int]bool)
	for entry := range entries {
		if added := entry.Added(); !added.IsZero() {
			years[added.Year()] = true
		}
	}

	for year := range years {
		content := fmt.Sprintf(`---
cssclasses: ["line3"]
---
%s
TABLE path, url, dateformat(created_at, "dd.MM") as "date"
FROM #bookmark
WHERE dateformat(created_at, "yyyy") = "%d"
SORT created_at DESC
%s
`, "```dataview", year, "```")

		indexPath := filepath.Join(p.outputDir, fmt.Sprintf("%d.md", year))
		if err := os.WriteFile(indexPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write year index %d: %w", year, err)
		}
		slog.Debug("wrote year index", "year", year)
	}

	return nil
}
