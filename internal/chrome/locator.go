// Locating and decoding the Chrome bookmarks store

package chrome

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/xtruder/chrome-bookmarks/internal/bookmarks"
	"github.com/xtruder/chrome-bookmarks/internal/x"
)

// Locator finds the first readable bookmarks store among a list of
// install variants.
type Locator struct {
	variants []string
	expand   func(string) string
	readFile func(string) ([]byte, error)
	logger   *slog.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithExpander replaces environment expansion of candidate paths.
func WithExpander(fn func(string) string) Option {
	return func(l *Locator) {
		l.expand = fn
	}
}

// WithReader replaces the file reader.
func WithReader(fn func(string) ([]byte, error)) Option {
	return func(l *Locator) {
		l.readFile = fn
	}
}

// WithLogger sets the logger used for per-candidate diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a locator trying variants in order
func NewLocator(variants []string, opts ...Option) *Locator {
	l := &Locator{
		variants: variants,
		expand: func(s string) string {
			return x.ExpandEnv(s, nil)
		},
		readFile: os.ReadFile,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Candidates returns the expanded paths for template in the order they are
// tried, without duplicates.
func (l *Locator) Candidates(template string) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, variant := range l.variants {
		path := l.expand(strings.ReplaceAll(template, Placeholder, variant))
		if seen[path] {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}
	return paths
}

// Resolve returns the decoded document of the first readable candidate and
// its path.
func (l *Locator) Resolve(ctx context.Context, template string) (*bookmarks.Document, string, error) {
	if len(l.variants) == 0 {
		return nil, "", fmt.Errorf("no variants configured")
	}

	var attempts []Attempt
	for _, path := range l.Candidates(template) {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		l.logger.Info("trying bookmarks file", "path", path)
		data, err := l.read(path)
		if err != nil {
			l.logger.Debug("bookmarks file unavailable", "path", path, "error", err)
			attempts = append(attempts, Attempt{Path: path, Err: err})
			continue
		}

		l.logger.Info("found bookmarks file", "path", path)
		doc, err := bookmarks.Decode(data)
		if err != nil {
			return nil, path, &DecodeError{Path: path, Err: err}
		}

		return doc, path, nil
	}

	return nil, "", &NotFoundError{Attempts: attempts}
}

func (l *Locator) read(path string) ([]byte, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("file is not valid UTF-8")
	}
	return data, nil
}
