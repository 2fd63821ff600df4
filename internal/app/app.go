// Package app runs the bookmarks tool's commands against a located store.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xtruder/chrome-bookmarks/internal/bookmarks"
	"github.com/xtruder/chrome-bookmarks/internal/chrome"
	"github.com/xtruder/chrome-bookmarks/internal/markdown"
	"github.com/xtruder/chrome-bookmarks/internal/render"
	"github.com/xtruder/chrome-bookmarks/internal/x"
)

// ErrNoMatch is matched by NoMatchError.
var ErrNoMatch = errors.New("no matching folder")

// NoMatchError is returned when the store was read but no folder carries
// the requested name.
type NoMatchError struct {
	Name string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("couldn't find any folder named %q", e.Name)
}

func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// Options holds what every command needs to locate the store.
type Options struct {
	Profile chrome.Profile
	Logger  *slog.Logger

	// LocatorOptions are passed to chrome.NewLocator after the logger.
	LocatorOptions []chrome.Option
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) load(ctx context.Context) (*bookmarks.Document, error) {
	opts := append([]chrome.Option{chrome.WithLogger(o.logger())}, o.LocatorOptions...)
	locator := chrome.NewLocator(o.Profile.Variants, opts...)

	doc, _, err := locator.Resolve(ctx, o.Profile.Template)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (o Options) find(ctx context.Context, name string) ([]bookmarks.Node, error) {
	doc, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	found := bookmarks.FindFolders(doc.Forest(), name)
	if len(found) == 0 {
		return nil, &NoMatchError{Name: name}
	}

	o.logger().Debug("found folders", "name", name, "count", len(found))
	return found, nil
}

// Find writes every folder named name as a JSON array to w.
func Find(ctx context.Context, opts Options, name string, w io.Writer, color bool) error {
	found, err := opts.find(ctx, name)
	if err != nil {
		return err
	}

	return render.JSON(w, found, color)
}

// List writes the path of every folder in the store to w, one per line.
func List(ctx context.Context, opts Options, w io.Writer) error {
	doc, err := opts.load(ctx)
	if err != nil {
		return err
	}

	for _, root := range doc.Forest() {
		folders := x.Filter2(root.All(), func(_ string, n *bookmarks.Node) bool {
			return n.IsFolder()
		})
		for path := range folders {
			if _, err := fmt.Fprintln(w, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportOptions configures Export.
type ExportOptions struct {
	OutputDir      string
	IgnoredFolders []string
}

// Export writes every entry below the folders named name as markdown notes.
func Export(ctx context.Context, opts Options, name string, exportOpts ExportOptions) (markdown.Stats, error) {
	found, err := opts.find(ctx, name)
	if err != nil {
		return markdown.Stats{}, err
	}

	cache, err := markdown.BuildCache(exportOpts.OutputDir)
	if err != nil {
		return markdown.Stats{}, fmt.Errorf("failed to build markdown cache: %w", err)
	}

	processor := markdown.NewProcessor(markdown.ProcessorOptions{
		OutputDir:      exportOpts.OutputDir,
		IgnoredFolders: exportOpts.IgnoredFolders,
	}, cache)

	for _, folder := range found {
		entries := x.Values(x.Filter2(folder.All(), func(_ string, n *bookmarks.Node) bool {
			return !n.IsFolder()
		}))
		opts.logger().Info("exporting folder",
			"folder", folder.Name,
			"new", cache.CountNew(entries))

		if err := processor.ExportFolder(ctx, folder); err != nil {
			return processor.Stats(), fmt.Errorf("failed to process bookmarks: %w", err)
		}

		if err := processor.CreateYearIndexes(entries); err != nil {
			return processor.Stats(), fmt.Errorf("failed to create year indexes: %w", err)
		}
	}

	return processor.Stats(), nil
}
