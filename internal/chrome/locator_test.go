package chrome

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xtruder/chrome-bookmarks/internal/bookmarks"
)

const validStore = `{"checksum":"x","roots":{"bookmark_bar":{"name":"bar","children":[]}}}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeStore(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveSkipsMissingVariants(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, filepath.Join(dir, "v2", "Bookmarks"), validStore)

	l := NewLocator([]string{"v1", "v2"}, WithLogger(quietLogger()))
	doc, path, err := l.Resolve(context.Background(), filepath.Join(dir, "{edition}", "Bookmarks"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if want := filepath.Join(dir, "v2", "Bookmarks"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if doc.Checksum != "x" {
		t.Errorf("Checksum = %q", doc.Checksum)
	}
}

func TestResolvePrefersEarlierVariant(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, filepath.Join(dir, "stable", "Bookmarks"), `{"checksum":"stable","roots":{}}`)
	writeStore(t, filepath.Join(dir, "beta", "Bookmarks"), `{"checksum":"beta","roots":{}}`)

	l := NewLocator([]string{"stable", "beta"}, WithLogger(quietLogger()))
	doc, _, err := l.Resolve(context.Background(), filepath.Join(dir, "{edition}", "Bookmarks"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if doc.Checksum != "stable" {
		t.Errorf("resolved %q, want stable", doc.Checksum)
	}
}

func TestResolveDecodeErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, filepath.Join(dir, "v1", "Bookmarks"), `{"checksum": 1}`)
	writeStore(t, filepath.Join(dir, "v2", "Bookmarks"), validStore)

	l := NewLocator([]string{"v1", "v2"}, WithLogger(quietLogger()))
	_, path, err := l.Resolve(context.Background(), filepath.Join(dir, "{edition}", "Bookmarks"))

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("decode error must not match ErrNotFound")
	}
	var schemaErr *bookmarks.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("expected wrapped SchemaError, got %v", err)
	}
	if want := filepath.Join(dir, "v1", "Bookmarks"); path != want || decodeErr.Path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestResolveNotFoundListsAttempts(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "dir-variant", "Bookmarks"), 0755); err != nil {
		t.Fatal(err)
	}
	writeStore(t, filepath.Join(dir, "binary", "Bookmarks"), "\xff\xfe\xfd")

	l := NewLocator([]string{"missing", "dir-variant", "binary"}, WithLogger(quietLogger()))
	_, _, err := l.Resolve(context.Background(), filepath.Join(dir, "{edition}", "Bookmarks"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}

	var paths []string
	for _, a := range notFound.Attempts {
		paths = append(paths, a.Path)
		if !strings.Contains(err.Error(), a.Path) {
			t.Errorf("error %q does not name %q", err, a.Path)
		}
	}
	want := []string{
		filepath.Join(dir, "missing", "Bookmarks"),
		filepath.Join(dir, "dir-variant", "Bookmarks"),
		filepath.Join(dir, "binary", "Bookmarks"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("attempts mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(notFound.Attempts[0].Err, fs.ErrNotExist) {
		t.Errorf("first attempt error = %v, want not exist", notFound.Attempts[0].Err)
	}
}

func TestResolveExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, filepath.Join(dir, "chromium", "Bookmarks"), validStore)
	t.Setenv("CHROME_BOOKMARKS_TEST_HOME", dir)

	l := NewLocator([]string{"chromium"}, WithLogger(quietLogger()))
	_, path, err := l.Resolve(context.Background(), "$CHROME_BOOKMARKS_TEST_HOME/{edition}/Bookmarks")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := dir + "/chromium/Bookmarks"; path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestCandidates(t *testing.T) {
	l := NewLocator([]string{"a", "b", "a"},
		WithExpander(strings.ToUpper),
		WithLogger(quietLogger()),
	)

	got := l.Candidates("/x/{edition}/bookmarks")
	want := []string{"/X/A/BOOKMARKS", "/X/B/BOOKMARKS"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	if got := l.Candidates("/fixed/path"); len(got) != 1 {
		t.Errorf("template without placeholder gave %d candidates, want 1", len(got))
	}
}

func TestResolveWithReader(t *testing.T) {
	var read []string
	reader := func(path string) ([]byte, error) {
		read = append(read, path)
		if path == "mem/two" {
			return []byte(validStore), nil
		}
		return nil, fs.ErrNotExist
	}

	l := NewLocator([]string{"one", "two", "three"},
		WithReader(reader),
		WithExpander(func(s string) string { return s }),
		WithLogger(quietLogger()),
	)

	if _, _, err := l.Resolve(context.Background(), "mem/{edition}"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"mem/one", "mem/two"}, read); diff != "" {
		t.Errorf("read order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLocator([]string{"a"}, WithLogger(quietLogger()))
	if _, _, err := l.Resolve(ctx, "/{edition}"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResolveNoVariants(t *testing.T) {
	l := NewLocator(nil, WithLogger(quietLogger()))
	if _, _, err := l.Resolve(context.Background(), "/{edition}"); err == nil {
		t.Error("expected error for empty variant list")
	}
}
