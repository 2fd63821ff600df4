package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xtruder/chrome-bookmarks/internal/bookmarks"
)

func TestJSON(t *testing.T) {
	nodes := []bookmarks.Node{
		bookmarks.NewFolder("Work", bookmarks.NewEntry("site", "http://a")),
	}

	var buf bytes.Buffer
	if err := JSON(&buf, nodes, false); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	want := `[
  {
    "name": "Work",
    "children": [
      {
        "name": "site",
        "url": "http://a"
      }
    ]
  }
]
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestJSONColor(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, []bookmarks.Node{bookmarks.NewFolder("Work")}, true); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", buf.String())
	}
}

func TestShouldColor(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{ColorAlways, true, false},
		{ColorNever, false, false},
		{ColorAuto, false, false},
		{"", false, false},
		{"rainbow", false, true},
	}

	for _, tt := range tests {
		got, err := ShouldColor(tt.mode, &buf)
		if (err != nil) != tt.wantErr {
			t.Errorf("ShouldColor(%q) error = %v", tt.mode, err)
		}
		if got != tt.want {
			t.Errorf("ShouldColor(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestJSONKeepsURLCharacters(t *testing.T) {
	nodes := []bookmarks.Node{
		bookmarks.NewFolder("Work", bookmarks.NewEntry("search", "https://a/?x=1&y=<2>")),
	}

	var buf bytes.Buffer
	if err := JSON(&buf, nodes, false); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	if !strings.Contains(buf.String(), `"url": "https://a/?x=1&y=<2>"`) {
		t.Errorf("URL was escaped:\n%s", buf.String())
	}
}
