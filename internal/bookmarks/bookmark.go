package bookmarks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"time"
)

// Kind tells folders and entries apart
type Kind int

const (
	KindEntry Kind = iota
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindEntry:
		return "url"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node represents a Chrome bookmark: either a folder with children or an
// entry pointing at a URL.
type Node struct {
	Kind     Kind
	Name     string
	URL      string
	Children []Node

	// ID and DateAdded are carried from the store but never emitted as JSON.
	ID        string
	DateAdded string
}

// NewFolder creates a folder node
func NewFolder(name string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Kind: KindFolder, Name: name, Children: children}
}

// NewEntry creates an entry node
func NewEntry(name, url string) Node {
	return Node{Kind: KindEntry, Name: name, URL: url}
}

func (n Node) IsFolder() bool {
	return n.Kind == KindFolder
}

type rawNode struct {
	Name      *string          `json:"name"`
	Children  *json.RawMessage `json:"children"`
	URL       *string          `json:"url"`
	ID        string           `json:"id"`
	DateAdded string           `json:"date_added"`
}

// UnmarshalJSON decodes a node without relying on the "type" field: an object
// with a children array is a folder, otherwise an object with a url is an
// entry. Children that fail to decode fall back to the entry form when a url
// is present.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Name == nil {
		return &SchemaError{Field: "name", Reason: "missing"}
	}

	var childErr error
	if raw.Children != nil {
		var children []Node
		if childErr = json.Unmarshal(*raw.Children, &children); childErr == nil {
			*n = NewFolder(*raw.Name, children...)
		}
	}

	switch {
	case raw.Children != nil && childErr == nil:
	case raw.URL != nil:
		*n = NewEntry(*raw.Name, *raw.URL)
	case childErr != nil:
		return fmt.Errorf("folder %q: %w", *raw.Name, childErr)
	default:
		return &SchemaError{Field: *raw.Name, Reason: "neither children nor url present"}
	}

	n.ID = raw.ID
	n.DateAdded = raw.DateAdded
	return nil
}

type folderJSON struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

type entryJSON struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MarshalJSON emits only the shape of the variant.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.IsFolder() {
		children := n.Children
		if children == nil {
			children = []Node{}
		}
		return marshal(folderJSON{Name: n.Name, Children: children})
	}
	return marshal(entryJSON{Name: n.Name, URL: n.URL})
}

// marshal encodes v without escaping &, < and >, which are common in URLs.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	c := n
	if n.Children != nil {
		c.Children = make([]Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// chromeEpochOffset is the number of microseconds between 1601-01-01 and
// 1970-01-01.
const chromeEpochOffset = 11644473600000000

// Added returns the time the node was created, or the zero time when the
// store does not carry it.
func (n Node) Added() time.Time {
	if n.DateAdded == "" {
		return time.Time{}
	}
	us, err := strconv.ParseInt(n.DateAdded, 10, 64)
	if err != nil || us < chromeEpochOffset {
		return time.Time{}
	}
	return time.UnixMicro(us - chromeEpochOffset).UTC()
}

// All walks the node depth-first, yielding every node with its slash
// separated path.
func (n Node) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		var collect func(b *Node, path string) bool
		collect = func(b *Node, path string) bool {
			if !yield(path, b) {
				return false
			}

			for i := range b.Children {
				child := &b.Children[i]
				if !collect(child, path+"/"+child.Name) {
					return false
				}
			}
			return true
		}

		collect(&n, n.Name)
	}
}
