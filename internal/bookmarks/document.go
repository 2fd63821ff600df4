package bookmarks

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// SchemaError reports a document that is valid JSON but not a bookmarks
// store.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid bookmarks schema: %s: %s", e.Field, e.Reason)
}

// Document is the decoded content of a Chrome "Bookmarks" file.
type Document struct {
	Checksum string
	Roots    map[string]Node

	// order holds the root keys as they appear in the file.
	order []string
}

// Decode parses a bookmarks store. Unknown fields are ignored, as are
// non-object values inside "roots".
func Decode(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return nil, fmt.Errorf("failed to parse JSON")
	}

	checksum := gjson.GetBytes(data, "checksum")
	if checksum.Type != gjson.String {
		return nil, &SchemaError{Field: "checksum", Reason: "missing or not a string"}
	}

	roots := gjson.GetBytes(data, "roots")
	if !roots.IsObject() {
		return nil, &SchemaError{Field: "roots", Reason: "missing or not an object"}
	}

	doc := &Document{
		Checksum: checksum.String(),
		Roots:    make(map[string]Node),
	}

	var decodeErr error
	roots.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}

		var node Node
		if err := json.Unmarshal([]byte(value.Raw), &node); err != nil {
			decodeErr = fmt.Errorf("root %q: %w", key.String(), err)
			return false
		}

		if _, dup := doc.Roots[key.String()]; !dup {
			doc.order = append(doc.order, key.String())
		}
		doc.Roots[key.String()] = node
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return doc, nil
}

// Forest returns the root nodes in the order they appear in the file.
func (d *Document) Forest() []Node {
	forest := make([]Node, 0, len(d.order))
	for _, key := range d.order {
		forest = append(forest, d.Roots[key])
	}
	return forest
}

// RootNames returns the root keys in file order.
func (d *Document) RootNames() []string {
	return append([]string(nil), d.order...)
}
