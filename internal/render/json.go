// Package render writes search results to the terminal.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"
)

// Color modes accepted by ParseColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Width 0 keeps every element on its own line.
var prettyOptions = &pretty.Options{
	Width:  0,
	Prefix: "",
	Indent: "  ",
}

// ShouldColor decides whether output to w gets ANSI colors.
func ShouldColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("invalid color mode %q", mode)
}

// JSON renders v as indented JSON with &, < and > left as is. The whole
// document is built before anything is written, so w never receives partial
// output.
func JSON(w io.Writer, v any, color bool) error {
	var data bytes.Buffer
	enc := json.NewEncoder(&data)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	out := pretty.PrettyOptions(data.Bytes(), prettyOptions)
	if color {
		out = pretty.Color(out, pretty.TerminalStyle)
	}

	_, err := w.Write(out)
	return err
}
