package x

import (
	"os"
	"regexp"
)

var percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%`)

// ExpandEnv replaces $VAR, ${VAR} and Windows style %VAR% references using
// lookup. Undefined variables expand to the empty string. A nil lookup uses
// the process environment.
func ExpandEnv(s string, lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	get := func(name string) string {
		v, _ := lookup(name)
		return v
	}

	s = percentVar.ReplaceAllStringFunc(s, func(m string) string {
		return get(m[1 : len(m)-1])
	})
	return os.Expand(s, get)
}
