// Package checkers holds quicktest checkers shared across test packages.
package checkers

import (
	"encoding/json"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals returns a checker asserting that applying path to the
// JSON document in got (a string or []byte) yields want.
//
//	c.Assert(data, checkers.JSONPathEquals("$.commands.1.alias"), "deploy")
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

type jsonPathChecker struct {
	path string
}

func (c *jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var raw []byte
	switch v := got.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("got value must be a JSON string or []byte, not %T", got)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON document: %v", err)
	}

	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		return fmt.Errorf("path %q: %v", c.path, err)
	}
	note("path value", value)

	if value != args[0] {
		return fmt.Errorf("value at %q does not equal the want value", c.path)
	}
	return nil
}
