package checkers_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/see/internal/checkers"
)

func TestJSONPathEquals(t *testing.T) {
	c := qt.New(t)

	doc := `{"commands": {"1": {"alias": "deploy", "usage_count": 3}}}`

	c.Run("string value", func(c *qt.C) {
		c.Assert(doc, checkers.JSONPathEquals("$.commands.1.alias"), "deploy")
	})

	c.Run("numeric value decodes as float64", func(c *qt.C) {
		c.Assert([]byte(doc), checkers.JSONPathEquals("$.commands.1.usage_count"), float64(3))
	})

	note := func(string, any) {}

	c.Run("mismatch fails", func(c *qt.C) {
		err := checkers.JSONPathEquals("$.commands.1.alias").Check(doc, []any{"other"}, note)
		c.Assert(err, qt.IsNotNil)
	})

	c.Run("bad path fails", func(c *qt.C) {
		err := checkers.JSONPathEquals("$.missing.path").Check(doc, []any{"x"}, note)
		c.Assert(err, qt.IsNotNil)
	})

	c.Run("non-JSON input fails", func(c *qt.C) {
		err := checkers.JSONPathEquals("$.a").Check("{broken", []any{"x"}, note)
		c.Assert(err, qt.IsNotNil)
	})
}
