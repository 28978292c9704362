// Package yamlalias bounds how far YAML aliases may expand a decoded tree.
//
// yaml.v3 resolves anchors lazily: an AliasNode points at the anchored node,
// so every reference re-walks the whole anchored subtree. Nested anchors
// multiply, and a few hundred bytes of input can stand for millions of
// nodes. Callers that walk *yaml.Node trees from untrusted input run Check
// first.
package yamlalias

import (
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// Limit is the number of nodes that aliases may expand to in one tree.
const Limit = 1 << 16

// Expanded returns the number of nodes reached through aliases below n,
// counting each reference separately. Counting stops once the total
// exceeds limit, so the cost is bounded by the size of n plus limit.
func Expanded(n *yaml.Node, limit int) int {
	c := counter{limit: limit}
	c.walk(n, false)
	return c.n
}

type counter struct {
	limit, n int
}

func (c *counter) walk(y *yaml.Node, aliased bool) {
	if y == nil || c.n > c.limit {
		return
	}
	if y.Kind == yaml.AliasNode {
		c.walk(y.Alias, true)
		return
	}
	if aliased {
		c.n++
	}
	for _, child := range y.Content {
		c.walk(child, aliased)
		if c.n > c.limit {
			return
		}
	}
}

// Check fails with H013 when the aliases below n expand past Limit.
func Check(n *yaml.Node) error {
	if Expanded(n, Limit) <= Limit {
		return nil
	}
	err := errors.New("H013").WithDetailf("aliases expand to more than %d nodes", Limit)
	if n != nil && n.Line > 0 {
		err.WithLocation("", n.Line, n.Column)
	}
	return err
}
