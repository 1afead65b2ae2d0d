package strip

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// parserPoolSize bounds the number of idle parsers kept per language.
const parserPoolSize = 16

// treeSitterGrammar implements Grammar on top of a tree-sitter language.
// Parsers are not reentrant, so each Parse call checks one out of a small
// pool and has exclusive use of it until the call returns.
type treeSitterGrammar struct {
	name Language
	lang *tree_sitter.Language

	mu     sync.Mutex
	idle   []*tree_sitter.Parser
	closed bool
}

func newTreeSitterGrammar(name Language, ptr unsafe.Pointer) *treeSitterGrammar {
	return &treeSitterGrammar{
		name: name,
		lang: tree_sitter.NewLanguage(ptr),
	}
}

// Parse builds an arena tree from the tree-sitter parse of source.
func (g *treeSitterGrammar) Parse(ctx context.Context, source []byte) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser, err := g.acquire()
	if err != nil {
		return nil, err
	}
	defer g.release(parser)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", g.name)
	}
	defer tree.Close()

	root := tree.RootNode()
	b := &treeBuilder{tree: &Tree{Source: source}}

	cursor := root.Walk()
	defer cursor.Close()

	g.walk(cursor, b, -1)
	if root.HasError() && !b.tree.HasError {
		b.tree.HasError = true
		b.tree.errorHints = []Position{errorSite(root)}
	}
	return b.tree, nil
}

// errorSite locates an error that tree-sitter flags on root without an
// ERROR or MISSING node to show for it: the deepest node reached by
// following the first child that has an error.
func errorSite(root *tree_sitter.Node) Position {
	n := root
	for {
		var next *tree_sitter.Node
		for i := uint(0); i < n.ChildCount(); i++ {
			if c := n.Child(i); c != nil && c.HasError() {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		n = next
	}
	p := n.StartPosition()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// walk copies the node under cursor and its subtree into the arena.
func (g *treeSitterGrammar) walk(cursor *tree_sitter.TreeCursor, b *treeBuilder, parent int32) {
	node := cursor.Node()
	start := node.StartPosition()

	n := Node{
		Kind:    node.Kind(),
		Start:   int(node.StartByte()),
		End:     int(node.EndByte()),
		Parent:  parent,
		Named:   node.IsNamed(),
		Error:   node.IsError(),
		Missing: node.IsMissing(),
		Row:     int(start.Row),
		Column:  int(start.Column),
	}

	var idx int32
	if parent < 0 {
		idx = 0
		b.tree.Nodes = append(b.tree.Nodes, n)
		if n.Error || n.Missing {
			b.tree.HasError = true
		}
	} else {
		idx = b.add(parent, n)
	}

	if cursor.GotoFirstChild() {
		g.walk(cursor, b, idx)
		for cursor.GotoNextSibling() {
			g.walk(cursor, b, idx)
		}
		cursor.GotoParent()
	}
}

func (g *treeSitterGrammar) acquire() (*tree_sitter.Parser, error) {
	g.mu.Lock()
	if n := len(g.idle); n > 0 {
		p := g.idle[n-1]
		g.idle = g.idle[:n-1]
		g.mu.Unlock()
		return p, nil
	}
	g.mu.Unlock()

	p := tree_sitter.NewParser()
	if err := p.SetLanguage(g.lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("set language %s: %w", g.name, err)
	}
	return p, nil
}

func (g *treeSitterGrammar) release(p *tree_sitter.Parser) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || len(g.idle) >= parserPoolSize {
		p.Close()
		return
	}
	g.idle = append(g.idle, p)
}

// Close frees every idle parser. Parsers still checked out are freed when
// they are returned.
func (g *treeSitterGrammar) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.idle {
		p.Close()
	}
	g.idle = nil
	g.closed = true
	return nil
}
