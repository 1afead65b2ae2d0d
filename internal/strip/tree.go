package strip

import "bytes"

// errorKind is the node kind every grammar adapter uses for regions it
// could not parse.
const errorKind = "ERROR"

// Node is one entry of a Tree arena. Parent and Children hold arena
// indices; the root has Parent -1.
type Node struct {
	Kind     string
	Start    int
	End      int
	Parent   int32
	Children []int32
	Named    bool
	Error    bool
	Missing  bool
	Row      int // zero-based
	Column   int // zero-based, in bytes
}

// Tree is an immutable concrete syntax tree over Source stored as a flat
// arena. Index 0 is the root.
type Tree struct {
	Source   []byte
	Nodes    []Node
	HasError bool

	// errorHints locate errors the parser reported without marking a node.
	errorHints []Position
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &t.Nodes[0]
}

// Node returns the node at index i.
func (t *Tree) Node(i int32) *Node {
	return &t.Nodes[i]
}

// Text returns the source bytes spanned by node i.
func (t *Tree) Text(i int32) []byte {
	n := &t.Nodes[i]
	return t.Source[n.Start:n.End]
}

// ErrorSites returns the 1-based positions of up to limit error or
// missing nodes, in document order. A tree with errors but no such node
// reports where the parser located the error instead.
func (t *Tree) ErrorSites(limit int) []Position {
	var sites []Position
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if !n.Error && !n.Missing {
			continue
		}
		sites = append(sites, Position{Line: n.Row + 1, Column: n.Column + 1})
		if len(sites) == limit {
			break
		}
	}
	if len(sites) == 0 && t.HasError && limit > 0 {
		sites = append(sites, t.errorHints[:min(len(t.errorHints), limit)]...)
	}
	return sites
}

// treeBuilder appends nodes to a Tree arena in document order.
type treeBuilder struct {
	tree *Tree
}

func newTreeBuilder(source []byte, rootKind string) *treeBuilder {
	b := &treeBuilder{tree: &Tree{Source: source}}
	b.tree.Nodes = append(b.tree.Nodes, Node{
		Kind:   rootKind,
		Start:  0,
		End:    len(source),
		Parent: -1,
		Named:  true,
	})
	return b
}

// add appends n as the last child of parent and returns its index. Row
// and Column are computed from Start when the adapter does not track
// positions itself.
func (b *treeBuilder) add(parent int32, n Node) int32 {
	idx := int32(len(b.tree.Nodes))
	n.Parent = parent
	if n.Row == 0 && n.Column == 0 && n.Start > 0 {
		n.Row, n.Column = pointAt(b.tree.Source, n.Start)
	}
	if n.Error || n.Missing {
		b.tree.HasError = true
	}
	b.tree.Nodes = append(b.tree.Nodes, n)
	b.tree.Nodes[parent].Children = append(b.tree.Nodes[parent].Children, idx)
	return idx
}

func (b *treeBuilder) addError(parent int32, start, end int) int32 {
	return b.add(parent, Node{Kind: errorKind, Start: start, End: end, Named: true, Error: true})
}

// pointAt converts a byte offset to a zero-based row and column.
func pointAt(source []byte, off int) (row, col int) {
	head := source[:off]
	row = bytes.Count(head, []byte{'\n'})
	col = off - (bytes.LastIndexByte(head, '\n') + 1)
	return row, col
}
