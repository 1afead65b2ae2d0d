package strip

import "context"

// Grammar turns source bytes into a concrete syntax tree.
// Implementations: treeSitterGrammar (most languages), markdownGrammar,
// htmlGrammar.
type Grammar interface {
	// Parse builds a tree over source. Syntax errors do not fail the call;
	// they surface as error nodes and Tree.HasError.
	Parse(ctx context.Context, source []byte) (*Tree, error)

	// Close releases grammar resources (tree-sitter C memory).
	Close() error
}
