package strip

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	htmlCommentOpen  = []byte("<!--")
	htmlCommentClose = []byte("-->")
)

// markdownGrammar parses Markdown with goldmark. HTML comments, either as
// HTML blocks or inline raw HTML, become "comment" nodes; everything else
// is left opaque.
type markdownGrammar struct {
	md goldmark.Markdown
}

func newMarkdownGrammar() *markdownGrammar {
	return &markdownGrammar{md: goldmark.New()}
}

func (g *markdownGrammar) Parse(ctx context.Context, source []byte) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := g.md.Parser().Parse(text.NewReader(source))
	b := newTreeBuilder(source, "document")

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.HTMLBlock:
			start, end, ok := htmlBlockSpan(node)
			if !ok {
				return ast.WalkSkipChildren, nil
			}
			blk := b.add(0, Node{Kind: "html_block", Start: start, End: end, Named: true})
			if node.HTMLBlockType == ast.HTMLBlockType2 {
				addHTMLComments(b, blk, start, end)
			}
			return ast.WalkSkipChildren, nil

		case *ast.RawHTML:
			segs := node.Segments
			if segs == nil || segs.Len() == 0 {
				return ast.WalkContinue, nil
			}
			start, end := segs.At(0).Start, segs.At(segs.Len()-1).Stop
			kind := "raw_html"
			if bytes.HasPrefix(source[start:end], htmlCommentOpen) {
				kind = "comment"
			}
			b.add(0, Node{Kind: kind, Start: start, End: end, Named: true})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return b.tree, nil
}

func (g *markdownGrammar) Close() error {
	return nil
}

// htmlBlockSpan returns the byte span of an HTML block including its
// closure line.
func htmlBlockSpan(node *ast.HTMLBlock) (start, end int, ok bool) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return 0, 0, false
	}
	start = lines.At(0).Start
	end = lines.At(lines.Len() - 1).Stop
	if node.HasClosure() && node.ClosureLine.Stop > end {
		end = node.ClosureLine.Stop
	}
	return start, end, true
}

// addHTMLComments adds a child of parent for every <!-- ... --> found in
// [start, end). An opening marker without a close becomes an error node.
func addHTMLComments(b *treeBuilder, parent int32, start, end int) {
	src := b.tree.Source
	for start < end {
		open := bytes.Index(src[start:end], htmlCommentOpen)
		if open < 0 {
			return
		}
		open += start

		// "<!-->" and "<!--->" are complete (empty) comments.
		closeAt := bytes.Index(src[open+2:end], htmlCommentClose)
		if closeAt < 0 {
			b.addError(parent, open, end)
			return
		}
		stop := open + 2 + closeAt + len(htmlCommentClose)
		b.add(parent, Node{Kind: "comment", Start: open, End: stop, Named: true})
		start = stop
	}
}
