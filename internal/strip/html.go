package strip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// htmlGrammar tokenizes HTML with x/net/html. Tokens become leaf nodes
// under a "document" root; script and style bodies arrive as single text
// tokens and stay opaque.
type htmlGrammar struct{}

func newHTMLGrammar() *htmlGrammar {
	return &htmlGrammar{}
}

func (g *htmlGrammar) Parse(ctx context.Context, source []byte) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := newTreeBuilder(source, "document")
	z := html.NewTokenizer(bytes.NewReader(source))
	off := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				return nil, fmt.Errorf("tokenize html: %w", z.Err())
			}
			break
		}

		raw := z.Raw()
		start := off
		off += len(raw)

		if tt == html.CommentToken && bytes.HasPrefix(raw, htmlCommentOpen) {
			if !htmlCommentClosed(raw) {
				b.addError(0, start, off)
				continue
			}
			b.add(0, Node{Kind: "comment", Start: start, End: off, Named: true})
			continue
		}
		b.add(0, Node{Kind: htmlTokenKind(tt), Start: start, End: off, Named: true})
	}

	// The tokenizer drops an unfinished trailing tag at EOF.
	if off < len(source) {
		b.addError(0, off, len(source))
	}
	return b.tree, nil
}

func (g *htmlGrammar) Close() error {
	return nil
}

func htmlCommentClosed(raw []byte) bool {
	if len(raw) < len("<!-->") {
		return false
	}
	return bytes.HasSuffix(raw, htmlCommentClose) || bytes.HasSuffix(raw, []byte("--!>"))
}

func htmlTokenKind(tt html.TokenType) string {
	switch tt {
	case html.TextToken:
		return "text"
	case html.StartTagToken:
		return "start_tag"
	case html.EndTagToken:
		return "end_tag"
	case html.SelfClosingTagToken:
		return "self_closing_tag"
	case html.DoctypeToken:
		return "doctype"
	case html.CommentToken:
		return "bogus_comment"
	default:
		return "token"
	}
}
