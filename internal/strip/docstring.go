package strip

import "bytes"

// pythonBody handles the docstrings of a module, class or function body:
// the run of bare string statements it starts with.
func (c *classifier) pythonBody(i int32) {
	if c.opts.Docstrings == DocstringsKeep {
		return
	}
	n := c.tree.Node(i)
	switch n.Kind {
	case "module":
	case "block":
		if n.Parent < 0 {
			return
		}
		switch c.tree.Node(n.Parent).Kind {
		case "function_definition", "class_definition":
		default:
			return
		}
	default:
		return
	}

	var docs []int32
	statements := 0
	for _, child := range n.Children {
		cn := c.tree.Node(child)
		if !cn.Named || c.policy.Comments[cn.Kind] {
			continue
		}
		statements++
		if len(docs) == statements-1 && c.bareString(child) {
			docs = append(docs, child)
		}
	}
	if len(docs) == 0 {
		return
	}

	for k, d := range docs {
		// A body needs at least one statement.
		onlyStatement := n.Kind == "block" && k == len(docs)-1 && statements == len(docs)
		if c.opts.Docstrings == DocstringsRemove && !onlyStatement && c.wholeLines(d) {
			stmt := c.tree.Node(d)
			c.emit(stmt.Start, stmt.End, ClassDocstring)
			continue
		}
		c.clearString(d)
	}
}

// bareString reports whether statement i is a lone plain string literal.
// f-strings, byte strings and implicit concatenations are code.
func (c *classifier) bareString(i int32) bool {
	n := c.tree.Node(i)
	if n.Kind != "expression_statement" || n.Error {
		return false
	}
	var str int32 = -1
	for _, child := range n.Children {
		if !c.tree.Node(child).Named {
			continue
		}
		if str >= 0 {
			return false
		}
		str = child
	}
	if str < 0 || c.tree.Node(str).Kind != "string" {
		return false
	}
	prefix, _, ok := splitStringLiteral(c.tree.Text(str))
	return ok && !bytes.ContainsAny(prefix, "fFbB")
}

// clearString deletes the contents of the string literal in statement i
// and keeps its prefix and quotes.
func (c *classifier) clearString(i int32) {
	stmt := c.tree.Node(i)
	for _, child := range stmt.Children {
		n := c.tree.Node(child)
		if n.Kind != "string" {
			continue
		}
		prefix, quote, ok := splitStringLiteral(c.tree.Text(child))
		if !ok {
			return
		}
		start := n.Start + len(prefix) + len(quote)
		end := n.End - len(quote)
		if start < end {
			c.emit(start, end, ClassDocstring)
		}
		return
	}
}

// wholeLines reports whether node i is alone on the lines it spans,
// allowing a trailing comment.
func (c *classifier) wholeLines(i int32) bool {
	n := c.tree.Node(i)
	if !c.ownLine(n.Start) {
		return false
	}
	rest := c.src[n.End:]
	if j := bytes.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	rest = bytes.TrimLeft(rest, " \t\f\v\r")
	return len(rest) == 0 || rest[0] == '#'
}

// splitStringLiteral splits a Python string literal into its prefix
// letters and its quote sequence (one or three quote characters).
func splitStringLiteral(text []byte) (prefix, quote []byte, ok bool) {
	k := 0
	for k < len(text) && text[k] != '"' && text[k] != '\'' {
		k++
	}
	if k == len(text) {
		return nil, nil, false
	}
	q := text[k]
	quote = text[k : k+1]
	if k+3 <= len(text) && text[k+1] == q && text[k+2] == q && len(text)-k >= 6 {
		quote = text[k : k+3]
	}
	if len(text)-k < 2*len(quote) {
		return nil, nil, false
	}
	return text[:k], quote, true
}
