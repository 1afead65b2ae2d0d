package strip

import (
	"bytes"
	"regexp"
	"sort"
)

// headerPreamble lists root-level node kinds that may precede a license
// header without ending it.
var headerPreamble = kinds("processing_instruction", "doctype", "directive", "hash_bang_line", "XMLDecl", "doctypedecl", "PI")

// headerContainers lists root-level node kinds whose children are part of
// the file header, such as the XML prolog.
var headerContainers = kinds("prolog")

var cgoImport = regexp.MustCompile(`^import\s+"C"`)

// classifier walks one tree and collects deletion ranges.
type classifier struct {
	tree   *Tree
	src    []byte
	policy *Policy
	opts   Options

	keep   map[int32]bool // comments preserved by position (header, cgo)
	docs   map[int32]bool // comments documenting the declaration below them
	ranges []DeletionRange
}

// Classify returns the sorted, non-overlapping byte ranges of tree that
// policy marks for deletion under opts. Error nodes and everything below
// them are left alone.
func Classify(tree *Tree, policy *Policy, opts Options) []DeletionRange {
	c := &classifier{
		tree:   tree,
		src:    tree.Source,
		policy: policy,
		opts:   opts,
		keep:   make(map[int32]bool),
		docs:   make(map[int32]bool),
	}

	c.markHeader()
	if policy.CgoPreamble {
		c.markCgoPreamble()
	}
	if policy.Docstrings == DocstringAttached {
		c.markAttached()
	}

	c.walk(0)
	return normalize(c.ranges, len(c.src))
}

func (c *classifier) walk(i int32) {
	n := c.tree.Node(i)
	if n.Error {
		return
	}
	if c.policy.Comments[n.Kind] {
		c.comment(i)
		return
	}
	if c.policy.Docstrings == DocstringPython {
		c.pythonBody(i)
	}
	for _, child := range n.Children {
		c.walk(child)
	}
}

func (c *classifier) comment(i int32) {
	n := c.tree.Node(i)
	text := c.tree.Text(i)
	if c.preserved(i, n, text) {
		return
	}

	class := ClassComment
	if c.docs[i] || isDocComment(text, c.policy.DocPrefixes) {
		class = ClassDocstring
	}
	if class == ClassDocstring && c.opts.Docstrings == DocstringsKeep {
		return
	}
	if class == ClassComment && c.opts.KeepComments {
		return
	}

	end := n.End
	if c.policy.LineBreakInComment && end > n.Start && c.src[end-1] == '\n' {
		end--
	}
	// A CR that belongs to a CRLF line ending stays.
	if end > n.Start && c.src[end-1] == '\r' && end < len(c.src) && c.src[end] == '\n' {
		end--
	}
	c.emitComment(n.Start, end, class)
}

// emitComment removes the comment spanning [start, end). A comment with
// code on both sides keeps its line breaks, and one wedged between two
// tokens is replaced by a space.
func (c *classifier) emitComment(start, end int, class Class) {
	if c.ownLine(start) || c.restBlank(end) {
		c.emit(start, end, class)
		return
	}

	text := c.src[start:end]
	if bytes.IndexByte(text, '\n') < 0 {
		r := DeletionRange{Start: start, End: end, Class: class}
		r.Space = !c.policy.TextComments && start > 0 && end < len(c.src) &&
			!isSpace(c.src[start-1]) && !isSpace(c.src[end])
		c.ranges = append(c.ranges, r)
		return
	}

	seg := start
	for off := start; off < end; off++ {
		if c.src[off] != '\n' {
			continue
		}
		stop := off
		if stop > seg && c.src[stop-1] == '\r' {
			stop--
		}
		c.emit(seg, stop, class)
		seg = off + 1
	}
	c.emit(seg, end, class)
}

func (c *classifier) preserved(i int32, n *Node, text []byte) bool {
	if c.keep[i] {
		return true
	}
	if c.policy.Shebang && n.Start == 0 && bytes.HasPrefix(text, []byte("#!")) {
		return true
	}
	return matchesAny(text, c.policy.Directives)
}

func (c *classifier) emit(start, end int, class Class) {
	c.ranges = append(c.ranges, DeletionRange{Start: start, End: end, Class: class})
}

// markHeader preserves header directives (encoding declarations, magic
// comments) and, when enabled, license runs among the comments that come
// before the first code node.
func (c *classifier) markHeader() {
	license := c.opts.PreserveLicense && c.opts.LicensePattern != nil
	if !license && len(c.policy.HeaderDirectives) == 0 {
		return
	}

	header, _ := c.headerComments(c.tree.Root().Children, nil)

	for _, i := range header {
		n := c.tree.Node(i)
		if c.policy.HeaderLines > 0 && n.Row >= c.policy.HeaderLines {
			continue
		}
		if matchesAny(c.tree.Text(i), c.policy.HeaderDirectives) {
			c.keep[i] = true
		}
	}

	if !license {
		return
	}
	for _, run := range c.runs(header) {
		if c.runMatches(run, c.opts.LicensePattern) {
			for _, i := range run {
				c.keep[i] = true
			}
		}
	}
}

// headerComments appends the comments among nodes that come before the
// first code node to header. done reports whether a code node was reached.
func (c *classifier) headerComments(nodes, header []int32) (_ []int32, done bool) {
	for _, child := range nodes {
		n := c.tree.Node(child)
		if c.policy.Comments[n.Kind] {
			header = append(header, child)
			continue
		}
		if headerContainers[n.Kind] {
			if header, done = c.headerComments(n.Children, header); done {
				return header, true
			}
			continue
		}
		text := c.tree.Text(child)
		if headerPreamble[n.Kind] || len(bytes.TrimSpace(text)) == 0 || (n.Start == 0 && bytes.HasPrefix(text, []byte("#!"))) {
			continue
		}
		return header, true
	}
	return header, false
}

func (c *classifier) runMatches(run []int32, re *regexp.Regexp) bool {
	for _, i := range run {
		if re.Match(c.tree.Text(i)) {
			return true
		}
	}
	return false
}

// markCgoPreamble preserves the comment run directly above import "C".
func (c *classifier) markCgoPreamble() {
	children := c.tree.Root().Children
	for k, child := range children {
		n := c.tree.Node(child)
		if n.Kind != "import_declaration" || !cgoImport.Match(c.tree.Text(child)) {
			continue
		}
		next := n.Start
		for j := k - 1; j >= 0; j-- {
			prev := c.tree.Node(children[j])
			if !c.policy.Comments[prev.Kind] || c.blankBetween(prev.End, next) {
				break
			}
			c.keep[children[j]] = true
			next = prev.Start
		}
	}
}

// markAttached classifies top-level comment runs that sit directly on a
// declaration as doc comments.
func (c *classifier) markAttached() {
	children := c.tree.Root().Children
	var comments []int32
	for _, child := range children {
		if c.policy.Comments[c.tree.Node(child).Kind] {
			comments = append(comments, child)
		}
	}

	for _, run := range c.runs(comments) {
		last := c.tree.Node(run[len(run)-1])
		target := c.nextSibling(run[len(run)-1])
		if target < 0 {
			continue
		}
		t := c.tree.Node(target)
		if c.policy.Comments[t.Kind] || !c.policy.DocTargets[t.Kind] || c.blankBetween(last.End, t.Start) {
			continue
		}
		for _, i := range run {
			c.docs[i] = true
		}
	}
}

// runs groups comments into runs: each comment starts its own line and no
// blank line separates consecutive members. Comments that follow code on
// the same line belong to no run.
func (c *classifier) runs(comments []int32) [][]int32 {
	var out [][]int32
	var cur []int32
	for _, i := range comments {
		n := c.tree.Node(i)
		if !c.ownLine(n.Start) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		if len(cur) > 0 {
			prev := c.tree.Node(cur[len(cur)-1])
			if c.blankBetween(prev.End, n.Start) || c.nextSibling(cur[len(cur)-1]) != i {
				out = append(out, cur)
				cur = nil
			}
		}
		cur = append(cur, i)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// nextSibling returns the sibling after i, skipping whitespace-only
// nodes, or -1.
func (c *classifier) nextSibling(i int32) int32 {
	n := c.tree.Node(i)
	if n.Parent < 0 {
		return -1
	}
	siblings := c.tree.Node(n.Parent).Children
	found := false
	for _, s := range siblings {
		if s == i {
			found = true
			continue
		}
		if found && len(bytes.TrimSpace(c.tree.Text(s))) > 0 {
			return s
		}
	}
	return -1
}

// ownLine reports whether only whitespace precedes off on its line.
func (c *classifier) ownLine(off int) bool {
	lineStart := bytes.LastIndexByte(c.src[:off], '\n') + 1
	return len(bytes.Trim(c.src[lineStart:off], " \t\f\v")) == 0
}

// restBlank reports whether only whitespace follows off on its line.
func (c *classifier) restBlank(off int) bool {
	rest := c.src[off:]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return len(bytes.Trim(rest, " \t\f\v\r")) == 0
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// blankBetween reports whether an empty line separates the node ending at
// end from the node starting at start.
func (c *classifier) blankBetween(end, start int) bool {
	if start <= end {
		return false
	}
	breaks := bytes.Count(c.src[end:start], []byte{'\n'})
	if end > 0 && c.src[end-1] == '\n' {
		breaks++
	}
	return breaks >= 2
}

// normalize sorts ranges, clamps them to [0, size) and drops empty or
// overlapping entries. The earlier range wins an overlap.
func normalize(ranges []DeletionRange, size int) []DeletionRange {
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	out := ranges[:0]
	last := 0
	for _, r := range ranges {
		r.Start = max(r.Start, 0)
		r.End = min(r.End, size)
		if r.Start >= r.End || r.Start < last {
			continue
		}
		out = append(out, r)
		last = r.End
	}
	return out
}
