package strip

import "bytes"

// EditOptions controls the range editor.
type EditOptions struct {
	// Collapse removes lines that a deletion left whitespace-only and trims
	// whitespace a deletion left at the end of a line.
	Collapse bool
}

// Apply copies src without the bytes covered by ranges, which must be
// sorted and non-overlapping. A Space range leaves one space behind. Lines
// no deletion touches are copied verbatim, so applying no ranges returns
// an identical copy.
func Apply(src []byte, ranges []DeletionRange, opts EditOptions) []byte {
	out := make([]byte, 0, len(src))
	line := lineState{tail: -1}

	pos, ri := 0, 0
	for pos < len(src) {
		if ri < len(ranges) && pos >= ranges[ri].Start {
			if ranges[ri].End > pos {
				pos = ranges[ri].End
			}
			if ranges[ri].Space {
				out = append(out, ' ')
			}
			ri++
			line.touched = true
			line.tail = len(out)
			continue
		}

		next := len(src)
		if ri < len(ranges) {
			next = ranges[ri].Start
		}
		chunk := src[pos:next]
		nl := bytes.IndexByte(chunk, '\n')
		if nl < 0 {
			out = append(out, chunk...)
			pos = next
			continue
		}
		out = append(out, chunk[:nl]...)
		pos += nl + 1
		out = line.close(out, opts.Collapse, true)
	}
	return line.close(out, opts.Collapse, false)
}

// lineState tracks the output line being built.
type lineState struct {
	start   int  // offset of the line in the output
	touched bool // a deletion fell on this line
	tail    int  // output offset right after the last deletion on this line
}

// close finishes the current output line, appending a newline when the
// source line had one, and resets the state for the next line.
func (l *lineState) close(out []byte, collapse, newline bool) []byte {
	if collapse && l.touched {
		body := out[l.start:]
		switch {
		case isBlank(body):
			out = out[:l.start]
			newline = false
		case l.tail >= l.start && isBlank(out[l.tail:]):
			cr := len(body) > 0 && body[len(body)-1] == '\r'
			trimmed := bytes.TrimRight(body, " \t\f\v\r")
			out = out[:l.start+len(trimmed)]
			if cr {
				out = append(out, '\r')
			}
		}
	}
	if newline {
		out = append(out, '\n')
	}
	*l = lineState{start: len(out), tail: -1}
	return out
}

func isBlank(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\f', '\v', '\r':
		default:
			return false
		}
	}
	return true
}
