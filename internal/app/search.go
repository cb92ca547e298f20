package app

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ekphos/ekphos/internal/engine/buffer"
	"github.com/ekphos/ekphos/internal/input/vim"
)

// executeSubstitute runs a parsed :s command against the session,
// returning the number of changed lines. Replacement text uses the
// regexp package's $1 group syntax.
func executeSubstitute(sess *vim.Session, cmd *vim.ExCommand) (int, error) {
	pattern := cmd.Pattern
	if cmd.Flags.CaseInsensitive && !cmd.Flags.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid pattern %q: %w", cmd.Pattern, err)
	}

	buf := sess.Buffer()
	startRow, endRow := sess.Cursor().Row, sess.Cursor().Row
	if cmd.AllLines {
		startRow, endRow = 0, buf.LineCount()-1
	}

	var changes []vim.LineChange
	for row := startRow; row <= endRow; row++ {
		line, ok := buf.Line(row)
		if !ok {
			continue
		}
		next := substituteLine(re, line, cmd.Replacement, cmd.Flags.Global)
		if next != line {
			changes = append(changes, vim.LineChange{Row: row, Text: next})
		}
	}
	return sess.ApplyLineChanges(changes), nil
}

func substituteLine(re *regexp.Regexp, line, replacement string, global bool) string {
	if global {
		return re.ReplaceAllString(line, replacement)
	}
	loc := re.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}
	out := []byte(line[:loc[0]])
	out = re.ExpandString(out, replacement, line, loc)
	return string(out) + line[loc[1]:]
}

// findMatch locates the next occurrence of the pattern from the cursor,
// wrapping around the buffer. A pattern that fails to compile is
// retried as a literal string.
func findMatch(sess *vim.Session, req *vim.SearchRequest) (buffer.Position, bool) {
	re, err := regexp.Compile(req.Pattern)
	if err != nil {
		re = regexp.MustCompile(regexp.QuoteMeta(req.Pattern))
	}
	if req.Forward {
		return searchForward(sess.Buffer(), re, sess.Cursor())
	}
	return searchBackward(sess.Buffer(), re, sess.Cursor())
}

func searchForward(buf *buffer.Buffer, re *regexp.Regexp, from buffer.Position) (buffer.Position, bool) {
	total := buf.LineCount()
	for i := 0; i <= total; i++ {
		row := (from.Row + i) % total
		line, _ := buf.Line(row)
		start := 0
		if i == 0 {
			start = byteIndex(line, from.Col+1)
		}
		if start > len(line) {
			continue
		}
		if loc := re.FindStringIndex(line[start:]); loc != nil {
			col := utf8.RuneCountInString(line[:start+loc[0]])
			return buffer.Position{Row: row, Col: col}, true
		}
	}
	return buffer.Position{}, false
}

func searchBackward(buf *buffer.Buffer, re *regexp.Regexp, from buffer.Position) (buffer.Position, bool) {
	total := buf.LineCount()
	for i := 0; i <= total; i++ {
		row := ((from.Row-i)%total + total) % total
		line, _ := buf.Line(row)
		limit := len(line) + 1
		if i == 0 {
			limit = byteIndex(line, from.Col)
		}
		best := -1
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] < limit {
				best = loc[0]
			}
		}
		if best >= 0 {
			return buffer.Position{Row: row, Col: utf8.RuneCountInString(line[:best])}, true
		}
	}
	return buffer.Position{}, false
}

// byteIndex converts a rune column into a byte offset, clamping past
// the end of the line.
func byteIndex(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	if col == n {
		return len(line)
	}
	return len(line) + 1
}
