package buffer

import "testing"

func TestFromStringAndBack(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines int
	}{
		{"empty", "", 1},
		{"single line", "hello", 1},
		{"two lines", "hello\nworld", 2},
		{"trailing newline", "hello\n", 2},
		{"blank lines", "a\n\nb", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromString(tt.input)
			if got := b.LineCount(); got != tt.lines {
				t.Errorf("LineCount() = %d, want %d", got, tt.lines)
			}
			if got := b.String(); got != tt.input {
				t.Errorf("String() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestInsertText(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		pos     Position
		text    string
		want    string
		wantEnd Position
	}{
		{"middle of line", "hello", Position{0, 2}, "XY", "heXYllo", Position{0, 4}},
		{"start of line", "hello", Position{0, 0}, "ab", "abhello", Position{0, 2}},
		{"end of line", "hello", Position{0, 5}, "!", "hello!", Position{0, 6}},
		{"newline splits", "hello", Position{0, 2}, "\n", "he\nllo", Position{1, 0}},
		{"multiline insert", "ab", Position{0, 1}, "x\ny\nz", "ax\ny\nzb", Position{2, 1}},
		{"clamped column", "hi", Position{0, 99}, "!", "hi!", Position{0, 3}},
		{"unicode", "héllo", Position{0, 2}, "ß", "héßllo", Position{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromString(tt.initial)
			end := b.InsertText(tt.pos, tt.text)
			if got := b.String(); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
			if end != tt.wantEnd {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestInsertChar(t *testing.T) {
	b := FromString("helo\nworld")
	end := b.InsertChar(Position{0, 3}, 'l')
	if got := b.String(); got != "hello\nworld" {
		t.Errorf("buffer = %q", got)
	}
	if end != (Position{0, 4}) {
		t.Errorf("end = %v, want {0 4}", end)
	}
	// Past-end columns clamp to the line end.
	b.InsertChar(Position{1, 99}, '!')
	if got := b.String(); got != "hello\nworld!" {
		t.Errorf("buffer = %q", got)
	}
}

func TestDeleteChar(t *testing.T) {
	b := FromString("cart")
	r, ok := b.DeleteChar(Position{0, 2})
	if !ok || r != 'r' {
		t.Fatalf("DeleteChar = %q, %v", r, ok)
	}
	if got := b.String(); got != "cat" {
		t.Errorf("buffer = %q", got)
	}
	if _, ok := b.DeleteChar(Position{0, 3}); ok {
		t.Error("end of line should address no character")
	}
	if _, ok := b.DeleteChar(Position{5, 0}); ok {
		t.Error("out-of-range row should address no character")
	}
	if got := b.String(); got != "cat" {
		t.Errorf("failed deletes mutated buffer: %q", got)
	}
}

func TestDeleteRange(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end Position
		want       string
		removed    string
	}{
		{"within line", "hello world", Position{0, 5}, Position{0, 11}, "hello", " world"},
		{"reversed args", "hello", Position{0, 4}, Position{0, 1}, "ho", "ell"},
		{"across lines", "abc\ndef", Position{0, 1}, Position{1, 2}, "af", "bc\nde"},
		{"full middle line", "a\nbb\nc", Position{1, 0}, Position{2, 0}, "a\nc", "bb\n"},
		{"empty span", "abc", Position{0, 1}, Position{0, 1}, "abc", ""},
		{"three lines", "one\ntwo\nthree", Position{0, 2}, Position{2, 3}, "onee", "e\ntwo\nthr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromString(tt.initial)
			removed := b.DeleteRange(tt.start, tt.end)
			if removed != tt.removed {
				t.Errorf("removed = %q, want %q", removed, tt.removed)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteInsertRoundTrip(t *testing.T) {
	initial := "alpha\nbeta gamma\ndelta"
	b := FromString(initial)
	start, end := Position{0, 3}, Position{2, 2}
	removed := b.DeleteRange(start, end)
	b.InsertText(start, removed)
	if got := b.String(); got != initial {
		t.Errorf("round trip = %q, want %q", got, initial)
	}
}

func TestSplitAndJoin(t *testing.T) {
	b := FromString("hello world")
	b.SplitLine(Position{0, 5})
	if got := b.String(); got != "hello\n world" {
		t.Fatalf("after split = %q", got)
	}
	seam, ok := b.JoinWithPrevious(1)
	if !ok {
		t.Fatal("JoinWithPrevious failed")
	}
	if seam != (Position{0, 5}) {
		t.Errorf("seam = %v, want {0 5}", seam)
	}
	if got := b.String(); got != "hello world" {
		t.Errorf("after join = %q", got)
	}
}

func TestJoinFirstLineFails(t *testing.T) {
	b := FromString("only")
	if _, ok := b.JoinWithPrevious(0); ok {
		t.Error("joining row 0 should fail")
	}
}

func TestRemoveLineKeepsInvariant(t *testing.T) {
	b := FromString("solo")
	text, ok := b.RemoveLine(0)
	if !ok || text != "solo" {
		t.Fatalf("RemoveLine = %q, %v", text, ok)
	}
	if b.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", b.LineCount())
	}
	if line, _ := b.Line(0); line != "" {
		t.Errorf("remaining line = %q, want empty", line)
	}
}

func TestInsertLine(t *testing.T) {
	b := FromString("a\nc")
	b.InsertLine(1, "b")
	if got := b.String(); got != "a\nb\nc" {
		t.Errorf("buffer = %q, want %q", got, "a\nb\nc")
	}
	b.InsertLine(99, "d")
	if got := b.String(); got != "a\nb\nc\nd" {
		t.Errorf("buffer = %q, want %q", got, "a\nb\nc\nd")
	}
}

func TestClamp(t *testing.T) {
	b := FromString("abc\nde")
	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"negative row", Position{-1, 0}, Position{0, 0}},
		{"row past end", Position{9, 0}, Position{1, 0}},
		{"col past end", Position{0, 9}, Position{0, 3}},
		{"negative col", Position{1, -5}, Position{1, 0}},
		{"valid", Position{1, 1}, Position{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if got := b.ClampCursor(Position{0, 3}); got != (Position{0, 2}) {
		t.Errorf("ClampCursor = %v, want {0 2}", got)
	}
}

func TestTextRange(t *testing.T) {
	b := FromString("abc\ndef\nghi")
	if got := b.TextRange(Position{0, 1}, Position{2, 1}); got != "bc\ndef\ng" {
		t.Errorf("TextRange = %q", got)
	}
}

func TestRangeNormalization(t *testing.T) {
	a, z := Position{2, 1}, Position{0, 3}
	r := NewRange(a, z)
	if r.Start != z || r.End != a {
		t.Errorf("NewRange(%v, %v) = %+v, not normalized", a, z, r)
	}
	if !r.Contains(Position{1, 0}) {
		t.Error("Contains should include interior position")
	}
	if r.Contains(a) {
		t.Error("Contains should exclude the end position")
	}
}
