package vim

import (
	"testing"

	"github.com/ekphos/ekphos/internal/engine/buffer"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		key  rune
		want Object
		ok   bool
	}{
		{'w', ObjectWord, true},
		{'W', ObjectBigWord, true},
		{'p', ObjectParagraph, true},
		{'"', ObjectDoubleQuote, true},
		{'\'', ObjectSingleQuote, true},
		{'`', ObjectBacktick, true},
		{'(', ObjectParen, true},
		{')', ObjectParen, true},
		{'b', ObjectParen, true},
		{'[', ObjectBracket, true},
		{'{', ObjectBrace, true},
		{'B', ObjectBrace, true},
		{'<', ObjectAngle, true},
		{'z', 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, ok := ParseObject(tt.key)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ParseObject(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestWordObject(t *testing.T) {
	r := newResolver("foo bar  baz")
	tests := []struct {
		name  string
		scope Scope
		pos   buffer.Position
		start buffer.Position
		end   buffer.Position
	}{
		{"iw middle of word", ScopeInner, buffer.Position{Row: 0, Col: 5}, buffer.Position{Row: 0, Col: 4}, buffer.Position{Row: 0, Col: 7}},
		{"iw at word start", ScopeInner, buffer.Position{Row: 0, Col: 4}, buffer.Position{Row: 0, Col: 4}, buffer.Position{Row: 0, Col: 7}},
		{"aw takes trailing space", ScopeAround, buffer.Position{Row: 0, Col: 5}, buffer.Position{Row: 0, Col: 4}, buffer.Position{Row: 0, Col: 9}},
		{"aw at line end takes leading", ScopeAround, buffer.Position{Row: 0, Col: 10}, buffer.Position{Row: 0, Col: 7}, buffer.Position{Row: 0, Col: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := r.ResolveObject(tt.scope, ObjectWord, tt.pos)
			if !ok {
				t.Fatal("no object")
			}
			if span.Start != tt.start || span.End != tt.end {
				t.Errorf("span = [%v, %v), want [%v, %v)", span.Start, span.End, tt.start, tt.end)
			}
		})
	}
}

func TestQuoteObject(t *testing.T) {
	r := newResolver(`say "hello there" end`)
	span, ok := r.ResolveObject(ScopeInner, ObjectDoubleQuote, buffer.Position{Row: 0, Col: 8})
	if !ok {
		t.Fatal("no object")
	}
	if span.Start != (buffer.Position{Row: 0, Col: 5}) || span.End != (buffer.Position{Row: 0, Col: 16}) {
		t.Errorf(`i" span = [%v, %v)`, span.Start, span.End)
	}
	span, ok = r.ResolveObject(ScopeAround, ObjectDoubleQuote, buffer.Position{Row: 0, Col: 8})
	if !ok {
		t.Fatal("no object")
	}
	if span.Start != (buffer.Position{Row: 0, Col: 4}) || span.End != (buffer.Position{Row: 0, Col: 17}) {
		t.Errorf(`a" span = [%v, %v)`, span.Start, span.End)
	}
	// Cursor before the pair selects the next pair.
	span, ok = r.ResolveObject(ScopeInner, ObjectDoubleQuote, buffer.Position{Row: 0, Col: 0})
	if !ok || span.Start != (buffer.Position{Row: 0, Col: 5}) {
		t.Errorf(`i" before pair = %v, %v`, span, ok)
	}
	// No quotes at all.
	if _, ok := r.ResolveObject(ScopeInner, ObjectSingleQuote, buffer.Position{Row: 0, Col: 0}); ok {
		t.Error("i' should fail without quotes")
	}
}

func TestBracketObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		scope   Scope
		pos     buffer.Position
		start   buffer.Position
		end     buffer.Position
		ok      bool
	}{
		{"ib inside", "f(a, b)", ScopeInner, buffer.Position{Row: 0, Col: 3}, buffer.Position{Row: 0, Col: 2}, buffer.Position{Row: 0, Col: 6}, true},
		{"ab inside", "f(a, b)", ScopeAround, buffer.Position{Row: 0, Col: 3}, buffer.Position{Row: 0, Col: 1}, buffer.Position{Row: 0, Col: 7}, true},
		{"on the opener", "f(a, b)", ScopeInner, buffer.Position{Row: 0, Col: 1}, buffer.Position{Row: 0, Col: 2}, buffer.Position{Row: 0, Col: 6}, true},
		{"nested picks innermost", "((x))", ScopeInner, buffer.Position{Row: 0, Col: 2}, buffer.Position{Row: 0, Col: 2}, buffer.Position{Row: 0, Col: 3}, true},
		{"multiline braces", "{\n  a\n}", ScopeAround, buffer.Position{Row: 1, Col: 1}, buffer.Position{Row: 0, Col: 0}, buffer.Position{Row: 2, Col: 1}, true},
		{"no pair", "plain", ScopeInner, buffer.Position{Row: 0, Col: 2}, buffer.Position{}, buffer.Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(tt.content)
			obj := ObjectParen
			if tt.content[0] == '{' {
				obj = ObjectBrace
			}
			span, ok := r.ResolveObject(tt.scope, obj, tt.pos)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (span.Start != tt.start || span.End != tt.end) {
				t.Errorf("span = [%v, %v), want [%v, %v)", span.Start, span.End, tt.start, tt.end)
			}
		})
	}
}

func TestParagraphObject(t *testing.T) {
	r := newResolver("a\nb\n\n\nc")
	span, ok := r.ResolveObject(ScopeInner, ObjectParagraph, buffer.Position{Row: 1, Col: 0})
	if !ok {
		t.Fatal("no object")
	}
	if !span.Linewise {
		t.Error("paragraph object should be linewise")
	}
	if span.Start.Row != 0 || span.End.Row != 2 {
		t.Errorf("ip rows = [%d, %d), want [0, 2)", span.Start.Row, span.End.Row)
	}
	span, _ = r.ResolveObject(ScopeAround, ObjectParagraph, buffer.Position{Row: 1, Col: 0})
	if span.Start.Row != 0 || span.End.Row != 4 {
		t.Errorf("ap rows = [%d, %d), want [0, 4)", span.Start.Row, span.End.Row)
	}
}
