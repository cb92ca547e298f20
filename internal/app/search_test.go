package app

import (
	"testing"

	"github.com/ekphos/ekphos/internal/engine/buffer"
	"github.com/ekphos/ekphos/internal/input/key"
	"github.com/ekphos/ekphos/internal/input/vim"
)

func TestExecuteSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cmd     vim.ExCommand
		want    string
		changed int
	}{
		{
			"current line first match only",
			"aaa aaa\naaa",
			vim.ExCommand{Pattern: "aaa", Replacement: "bbb"},
			"bbb aaa\naaa", 1,
		},
		{
			"current line global",
			"aaa aaa\naaa",
			vim.ExCommand{Pattern: "aaa", Replacement: "bbb", Flags: vim.SubstituteFlags{Global: true}},
			"bbb bbb\naaa", 1,
		},
		{
			"all lines global",
			"aaa aaa\naaa",
			vim.ExCommand{Pattern: "aaa", Replacement: "bbb", AllLines: true, Flags: vim.SubstituteFlags{Global: true}},
			"bbb bbb\nbbb", 2,
		},
		{
			"case insensitive flag",
			"Foo foo",
			vim.ExCommand{Pattern: "foo", Replacement: "x", Flags: vim.SubstituteFlags{CaseInsensitive: true, Global: true}},
			"x x", 1,
		},
		{
			"group reference",
			"name: alice",
			vim.ExCommand{Pattern: `name: (\w+)`, Replacement: "$1", Flags: vim.SubstituteFlags{}},
			"alice", 1,
		},
		{
			"no match",
			"hello",
			vim.ExCommand{Pattern: "zzz", Replacement: "x", AllLines: true},
			"hello", 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := vim.NewSession(tt.content)
			n, err := executeSubstitute(sess, &tt.cmd)
			if err != nil {
				t.Fatalf("executeSubstitute: %v", err)
			}
			if n != tt.changed {
				t.Errorf("changed = %d, want %d", n, tt.changed)
			}
			if got := sess.Contents(); got != tt.want {
				t.Errorf("contents = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteSubstituteInvalidPattern(t *testing.T) {
	sess := vim.NewSession("text")
	if _, err := executeSubstitute(sess, &vim.ExCommand{Pattern: "(", Replacement: "x"}); err == nil {
		t.Error("invalid pattern must return an error")
	}
}

func TestExecuteSubstituteUndoesAsOneStep(t *testing.T) {
	sess := vim.NewSession("aaa\naaa\naaa")
	cmd := vim.ExCommand{Pattern: "aaa", Replacement: "b", AllLines: true}
	if _, err := executeSubstitute(sess, &cmd); err != nil {
		t.Fatal(err)
	}
	if got := sess.Contents(); got != "b\nb\nb" {
		t.Fatalf("contents = %q", got)
	}
	sess.HandleKey(key.Rune('u'))
	if got := sess.Contents(); got != "aaa\naaa\naaa" {
		t.Errorf("after undo = %q", got)
	}
}

func TestFindMatchWraps(t *testing.T) {
	sess := vim.NewSession("alpha\nbeta\ngamma")
	tests := []struct {
		name  string
		from  buffer.Position
		req   vim.SearchRequest
		want  buffer.Position
		found bool
	}{
		{"forward same line", buffer.Position{}, vim.SearchRequest{Pattern: "pha", Forward: true}, buffer.Position{Row: 0, Col: 2}, true},
		{"forward next line", buffer.Position{}, vim.SearchRequest{Pattern: "beta", Forward: true}, buffer.Position{Row: 1}, true},
		{"forward wraps to top", buffer.Position{Row: 2}, vim.SearchRequest{Pattern: "alpha", Forward: true}, buffer.Position{}, true},
		{"backward previous line", buffer.Position{Row: 2}, vim.SearchRequest{Pattern: "beta"}, buffer.Position{Row: 1}, true},
		{"backward wraps to bottom", buffer.Position{}, vim.SearchRequest{Pattern: "gamma"}, buffer.Position{Row: 2}, true},
		{"missing pattern", buffer.Position{}, vim.SearchRequest{Pattern: "zzz", Forward: true}, buffer.Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess.JumpTo(tt.from)
			got, found := findMatch(sess, &tt.req)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("match at %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindMatchSkipsCursorPosition(t *testing.T) {
	// n from a match must advance to the next one, not stay put.
	sess := vim.NewSession("x ab x ab")
	sess.JumpTo(buffer.Position{Row: 0, Col: 2})
	got, found := findMatch(sess, &vim.SearchRequest{Pattern: "ab", Forward: true})
	if !found || got.Col != 7 {
		t.Errorf("match = %+v (%v), want col 7", got, found)
	}
}

func TestFindMatchLiteralFallback(t *testing.T) {
	sess := vim.NewSession("price (usd)")
	got, found := findMatch(sess, &vim.SearchRequest{Pattern: "(usd", Forward: true})
	if !found || got.Col != 6 {
		t.Errorf("match = %+v (%v), want col 6", got, found)
	}
}
