package vim

import "testing"

func TestParseEx(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ExCommand
		ok    bool
	}{
		{"write", "w", ExCommand{Kind: ExWrite}, true},
		{"write force", "w!", ExCommand{Kind: ExWriteForce}, true},
		{"quit", "q", ExCommand{Kind: ExQuit}, true},
		{"quit force", "q!", ExCommand{Kind: ExQuitForce}, true},
		{"write quit", "wq", ExCommand{Kind: ExWriteQuit}, true},
		{"x alias", "x", ExCommand{Kind: ExWriteQuit}, true},
		{"goto line", "42", ExCommand{Kind: ExGoToLine, Line: 42}, true},
		{"whitespace trimmed", "  wq  ", ExCommand{Kind: ExWriteQuit}, true},
		{
			"substitute with flags", "%s/foo/bar/gi",
			ExCommand{
				Kind: ExSubstitute, AllLines: true, Pattern: "foo", Replacement: "bar",
				Flags: SubstituteFlags{Global: true, CaseInsensitive: true},
			}, true,
		},
		{
			"substitute alternate delimiter", "s#a/b#c#",
			ExCommand{Kind: ExSubstitute, Pattern: "a/b", Replacement: "c"}, true,
		},
		{
			"substitute empty replacement", "%s/gone/",
			ExCommand{Kind: ExSubstitute, AllLines: true, Pattern: "gone"}, true,
		},
		{
			"substitute confirm flag", "s/a/b/c",
			ExCommand{Kind: ExSubstitute, Pattern: "a", Replacement: "b", Flags: SubstituteFlags{Confirm: true}}, true,
		},
		{"substitute too few segments", "%s/onlypattern", ExCommand{}, false},
		{"bare s", "s", ExCommand{}, false},
		{"empty", "", ExCommand{}, false},
		{"unknown", "foo", ExCommand{}, false},
		{"zero line", "0", ExCommand{}, false},
		{"negative line", "-3", ExCommand{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEx(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseEx(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
