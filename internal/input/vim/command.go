package vim

import (
	"strconv"
	"strings"
)

// ExKind identifies a parsed ex command.
type ExKind uint8

const (
	ExWrite ExKind = iota
	ExWriteForce
	ExQuit
	ExQuitForce
	ExWriteQuit
	ExGoToLine
	ExSubstitute
)

// SubstituteFlags are the recognized trailing flags of :s.
type SubstituteFlags struct {
	Global          bool // g: all occurrences on each line
	CaseInsensitive bool // i
	CaseSensitive   bool // I: overrides i
	Confirm         bool // c
}

// ExCommand is a parsed command line (without the leading ':').
type ExCommand struct {
	Kind        ExKind
	Line        int // 1-based, ExGoToLine only
	Pattern     string
	Replacement string
	Flags       SubstituteFlags
	AllLines    bool // substitute had the % prefix
}

// ParseEx parses an ex command line. The boolean is false for anything
// unrecognized; the caller reports "not an editor command".
func ParseEx(input string) (ExCommand, bool) {
	input = strings.TrimSpace(input)
	switch input {
	case "w":
		return ExCommand{Kind: ExWrite}, true
	case "w!":
		return ExCommand{Kind: ExWriteForce}, true
	case "q":
		return ExCommand{Kind: ExQuit}, true
	case "q!":
		return ExCommand{Kind: ExQuitForce}, true
	case "wq", "x":
		return ExCommand{Kind: ExWriteQuit}, true
	}
	if cmd, ok := parseSubstitute(input); ok {
		return cmd, true
	}
	if n, err := strconv.Atoi(input); err == nil && n > 0 {
		return ExCommand{Kind: ExGoToLine, Line: n}, true
	}
	return ExCommand{}, false
}

// parseSubstitute handles %s and s forms. The delimiter is whatever
// character follows the s; fewer than two delimited segments is a parse
// failure. A trailing delimiter yields an empty replacement.
func parseSubstitute(input string) (ExCommand, bool) {
	all := false
	rest := input
	if strings.HasPrefix(rest, "%s") {
		all = true
		rest = rest[2:]
	} else if strings.HasPrefix(rest, "s") {
		rest = rest[1:]
	} else {
		return ExCommand{}, false
	}
	if rest == "" {
		return ExCommand{}, false
	}
	delim := []rune(rest)[0]
	parts := strings.Split(rest[len(string(delim)):], string(delim))
	if len(parts) < 2 {
		return ExCommand{}, false
	}
	cmd := ExCommand{Kind: ExSubstitute, AllLines: all, Pattern: parts[0], Replacement: parts[1]}
	if len(parts) > 2 {
		for _, r := range parts[2] {
			switch r {
			case 'g':
				cmd.Flags.Global = true
			case 'i':
				cmd.Flags.CaseInsensitive = true
			case 'I':
				cmd.Flags.CaseSensitive = true
			case 'c':
				cmd.Flags.Confirm = true
			}
		}
	}
	return cmd, true
}
