package vim

// Mode is the editing mode of the state machine. Modes that carry data
// (search direction, pending operator) keep it in State fields; the mode
// value itself selects the dispatch path.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeReplace
	ModeVisual
	ModeVisualLine
	ModeVisualBlock
	ModeCommand
	ModeSearch
	ModeSearchLocked
	ModeOperatorPending
)

// DisplayName returns the status-bar label for the mode. Operator-pending
// displays as NORMAL; the pending operator is shown separately.
func (m Mode) DisplayName() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeReplace:
		return "REPLACE"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "V-LINE"
	case ModeVisualBlock:
		return "V-BLOCK"
	case ModeCommand:
		return "COMMAND"
	case ModeSearch:
		return "SEARCH"
	case ModeSearchLocked:
		return "SEARCH LOCKED"
	default:
		return "NORMAL"
	}
}

// IsVisual reports whether the mode is one of the visual variants.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine || m == ModeVisualBlock
}
