package vim

// Operator is a pending action applied over a motion, text object, or
// visual selection.
type Operator uint8

const (
	OpDelete Operator = iota
	OpChange
	OpYank
	OpIndent
	OpOutdent
	OpSwapCase
	OpLowercase
	OpUppercase
)

// Rune returns the key that invokes the operator, used both for status
// display and for the doubled-key linewise form (dd, yy).
func (o Operator) Rune() rune {
	switch o {
	case OpDelete:
		return 'd'
	case OpChange:
		return 'c'
	case OpYank:
		return 'y'
	case OpIndent:
		return '>'
	case OpOutdent:
		return '<'
	case OpSwapCase:
		return '~'
	case OpLowercase:
		return 'u'
	case OpUppercase:
		return 'U'
	default:
		return '?'
	}
}

// EntersInsert reports whether completing the operator switches to
// insert mode.
func (o Operator) EntersInsert() bool {
	return o == OpChange
}

// ModifiesBuffer reports whether the operator changes text. Yank is the
// only read-only operator.
func (o Operator) ModifiesBuffer() bool {
	return o != OpYank
}

// operatorForKey maps a normal-mode key to its operator. The g-prefixed
// case operators (gu, gU, g~) are resolved by the dispatcher.
func operatorForKey(r rune) (Operator, bool) {
	switch r {
	case 'd':
		return OpDelete, true
	case 'c':
		return OpChange, true
	case 'y':
		return OpYank, true
	case '>':
		return OpIndent, true
	case '<':
		return OpOutdent, true
	}
	return 0, false
}
