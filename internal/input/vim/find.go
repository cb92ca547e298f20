package vim

// FindState is the latched in-line character search set by f, F, t and T,
// repeatable with ";" and ",".
type FindState struct {
	Char    rune
	Forward bool
	Till    bool
}

// Reversed returns the search with its direction flipped, as "," uses.
// The till flag is preserved.
func (f FindState) Reversed() FindState {
	f.Forward = !f.Forward
	return f
}

// Locate returns the column the search lands on within line, starting
// from col, and whether a target was found. Forward searches begin after
// the cursor column; backward searches end before it. Till variants stop
// one column short of the target and fail when that lands on the cursor
// itself (the target is adjacent).
func (f FindState) Locate(line string, col int) (int, bool) {
	return f.locate(line, col, false)
}

// LocateRepeat is Locate for ";" and ",": a till search skips a target
// adjacent to the cursor so the repeat makes progress.
func (f FindState) LocateRepeat(line string, col int) (int, bool) {
	return f.locate(line, col, true)
}

func (f FindState) locate(line string, col int, repeat bool) (int, bool) {
	runes := []rune(line)
	if f.Forward {
		for i := col + 1; i < len(runes); i++ {
			if runes[i] != f.Char {
				continue
			}
			if f.Till {
				if i == col+1 {
					if !repeat {
						return 0, false
					}
					continue
				}
				return i - 1, true
			}
			return i, true
		}
		return 0, false
	}
	for i := min(col, len(runes)) - 1; i >= 0; i-- {
		if runes[i] != f.Char {
			continue
		}
		if f.Till {
			if i == col-1 {
				if !repeat {
					return 0, false
				}
				continue
			}
			return i + 1, true
		}
		return i, true
	}
	return 0, false
}

// PendingFind records that f/F/t/T was pressed and the machine is
// waiting for the target character.
type PendingFind struct {
	Forward bool
	Till    bool
}
