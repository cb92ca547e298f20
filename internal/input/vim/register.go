package vim

import (
	"strings"
	"unicode"
)

// RegisterContent is the text held by a register plus whether it was
// captured linewise. Linewise text always ends with '\n'.
type RegisterContent struct {
	Text     string
	Linewise bool
}

// Registers is the register file: the unnamed register, the yank
// register 0, the numbered delete ring 1-9, the small-delete register -,
// named registers a-z, and the read-only search and command registers.
// The + and * registers alias the unnamed register; clipboard bridging
// is a collaborator concern.
type Registers struct {
	unnamed     RegisterContent
	numbered    [10]RegisterContent
	smallDelete RegisterContent
	named       map[rune]RegisterContent
	lastSearch  string
	lastCommand string
	selected    rune // 0 when no register is selected
}

// NewRegisters returns an empty register file.
func NewRegisters() *Registers {
	return &Registers{named: make(map[rune]RegisterContent)}
}

// Select latches the register the next yank, delete, or paste uses.
func (r *Registers) Select(name rune) {
	r.selected = name
}

// Selected returns the latched register, if any.
func (r *Registers) Selected() (rune, bool) {
	return r.selected, r.selected != 0
}

// ClearSelection drops the register latch. The latch survives exactly
// one operation; every completed or aborted command clears it.
func (r *Registers) ClearSelection() {
	r.selected = 0
}

// Yank stores yanked text. Every yank fills the unnamed register and
// register 0; the delete ring is untouched. A selected register
// additionally receives the text (or an append, for A-Z), consuming the
// latch.
func (r *Registers) Yank(text string, linewise bool) {
	content := RegisterContent{Text: text, Linewise: linewise}
	r.unnamed = content
	r.numbered[0] = content
	if name, ok := r.Selected(); ok {
		r.setSelected(name, content)
		r.ClearSelection()
	}
}

// Delete stores deleted text. Without a selected register: linewise or
// multi-line deletes shift the ring 1-9 and land in register 1;
// single-line charwise deletes go to the small-delete register. The
// unnamed register always receives the text. A selected register
// suppresses the ring entirely.
func (r *Registers) Delete(text string, linewise bool) {
	content := RegisterContent{Text: text, Linewise: linewise}
	if name, ok := r.Selected(); ok {
		r.setSelected(name, content)
		r.unnamed = content
		r.ClearSelection()
		return
	}
	r.unnamed = content
	if linewise || strings.ContainsRune(text, '\n') {
		for i := 9; i > 1; i-- {
			r.numbered[i] = r.numbered[i-1]
		}
		r.numbered[1] = content
	} else {
		r.smallDelete = content
	}
}

func (r *Registers) setSelected(name rune, content RegisterContent) {
	switch {
	case name >= 'a' && name <= 'z':
		r.named[name] = content
	case name >= 'A' && name <= 'Z':
		lower := unicode.ToLower(name)
		existing, ok := r.named[lower]
		if !ok {
			r.named[lower] = content
			return
		}
		if content.Linewise && !existing.Linewise && !strings.HasSuffix(existing.Text, "\n") {
			existing.Text += "\n"
		}
		existing.Text += content.Text
		existing.Linewise = existing.Linewise || content.Linewise
		r.named[lower] = existing
	case name == '+' || name == '*':
		r.unnamed = content
	case name >= '1' && name <= '9':
		r.numbered[name-'0'] = content
	case name == '0':
		r.numbered[0] = content
	case name == '-':
		r.smallDelete = content
	default:
		r.unnamed = content
	}
}

// Get reads a register by name. Derived registers: " is the unnamed
// register, / the last search, : the last command.
func (r *Registers) Get(name rune) (RegisterContent, bool) {
	switch {
	case name == '"' || name == '+' || name == '*':
		return r.unnamed, true
	case name >= '0' && name <= '9':
		return r.numbered[name-'0'], true
	case name == '-':
		return r.smallDelete, true
	case name >= 'a' && name <= 'z':
		c, ok := r.named[name]
		return c, ok
	case name >= 'A' && name <= 'Z':
		c, ok := r.named[unicode.ToLower(name)]
		return c, ok
	case name == '/':
		return RegisterContent{Text: r.lastSearch}, r.lastSearch != ""
	case name == ':':
		return RegisterContent{Text: r.lastCommand}, r.lastCommand != ""
	}
	return RegisterContent{}, false
}

// PasteContent returns what a paste should insert: the selected register
// when one is latched (consuming the latch), otherwise the unnamed
// register.
func (r *Registers) PasteContent() RegisterContent {
	if name, ok := r.Selected(); ok {
		r.ClearSelection()
		if c, found := r.Get(name); found {
			return c
		}
		return RegisterContent{}
	}
	return r.unnamed
}

// SetSearch records the most recent search pattern.
func (r *Registers) SetSearch(pattern string) {
	r.lastSearch = pattern
}

// SetCommand records the most recent ex command line.
func (r *Registers) SetCommand(cmd string) {
	r.lastCommand = cmd
}
