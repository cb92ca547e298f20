package vim

import "github.com/ekphos/ekphos/internal/input/key"

// MacroRecorder captures key events into named registers a-z and replays
// them. Recording into a register overwrites its previous content;
// stopping with nothing recorded leaves the old content alone.
type MacroRecorder struct {
	macros     map[rune][]key.Event
	recording  rune // 0 when not recording
	pending    []key.Event
	lastPlayed rune
}

// NewMacroRecorder returns an empty recorder.
func NewMacroRecorder() *MacroRecorder {
	return &MacroRecorder{macros: make(map[rune][]key.Event)}
}

// StartRecording begins capturing into reg, discarding any capture in
// progress.
func (m *MacroRecorder) StartRecording(reg rune) {
	m.recording = reg
	m.pending = nil
}

// StopRecording commits the captured events. An empty capture is
// discarded so the target register keeps its previous content.
func (m *MacroRecorder) StopRecording() {
	if m.recording == 0 {
		return
	}
	if len(m.pending) > 0 {
		m.macros[m.recording] = m.pending
	}
	m.recording = 0
	m.pending = nil
}

// Recording returns the register being recorded into, or 0.
func (m *MacroRecorder) Recording() rune {
	return m.recording
}

// IsRecording reports whether a capture is in progress.
func (m *MacroRecorder) IsRecording() bool {
	return m.recording != 0
}

// RecordKey appends ev to the capture in progress.
func (m *MacroRecorder) RecordKey(ev key.Event) {
	if m.recording == 0 {
		return
	}
	m.pending = append(m.pending, ev)
}

// Get returns the events recorded into reg.
func (m *MacroRecorder) Get(reg rune) ([]key.Event, bool) {
	evs, ok := m.macros[reg]
	return evs, ok
}

// MarkPlayed records reg as the most recently played macro for "@@".
func (m *MacroRecorder) MarkPlayed(reg rune) {
	m.lastPlayed = reg
}

// LastPlayed returns the register "@@" should replay, or 0.
func (m *MacroRecorder) LastPlayed() rune {
	return m.lastPlayed
}
