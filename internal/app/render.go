package app

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ekphos/ekphos/internal/engine/buffer"
	"github.com/ekphos/ekphos/internal/input/vim"
)

func (a *App) render() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	if w == 0 || h == 0 {
		return
	}
	view := max(h-1, 1)
	a.clampScroll(view)
	a.session.SetViewport(vim.Viewport{Top: a.top, Height: view})

	buf := a.session.Buffer()
	gutter := 0
	if a.cfg.Editor.LineNumbers {
		gutter = len(strconv.Itoa(buf.LineCount())) + 1
	}
	selStart, selEnd, selLinewise, selActive := a.session.SelectionSpan()

	styleText := tcell.StyleDefault
	styleGutter := tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSel := tcell.StyleDefault.Reverse(true)
	tw := max(a.cfg.Editor.TabWidth, 1)

	for y := 0; y < view; y++ {
		row := a.top + y
		line, ok := buf.Line(row)
		if !ok {
			s.SetContent(0, y, '~', nil, styleGutter)
			continue
		}
		x := 0
		if gutter > 0 {
			num := strconv.Itoa(row + 1)
			for x < gutter-1-len(num) {
				s.SetContent(x, y, ' ', nil, styleGutter)
				x++
			}
			for _, r := range num {
				s.SetContent(x, y, r, nil, styleGutter)
				x++
			}
			s.SetContent(x, y, ' ', nil, styleGutter)
			x++
		}
		col := 0
		for _, r := range line {
			if x >= w {
				break
			}
			style := styleText
			if selActive && inSelection(buffer.Position{Row: row, Col: col}, selStart, selEnd, selLinewise) {
				style = styleSel
			}
			if r == '\t' {
				pad := tw - (x-gutter)%tw
				for k := 0; k < pad && x < w; k++ {
					s.SetContent(x, y, ' ', nil, style)
					x++
				}
			} else {
				s.SetContent(x, y, r, nil, style)
				x += runewidth.RuneWidth(r)
			}
			col++
		}
		// A selected empty line still gets one highlighted cell.
		if selActive && selLinewise && row >= selStart.Row && row < selEnd.Row && line == "" && x < w {
			s.SetContent(x, y, ' ', nil, styleSel)
		}
	}

	a.renderStatus(w, h)

	switch a.session.Mode() {
	case vim.ModeInsert:
		s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	case vim.ModeReplace:
		s.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	default:
		s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
	a.showCursor(gutter, tw, view)
	s.Show()
}

func inSelection(p, start, end buffer.Position, linewise bool) bool {
	if linewise {
		return p.Row >= start.Row && p.Row < end.Row
	}
	return !p.Before(start) && p.Before(end)
}

// clampScroll keeps the cursor inside the viewport with the configured
// scroll margin.
func (a *App) clampScroll(view int) {
	row := a.session.Cursor().Row
	off := min(a.cfg.Editor.ScrollOff, max((view-1)/2, 0))
	if row < a.top+off {
		a.top = max(row-off, 0)
	}
	if row > a.top+view-1-off {
		a.top = row - view + 1 + off
	}
	a.top = min(max(a.top, 0), max(a.session.Buffer().LineCount()-1, 0))
}

func (a *App) renderStatus(w, h int) {
	style := tcell.StyleDefault.Reverse(true)
	left := " " + a.session.Status()
	if a.notice != "" {
		left += "  " + a.notice
	}
	pos := a.session.Cursor()
	name := a.title
	if a.dirty() {
		name += " [+]"
	}
	right := fmt.Sprintf("%s  %d:%d ", name, pos.Row+1, pos.Col+1)

	y := h - 1
	x := 0
	for _, r := range left {
		if x >= w {
			break
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	rw := runewidth.StringWidth(right)
	for ; x < w-rw; x++ {
		a.screen.SetContent(x, y, ' ', nil, style)
	}
	if x >= w-rw {
		for _, r := range right {
			if x >= w {
				break
			}
			a.screen.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
}

func (a *App) showCursor(gutter, tw, view int) {
	pos := a.session.Cursor()
	if pos.Row < a.top || pos.Row >= a.top+view {
		a.screen.HideCursor()
		return
	}
	line, _ := a.session.Buffer().Line(pos.Row)
	x := gutter
	for i, r := range []rune(line) {
		if i >= pos.Col {
			break
		}
		if r == '\t' {
			x += tw - (x-gutter)%tw
		} else {
			x += runewidth.RuneWidth(r)
		}
	}
	a.screen.ShowCursor(x, pos.Row-a.top)
}
