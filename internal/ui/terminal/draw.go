package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Draw repaints the whole screen: the output area, the completion list and
// the status line at the bottom.
func (h *Host) Draw() {
	h.screen.Clear()
	width, height := h.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	statusY := height - 1
	listTop := statusY - h.drawCompletion(width, statusY)
	h.drawOutput(width, listTop)
	h.drawStatus(width, statusY)
	h.screen.Show()
}

func (h *Host) drawOutput(width, rows int) {
	lines := h.output
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for y, line := range lines {
		drawText(h.screen, 0, y, width, tcell.StyleDefault, line)
	}
}

// drawCompletion draws the candidates just above bottom and returns the
// number of rows used.
func (h *Host) drawCompletion(width, bottom int) int {
	if !h.completion.Shown() {
		return 0
	}
	matches := h.completion.Candidates()
	rows := min(len(matches), h.maxRows, bottom)
	if rows <= 0 {
		return 0
	}

	// Keep the selection inside the visible window.
	first := 0
	if sel := h.completion.SelectedIndex(); sel >= rows {
		first = sel - rows + 1
	}

	textWidth := 0
	for _, m := range matches[first : first+rows] {
		textWidth = max(textWidth, runewidth.StringWidth(m.Candidate.Text))
	}
	textWidth = min(textWidth+2, width/2)

	top := bottom - rows
	for i, m := range matches[first : first+rows] {
		y := top + i
		style, help := h.theme.Completion, h.theme.Help
		if first+i == h.completion.SelectedIndex() {
			style, help = h.theme.Selected, h.theme.Selected
		}
		fill(h.screen, 0, y, width, help)
		drawText(h.screen, 0, y, textWidth, style, " "+m.Candidate.Text)
		drawText(h.screen, textWidth, y, width, help, " "+m.Candidate.Help)
	}
	return rows
}

// drawStatus draws the mode label, the message, the identifier with the
// entry and the shortcut label right-aligned.
func (h *Host) drawStatus(width, y int) {
	s := h.status
	fill(h.screen, 0, y, width, h.theme.Bar)

	right := width
	if s.shortcutLabel != "" {
		right = max(0, width-runewidth.StringWidth(s.shortcutLabel)-1)
		drawText(h.screen, right, y, width, h.theme.Shortcut, s.shortcutLabel)
	}

	x := 0
	if s.modeLabel != "" {
		x = drawText(h.screen, x, y, right, h.theme.Mode, " "+s.modeLabel+" ")
		x++
	}
	if s.message != "" {
		x = drawText(h.screen, x, y, right, h.theme.MessageStyle(s.kind), s.message)
		x++
	}

	if !h.entry.Shown() {
		h.screen.HideCursor()
		return
	}
	x = drawText(h.screen, x, y, right, h.theme.Bar, string(s.identifier))
	cursorX := x + runewidth.StringWidth(string(h.entry.buffer[:h.entry.cursor]))
	drawText(h.screen, x, y, right, h.theme.Bar, h.entry.Text())
	if cursorX < right {
		h.screen.ShowCursor(cursorX, y)
	} else {
		h.screen.HideCursor()
	}
}

// drawText draws s from x up to maxX and returns the column after the
// last cell drawn.
func drawText(screen tcell.Screen, x, y, maxX int, style tcell.Style, s string) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func fill(screen tcell.Screen, x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
