package terminal

import (
	"unicode"
)

// Entry is the single-line text editor shown after the command identifier.
// It keeps a history of activated lines that Up and Down walk through.
type Entry struct {
	// buffer holds the line being typed.
	buffer []rune

	// cursor is the insertion point within buffer.
	cursor int

	shown bool

	history []string

	// historyIndex is the position in history (-1 = current input).
	historyIndex int

	// saved holds the line typed before walking the history.
	saved []rune
}

// NewEntry creates a hidden, empty entry.
func NewEntry() *Entry {
	return &Entry{
		buffer:       make([]rune, 0, 64),
		historyIndex: -1,
	}
}

func (e *Entry) Show() {
	e.shown = true
}

// Hide hides the entry. The text is kept until the next SetText.
func (e *Entry) Hide() {
	e.shown = false
	e.historyIndex = -1
	e.saved = nil
}

func (e *Entry) Shown() bool {
	return e.shown
}

func (e *Entry) Text() string {
	return string(e.buffer)
}

// SetText replaces the content and moves the cursor to the end.
func (e *Entry) SetText(text string) {
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
}

// Cursor returns the cursor position in runes.
func (e *Entry) Cursor() int {
	return e.cursor
}

// SetCursor moves the cursor, clamped to the text.
func (e *Entry) SetCursor(pos int) {
	e.cursor = max(0, min(pos, len(e.buffer)))
}

// Insert inserts r at the cursor.
func (e *Entry) Insert(r rune) {
	e.buffer = append(e.buffer, 0)
	copy(e.buffer[e.cursor+1:], e.buffer[e.cursor:])
	e.buffer[e.cursor] = r
	e.cursor++
}

// Backspace deletes the character before the cursor.
func (e *Entry) Backspace() bool {
	if e.cursor == 0 {
		return false
	}
	e.deleteRange(e.cursor-1, e.cursor)
	return true
}

func (e *Entry) DeleteNextChar() {
	if e.cursor < len(e.buffer) {
		e.deleteRange(e.cursor, e.cursor+1)
	}
}

func (e *Entry) DeleteNextWord() {
	e.deleteRange(e.cursor, e.nextWordEnd())
}

func (e *Entry) DeletePreviousWord() {
	e.deleteRange(e.previousWordStart(), e.cursor)
}

func (e *Entry) End() {
	e.cursor = len(e.buffer)
}

func (e *Entry) NextChar() {
	if e.cursor < len(e.buffer) {
		e.cursor++
	}
}

func (e *Entry) PreviousChar() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// NextWord moves to the end of the current or next word.
func (e *Entry) NextWord() {
	e.cursor = e.nextWordEnd()
}

// PreviousWord moves to the start of the current or previous word.
func (e *Entry) PreviousWord() {
	e.cursor = e.previousWordStart()
}

// SmartHome moves to the first non-blank character, or to the start of
// the line when the cursor is already there.
func (e *Entry) SmartHome() {
	first := 0
	for first < len(e.buffer) && unicode.IsSpace(e.buffer[first]) {
		first++
	}
	if e.cursor == first {
		first = 0
	}
	e.cursor = first
}

func (e *Entry) deleteRange(from, to int) {
	if from >= to {
		return
	}
	e.buffer = append(e.buffer[:from], e.buffer[to:]...)
	e.cursor = from
}

func (e *Entry) nextWordEnd() int {
	i := e.cursor
	for i < len(e.buffer) && !isWordRune(e.buffer[i]) {
		i++
	}
	for i < len(e.buffer) && isWordRune(e.buffer[i]) {
		i++
	}
	return i
}

func (e *Entry) previousWordStart() int {
	i := e.cursor
	for i > 0 && !isWordRune(e.buffer[i-1]) {
		i--
	}
	for i > 0 && isWordRune(e.buffer[i-1]) {
		i--
	}
	return i
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// AddToHistory records an activated line.
// Empty lines and repeats of the last line are skipped.
func (e *Entry) AddToHistory(line string) {
	if line == "" {
		return
	}
	if n := len(e.history); n > 0 && e.history[n-1] == line {
		return
	}
	e.history = append(e.history, line)
	e.historyIndex = -1
	e.saved = nil
}

// HistoryPrev replaces the text with the previous history line.
func (e *Entry) HistoryPrev() bool {
	if len(e.history) == 0 {
		return false
	}

	switch {
	case e.historyIndex == -1:
		e.saved = append([]rune(nil), e.buffer...)
		e.historyIndex = len(e.history) - 1
	case e.historyIndex > 0:
		e.historyIndex--
	default:
		return false
	}

	e.SetText(e.history[e.historyIndex])
	return true
}

// HistoryNext replaces the text with the next history line, restoring
// the typed line past the newest one.
func (e *Entry) HistoryNext() bool {
	if e.historyIndex == -1 {
		return false
	}

	e.historyIndex++
	if e.historyIndex < len(e.history) {
		e.SetText(e.history[e.historyIndex])
		return true
	}

	e.historyIndex = -1
	e.buffer = e.saved
	e.cursor = len(e.buffer)
	e.saved = nil
	return true
}

// History returns a copy of the recorded lines, oldest first.
func (e *Entry) History() []string {
	return append([]string(nil), e.history...)
}
