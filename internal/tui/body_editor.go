package tui

import (
	"strings"
	"unicode"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// BodyEditor is a small multiline editor proxied over a TextView, used for
// the compose body. Composition instead of embedding keeps the TextView's
// method set from leaking through.
type BodyEditor struct {
	textView *tview.TextView

	lines  [][]rune
	line   int
	column int

	changeFunc func(string)
	updating   bool
}

func NewBodyEditor() *BodyEditor {
	textView := tview.NewTextView().
		SetDynamicColors(false).
		SetWrap(true).
		SetScrollable(true)

	e := &BodyEditor{
		textView: textView,
		lines:    [][]rune{{}},
	}
	textView.SetInputCapture(e.handleKey)
	e.updateDisplay()
	return e
}

// Draw delegates to the underlying TextView.
func (e *BodyEditor) Draw(screen tcell.Screen) { e.textView.Draw(screen) }

// GetRect delegates to the underlying TextView.
func (e *BodyEditor) GetRect() (int, int, int, int) { return e.textView.GetRect() }

// SetRect delegates to the underlying TextView.
func (e *BodyEditor) SetRect(x, y, width, height int) { e.textView.SetRect(x, y, width, height) }

// InputHandler delegates to the underlying TextView.
func (e *BodyEditor) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return e.textView.InputHandler()
}

// Focus delegates focus to the TextView, which carries the key handler.
func (e *BodyEditor) Focus(delegate func(p tview.Primitive)) { delegate(e.textView) }

// HasFocus delegates to the underlying TextView.
func (e *BodyEditor) HasFocus() bool { return e.textView.HasFocus() }

// Blur delegates to the underlying TextView.
func (e *BodyEditor) Blur() { e.textView.Blur() }

// GetFocusable delegates to the underlying TextView.
func (e *BodyEditor) GetFocusable() tview.Focusable { return e.textView.GetFocusable() }

// MouseHandler delegates to the underlying TextView.
func (e *BodyEditor) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return e.textView.MouseHandler()
}

// SetBackgroundColor delegates to the TextView.
func (e *BodyEditor) SetBackgroundColor(color tcell.Color) *BodyEditor {
	e.textView.SetBackgroundColor(color)
	return e
}

// SetTextColor delegates to the TextView.
func (e *BodyEditor) SetTextColor(color tcell.Color) *BodyEditor {
	e.textView.SetTextColor(color)
	return e
}

// SetText replaces the content and moves the cursor to the start.
func (e *BodyEditor) SetText(text string) {
	e.lines = nil
	for _, line := range strings.Split(text, "\n") {
		e.lines = append(e.lines, []rune(line))
	}
	if len(e.lines) == 0 {
		e.lines = [][]rune{{}}
	}
	e.line, e.column = 0, 0
	e.updateDisplay()
}

// GetText returns the current content.
func (e *BodyEditor) GetText() string {
	parts := make([]string, len(e.lines))
	for i, l := range e.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// SetChangedFunc registers the callback fired on every edit.
func (e *BodyEditor) SetChangedFunc(changed func(string)) {
	e.changeFunc = changed
}

func (e *BodyEditor) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyTab, tcell.KeyBacktab, tcell.KeyCtrlJ, tcell.KeyCtrlS:
		// navigation and panel-level shortcuts bubble up
		return event
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.backspace()
	case tcell.KeyDelete:
		e.deleteForward()
	case tcell.KeyUp:
		e.moveLine(-1)
	case tcell.KeyDown:
		e.moveLine(1)
	case tcell.KeyLeft:
		e.moveColumn(-1)
	case tcell.KeyRight:
		e.moveColumn(1)
	case tcell.KeyHome:
		e.column = 0
		e.updateDisplay()
	case tcell.KeyEnd:
		e.column = len(e.lines[e.line])
		e.updateDisplay()
	default:
		if r := event.Rune(); r != 0 && unicode.IsPrint(r) {
			e.insertRune(r)
			return nil
		}
		return event
	}
	return nil
}

func (e *BodyEditor) insertRune(r rune) {
	line := e.lines[e.line]
	if e.column > len(line) {
		e.column = len(line)
	}
	line = append(line[:e.column], append([]rune{r}, line[e.column:]...)...)
	e.lines[e.line] = line
	e.column++
	e.textChanged()
}

func (e *BodyEditor) insertNewline() {
	line := e.lines[e.line]
	if e.column > len(line) {
		e.column = len(line)
	}
	left := append([]rune{}, line[:e.column]...)
	right := append([]rune{}, line[e.column:]...)

	e.lines[e.line] = left
	rest := append([][]rune{right}, e.lines[e.line+1:]...)
	e.lines = append(e.lines[:e.line+1], rest...)

	e.line++
	e.column = 0
	e.textChanged()
}

func (e *BodyEditor) backspace() {
	switch {
	case e.column > 0:
		line := e.lines[e.line]
		e.lines[e.line] = append(line[:e.column-1], line[e.column:]...)
		e.column--
	case e.line > 0:
		prev := e.lines[e.line-1]
		e.column = len(prev)
		e.lines[e.line-1] = append(prev, e.lines[e.line]...)
		e.lines = append(e.lines[:e.line], e.lines[e.line+1:]...)
		e.line--
	default:
		return
	}
	e.textChanged()
}

func (e *BodyEditor) deleteForward() {
	line := e.lines[e.line]
	switch {
	case e.column < len(line):
		e.lines[e.line] = append(line[:e.column], line[e.column+1:]...)
	case e.line < len(e.lines)-1:
		e.lines[e.line] = append(line, e.lines[e.line+1]...)
		e.lines = append(e.lines[:e.line+1], e.lines[e.line+2:]...)
	default:
		return
	}
	e.textChanged()
}

func (e *BodyEditor) moveLine(delta int) {
	next := e.line + delta
	if next < 0 || next >= len(e.lines) {
		return
	}
	e.line = next
	if e.column > len(e.lines[e.line]) {
		e.column = len(e.lines[e.line])
	}
	e.updateDisplay()
}

func (e *BodyEditor) moveColumn(delta int) {
	switch {
	case delta < 0 && e.column > 0:
		e.column--
	case delta < 0 && e.line > 0:
		e.line--
		e.column = len(e.lines[e.line])
	case delta > 0 && e.column < len(e.lines[e.line]):
		e.column++
	case delta > 0 && e.line < len(e.lines)-1:
		e.line++
		e.column = 0
	default:
		return
	}
	e.updateDisplay()
}

func (e *BodyEditor) textChanged() {
	e.updateDisplay()
	if e.changeFunc != nil && !e.updating {
		e.changeFunc(e.GetText())
	}
}

// updateDisplay repaints the TextView with a block cursor at the edit
// position.
func (e *BodyEditor) updateDisplay() {
	if e.updating {
		return
	}
	e.updating = true
	defer func() { e.updating = false }()

	parts := make([]string, len(e.lines))
	for i, l := range e.lines {
		if i == e.line {
			col := e.column
			if col > len(l) {
				col = len(l)
			}
			parts[i] = string(l[:col]) + "█" + string(l[col:])
			continue
		}
		parts[i] = string(l)
	}
	e.textView.SetText(strings.Join(parts, "\n"))
}
