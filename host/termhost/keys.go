package termhost

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/blit/input"
)

// keyCode returns the DOM-style code for a tcell key event, or "" for keys
// without one.
func keyCode(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyRune:
		return runeCode(ev.Rune())
	}
	return ""
}

func runeCode(r rune) string {
	switch {
	case r == ' ':
		return input.KeySpace
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return "Key" + string(unicode.ToUpper(r))
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	}
	return ""
}
