package ebitenhost

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyCode returns the DOM-style code for k: letters become "KeyA" and
// so on, every other key keeps its Ebitengine name ("ArrowRight",
// "Space", "Digit1").
func keyCode(k ebiten.Key) string {
	return codeFromName(k.String())
}

func codeFromName(name string) string {
	if utf8.RuneCountInString(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return "Key" + name
	}
	return name
}
