package input

// Logical key codes. They follow the DOM KeyboardEvent.code names so that
// every host reports the same identifier for the same physical key.
const (
	KeyA      = "KeyA"
	KeySpace  = "Space"
	KeyRight  = "ArrowRight"
	KeyLeft   = "ArrowLeft"
	KeyUp     = "ArrowUp"
	KeyDown   = "ArrowDown"
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// DefaultControls returns the control table: the names of on-screen
// control elements mapped to the key code each one presses. Hosts that
// offer touch buttons expose them under these names.
func DefaultControls() map[string]string {
	return map[string]string{
		"btnright": KeyRight,
		"btnleft":  KeyLeft,
		"btnspc":   KeySpace,
		"btna":     KeyA,
	}
}
