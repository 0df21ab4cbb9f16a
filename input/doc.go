// Package input turns host key, touch and mouse signals into a table of
// key states that a frame loop can poll.
//
// Hosts deliver discrete press and release signals through a Binder; the
// State records the last known state of every key code it has seen.
// There is no event queue, no key repeat and no debouncing:
//
//	keys := input.New(host)
//
//	// every frame:
//	pressed := keys.GetPressed()
//	if pressed.Get(input.KeyRight) {
//	    player.X += speed
//	}
//
// Codes that never received a signal read as not pressed.
package input
