package joystick

// Event is a semantic joystick event, either Move or Enter.
// Exactly one event is dispatched per accepted key press.
type Event interface {
	// Position returns the cursor position carried by the event.
	Position() (x, y int)

	joystickEvent()
}

// Move reports that the cursor moved to (X, Y).
type Move struct {
	X, Y int
}

// Position implements Event.
func (e Move) Position() (int, int) { return e.X, e.Y }

func (Move) joystickEvent() {}

// Enter reports that the center button was pressed with the cursor at (X, Y).
type Enter struct {
	X, Y int
}

// Position implements Event.
func (e Enter) Position() (int, int) { return e.X, e.Y }

func (Enter) joystickEvent() {}
