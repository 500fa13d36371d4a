package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow - move color cursor
	ActionRight          // D, Right arrow - move color cursor
	ActionConfirm        // Enter, Space - pick the color under the cursor
	ActionBack           // B, Escape - go back to the level list
	ActionRestart        // R key - restart the level
	ActionNext           // N key - next level after a win
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
	ActionColor1         // 1..6 pick a color directly
	ActionColor2
	ActionColor3
	ActionColor4
	ActionColor5
	ActionColor6
)

// ColorAction returns the direct-pick action for a 0-based color index.
func ColorAction(index int) Action {
	if index < 0 || index > 5 {
		return ActionNone
	}
	return ActionColor1 + Action(index)
}

// ColorIndex returns the 0-based color for a direct-pick action.
func (a Action) ColorIndex() (int, bool) {
	if a < ActionColor1 || a > ActionColor6 {
		return 0, false
	}
	return int(a - ActionColor1), true
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if i, ok := a.ColorIndex(); ok {
		return "Color" + string(rune('1'+i))
	}
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// PickedColor returns the lowest direct-pick color set this frame.
func (f InputFrame) PickedColor() (int, bool) {
	for a := ActionColor1; a <= ActionColor6; a++ {
		if f.Has(a) {
			i, _ := a.ColorIndex()
			return i, true
		}
	}
	return 0, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
