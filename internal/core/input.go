package core

// Action is a semantic input intent, decoupled from physical keys so the
// engine's command surface can be driven by any input collaborator.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - move one lane left / previous entry
	ActionRight          // Right arrow, D, L - move one lane right / next entry
	ActionUp             // Up arrow, W, K - previous menu entry
	ActionDown           // Down arrow, S, J - next menu entry
	ActionConfirm        // Enter, Space - confirm selection
	ActionBack           // B, Escape - go back
	ActionPause          // P - pause/resume
	ActionRestart        // R - restart the current level
	ActionEasy           // 1 - switch to easy
	ActionNormal         // 2 - switch to normal
	ActionHard           // 3 - switch to hard
	ActionAudio          // M - toggle audio preference
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionEasy:
		return "Easy"
	case ActionNormal:
		return "Normal"
	case ActionHard:
		return "Hard"
	case ActionAudio:
		return "Audio"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
