package engine

// Phase is the lifecycle state of the engine.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseLevelSelect
	PhaseCountdown
	PhasePlaying
	PhasePaused
	PhaseCrashing
	PhaseGameOver
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseLevelSelect:
		return "levelSelect"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseCrashing:
		return "crashing"
	case PhaseGameOver:
		return "gameOver"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// InRun reports whether a run is live (started and not yet finished).
func (p Phase) InRun() bool {
	switch p {
	case PhaseCountdown, PhasePlaying, PhasePaused, PhaseCrashing:
		return true
	}
	return false
}

// EventKind identifies something that happened during a Tick.
type EventKind int

const (
	EventCountdown     EventKind = iota // Countdown value decreased; Value holds the new value
	EventGo                             // Countdown finished, run is live
	EventPowerUp                        // Power-up collected
	EventShieldAbsorb                   // Shield consumed a collision
	EventCrash                          // Unshielded collision
	EventGameOver                       // Crash animation finished
	EventVictory                        // Finish reached; Value holds the stars
	EventAchievement                    // Achievement unlocked; ID holds its id
)

func (k EventKind) String() string {
	switch k {
	case EventCountdown:
		return "countdown"
	case EventGo:
		return "go"
	case EventPowerUp:
		return "powerup"
	case EventShieldAbsorb:
		return "shield_absorb"
	case EventCrash:
		return "crash"
	case EventGameOver:
		return "game_over"
	case EventVictory:
		return "victory"
	case EventAchievement:
		return "achievement"
	default:
		return "unknown"
	}
}

// Event is emitted by Tick for presentation collaborators (sound, flashes).
type Event struct {
	Kind  EventKind
	Value int
	ID    string
}

// StepResult is returned by Tick.
type StepResult struct {
	Phase  Phase
	Events []Event
}

// Has reports whether the result contains an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, ev := range r.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
