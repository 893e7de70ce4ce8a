package engine

import (
	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// LaneCount is the number of lanes on the road.
const LaneCount = 3

// Obstacle is an oncoming vehicle.
type Obstacle struct {
	ID      int
	Lane    int
	Y       float64 // Top edge in playfield pixels, grows as it approaches
	Variant catalog.Variant
}

// Height returns the collision height of the obstacle.
func (o Obstacle) Height() float64 {
	return o.Variant.Height()
}

// PowerUpKind is the effect a power-up applies when collected.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	default:
		return "unknown"
	}
}

// PowerUp is a collectible moving with the road.
type PowerUp struct {
	ID   int
	Lane int
	Y    float64
	Kind PowerUpKind
}

// clampLane keeps a lane index on the road.
func clampLane(lane int) int {
	return core.Clamp(lane, 0, LaneCount-1)
}
