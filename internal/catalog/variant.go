// Package catalog holds the compiled-in game data: levels, traffic variants,
// spawn frequency classes and playable characters.
package catalog

import "fmt"

// Variant is a kind of oncoming vehicle.
type Variant int

const (
	VariantMotorcycle Variant = iota
	VariantCar
	VariantBus
	VariantTruck
)

// Variants lists every variant in declaration order.
var Variants = []Variant{VariantMotorcycle, VariantCar, VariantBus, VariantTruck}

// Height returns the sprite height of the variant in playfield pixels.
// Collision hitboxes are derived from this height.
func (v Variant) Height() float64 {
	switch v {
	case VariantMotorcycle:
		return 72
	case VariantCar:
		return 90
	case VariantBus:
		return 115
	case VariantTruck:
		return 130
	default:
		panic(fmt.Sprintf("catalog: unknown variant %d", int(v)))
	}
}

// String returns the lowercase name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantMotorcycle:
		return "motorcycle"
	case VariantCar:
		return "car"
	case VariantBus:
		return "bus"
	case VariantTruck:
		return "truck"
	default:
		return "unknown"
	}
}

// Frequency is the obstacle density class of a level.
type Frequency int

const (
	FrequencyLow Frequency = iota
	FrequencyMedium
	FrequencyHigh
)

// SpawnInterval returns the base time in seconds between obstacle spawn
// attempts, before the difficulty multiplier is applied.
func (f Frequency) SpawnInterval() float64 {
	switch f {
	case FrequencyHigh:
		return 1.2
	case FrequencyMedium:
		return 1.6
	default:
		return 2.1
	}
}

// String returns the lowercase name of the frequency class.
func (f Frequency) String() string {
	switch f {
	case FrequencyLow:
		return "low"
	case FrequencyMedium:
		return "medium"
	case FrequencyHigh:
		return "high"
	default:
		return "unknown"
	}
}
