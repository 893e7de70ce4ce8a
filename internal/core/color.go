package core

// Color is a foreground color for a screen cell, expressed as a semantic
// role. The platform layer maps each role to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRoad          // Road surface and lane markers
	ColorPlayer        // The player's bus
	ColorTraffic       // Oncoming vehicles
	ColorShield        // Shield pickups and the shield aura
	ColorFinish        // Finish line
	ColorCrash         // Crash highlight
	ColorHUD           // Status text
	ColorAccent        // Highlighted menu entries
	ColorMuted         // Locked or disabled entries
	ColorStar          // Star ratings
)
