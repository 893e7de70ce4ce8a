package catalog

// Theme is presentation-only level styling as ANSI 256 color codes.
type Theme struct {
	Road   string
	Lane   string
	Accent string
}

// Level defines one stage of the campaign.
type Level struct {
	ID        int
	Name      string
	Distance  float64 // Finish distance in meters
	BaseSpeed float64 // Base speed before the speed and difficulty multipliers
	Frequency Frequency
	Pool      []Variant // Variants that may spawn on this level
	Theme     Theme
}

// Levels is the campaign, ordered by ID starting at 1.
var Levels = []Level{
	{
		ID: 1, Name: "City Street", Distance: 500, BaseSpeed: 3,
		Frequency: FrequencyLow,
		Pool:      []Variant{VariantMotorcycle, VariantCar},
		Theme:     Theme{Road: "236", Lane: "250", Accent: "208"},
	},
	{
		ID: 2, Name: "Main Road", Distance: 1000, BaseSpeed: 3.8,
		Frequency: FrequencyMedium,
		Pool:      []Variant{VariantMotorcycle, VariantCar, VariantBus},
		Theme:     Theme{Road: "235", Lane: "252", Accent: "39"},
	},
	{
		ID: 3, Name: "Highway", Distance: 1500, BaseSpeed: 4.6,
		Frequency: FrequencyHigh,
		Pool:      []Variant{VariantCar, VariantBus, VariantTruck},
		Theme:     Theme{Road: "234", Lane: "251", Accent: "135"},
	},
	{
		ID: 4, Name: "Harbor Bridge", Distance: 1800, BaseSpeed: 5,
		Frequency: FrequencyMedium,
		Pool:      []Variant{VariantMotorcycle, VariantCar, VariantBus, VariantTruck},
		Theme:     Theme{Road: "237", Lane: "153", Accent: "45"},
	},
	{
		ID: 5, Name: "Mountain Pass", Distance: 2200, BaseSpeed: 5.4,
		Frequency: FrequencyHigh,
		Pool:      []Variant{VariantCar, VariantBus, VariantTruck},
		Theme:     Theme{Road: "238", Lane: "187", Accent: "34"},
	},
	{
		ID: 6, Name: "Night Express", Distance: 2600, BaseSpeed: 6,
		Frequency: FrequencyHigh,
		Pool:      []Variant{VariantMotorcycle, VariantCar, VariantBus, VariantTruck},
		Theme:     Theme{Road: "232", Lane: "226", Accent: "201"},
	},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level with the given ID, or nil if there is none.
func GetLevel(id int) *Level {
	for i := range Levels {
		if Levels[i].ID == id {
			return &Levels[i]
		}
	}
	return nil
}

// LevelIDs returns the IDs of all levels in campaign order.
func LevelIDs() []int {
	ids := make([]int, len(Levels))
	for i, lvl := range Levels {
		ids[i] = lvl.ID
	}
	return ids
}
