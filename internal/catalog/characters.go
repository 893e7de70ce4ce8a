package catalog

// CharacterID identifies a playable bus.
type CharacterID string

const (
	CharacterTayo CharacterID = "tayo"
	CharacterGani CharacterID = "gani"
	CharacterLani CharacterID = "lani"
	CharacterRogi CharacterID = "rogi"
)

// DefaultCharacter is selected when nothing valid is stored.
const DefaultCharacter = CharacterTayo

// Character describes a playable bus.
type Character struct {
	ID    CharacterID
	Name  string
	Blurb string
	Color string // ANSI 256 color code
}

// Characters lists every playable bus in menu order.
var Characters = []Character{
	{ID: CharacterTayo, Name: "Tayo", Blurb: "Friendly, brave, and always ready to help.", Color: "33"},
	{ID: CharacterGani, Name: "Gani", Blurb: "Cool and calm with a steady driving style.", Color: "196"},
	{ID: CharacterLani, Name: "Lani", Blurb: "Cheerful, bright, and full of energy.", Color: "220"},
	{ID: CharacterRogi, Name: "Rogi", Blurb: "Bold, fast, and always up for a challenge.", Color: "40"},
}

// GetCharacter returns the character with the given id, or nil.
func GetCharacter(id CharacterID) *Character {
	for i := range Characters {
		if Characters[i].ID == id {
			return &Characters[i]
		}
	}
	return nil
}

// IsCharacter reports whether id names a playable bus.
func IsCharacter(id CharacterID) bool {
	return GetCharacter(id) != nil
}
