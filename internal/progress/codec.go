package progress

import (
	"encoding/json"
	"strconv"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
)

// DecodeOutcome describes what Decode found in the stored blob.
type DecodeOutcome int

const (
	OutcomeEmpty    DecodeOutcome = iota // Nothing stored
	OutcomeLoaded                        // Current-version data
	OutcomeMigrated                      // Older data, incompatible fields cleared
	OutcomeCorrupt                       // Unparseable, defaults used
)

// String returns the outcome name for logging.
func (o DecodeOutcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeMigrated:
		return "migrated"
	case OutcomeCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// record is the wire form of Progress. Field names are part of the save
// format and must not change.
type record struct {
	UnlockedLevels       int               `json:"unlockedLevels"`
	SelectedCharacter    string            `json:"selectedCharacter"`
	BestByLevel          map[int]BestStats `json:"bestByLevel"`
	AudioEnabled         bool              `json:"audioEnabled"`
	Difficulty           string            `json:"difficulty"`
	Version              int               `json:"distanceProfileVersion"`
	UnlockedAchievements []string          `json:"unlockedAchievements"`
}

// Encode serializes p, always stamping the current version.
func Encode(p Progress) ([]byte, error) {
	r := record{
		UnlockedLevels:       p.UnlockedLevels,
		SelectedCharacter:    string(p.SelectedCharacter),
		BestByLevel:          p.BestByLevel,
		AudioEnabled:         p.AudioEnabled,
		Difficulty:           p.Difficulty.String(),
		Version:              CurrentVersion,
		UnlockedAchievements: p.UnlockedAchievements,
	}
	if r.BestByLevel == nil {
		r.BestByLevel = map[int]BestStats{}
	}
	if r.UnlockedAchievements == nil {
		r.UnlockedAchievements = []string{}
	}
	return json.Marshal(r)
}

// Decode never fails. Each recognizable field is salvaged on its own and
// anything missing or invalid keeps its default. Data older than
// CurrentVersion loses its best-by-level table.
func Decode(data []byte) (Progress, DecodeOutcome) {
	p := Default()
	if len(data) == 0 {
		return p, OutcomeEmpty
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return p, OutcomeCorrupt
	}

	var unlocked int
	if decodeField(fields, "unlockedLevels", &unlocked) && unlocked > 1 {
		p.UnlockedLevels = unlocked
	}

	var character string
	if decodeField(fields, "selectedCharacter", &character) && catalog.IsCharacter(catalog.CharacterID(character)) {
		p.SelectedCharacter = catalog.CharacterID(character)
	}

	var audio bool
	if decodeField(fields, "audioEnabled", &audio) {
		p.AudioEnabled = audio
	}

	var difficulty string
	if decodeField(fields, "difficulty", &difficulty) {
		if d, err := config.ParseDifficulty(difficulty); err == nil {
			p.Difficulty = d
		}
	}

	var achievements []string
	if decodeField(fields, "unlockedAchievements", &achievements) {
		p.addAchievements(achievements)
	}

	version := 1
	var stored int
	if decodeField(fields, "distanceProfileVersion", &stored) {
		version = stored
	}

	outcome := OutcomeLoaded
	if version < CurrentVersion {
		outcome = OutcomeMigrated
	} else {
		p.BestByLevel = decodeBests(fields["bestByLevel"])
	}
	p.Version = CurrentVersion

	return p, outcome
}

// decodeField unmarshals one field, reporting whether it was present and
// well-typed.
func decodeField(fields map[string]json.RawMessage, name string, dst any) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// decodeBests keeps every entry with a numeric key and plausible values.
func decodeBests(raw json.RawMessage) map[int]BestStats {
	out := map[int]BestStats{}
	if len(raw) == 0 {
		return out
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return out
	}

	for key, value := range entries {
		id, err := strconv.Atoi(key)
		if err != nil || id < 1 {
			continue
		}
		var b BestStats
		if err := json.Unmarshal(value, &b); err != nil {
			continue
		}
		if b.BestStars < 1 || b.BestStars > 3 || b.BestTime <= 0 || b.BestAvoided < 0 {
			continue
		}
		out[id] = b
	}
	return out
}
