package tui

import (
	"fmt"

	"github.com/vovakirdan/lane-runner/internal/achievements"
	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/progress"
)

// MenuItem is an entry of the main menu.
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuCharacter
	MenuDifficulty
	MenuAudio
	MenuScores
	MenuQuit
)

var menuItems = []MenuItem{MenuPlay, MenuCharacter, MenuDifficulty, MenuAudio, MenuScores, MenuQuit}

// label returns the text shown for the item given current settings.
func (i MenuItem) label(snap engine.Snapshot) string {
	switch i {
	case MenuPlay:
		return "Play"
	case MenuCharacter:
		name := string(snap.SelectedCharacter)
		if c := catalog.GetCharacter(snap.SelectedCharacter); c != nil {
			name = c.Name
		}
		return fmt.Sprintf("Bus: < %s >", name)
	case MenuDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", snap.Difficulty)
	case MenuAudio:
		if snap.AudioEnabled {
			return "Sound: on"
		}
		return "Sound: off"
	case MenuScores:
		return "Scores"
	case MenuQuit:
		return "Quit"
	default:
		return ""
	}
}

// nextCharacter cycles through the playable buses.
func nextCharacter(current catalog.CharacterID, step int) catalog.CharacterID {
	n := len(catalog.Characters)
	for i, c := range catalog.Characters {
		if c.ID == current {
			return catalog.Characters[((i+step)%n+n)%n].ID
		}
	}
	return catalog.DefaultCharacter
}

// nextDifficulty cycles through the difficulties.
func nextDifficulty(current config.Difficulty, step int) config.Difficulty {
	n := len(config.Difficulties)
	for i, d := range config.Difficulties {
		if d == current {
			return config.Difficulties[((i+step)%n+n)%n]
		}
	}
	return config.DefaultDifficulty
}

// drawMenu draws the main menu.
func drawMenu(s *core.Screen, cursor int, snap engine.Snapshot) {
	s.Clear()
	top := max(1, s.Height()/2-len(menuItems)-2)

	s.DrawTextCentered(top, "  L A N E   R U N N E R  ", core.ColorAccent)
	s.DrawTextCentered(top+1, "dodge the traffic, reach the finish", core.ColorMuted)

	for i, item := range menuItems {
		line := "  " + item.label(snap) + "  "
		color := core.ColorHUD
		if i == cursor {
			line = "> " + item.label(snap) + " <"
			color = core.ColorAccent
		}
		s.DrawTextCentered(top+3+i, line, color)
	}

	if c := catalog.GetCharacter(snap.SelectedCharacter); c != nil {
		s.DrawTextCentered(top+4+len(menuItems), c.Blurb, core.ColorMuted)
	}
}

// drawLevelSelect draws the level list with best results.
func drawLevelSelect(s *core.Screen, cursor int, levels []catalog.Level, p progress.Progress) {
	s.Clear()
	top := max(1, s.Height()/2-len(levels)-2)

	s.DrawTextCentered(top, "  SELECT LEVEL  ", core.ColorAccent)

	for i, lvl := range levels {
		var line string
		color := core.ColorHUD
		switch {
		case !p.IsUnlocked(lvl.ID):
			line = fmt.Sprintf("%d. %-14s  %5.0fm  locked", lvl.ID, lvl.Name, lvl.Distance)
			color = core.ColorMuted
		default:
			best := "          "
			if b, ok := p.Best(lvl.ID); ok {
				best = fmt.Sprintf("%s %5.1fs", stars(b.BestStars), b.BestTime)
			}
			line = fmt.Sprintf("%d. %-14s  %5.0fm  %s", lvl.ID, lvl.Name, lvl.Distance, best)
		}
		if i == cursor {
			line = "> " + line
			if p.IsUnlocked(lvl.ID) {
				color = core.ColorAccent
			}
		} else {
			line = "  " + line
		}
		s.DrawTextCentered(top+2+i, line, color)
	}

	s.DrawTextCentered(top+3+len(levels),
		fmt.Sprintf("achievements %d/%d", len(p.UnlockedAchievements), len(achievements.Definitions)), core.ColorMuted)
}
