package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-runner/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"h", runeKey('h'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"1", runeKey('1'), core.ActionEasy, false},
		{"2", runeKey('2'), core.ActionNormal, false},
		{"3", runeKey('3'), core.ActionHard, false},
		{"m", runeKey('m'), core.ActionAudio, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected {
				t.Errorf("MapKey(%q) action = %v, expected %v", tt.msg.String(), action, tt.expected)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tt.msg.String(), quit, tt.quit)
			}
		})
	}
}

func TestHelpListsBindings(t *testing.T) {
	keys := NewKeyMapper().Keys()
	if len(keys.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total < 10 {
		t.Errorf("full help lists %d bindings, expected every binding", total)
	}
}
