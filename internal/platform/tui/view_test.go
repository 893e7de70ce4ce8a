package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

func TestStars(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "☆☆☆"},
		{1, "★☆☆"},
		{3, "★★★"},
		{7, "★★★"},
		{-2, "☆☆☆"},
	}

	for _, tt := range tests {
		if got := stars(tt.n); got != tt.expected {
			t.Errorf("stars(%d) = %q, expected %q", tt.n, got, tt.expected)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		frac     float64
		expected string
	}{
		{0, "[    ]"},
		{0.5, "[==  ]"},
		{1, "[====]"},
		{1.7, "[====]"},
		{-1, "[    ]"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.frac, 4); got != tt.expected {
			t.Errorf("progressBar(%v, 4) = %q, expected %q", tt.frac, got, tt.expected)
		}
	}
}

func TestFrameDelta(t *testing.T) {
	now := time.Unix(1000, 0)

	if d := frameDelta(time.Time{}, now); d != 0 {
		t.Errorf("first frame delta = %v, expected 0", d)
	}
	if d := frameDelta(now, now.Add(16*time.Millisecond)); d != 16 {
		t.Errorf("delta = %v, expected 16", d)
	}
	if d := frameDelta(now, now.Add(-time.Second)); d != 0 {
		t.Errorf("backwards clock delta = %v, expected 0", d)
	}
}

func TestDrawRunShowsHUD(t *testing.T) {
	e := newTestEngine()
	e.StartLevel(1)

	s := core.NewScreen(80, 23)
	drawRun(s, e.Snapshot(), e.Tuning())

	out := s.String()
	lvl := e.Levels()[0]
	if !strings.Contains(out, lvl.Name) {
		t.Errorf("run view does not show level name %q", lvl.Name)
	}
	if !strings.Contains(out, "get ready") {
		t.Error("countdown overlay missing")
	}
	if !strings.ContainsRune(out, RoadEdge) {
		t.Error("road edges missing")
	}
	if !strings.ContainsRune(out, PlayerBody) {
		t.Error("player bus missing")
	}
}

func TestDrawRunTinyScreen(t *testing.T) {
	e := newTestEngine()
	e.StartLevel(1)

	// Must not panic when the terminal is smaller than the road.
	for _, size := range [][2]int{{1, 1}, {5, 3}, {12, 4}} {
		s := core.NewScreen(size[0], size[1])
		drawRun(s, e.Snapshot(), config.DefaultTuning())
	}
}

func TestViewportRows(t *testing.T) {
	s := core.NewScreen(80, 53)
	v := newViewport(s, config.DefaultTuning().Playfield)

	if v.rows != 52 {
		t.Fatalf("rows = %d, expected 52", v.rows)
	}
	if r := v.row(0); r != v.top {
		t.Errorf("row(0) = %d, expected %d", r, v.top)
	}
	if r := v.row(v.pxHeight); r != v.top+v.rows {
		t.Errorf("row(height) = %d, expected %d", r, v.top+v.rows)
	}

	from, to := v.span(-500, 100)
	if to > from {
		t.Errorf("span above the field = [%d, %d), expected empty", from, to)
	}
	for lane := 1; lane < engine.LaneCount; lane++ {
		if v.laneX(lane) <= v.laneX(lane-1) {
			t.Errorf("laneX(%d) not right of laneX(%d)", lane, lane-1)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorHUD)
	s.SetColored(0, 1, PlayerBody, core.ColorPlayer)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	if !strings.Contains(out, "ab") {
		t.Errorf("rendered output missing text: %q", out)
	}
}
