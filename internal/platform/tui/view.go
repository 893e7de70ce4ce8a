package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/lane-runner/internal/achievements"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

// Visual characters for rendering
const (
	RoadEdge    = '│'
	LaneMarker  = '┆'
	PlayerBody  = '▓'
	TrafficBody = '█'
	ShieldChar  = '◆'
	FinishChar  = '▚'
	CrashChar   = '✶'
)

const (
	maxLaneWidth = 14
	minLaneWidth = 3
)

// viewport maps playfield pixels onto screen cells.
type viewport struct {
	top       int // First playfield row
	rows      int
	laneWidth int
	roadX     int // Column of the left road edge
	pxHeight  float64
}

func newViewport(s *core.Screen, pf config.PlayfieldTuning) viewport {
	v := viewport{
		top:      1,
		rows:     max(1, s.Height()-1),
		pxHeight: pf.Height,
	}
	v.laneWidth = core.Clamp((s.Width()-4)/engine.LaneCount, minLaneWidth, maxLaneWidth)
	roadW := v.laneWidth*engine.LaneCount + engine.LaneCount + 1
	v.roadX = max(0, (s.Width()-roadW)/2)
	return v
}

// row converts a playfield y to a screen row. It may fall outside the
// playfield; callers clip.
func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y/v.pxHeight*float64(v.rows)))
}

// span returns the clipped rows [from, to) covered by y..y+h.
func (v viewport) span(y, h float64) (int, int) {
	from := max(v.row(y), v.top)
	to := min(v.row(y+h), v.top+v.rows)
	if to <= from && v.row(y) < v.top+v.rows && v.row(y+h) >= v.top {
		to = from + 1
	}
	return from, to
}

// laneX returns the first interior column of a lane.
func (v viewport) laneX(lane int) int {
	return v.roadX + 1 + lane*(v.laneWidth+1)
}

func (v viewport) fillLane(s *core.Screen, lane int, y, h float64, inset int, r rune, c core.Color) {
	from, to := v.span(y, h)
	x := v.laneX(lane) + inset
	w := v.laneWidth - 2*inset
	if to <= from || w <= 0 {
		return
	}
	s.DrawRect(core.NewRect(x, from, w, to-from), r, c)
}

// drawRun draws a live, paused or finished run.
func drawRun(s *core.Screen, snap engine.Snapshot, t config.Tuning) {
	s.Clear()
	v := newViewport(s, t.Playfield)

	drawRoad(s, v)

	if snap.FinishVisible {
		from, to := v.span(snap.FinishY, t.Finish.LineHeight)
		for y := from; y < to; y++ {
			for lane := 0; lane < engine.LaneCount; lane++ {
				for x := v.laneX(lane); x < v.laneX(lane)+v.laneWidth; x++ {
					s.SetColored(x, y, FinishChar, core.ColorFinish)
				}
			}
		}
	}

	for _, p := range snap.PowerUps {
		from, _ := v.span(p.Y, t.PowerUps.Size)
		cx := v.laneX(p.Lane) + v.laneWidth/2
		s.SetColored(cx, from, ShieldChar, core.ColorShield)
	}

	for _, o := range snap.Obstacles {
		v.fillLane(s, o.Lane, o.Y, o.Height(), 1, TrafficBody, core.ColorTraffic)
		from, _ := v.span(o.Y, o.Height())
		label := strings.ToUpper(o.Variant.String()[:1])
		s.DrawTextColored(v.laneX(o.Lane)+v.laneWidth/2, from, label, core.ColorHUD)
	}

	playerY := t.Playfield.PlayerY()
	if snap.ShieldActive {
		from, to := v.span(playerY, t.Playfield.PlayerHeight)
		s.DrawBox(core.NewRect(v.laneX(snap.Lane), from-1, v.laneWidth, to-from+2), core.ColorShield)
	}
	v.fillLane(s, snap.Lane, playerY, t.Playfield.PlayerHeight, 2, PlayerBody, core.ColorPlayer)

	if snap.Crash {
		row := v.row(snap.CrashY)
		cx := v.laneX(snap.CrashLane) + v.laneWidth/2
		s.DrawTextColored(cx-1, max(row, v.top), string([]rune{CrashChar, CrashChar, CrashChar}), core.ColorCrash)
	}

	drawHUD(s, snap)
	drawOverlay(s, snap, v)
}

func drawRoad(s *core.Screen, v viewport) {
	for lane := 0; lane <= engine.LaneCount; lane++ {
		x := v.roadX + lane*(v.laneWidth+1)
		r := LaneMarker
		if lane == 0 || lane == engine.LaneCount {
			r = RoadEdge
		}
		s.DrawVLine(x, v.top, v.rows, r, core.ColorRoad)
	}
}

func drawHUD(s *core.Screen, snap engine.Snapshot) {
	shield := ""
	if snap.ShieldActive {
		shield = "  " + string(ShieldChar) + " shield"
	}
	left := fmt.Sprintf(" %d. %s  %s  %.0f/%.0fm  %.1fs  %.0fm/s  dodged %d/%d%s",
		snap.LevelID, snap.LevelName, progressBar(snap.Progress, 10),
		snap.Distance, snap.FinishDistance, snap.TimeElapsed, snap.Speed,
		snap.ObstaclesAvoided, snap.ObstaclesSpawned, shield)
	s.DrawTextColored(0, 0, left, core.ColorHUD)

	right := snap.Difficulty.String() + " "
	if !snap.AudioEnabled {
		right = "muted  " + right
	}
	s.DrawTextColored(s.Width()-len(right), 0, right, core.ColorMuted)
}

func drawOverlay(s *core.Screen, snap engine.Snapshot, v viewport) {
	mid := v.top + v.rows/2

	switch snap.Phase {
	case engine.PhaseCountdown:
		s.DrawTextCentered(mid, fmt.Sprintf("  %d  ", snap.CountdownValue), core.ColorAccent)
		s.DrawTextCentered(mid+1, " get ready ", core.ColorHUD)

	case engine.PhasePaused:
		s.DrawTextCentered(mid, "  PAUSED  ", core.ColorAccent)
		s.DrawTextCentered(mid+1, " p: resume  r: restart  esc: levels ", core.ColorHUD)

	case engine.PhaseGameOver:
		s.DrawTextCentered(mid-1, "  CRASHED!  ", core.ColorCrash)
		s.DrawTextCentered(mid, fmt.Sprintf(" %.0fm of %.0fm ", snap.Distance, snap.FinishDistance), core.ColorHUD)
		s.DrawTextCentered(mid+1, " r/enter: retry  esc: levels ", core.ColorHUD)

	case engine.PhaseVictory:
		s.DrawTextCentered(mid-2, "  LEVEL COMPLETE  ", core.ColorAccent)
		if run := snap.LastRun; run != nil {
			s.DrawTextCentered(mid-1, " "+stars(run.Stars)+" ", core.ColorStar)
			s.DrawTextCentered(mid, fmt.Sprintf(" %.1fs  dodged %d/%d ", run.TimeElapsed, run.ObstaclesAvoided, run.ObstaclesSpawned), core.ColorHUD)
		}
		if snap.PendingAchievement != "" {
			name := snap.PendingAchievement
			if def := achievements.Get(name); def != nil {
				name = def.Name
			}
			s.DrawTextCentered(mid+1, " Achievement unlocked: "+name+" ", core.ColorStar)
			s.DrawTextCentered(mid+2, " enter: continue ", core.ColorHUD)
		} else {
			s.DrawTextCentered(mid+2, " enter: next level  r: replay  esc: levels ", core.ColorHUD)
		}
	}
}

// stars renders a 1-3 star rating.
func stars(n int) string {
	n = core.Clamp(n, 0, 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// progressBar renders a fraction in [0, 1] as a fixed-width bar.
func progressBar(frac float64, width int) string {
	filled := core.Clamp(int(math.Round(core.ClampF(frac, 0, 1)*float64(width))), 0, width)
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
