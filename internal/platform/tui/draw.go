package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/crossing/internal/config"
	"github.com/vovakirdan/crossing/internal/core"
	"github.com/vovakirdan/crossing/internal/sim"
)

// hudRows is the number of status lines below the field.
const hudRows = 3

// Glyphs used for the field.
const (
	glyphRoad   = '·'
	glyphLight  = '●'
	glyphCrash  = 'X'
	glyphCenter = ':'
)

// HUD carries viewer state shown alongside a snapshot.
type HUD struct {
	Policy string
	Preset string
	Paused bool
}

// vehicleStyle returns the glyph and color for a category.
func vehicleStyle(c sim.Category) (rune, core.Color) {
	switch c {
	case sim.Ambulance:
		return 'A', core.ColorBrightRed
	case sim.Police:
		return 'P', core.ColorBrightBlue
	case sim.Government:
		return 'G', core.ColorBrightYellow
	default:
		return 'o', core.ColorBrightWhite
	}
}

func lightColor(l sim.LightState) core.Color {
	if l == sim.Green {
		return core.ColorBrightGreen
	}
	return core.ColorRed
}

// fieldView maps field coordinates onto a screen area.
type fieldView struct {
	area  core.Rect
	field config.FieldConfig
}

func (v fieldView) cell(p core.Vec) (int, int) {
	fx := core.ClampF(p.X/v.field.Width, 0, 1)
	fy := core.ClampF(p.Y/v.field.Height, 0, 1)
	x := v.area.X + core.Clamp(int(fx*float64(v.area.W)), 0, v.area.W-1)
	y := v.area.Y + core.Clamp(int(fy*float64(v.area.H)), 0, v.area.H-1)
	return x, y
}

// onField reports whether p lies inside the visible field.
func (v fieldView) onField(p core.Vec) bool {
	return p.X >= 0 && p.X < v.field.Width && p.Y >= 0 && p.Y < v.field.Height
}

// DrawSnapshot renders one frame of a run. It only reads the snapshot.
func DrawSnapshot(dst *core.Screen, snap sim.Snapshot, field config.FieldConfig, hud HUD) {
	dst.Clear()

	area := core.NewRect(0, 0, dst.Width(), dst.Height()-hudRows)
	if area.W < 20 || area.H < 8 || field.Width <= 0 || field.Height <= 0 {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorYellow)
		return
	}

	v := fieldView{area: area, field: field}
	drawRoads(dst, v)
	drawLights(dst, v, snap)
	drawVehicles(dst, v, snap)
	drawHUD(dst, area.Bottom(), snap, hud)

	if hud.Paused && snap.Running {
		dst.DrawTextCentered(area.Y+area.H/2, "  PAUSED  ", core.ColorBrightYellow)
	}
	if !snap.Running {
		drawRunOver(dst, area, snap)
	}
}

func drawRoads(dst *core.Screen, v fieldView) {
	box := v.field.Intersection
	left, top := v.cell(core.Vec{X: box.Left, Y: box.Top})
	right, bottom := v.cell(core.Vec{X: box.Right, Y: box.Bottom})

	// Vertical and horizontal roads share the intersection's extents.
	dst.DrawRect(core.NewRect(left, v.area.Y, right-left+1, v.area.H), glyphRoad, core.ColorDarkGray)
	dst.DrawRect(core.NewRect(v.area.X, top, v.area.W, bottom-top+1), glyphRoad, core.ColorDarkGray)

	cx, cy := v.cell(core.Vec{X: v.field.Width / 2, Y: v.field.Height / 2})
	for y := v.area.Y; y < v.area.Bottom(); y++ {
		if (y < top || y > bottom) && y%2 == 0 {
			dst.SetColored(cx, y, glyphCenter, core.ColorYellow)
		}
	}
	for x := v.area.X; x < v.area.Right(); x++ {
		if (x < left || x > right) && x%2 == 0 {
			dst.SetColored(x, cy, '-', core.ColorYellow)
		}
	}

	dst.DrawBox(core.NewRect(left, top, right-left+1, bottom-top+1), core.ColorGray)
}

// lightCell returns where the signal for d is drawn: just outside the
// intersection on the approach lane.
func lightCell(v fieldView, d sim.Direction) (int, int) {
	box := v.field.Intersection
	c := core.Vec{X: v.field.Width / 2, Y: v.field.Height / 2}
	lane := v.field.LaneOffset
	switch d {
	case sim.South:
		x, y := v.cell(core.Vec{X: c.X + lane, Y: box.Bottom})
		return x, y + 1
	case sim.East:
		x, y := v.cell(core.Vec{X: box.Right, Y: c.Y + lane})
		return x + 1, y
	case sim.West:
		x, y := v.cell(core.Vec{X: box.Left, Y: c.Y - lane})
		return x - 1, y
	default:
		x, y := v.cell(core.Vec{X: c.X - lane, Y: box.Top})
		return x, y - 1
	}
}

func drawLights(dst *core.Screen, v fieldView, snap sim.Snapshot) {
	for _, d := range sim.Directions {
		x, y := lightCell(v, d)
		dst.SetColored(x, y, glyphLight, lightColor(snap.Light(d)))
	}
}

func drawVehicles(dst *core.Screen, v fieldView, snap sim.Snapshot) {
	for _, veh := range snap.Vehicles {
		if veh.State == sim.Crashed || !v.onField(veh.Pos) {
			continue
		}
		r, c := vehicleStyle(veh.Category)
		x, y := v.cell(veh.Pos)
		dst.SetColored(x, y, r, c)
	}
	// Wrecks draw on top so they stay visible under traffic.
	for _, w := range snap.Crashed {
		if !v.onField(w.Pos) {
			continue
		}
		x, y := v.cell(w.Pos)
		dst.SetColored(x, y, glyphCrash, core.ColorOrange)
	}
}

// formatClock renders a duration as mm:ss.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func drawHUD(dst *core.Screen, y int, snap sim.Snapshot, hud HUD) {
	preset := hud.Preset
	if preset == "" {
		preset = string(config.TrafficNormal)
	}
	dst.DrawTextColored(1, y, fmt.Sprintf("Score %7.1f   Time %s   Policy %s   Traffic %s",
		snap.Score, formatClock(snap.Elapsed), hud.Policy, preset), core.ColorBrightWhite)

	crashes := fmt.Sprintf("Crashes %d (reg %d  amb %d  pol %d  gov %d)",
		snap.TotalCrashes,
		snap.CrashesByCategory[sim.Regular], snap.CrashesByCategory[sim.Ambulance],
		snap.CrashesByCategory[sim.Police], snap.CrashesByCategory[sim.Government])
	crashColor := core.ColorGray
	if snap.TotalCrashes > 0 {
		crashColor = core.ColorOrange
	}
	dst.DrawTextColored(1, y+1, crashes, crashColor)
	if snap.PolicyFaults > 0 {
		dst.DrawTextColored(len(crashes)+4, y+1, fmt.Sprintf("Policy faults %d", snap.PolicyFaults), core.ColorRed)
	}

	x := 1
	for _, d := range sim.Directions {
		label := strings.ToUpper(d.String()[:1])
		dst.DrawTextColored(x, y+2, label, core.ColorWhite)
		dst.SetColored(x+1, y+2, glyphLight, lightColor(snap.Light(d)))
		n := fmt.Sprintf("%-3d", len(snap.Queue(d)))
		dst.DrawTextColored(x+3, y+2, n, core.ColorWhite)
		x += 8
	}
	dst.DrawTextColored(x+2, y+2, "p pause  r restart  b menu  q quit", core.ColorGray)
}

// endMessage describes why a run ended.
func endMessage(r sim.EndReason) string {
	switch r {
	case sim.EndFatalCrash:
		return "Fatal crash"
	case sim.EndScoreDepleted:
		return "Score depleted"
	default:
		return "Run over"
	}
}

func drawRunOver(dst *core.Screen, area core.Rect, snap sim.Snapshot) {
	lines := []string{
		"RUN OVER",
		endMessage(snap.EndReason),
		fmt.Sprintf("Lasted %s with %d crashes", formatClock(snap.Elapsed), snap.TotalCrashes),
		"r restart   b menu   q quit",
	}
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	w += 6
	h := len(lines) + 4
	box := core.NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightRed)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightRed
		}
		dst.DrawTextColored(box.X+(w-len(l))/2, box.Y+2+i, l, c)
	}
}
