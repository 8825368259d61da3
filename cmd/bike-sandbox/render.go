package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/physics"
	"github.com/lixenwraith/trickbike/respawn"
	"github.com/lixenwraith/trickbike/vehicle"
)

// Side view: world Z runs left to right, world Y bottom to top
const (
	colsPerMeter = 2.0
	rowsPerMeter = 1.0

	// cameraLead keeps the bike left of center so the track ahead is visible
	cameraLead = 0.35

	// partExaggeration scales exploded part offsets so half a meter is visible
	partExaggeration = 4.0
)

var (
	styleGround  = tcell.StyleDefault.Foreground(tcell.ColorOliveDrab)
	styleFill    = tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleWheel   = tcell.StyleDefault.Foreground(tcell.ColorSilver).Bold(true)
	styleParts   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	styleWarn    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCP      = tcell.StyleDefault.Foreground(tcell.ColorLimeGreen)
)

// hudState carries sandbox status that is not part of vehicle telemetry
type hudState struct {
	Source     input.SourceKind
	Paused     bool
	Muted      bool
	Respawns   uint64
	Checkpoint respawn.Checkpoint
	Steps      int
	Dropped    float64
}

// view draws the track, the bike and the HUD onto a tcell screen
type view struct {
	screen   tcell.Screen
	profile  *physics.Profile
	minZ     float64
	maxZ     float64
	showHelp bool
}

func newView(screen tcell.Screen, profile *physics.Profile) *view {
	v := &view{screen: screen, profile: profile}
	if profile != nil {
		points := profile.Points()
		v.minZ, v.maxZ = points[0].Z, points[len(points)-1].Z
	}
	return v
}

// camera maps world (z, y) to a screen cell around the followed position
type camera struct {
	z, y float64
	w, h int
}

func (c camera) project(z, y float64) (int, int) {
	col := int(math.Round((z-c.z)*colsPerMeter)) + int(float64(c.w)*cameraLead)
	row := int(math.Round(-(y-c.y)*rowsPerMeter)) + c.h/2
	return col, row
}

// worldZ is the inverse of project for a column
func (c camera) worldZ(col int) float64 {
	return c.z + float64(col-int(float64(c.w)*cameraLead))/colsPerMeter
}

func (v *view) draw(tel vehicle.Telemetry, hud hudState) {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	cam := camera{z: tel.Position.Z(), y: tel.Position.Y(), w: w, h: h}

	v.drawTerrain(cam)
	v.drawCheckpoint(cam, hud.Checkpoint)
	v.drawBike(cam, tel)

	for i, line := range hudLines(tel, hud) {
		style := styleHUD
		if i == 0 && (hud.Paused || tel.Visual.Explosion > 0.1) {
			style = styleWarn
		}
		drawString(s, 1, i, line, style)
	}
	if v.showHelp {
		for i, line := range helpLines {
			drawString(s, w-len(line)-2, i+1, line, styleHUD)
		}
	}
	s.Show()
}

func (v *view) drawTerrain(cam camera) {
	if v.profile == nil {
		return
	}
	for col := 0; col < cam.w; col++ {
		z := cam.worldZ(col)
		if z < v.minZ || z > v.maxZ {
			continue
		}
		y, _ := v.profile.HeightAt(0, z)
		_, row := cam.project(z, y)
		if row >= cam.h {
			continue
		}
		if row < 0 {
			row = 0
		}
		v.screen.SetContent(col, row, '▔', nil, styleGround)
		for r := row + 1; r < cam.h; r++ {
			v.screen.SetContent(col, r, '░', nil, styleFill)
		}
	}
}

func (v *view) drawCheckpoint(cam camera, cp respawn.Checkpoint) {
	col, row := cam.project(cp.Position.Z(), cp.Position.Y())
	if col < 0 || col >= cam.w {
		return
	}
	for r := row - 2; r <= row; r++ {
		if r >= 0 && r < cam.h {
			v.screen.SetContent(col, r, '│', nil, styleCP)
		}
	}
	if row-3 >= 0 {
		v.screen.SetContent(col, row-3, '⚑', nil, styleCP)
	}
}

func (v *view) drawBike(cam camera, tel vehicle.Telemetry) {
	front := tel.Front.VisualPosition
	rear := tel.Rear.VisualPosition

	// Frame between the wheel hubs, lifted by the squash offset
	fc, fr := cam.project(front.Z(), front.Y()+1+tel.Visual.SquashOffset)
	rc, rr := cam.project(rear.Z(), rear.Y()+1+tel.Visual.SquashOffset)
	drawLine(v.screen, rc, rr, fc, fr, '=', styleBody)

	// Exploded parts drift with the trick stick
	off := mgl64.Vec3{0, tel.Visual.PartOffset.Y(), tel.Visual.PartOffset.X()}.Mul(partExaggeration)
	partGlyph := spinGlyph(tel.Visual.PartSpin)
	if tel.Visual.Explosion > 0.01 {
		pc, pr := cam.project(tel.Position.Z()+off.Z(), tel.Position.Y()+1+off.Y())
		setCell(v.screen, pc, pr, partGlyph, styleParts)
	}

	for _, wheel := range []vehicle.WheelState{tel.Front, tel.Rear} {
		col, row := cam.project(wheel.VisualPosition.Z(), wheel.VisualPosition.Y())
		glyph := 'o'
		if wheel.IsGrounded {
			glyph = 'O'
		}
		setCell(v.screen, col, row, glyph, styleWheel)
	}
}

func spinGlyph(deg float64) rune {
	glyphs := []rune{'|', '/', '-', '\\'}
	idx := int(math.Floor(math.Mod(deg, 180)/45+0.5)) % 4
	if idx < 0 {
		idx += 4
	}
	return glyphs[idx]
}

func hudLines(tel vehicle.Telemetry, hud hudState) []string {
	status := "RUN"
	switch {
	case hud.Paused:
		status = "PAUSED"
	case tel.Visual.Explosion > 0.1:
		status = "UNSTABLE"
	}
	ground := "air"
	if tel.Grounded {
		ground = "ground"
	}
	boost := ""
	if tel.Boosting {
		boost = " BOOST"
	}
	mute := ""
	if hud.Muted {
		mute = " [muted]"
	}

	return []string{
		fmt.Sprintf("%s  t=%.1fs  input=%s%s", status, tel.Time, hud.Source, mute),
		fmt.Sprintf("speed %5.1f km/h  %s  dist %.2f%s", tel.Speed*3.6, ground, tel.Distance, boost),
		fmt.Sprintf("nitro %s %3.0f/%3.0f", bar(tel.Nitro.Fraction(), 10), tel.Nitro.Current, tel.Nitro.Max),
		fmt.Sprintf("jump  %s %s", bar(tel.Jump.Value, 10), tel.JumpState),
		fmt.Sprintf("trick %s stick(%+.2f,%+.2f) explode %.2f", tel.TrickState, tel.Trick.Vector.X(), tel.Trick.Vector.Y(), tel.Visual.Explosion),
		fmt.Sprintf("jumps %d  crashes %d  respawns %d  cp %s", tel.Jumps, tel.Crashes, hud.Respawns, hud.Checkpoint.Source),
		fmt.Sprintf("physics %d/frame  dropped %.3fs", hud.Steps, hud.Dropped),
	}
}

var helpLines = []string{
	"arrows/wasd  steer + throttle/brake",
	"space        charge jump (release)",
	"tab/n        nitro",
	"mouse drag   gesture joystick",
	"r respawn  c checkpoint",
	"p pause  . step  m mute",
	"? help  q quit",
}

func bar(frac float64, width int) string {
	filled := int(math.Round(frac * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	out := make([]rune, 0, width+2)
	out = append(out, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			out = append(out, '#')
		} else {
			out = append(out, '.')
		}
	}
	return string(append(out, ']'))
}

func setCell(s tcell.Screen, x, y int, r rune, style tcell.Style) {
	w, h := s.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s.SetContent(x, y, r, nil, style)
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		setCell(s, x, y, r, style)
		x++
	}
}

// drawLine is Bresenham between two cells
func drawLine(s tcell.Screen, x0, y0, x1, y1 int, r rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		setCell(s, x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
