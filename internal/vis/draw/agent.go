package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/interact"
)

var agentPalette = []color.NRGBA{
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 150, B: 100, A: 255},
	{R: 150, G: 220, B: 120, A: 255},
	{R: 220, G: 130, B: 220, A: 255},
	{R: 240, G: 220, B: 100, A: 255},
	{R: 130, G: 170, B: 255, A: 255},
}

var ColorAgentSelected = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// AgentColor assigns a stable colour to an agent id from a fixed palette.
func AgentColor(id core.AgentID) color.NRGBA {
	idx := int(id) % len(agentPalette)
	if idx < 0 {
		idx += len(agentPalette)
	}
	return agentPalette[idx]
}

// DrawAgent draws an agent as a disc of its radius, with a heading tick.
func DrawAgent(gtx layout.Context, pos core.Point, heading float64, a *core.Agent, camera *interact.Camera, selected bool) {
	cx, cy := camera.WorldToScreen(pos.J, pos.I)
	r := float32(a.Radius) * camera.CellSize * camera.Zoom

	col := AgentColor(a.ID)
	if selected {
		col = ColorAgentSelected
	}
	drawFilledCircle(gtx, cx, cy, r, col)

	rad := heading * math.Pi / 180
	tipX := cx + r*float32(math.Cos(rad))
	tipY := cy - r*float32(math.Sin(rad))
	drawLine(gtx, cx, cy, tipX, tipY, 2, color.NRGBA{R: 20, G: 20, B: 20, A: 220})
}

// DrawGoalMarker draws a faint ring at an agent's goal cell.
func DrawGoalMarker(gtx layout.Context, goal core.Cell, a *core.Agent, camera *interact.Camera) {
	cx, cy := camera.WorldToScreen(float64(goal.J), float64(goal.I))
	r := float32(a.Radius) * camera.CellSize * camera.Zoom
	col := AgentColor(a.ID)
	col.A = 120
	DrawCircleOutline(gtx, cx, cy, r, col, 2)
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))
	const segments = 20
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawCircleOutline draws a ring (ColorConflict* callers reuse this too).
func DrawCircleOutline(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, strokeWidth float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))
	for i := 1; i <= 28; i++ {
		angle := float64(i) * 2 * math.Pi / 28
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	inner := radius - strokeWidth
	if inner < 0 {
		inner = 0
	}
	path.Move(f32.Pt(cx+inner-path.Pos().X, cy-path.Pos().Y))
	for i := 1; i <= 28; i++ {
		angle := float64(i) * 2 * math.Pi / 28
		x := cx + inner*float32(math.Cos(angle))
		y := cy + inner*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx, dy := x2-x1, y2-y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	px, py := -dy*width/2, dx*width/2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
