// Package draw renders the planner's grid, agents, paths and conflicts
// as Gio drawing operations.
package draw

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/interact"
)

var (
	ColorFreeCell    = color.NRGBA{R: 28, G: 31, B: 36, A: 255}
	ColorBlockedCell = color.NRGBA{R: 70, G: 45, B: 45, A: 255}
	ColorGridLine    = color.NRGBA{R: 45, G: 48, B: 53, A: 255}
)

// DrawGrid renders every cell of m as a filled square, blocked cells tinted
// red, plus hairline gridlines between cells.
func DrawGrid(gtx layout.Context, m *core.Map, camera *interact.Camera) {
	if m == nil {
		return
	}
	cell := camera.CellSize * camera.Zoom

	for i := 0; i < m.Height; i++ {
		for j := 0; j < m.Width; j++ {
			sx, sy := camera.WorldToScreen(float64(j)-0.5, float64(i)-0.5)
			col := ColorFreeCell
			if !m.Free(i, j) {
				col = ColorBlockedCell
			}
			rect := image.Rect(int(sx), int(sy), int(sx+cell), int(sy+cell))
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}

	for i := 0; i <= m.Height; i++ {
		_, sy := camera.WorldToScreen(0, float64(i)-0.5)
		sx0, _ := camera.WorldToScreen(-0.5, 0)
		sx1, _ := camera.WorldToScreen(float64(m.Width)-0.5, 0)
		rect := image.Rect(int(sx0), int(sy), int(sx1), int(sy)+1)
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(rect).Op())
	}
	for j := 0; j <= m.Width; j++ {
		sx, _ := camera.WorldToScreen(float64(j)-0.5, 0)
		_, sy0 := camera.WorldToScreen(0, -0.5)
		_, sy1 := camera.WorldToScreen(0, float64(m.Height)-0.5)
		rect := image.Rect(int(sx), int(sy0), int(sx)+1, int(sy1))
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(rect).Op())
	}
}
