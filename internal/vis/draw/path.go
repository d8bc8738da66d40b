package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/interact"
)

// DrawTrail draws the travelled portion of an agent's path, fading from
// tail to head.
func DrawTrail(gtx layout.Context, trail []core.Point, camera *interact.Camera, base color.NRGBA) {
	n := len(trail)
	if n < 2 {
		return
	}
	for i := 0; i < n-1; i++ {
		col := base
		col.A = uint8(40 + 180*i/n)
		x1, y1 := camera.WorldToScreen(trail[i].J, trail[i].I)
		x2, y2 := camera.WorldToScreen(trail[i+1].J, trail[i+1].I)
		drawLine(gtx, x1, y1, x2, y2, 3*camera.Zoom, col)
	}
}

// DrawFuturePath draws the remaining, not-yet-travelled portion of a
// primary path in a dim colour.
func DrawFuturePath(gtx layout.Context, primary core.PrimaryPath, currentTime float64, camera *interact.Camera, base color.NRGBA) {
	if len(primary) < 2 {
		return
	}
	dim := base
	dim.A = 90

	for i := 0; i < len(primary)-1; i++ {
		a, b := primary[i], primary[i+1]
		if b.G < currentTime {
			continue
		}
		x1, y1 := camera.WorldToScreen(float64(a.J), float64(a.I))
		x2, y2 := camera.WorldToScreen(float64(b.J), float64(b.I))
		drawLine(gtx, x1, y1, x2, y2, 1.5*camera.Zoom, dim)
	}
}
