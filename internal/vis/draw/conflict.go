package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/interact"
)

var ColorConflict = color.NRGBA{R: 255, G: 70, B: 70, A: 220}

// DrawConflict marks a ConflictAuditor finding that is active at the
// current playback time with a pulsing-radius ring (approximated here by a
// fixed ring, since the visualizer redraws every frame regardless).
func DrawConflict(gtx layout.Context, c core.Conflict, camera *interact.Camera) {
	cx, cy := camera.WorldToScreen(c.J, c.I)
	DrawCircleOutline(gtx, cx, cy, 16*camera.Zoom, ColorConflict, 3)
	drawFilledCircle(gtx, cx, cy, 5*camera.Zoom, ColorConflict)
}

// DrawConflictsAt draws every conflict whose sample time is within window
// of the playback clock's current time.
func DrawConflictsAt(gtx layout.Context, conflicts []core.Conflict, currentTime, window float64, camera *interact.Camera) {
	for _, c := range conflicts {
		if c.T >= currentTime-window && c.T <= currentTime+window {
			DrawConflict(gtx, c, camera)
		}
	}
}
