// Package widgets provides the Gio layout widgets of the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/draw"
	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/interact"
	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/state"
)

// Workspace is the main 2D view: the grid, agent discs, their trails and
// remaining paths, and any residual conflicts active at the current time.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

// NewWorkspace creates a workspace widget over st, panning/zooming through camera.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{state: st, camera: camera}
}

// Layout renders the workspace and handles its pan/zoom/click input.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, color.NRGBA{R: 18, G: 20, B: 24, A: 255})

	w.handlePointerEvents(gtx)

	draw.DrawGrid(gtx, w.state.Map, w.camera)

	for _, a := range w.state.Agents {
		draw.DrawGoalMarker(gtx, a.Goal, a, w.camera)
	}

	positions := w.state.CurrentPositions()
	for _, a := range w.state.Agents {
		trail := w.state.PathHistory(a.ID)
		draw.DrawTrail(gtx, trail, w.camera, draw.AgentColor(a.ID))

		if res := w.state.Result.PerAgent[a.ID]; res != nil && res.PathFound {
			draw.DrawFuturePath(gtx, res.Primary, w.state.Playback.CurrentTime, w.camera, draw.AgentColor(a.ID))
		}
	}

	if w.state.Result != nil {
		draw.DrawConflictsAt(gtx, w.state.Result.Conflicts, w.state.Playback.CurrentTime, 0.5, w.camera)
	}

	for _, a := range w.state.Agents {
		pos := positions[a.ID]
		heading := w.state.HeadingAt(a.ID, w.state.Playback.CurrentTime)
		draw.DrawAgent(gtx, pos, heading, a, w.camera, w.state.Selected[a.ID])
	}

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(gtx, pe)
			if pe.Kind == pointer.Press && pe.Buttons.Contain(pointer.ButtonPrimary) {
				w.handleClick(pe.Position.X, pe.Position.Y)
			}
		}
	}
}

func (w *Workspace) handleClick(sx, sy float32) {
	positions := w.state.CurrentPositions()
	for _, a := range w.state.Agents {
		pos := positions[a.ID]
		cx, cy := w.camera.WorldToScreen(pos.J, pos.I)
		r := float32(a.Radius)*w.camera.CellSize*w.camera.Zoom + 4
		dx, dy := sx-cx, sy-cy
		if dx*dx+dy*dy <= r*r {
			w.state.ToggleSelect(a.ID)
			return
		}
	}
}
