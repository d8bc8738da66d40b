package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/aa-sipp-go/internal/vis/state"
)

// Timeline is a time-scrubber over the plan's makespan.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a timeline widget over st.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

// Layout renders the scrub bar, playhead, and time labels.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	const height = 52
	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 32, G: 35, B: 39, A: 255}, clip.Rect(rect).Op())

	margin := 20
	trackY := height / 2
	trackWidth := gtx.Constraints.Max.X - 2*margin

	t.handlePointerEvents(gtx, height, margin, trackWidth)

	trackRect := image.Rect(margin, trackY-3, margin+trackWidth, trackY+3)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	progress := t.state.Playback.Progress()
	fillWidth := int(float64(trackWidth) * progress)
	if fillWidth > 0 {
		fillRect := image.Rect(margin, trackY-3, margin+fillWidth, trackY+3)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	playheadX := margin + fillWidth
	playheadRect := image.Rect(playheadX-6, trackY-6, playheadX+6, trackY+6)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(playheadRect).Op())

	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	cur := material.Label(th, 12, fmt.Sprintf("%.1fs", t.state.Playback.CurrentTime))
	cur.Color = color.NRGBA{R: 210, G: 210, B: 210, A: 255}

	speed := material.Label(th, 12, fmt.Sprintf("%.1fx", t.state.Playback.Speed))
	speed.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	maxT := material.Label(th, 12, fmt.Sprintf("%.1fs", t.state.Playback.MaxTime))
	maxT.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	maxT.Alignment = text.End

	layout.Inset{Top: unit.Dp(2), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(cur.Layout),
			layout.Rigid(speed.Layout),
			layout.Rigid(maxT.Layout),
		)
	})
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, height, margin, trackWidth int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{Target: t, Kinds: pointer.Press | pointer.Drag | pointer.Release})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.dragging = true
			t.seek(pe.Position.X, margin, trackWidth)
		case pointer.Drag:
			if t.dragging {
				t.seek(pe.Position.X, margin, trackWidth)
			}
		case pointer.Release:
			t.dragging = false
		}
	}
}

func (t *Timeline) seek(screenX float32, margin, trackWidth int) {
	progress := (float64(screenX) - float64(margin)) / float64(trackWidth)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	t.state.Playback.SetTime(progress * t.state.Playback.MaxTime)
}
