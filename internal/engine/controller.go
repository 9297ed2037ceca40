package engine

import (
	"log/slog"

	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/roads"
)

// Controller carries out what selects mean in each interaction context:
// building the chosen tile, laying a road between two road points or just
// remembering the selection. After a build or a road it returns to the
// select context.
type Controller struct {
	m      *Match
	remove observe.Remove

	selected *hex.Coord
	from     *hex.Coord
	preview  roads.Road
	err      error
}

// NewController attaches a controller to the match's interaction.
func NewController(m *Match) *Controller {
	ctl := &Controller{m: m}
	ctl.remove = m.Interaction.Listen(ctl.handle)
	return ctl
}

func (ctl *Controller) handle(e InteractionEvent) {
	switch e.Kind {
	case KindContext:
		ctl.from, ctl.preview = nil, roads.Road{}
	case KindHover:
		if e.Context == ContextRoad && ctl.from != nil {
			if r, err := ctl.m.PlanRoad(*ctl.from, e.Coord); err == nil {
				ctl.preview = r
			}
		}
	case KindSelect:
		ctl.selectAt(e)
	}
}

func (ctl *Controller) selectAt(e InteractionEvent) {
	switch e.Context {
	case ContextSelect:
		if ctl.selected != nil && *ctl.selected == e.Coord {
			ctl.selected = nil
			return
		}
		c := e.Coord
		ctl.selected = &c

	case ContextBuild:
		_, ctl.err = ctl.m.Build(e.Tile, e.Coord)
		ctl.m.Interaction.SelectContext()

	case ContextRoad:
		if ctl.from == nil {
			if ctl.m.IsRoadPoint(e.Coord) {
				c := e.Coord
				ctl.from = &c
				ctl.err = nil
				return
			}
			ctl.err = ErrNotRoadPoint
			slog.Debug("road start rejected", "coord", e.Coord)
			return
		}
		_, ctl.err = ctl.m.BuildRoad(*ctl.from, e.Coord)
		ctl.m.Interaction.SelectContext()
	}
}

// Selected returns the coordinate chosen in the select context.
func (ctl *Controller) Selected() (hex.Coord, bool) {
	if ctl.selected == nil {
		return hex.Zero, false
	}
	return *ctl.selected, true
}

// Preview returns the road planned up to the last hovered coordinate.
func (ctl *Controller) Preview() roads.Road { return ctl.preview }

// Err returns the outcome of the last build or road.
func (ctl *Controller) Err() error { return ctl.err }

// Close detaches the controller.
func (ctl *Controller) Close() { ctl.remove() }
