package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/tiles"
)

// ErrNotConstructable is returned for tile keys a player cannot build.
var ErrNotConstructable = errors.New("engine: tile is not constructable")

// Interaction event kinds.
const (
	KindHover   observe.Kind = "hover"
	KindSelect  observe.Kind = "select"
	KindContext observe.Kind = "context"
)

// Context is what a select currently means.
type Context string

const (
	ContextSelect Context = "select"
	ContextRoad   Context = "road"
	ContextBuild  Context = "build"
)

// InteractionEvent is a hover, a select or a context switch. Tile is set
// for the build context.
type InteractionEvent struct {
	Kind    observe.Kind
	Coord   hex.Coord
	Context Context
	Tile    tiles.Key
}

func (e InteractionEvent) EventKind() observe.Kind { return e.Kind }

// Interaction turns pointer input into events tagged with the current
// context.
type Interaction struct {
	hovered *hex.Coord
	context Context
	tile    tiles.Key
	events  observe.Registry[InteractionEvent]
}

// NewInteraction starts in the select context.
func NewInteraction() *Interaction {
	return &Interaction{context: ContextSelect}
}

// Listen subscribes fn to interaction events.
func (i *Interaction) Listen(fn observe.Listener[InteractionEvent], kinds ...observe.Kind) observe.Remove {
	return i.events.Listen(fn, kinds...)
}

// Context returns the current context and, for the build context, the tile
// being placed.
func (i *Interaction) Context() (Context, tiles.Key) {
	return i.context, i.tile
}

// Hover reports the pointer over c. With debounce set, hovering the same
// coordinate twice in a row fires once.
func (i *Interaction) Hover(c hex.Coord, debounce bool) {
	if debounce && i.hovered != nil && *i.hovered == c {
		return
	}
	i.hovered = &c
	i.events.Fire(InteractionEvent{Kind: KindHover, Coord: c, Context: i.context, Tile: i.tile})
}

// Select reports a click on c.
func (i *Interaction) Select(c hex.Coord) {
	i.hovered = nil
	i.events.Fire(InteractionEvent{Kind: KindSelect, Coord: c, Context: i.context, Tile: i.tile})
}

func (i *Interaction) switchTo(ctx Context, tile tiles.Key) {
	i.context, i.tile = ctx, tile
	i.events.Fire(InteractionEvent{Kind: KindContext, Context: ctx, Tile: tile})
}

func (i *Interaction) SelectContext() { i.switchTo(ContextSelect, "") }
func (i *Interaction) RoadContext()   { i.switchTo(ContextRoad, "") }

// BuildContext switches to placing key.
func (i *Interaction) BuildContext(key tiles.Key) error {
	if _, ok := catalog.Constructable(key); !ok {
		return fmt.Errorf("%w: %q", ErrNotConstructable, key)
	}
	i.switchTo(ContextBuild, key)
	return nil
}

// Close drops every listener.
func (i *Interaction) Close() {
	i.events.Close()
}
