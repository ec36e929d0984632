package tooltip

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
)

// State is the hover state of a chart.
type State string

// Hover states.
const (
	StateIdle     State = "idle"
	StateHovering State = "hovering"
)

const (
	stateIdle     statekit.StateID = statekit.StateID(StateIdle)
	stateHovering statekit.StateID = statekit.StateID(StateHovering)
)

// Machine events.
const (
	EventEnter = "ENTER"
	EventMove  = "MOVE"
	EventLeave = "LEAVE"
	EventReset = "RESET"
)

// Hover describes the row under the pointer.
type Hover struct {
	Index   int        // dataset row index
	Row     data.Row   // the row itself
	Anchor  geom.Point // tooltip anchor
	Pointer geom.Point // last pointer position
	Series  string
}

// hoverContext is the machine context. Actions mutate it through the
// pointer the interpreter hands them.
type hoverContext struct {
	hover   Hover
	active  bool
	rows    data.Dataset
	changes int
}

// movePayload is carried by ENTER and MOVE events.
type movePayload struct {
	hit     Hit
	pointer geom.Point
}

func setHover(ctx **hoverContext, e statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	c := *ctx
	p, ok := e.Payload.(movePayload)
	if !ok {
		return
	}
	var row data.Row
	if p.hit.Index >= 0 && p.hit.Index < len(c.rows) {
		row = c.rows[p.hit.Index]
	}
	if !c.active || c.hover.Index != p.hit.Index {
		c.changes++
	}
	c.hover = Hover{
		Index:   p.hit.Index,
		Row:     row,
		Anchor:  p.hit.Anchor,
		Pointer: p.pointer,
		Series:  p.hit.Series,
	}
	c.active = true
}

func clearHover(ctx **hoverContext, _ statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	c := *ctx
	if c.active {
		c.changes++
	}
	c.hover = Hover{}
	c.active = false
}

// newHoverMachine builds the idle/hovering machine:
//
//	idle     --ENTER-->  hovering
//	hovering --MOVE--->  hovering
//	hovering --LEAVE-->  idle
//	hovering --RESET-->  idle
func newHoverMachine() (*statekit.MachineConfig[*hoverContext], error) {
	return statekit.NewMachine[*hoverContext]("tooltip").
		WithInitial(stateIdle).
		WithContext(&hoverContext{}).
		WithAction("setHover", setHover).
		WithAction("clearHover", clearHover).
		State(stateIdle).
			On(EventEnter).Target(stateHovering).Do("setHover").
			Done().
		State(stateHovering).
			On(EventMove).Target(stateHovering).Do("setHover").
			On(EventLeave).Target(stateIdle).Do("clearHover").
			On(EventReset).Target(stateIdle).Do("clearHover").
			Done().
		Build()
}

// Controller tracks which row the pointer is over. It is not safe for
// concurrent use; a chart's pointer events arrive on one goroutine.
type Controller struct {
	interp  *statekit.Interpreter[*hoverContext]
	ctx     *hoverContext
	locator Locator
}

// NewController starts a controller in the idle state.
func NewController(locator Locator, rows data.Dataset) (*Controller, error) {
	machine, err := newHoverMachine()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build hover state machine")
	}
	if locator == nil {
		locator = None
	}

	ctx := &hoverContext{rows: rows}
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **hoverContext) {
		*c = ctx
	})
	interp.Start()

	return &Controller{interp: interp, ctx: ctx, locator: locator}, nil
}

// PointerMove locates the row under (x, y). Entering a row sends ENTER,
// moving within or across rows sends MOVE, and moving off every row sends
// LEAVE. It reports whether the hovered row changed.
func (c *Controller) PointerMove(x, y float64) bool {
	before := c.ctx.changes
	hit, ok := c.locator.Locate(x, y)
	p := geom.Point{X: x, Y: y}

	switch {
	case ok && c.State() == StateIdle:
		c.send(EventEnter, movePayload{hit: hit, pointer: p})
	case ok:
		c.send(EventMove, movePayload{hit: hit, pointer: p})
	case c.State() == StateHovering:
		c.send(EventLeave, nil)
	}
	return c.ctx.changes != before
}

// PointerLeave hides the tooltip.
func (c *Controller) PointerLeave() {
	if c.State() == StateHovering {
		c.send(EventLeave, nil)
	}
}

// Reset clears any hover and swaps in a new locator and dataset. Charts
// call it whenever their data or dimensions change.
func (c *Controller) Reset(locator Locator, rows data.Dataset) {
	if c.State() == StateHovering {
		c.send(EventReset, nil)
	}
	if locator == nil {
		locator = None
	}
	c.locator = locator
	c.ctx.rows = rows
}

// State returns the current hover state.
func (c *Controller) State() State {
	return State(c.interp.State().Value)
}

// Hover returns the hovered row, if any.
func (c *Controller) Hover() (Hover, bool) {
	return c.ctx.hover, c.ctx.active
}

// Stop halts the state machine.
func (c *Controller) Stop() {
	c.interp.Stop()
}

func (c *Controller) send(event string, payload any) {
	c.interp.Send(statekit.Event{Type: statekit.EventType(event), Payload: payload})
}
