// Package responsive rebuilds a chart whenever the surface it is drawn on
// changes size.
//
// A [Container] owns the current scene and the hover controller of one
// chart instance. The host reports layout changes through [Container.Resize]
// and pointer events through [Container.PointerMove] and
// [Container.PointerLeave]. Every size change rebuilds the scene from
// scratch and clears the hover state; surfaces below the minimum size
// render nothing.
package responsive

import (
	"sync"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Builder produces the scene for a size. [chart.Chart.Build] is a Builder.
type Builder func(size chart.Size) (*chart.Scene, error)

// Default minimum surface, below which nothing is rendered.
const (
	DefaultMinWidth  = 10
	DefaultMinHeight = 10
)

// Option configures a [Container].
type Option func(*Container)

// WithMinSize overrides the minimum surface size.
func WithMinSize(width, height float64) Option {
	return func(c *Container) {
		c.min = chart.Size{Width: width, Height: height}
	}
}

// WithOnRender registers a callback invoked after every rebuild. The scene
// is nil when the surface is below the minimum size.
func WithOnRender(fn func(scene *chart.Scene)) Option {
	return func(c *Container) {
		c.onRender = fn
	}
}

// Container tracks the size of one chart surface. It is safe for concurrent
// use; a layout observer may call Resize while the host delivers pointer
// events.
type Container struct {
	mu       sync.Mutex
	build    Builder
	onRender func(*chart.Scene)
	min      chart.Size

	size    chart.Size
	sized   bool
	scene   *chart.Scene
	hover   *tooltip.Controller
	renders int
}

// New creates a container that has not been sized yet.
func New(build Builder, opts ...Option) (*Container, error) {
	if build == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "responsive container needs a builder")
	}
	hover, err := tooltip.NewController(nil, nil)
	if err != nil {
		return nil, err
	}
	c := &Container{
		build: build,
		min:   chart.Size{Width: DefaultMinWidth, Height: DefaultMinHeight},
		hover: hover,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ForChart creates a container that rebuilds ch.
func ForChart(ch chart.Chart, opts ...Option) (*Container, error) {
	return New(ch.Build, opts...)
}

// Resize reports a new surface size. Identical sizes are a no-op; any
// other size rebuilds the scene and clears the hover state. It reports
// whether a rebuild happened.
func (c *Container) Resize(width, height float64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := chart.Size{Width: width, Height: height}
	if c.sized && size == c.size {
		return false, nil
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return false, err
	}
	c.size, c.sized = size, true
	return true, c.rebuild()
}

// Invalidate rebuilds the scene at the current size, as after a data
// change. It is a no-op before the first Resize.
func (c *Container) Invalidate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sized {
		return nil
	}
	return c.rebuild()
}

// SetBuilder swaps the builder and rebuilds at the current size.
func (c *Container) SetBuilder(build Builder) error {
	if build == nil {
		return errors.New(errors.ErrCodeInvalidInput, "responsive container needs a builder")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.build = build
	if !c.sized {
		return nil
	}
	return c.rebuild()
}

func (c *Container) rebuild() error {
	c.renders++
	if c.size.Below(c.min) {
		c.scene = nil
		c.hover.Reset(nil, nil)
		c.notify(nil)
		return nil
	}
	scene, err := c.build(c.size)
	if err != nil {
		c.scene = nil
		c.hover.Reset(nil, nil)
		return err
	}
	c.scene = scene
	if scene == nil || scene.Suppressed {
		c.hover.Reset(nil, nil)
	} else {
		c.hover.Reset(scene.Locator, scene.Rows)
	}
	c.notify(c.scene)
	return nil
}

func (c *Container) notify(scene *chart.Scene) {
	if c.onRender != nil {
		c.onRender(scene)
	}
}

// Scene returns the current scene, or nil when nothing is rendered.
func (c *Container) Scene() *chart.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene
}

// Size returns the last reported size.
func (c *Container) Size() chart.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Renders returns how many times the scene was rebuilt.
func (c *Container) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

// PointerMove forwards a pointer position to the hover controller and
// reports whether the hovered row changed.
func (c *Container) PointerMove(x, y float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hover.PointerMove(x, y)
}

// PointerLeave clears the hover state.
func (c *Container) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hover.PointerLeave()
}

// Hover returns the hovered row, if any.
func (c *Container) Hover() (tooltip.Hover, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hover.Hover()
}

// Tooltip returns the tooltip lines of the hovered row.
func (c *Container) Tooltip() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hover.Hover()
	if !ok || c.scene == nil {
		return nil
	}
	return c.scene.TooltipLines(tooltip.Hit{Index: h.Index, Anchor: h.Anchor, Series: h.Series})
}

// Close stops the hover controller.
func (c *Container) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hover.Stop()
}
