// Package view connects read-only projections of application state to
// renderers. A Connected view re-renders only when its projection changes.
package view

// Source is the part of a store a view needs.
type Source[S any] interface {
	State() S
	Subscribe(listener func()) (unsubscribe func())
}

// Connected binds a selector and a renderer to a Source.
type Connected[S, P any] struct {
	src         Source[S]
	selector    func(S) P
	equal       func(a, b P) bool
	render      func(P)
	unsubscribe func()
	last        P
	renders     int
}

// Connect builds a view. Nothing happens until Mount. A nil equal makes the
// view re-render on every notification.
func Connect[S, P any](src Source[S], selector func(S) P, equal func(a, b P) bool, render func(P)) *Connected[S, P] {
	if equal == nil {
		equal = func(P, P) bool { return false }
	}
	return &Connected[S, P]{src: src, selector: selector, equal: equal, render: render}
}

// Mount subscribes to the source and renders the current projection.
// Mounting an already mounted view is a no-op.
func (c *Connected[S, P]) Mount() {
	if c.unsubscribe != nil {
		return
	}
	c.last = c.selector(c.src.State())
	c.unsubscribe = c.src.Subscribe(c.onChange)
	c.draw(c.last)
}

// Unmount removes the view's listener. It is safe to call more than once and
// from inside a notification.
func (c *Connected[S, P]) Unmount() {
	if c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
}

// Mounted reports whether the view currently holds a subscription.
func (c *Connected[S, P]) Mounted() bool { return c.unsubscribe != nil }

// Props returns the projection of the last render.
func (c *Connected[S, P]) Props() P { return c.last }

// Renders returns how many times the view has rendered.
func (c *Connected[S, P]) Renders() int { return c.renders }

func (c *Connected[S, P]) onChange() {
	if c.unsubscribe == nil {
		return
	}
	next := c.selector(c.src.State())
	if c.equal(c.last, next) {
		return
	}
	c.last = next
	c.draw(next)
}

func (c *Connected[S, P]) draw(p P) {
	c.renders++
	if c.render != nil {
		c.render(p)
	}
}

// Equal is the default shallow comparison for comparable projections.
func Equal[P comparable](a, b P) bool { return a == b }
