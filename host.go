package plot

import (
	"errors"
	"fmt"
)

// Host binds a graph to a renderer and runs one frame at a time.
// Windowed programs call Frame once per loop iteration.
type Host struct {
	graph    *Graph
	renderer Renderer
	dirty    bool
}

// NewHost creates a host drawing g with r.
func NewHost(g *Graph, r Renderer) *Host {
	return &Host{graph: g, renderer: r, dirty: true}
}

// Graph returns the hosted graph.
func (h *Host) Graph() *Graph { return h.graph }

// Resize notifies the graph and the renderer of a surface size change.
func (h *Host) Resize(width, height int) {
	h.graph.Resize(width, height)
	h.renderer.Resize(width, height)
	h.dirty = true
}

// Invalidate forces the next Frame to report a change, e.g. after the
// application edited lines or markers directly.
func (h *Host) Invalidate() { h.dirty = true }

// Frame applies input, advances animations by dt seconds, then redraws and
// renders. It reports whether anything changed since the previous frame;
// the frame is rendered either way since double-buffered surfaces need it.
func (h *Host) Frame(in *InputState, dt float32) (bool, error) {
	changed := h.graph.HandleInput(in)
	if h.graph.Update(dt) {
		changed = true
	}
	changed = changed || h.dirty
	h.dirty = false

	f, err := h.graph.Redraw()
	if errors.Is(err, ErrZeroDimension) {
		// Minimized; nothing to draw.
		return changed, nil
	}
	if err != nil {
		return changed, err
	}
	if err := h.renderer.Render(f); err != nil {
		return changed, fmt.Errorf("render frame: %w", err)
	}
	return changed, nil
}
