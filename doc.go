/*
Package plot provides an embeddable 2D line graph with a pannable, zoomable
viewport, draggable markers and tick bars, designed as idiomatic Go with
backend-agnostic draw lists.

# Overview

A Graph owns a Viewport mapping a logical region (float64, origin at the
bottom-left) onto a pixel rectangle (float32, origin at the top-left). Lines
are Polylines of logical points; each one is tessellated into a cached
DrawList relative to the view center and re-projected by matrix on every pan.
Only edits, zoom changes and pans far from that center re-tessellate it.

Every Redraw produces a Frame of Layers. Each layer carries its own vertices,
indices, draw commands and projection. Renderers consume frames:

	backend/opengl   GL 4.1 core, with a GLFW input adapter
	backend/ebiten   Ebitengine game loop
	backend/raster   software rasterizer producing image.RGBA and PNG
	backend/braille  terminal canvas of Unicode braille cells

# Quick Start

	// Setup
	renderer, _ := opengl.NewRenderer(1280, 720)
	graph := plot.NewGraph(plot.WithStyle(plot.DarkStyle()))

	line := plot.NewPolyline(0, 2)
	for x := 0.0; x < 10; x += 0.01 {
	    line.Append(plot.Point{X: x, Y: math.Sin(x)})
	}
	graph.AddLine(line)

	host := plot.NewHost(graph, renderer)
	host.Resize(1280, 720)
	graph.FitToData(0.05)
	graph.SetHome(graph.Region())

	// Main loop
	for !window.ShouldClose() {
	    adapter.BeginFrame()
	    glfw.PollEvents()
	    in := adapter.Update(dt)

	    host.Frame(in, dt)
	    adapter.SetCursor(graph.Cursor())
	    window.SwapBuffers()
	}

# Interaction

	Left drag        Drag the marker under the cursor, otherwise pan
	Middle drag      Pan
	Escape           Cancel a marker drag
	Wheel            Zoom about the cursor
	Arrow keys       Pan by KeyPanPixels
	+ / PageUp       Zoom in about the plot center
	- / PageDown     Zoom out about the plot center
	Home             Return to the region set with SetHome

Pan and zoom can be switched off with WithPanEnabled and WithZoomEnabled.
Markers snap to a logical grid on release when WithMarkerSnap is set.

# Gaps

NaN or infinite Y values break a polyline into separate runs. Points are
never interpolated across a gap.

# Errors

Display, DisplayAnimated and FitToData reject regions that are empty or not
finite with ErrEmptyRegion. Redraw returns ErrZeroDimension while the graph
has no size; Host treats that as a minimized window and skips the frame.
*/
package plot
