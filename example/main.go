// Example demonstrates a plot graph in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The example creates a GLFW window, initializes the OpenGL plot renderer,
// and shows two curves with a pair of draggable markers. Drag with the left
// mouse button to pan, scroll to zoom, press Home to reset.
package main

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/tanema/gween/ease"

	"github.com/go-theft-auto/plot"
	"github.com/go-theft-auto/plot/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "plot example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	w, h := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(w, h)
	if err != nil {
		return fmt.Errorf("plot renderer: %w", err)
	}
	defer renderer.Delete()

	inputAdapter := opengl.NewGLFWInputAdapter(window)
	defer inputAdapter.Destroy()

	graph := plot.NewGraph(
		plot.WithStyle(plot.DarkStyle()),
		plot.WithMarkerSnap(plot.SnapConfig{Enabled: true, GridX: 0.25}),
	)
	graph.AddLine(sampled("sin(x)", math.Sin))
	graph.AddLine(sampled("cos(x)/x", func(x float64) float64 { return math.Cos(x) / x }))

	left := plot.NewMarker(plot.DataRect{X: 1, Y: -1.5, W: 0.5, H: 3}, plot.RGBA(255, 200, 0, 80))
	left.Label = "A"
	left.Constraint = plot.DragXOnly
	right := plot.NewMarker(plot.DataRect{X: 4, Y: -1.5, W: 0.5, H: 3}, plot.RGBA(0, 200, 255, 80))
	right.Label = "B"
	right.Constraint = plot.DragXOnly
	graph.AddMarker(left)
	graph.AddMarker(right)
	graph.OnMarkerMoved(func(m *plot.Marker) {
		fmt.Printf("marker %s at x=%.2f\n", m.Label, m.Rect.X)
	})

	host := plot.NewHost(graph, renderer)
	host.Resize(w, h)
	if err := graph.FitToData(0.05); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	graph.SetHome(graph.Region())
	if err := graph.DisplayAnimated(plot.DataRect{X: 0, Y: -1.5, W: 2 * math.Pi, H: 3}, 0.6, ease.OutCubic); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	// Main loop.
	last := time.Now()
	for !window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		inputAdapter.BeginFrame()
		glfw.PollEvents()
		in := inputAdapter.Update(dt)

		if fw, fh := window.GetFramebufferSize(); fw != w || fh != h {
			w, h = fw, fh
			gl.Viewport(0, 0, int32(w), int32(h))
			host.Resize(w, h)
		}

		if _, err := host.Frame(in, dt); err != nil {
			return fmt.Errorf("plot frame: %w", err)
		}
		inputAdapter.SetCursor(graph.Cursor())

		window.SwapBuffers()
	}

	return nil
}

// sampled returns fn sampled over [-10, 10]. Non-finite values become gaps.
func sampled(label string, fn func(x float64) float64) *plot.Polyline {
	l := plot.NewPolyline(0, 2)
	l.Label = label
	for i := 0; i <= 2000; i++ {
		x := -10 + float64(i)*0.01
		l.Append(plot.Point{X: x, Y: fn(x)})
	}
	return l
}
