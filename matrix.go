package plot

import "github.com/go-gl/mathgl/mgl64"

// Matrix is a column-major 4x4 transform ready for GPU upload.
// It is built in float64 and narrowed once, so large logical offsets
// survive composition.
type Matrix [16]float32

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return matrixFrom(mgl64.Ident4())
}

// OrthoMatrix creates an orthographic projection matrix.
func OrthoMatrix(left, right, bottom, top, near, far float64) Matrix {
	return matrixFrom(mgl64.Ortho(left, right, bottom, top, near, far))
}

// ScreenProjection maps pixel coordinates (origin top-left, Y down) of a
// display of the given size onto normalized device coordinates.
func ScreenProjection(display Vec2) Matrix {
	return matrixFrom(screenOrtho(display))
}

func screenOrtho(display Vec2) mgl64.Mat4 {
	return mgl64.Ortho(0, float64(display.X), float64(display.Y), 0, -1, 1)
}

func matrixFrom(m mgl64.Mat4) Matrix {
	var out Matrix
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// Apply transforms (x, y) and returns normalized device coordinates.
func (m Matrix) Apply(x, y float32) (float32, float32) {
	nx := m[0]*x + m[4]*y + m[12]
	ny := m[1]*x + m[5]*y + m[13]
	w := m[3]*x + m[7]*y + m[15]
	if w != 0 && w != 1 {
		nx /= w
		ny /= w
	}
	return nx, ny
}

// ToPixels transforms (x, y) through m and then from normalized device
// coordinates to pixels of a width x height target (origin top-left).
func (m Matrix) ToPixels(x, y float32, width, height int) (float32, float32) {
	nx, ny := m.Apply(x, y)
	return (nx + 1) * 0.5 * float32(width), (1 - ny) * 0.5 * float32(height)
}
