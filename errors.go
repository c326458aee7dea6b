package plot

import "errors"

// ErrZeroDimension is returned when the graph is displayed or redrawn before
// its host surface has a non-zero pixel size. Hosts should initialize the
// graph after their loaded (first sized) event.
var ErrZeroDimension = errors.New("plot: pixel dimension is zero; display the graph after the host surface has been sized (loaded)")

// ErrEmptyRegion is returned when a logical region has no positive width or height.
var ErrEmptyRegion = errors.New("plot: logical region must have positive width and height")

// ErrNotFound is returned when removing a line or marker the graph does not own.
var ErrNotFound = errors.New("plot: not found")
