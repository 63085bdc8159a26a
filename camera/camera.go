// Package camera maps the sensor's calibrated region of interest onto the projector viewport.
package camera

import "gonum.org/v1/gonum/spatial/r2"

// Camera maps sensor-space points inside the ROI onto a display viewport.
// The ROI corner Min lands on the viewport origin and Max on (ViewportW, ViewportH).
type Camera struct {
	// ROI is the calibrated region of interest in sensor pixels
	ROI r2.Box

	// Viewport dimensions (projector or window size)
	ViewportW, ViewportH float64
}

// New creates a camera for the given ROI and viewport.
func New(roi r2.Box, viewportW, viewportH float64) *Camera {
	return &Camera{
		ROI:       canon(roi),
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// SensorToDisplay converts a sensor point to viewport coordinates.
// A zero-area ROI maps everything to the viewport origin.
func (c *Camera) SensorToDisplay(sx, sy float64) (dx, dy float64) {
	w, h := c.roiSize()
	if w == 0 || h == 0 {
		return 0, 0
	}
	dx = (sx - c.ROI.Min.X) / w * c.ViewportW
	dy = (sy - c.ROI.Min.Y) / h * c.ViewportH
	return dx, dy
}

// DisplayToSensor converts viewport coordinates back to sensor space.
func (c *Camera) DisplayToSensor(dx, dy float64) (sx, sy float64) {
	if c.ViewportW == 0 || c.ViewportH == 0 {
		return c.ROI.Min.X, c.ROI.Min.Y
	}
	w, h := c.roiSize()
	sx = c.ROI.Min.X + dx/c.ViewportW*w
	sy = c.ROI.Min.Y + dy/c.ViewportH*h
	return sx, sy
}

// Scale returns the display length of one sensor pixel along x.
// Used for drawing radii.
func (c *Camera) Scale() float64 {
	w, _ := c.roiSize()
	if w == 0 {
		return 0
	}
	return c.ViewportW / w
}

// Contains reports whether a sensor point lies inside the ROI (edges inclusive).
func (c *Camera) Contains(sx, sy float64) bool {
	return sx >= c.ROI.Min.X && sx <= c.ROI.Max.X &&
		sy >= c.ROI.Min.Y && sy <= c.ROI.Max.Y
}

// IsVisible returns true if a circle at sensor point (sx, sy) with the given
// sensor radius overlaps the viewport (conservative check for culling).
func (c *Camera) IsVisible(sx, sy, radius float64) bool {
	return sx+radius >= c.ROI.Min.X && sx-radius <= c.ROI.Max.X &&
		sy+radius >= c.ROI.Min.Y && sy-radius <= c.ROI.Max.Y
}

// SetROI replaces the calibrated region. Returns false if nothing changed.
func (c *Camera) SetROI(roi r2.Box) bool {
	roi = canon(roi)
	if roi == c.ROI {
		return false
	}
	c.ROI = roi
	return true
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

func (c *Camera) roiSize() (w, h float64) {
	return c.ROI.Max.X - c.ROI.Min.X, c.ROI.Max.Y - c.ROI.Min.Y
}

// canon orders the box corners so Min <= Max on both axes.
func canon(b r2.Box) r2.Box {
	if b.Min.X > b.Max.X {
		b.Min.X, b.Max.X = b.Max.X, b.Min.X
	}
	if b.Min.Y > b.Max.Y {
		b.Min.Y, b.Max.Y = b.Max.Y, b.Min.Y
	}
	return b
}
