// Package terrain answers elevation and water queries about the sand table.
//
// Everything is expressed in sensor space. Water is any point whose elevation
// is below zero; points the surface cannot answer for are treated as land.
package terrain

import (
	"time"

	"github.com/pthm-cable/sandgames/camera"
)

// Oracle is the read-only view of the table consumed by the games.
type Oracle interface {
	Elevation(x, y float64) float64
	IsUnderwater(x, y float64) bool
	SensorToDisplay(x, y float64) (float64, float64)
	IsStabilized() bool
}

// Surface is an elevation source.
type Surface interface {
	Elevation(x, y float64) float64
}

// Sandbox binds a surface to the projector calibration and tracks whether
// the sensor has settled since the last recalibration.
type Sandbox struct {
	surface Surface
	cam     *camera.Camera

	now       func() time.Duration
	warmup    time.Duration
	settledAt time.Duration
}

// NewSandbox creates an oracle over surface. A nil now function disables the
// settling window so the sandbox always reports stabilized.
func NewSandbox(surface Surface, cam *camera.Camera, now func() time.Duration, warmup time.Duration) *Sandbox {
	return &Sandbox{
		surface: surface,
		cam:     cam,
		now:     now,
		warmup:  warmup,
	}
}

// Elevation returns the surface elevation at a sensor point.
func (s *Sandbox) Elevation(x, y float64) float64 {
	return s.surface.Elevation(x, y)
}

// IsUnderwater reports whether the elevation at a sensor point is below zero.
func (s *Sandbox) IsUnderwater(x, y float64) bool {
	return s.surface.Elevation(x, y) < 0
}

// SensorToDisplay maps a sensor point to projector coordinates.
func (s *Sandbox) SensorToDisplay(x, y float64) (float64, float64) {
	return s.cam.SensorToDisplay(x, y)
}

// IsStabilized is false during the warm-up window after Unsettle.
func (s *Sandbox) IsStabilized() bool {
	if s.now == nil {
		return true
	}
	return s.now() >= s.settledAt
}

// Unsettle starts a new warm-up window, e.g. after the ROI moved.
func (s *Sandbox) Unsettle() {
	if s.now == nil {
		return
	}
	s.settledAt = s.now() + s.warmup
}

// SetSurface swaps the elevation source, e.g. for a fresh depth frame.
func (s *Sandbox) SetSurface(surface Surface) {
	s.surface = surface
}

// Camera returns the calibration used for display mapping.
func (s *Sandbox) Camera() *camera.Camera {
	return s.cam
}

// Constant is a flat surface at a fixed elevation.
type Constant float64

// Elevation returns the constant.
func (c Constant) Elevation(x, y float64) float64 {
	return float64(c)
}
