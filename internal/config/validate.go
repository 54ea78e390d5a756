package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration can start a session.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		fail("graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.TargetFPS <= 0 {
		fail("graphics.target_fps %v must be positive", c.Graphics.TargetFPS)
	}
	if c.Assets.Timeout < 0 {
		fail("assets.timeout %v must not be negative", c.Assets.Timeout)
	}

	if c.Camera.Distance <= 0 {
		fail("camera.distance %v must be positive", c.Camera.Distance)
	}
	if c.Camera.MinExtent <= 0 || c.Camera.MinClip <= 0 {
		fail("camera minimum extent/clip must be positive")
	}
	if c.Camera.ZoomStep <= 0 || c.Camera.ZoomStep >= 1 {
		fail("camera.zoom_step %v must be in (0,1)", c.Camera.ZoomStep)
	}

	if len(c.Cars) == 0 {
		fail("at least one car is required")
	}
	for i, car := range c.Cars {
		if !validColor(car.Color) {
			fail("cars[%d] (%s): color %v out of [0,1]", i, car.Name, car.Color)
		}
	}
	if len(c.Cars) > 0 && (c.Driving.Player < 0 || c.Driving.Player >= len(c.Cars)) {
		fail("driving.player %d out of range [0,%d)", c.Driving.Player, len(c.Cars))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		fail("logging.level %q unknown", c.Logging.Level)
	}

	return errors.Join(errs...)
}

func validColor(c [4]float32) bool {
	for _, v := range c {
		if v < 0 || v > 1 || v != v {
			return false
		}
	}
	return true
}
