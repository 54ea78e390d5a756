package input

// Axes is a pair of discrete direction axes driven by the arrow keys.
//
// Updates are edge-triggered: a press moves the axis one step toward the
// pressed direction, a release moves it one step back. Holding both
// opposite keys therefore cancels out, and releasing one of them leaves the
// axis at the other key's value.
type Axes struct {
	Horizontal int // -1 left, +1 right
	Vertical   int // -1 down (reverse), +1 up (forward)

	held [4]bool // indexed by direction key - KeyUp
}

// Press records a key-down edge. Repeats of a held key are ignored.
// Returns true if k is a direction key.
func (a *Axes) Press(k Key) bool {
	slot, dh, dv, ok := direction(k)
	if !ok {
		return false
	}
	if a.held[slot] {
		return true
	}
	a.held[slot] = true
	a.Horizontal = clampAxis(a.Horizontal + dh)
	a.Vertical = clampAxis(a.Vertical + dv)
	return true
}

// Release records a key-up edge. Releasing a key that is not held is
// ignored. Returns true if k is a direction key.
func (a *Axes) Release(k Key) bool {
	slot, dh, dv, ok := direction(k)
	if !ok {
		return false
	}
	if !a.held[slot] {
		return true
	}
	a.held[slot] = false
	a.Horizontal = clampAxis(a.Horizontal - dh)
	a.Vertical = clampAxis(a.Vertical - dv)
	return true
}

// Reset releases every key and zeroes both axes. Used when the window
// loses focus, since the matching key-up edges never arrive.
func (a *Axes) Reset() {
	*a = Axes{}
}

func direction(k Key) (slot, dh, dv int, ok bool) {
	switch k {
	case KeyUp:
		return 0, 0, 1, true
	case KeyDown:
		return 1, 0, -1, true
	case KeyLeft:
		return 2, -1, 0, true
	case KeyRight:
		return 3, 1, 0, true
	}
	return 0, 0, 0, false
}

func clampAxis(v int) int {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Drag tracks whether a mouse drag is in progress.
type Drag struct {
	active bool
	button uint8
}

// Begin starts a drag with the given button. Further presses while a drag
// is active are ignored; the drag belongs to the first button.
func (d *Drag) Begin(button uint8) {
	if d.active {
		return
	}
	d.active = true
	d.button = button
}

// End stops the drag if button is the one that started it.
func (d *Drag) End(button uint8) {
	if d.active && d.button == button {
		d.active = false
	}
}

// Cancel stops any drag regardless of button.
func (d *Drag) Cancel() {
	d.active = false
}

// Active reports whether pointer motion should feed the camera.
func (d *Drag) Active() bool {
	return d.active
}
