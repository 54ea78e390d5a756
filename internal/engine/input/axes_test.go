package input

import "testing"

func TestAxesPressRelease(t *testing.T) {
	var a Axes

	a.Press(KeyRight)
	if a.Horizontal != 1 {
		t.Errorf("after Right: horizontal = %d, want 1", a.Horizontal)
	}
	a.Release(KeyRight)
	if a.Horizontal != 0 {
		t.Errorf("after releasing Right: horizontal = %d, want 0", a.Horizontal)
	}

	a.Press(KeyUp)
	a.Press(KeyLeft)
	if a.Vertical != 1 || a.Horizontal != -1 {
		t.Errorf("Up+Left: got (%d, %d), want (-1, 1)", a.Horizontal, a.Vertical)
	}
}

func TestAxesOppositeKeys(t *testing.T) {
	tests := []struct {
		name     string
		first    Key
		second   Key
		release  Key
		wantBoth int
		want     int
		vertical bool
	}{
		{"right then left, release right", KeyRight, KeyLeft, KeyRight, 0, -1, false},
		{"right then left, release left", KeyRight, KeyLeft, KeyLeft, 0, 1, false},
		{"left then right, release left", KeyLeft, KeyRight, KeyLeft, 0, 1, false},
		{"up then down, release up", KeyUp, KeyDown, KeyUp, 0, -1, true},
		{"down then up, release up", KeyDown, KeyUp, KeyUp, 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Axes
			axis := func() int {
				if tt.vertical {
					return a.Vertical
				}
				return a.Horizontal
			}

			a.Press(tt.first)
			a.Press(tt.second)
			if got := axis(); got != tt.wantBoth {
				t.Errorf("both held: axis = %d, want %d", got, tt.wantBoth)
			}

			a.Release(tt.release)
			if got := axis(); got != tt.want {
				t.Errorf("after release: axis = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAxesIgnoresRepeatsAndStrayReleases(t *testing.T) {
	var a Axes

	a.Press(KeyRight)
	a.Press(KeyRight)
	a.Press(KeyRight)
	a.Release(KeyRight)
	if a.Horizontal != 0 {
		t.Errorf("repeated presses should not accumulate, got %d", a.Horizontal)
	}

	a.Release(KeyLeft)
	if a.Horizontal != 0 {
		t.Errorf("release without press should be ignored, got %d", a.Horizontal)
	}
}

func TestAxesNonDirectionKey(t *testing.T) {
	var a Axes
	if a.Press(KeyEscape) || a.Release(KeyFPSUp) {
		t.Error("non-direction keys should report false")
	}
	if a.Horizontal != 0 || a.Vertical != 0 {
		t.Errorf("non-direction keys moved the axes: %+v", a)
	}
}

func TestAxesReset(t *testing.T) {
	var a Axes
	a.Press(KeyUp)
	a.Press(KeyRight)
	a.Reset()
	if a.Horizontal != 0 || a.Vertical != 0 {
		t.Errorf("Reset left state behind: %+v", a)
	}

	// The key-up that follows a reset must not push the axis negative.
	a.Release(KeyUp)
	if a.Vertical != 0 {
		t.Errorf("release after Reset: Vertical = %d, want 0", a.Vertical)
	}
}

func TestDrag(t *testing.T) {
	var d Drag
	if d.Active() {
		t.Fatal("zero Drag should be inactive")
	}

	d.Begin(ButtonLeft)
	if !d.Active() {
		t.Fatal("drag should be active after Begin")
	}

	d.End(ButtonRight)
	if !d.Active() {
		t.Error("releasing another button should not end the drag")
	}

	d.End(ButtonLeft)
	if d.Active() {
		t.Error("drag should end when its button is released")
	}
}

func TestDragSecondButton(t *testing.T) {
	var d Drag
	d.Begin(ButtonLeft)
	d.Begin(ButtonRight)

	d.End(ButtonRight)
	if !d.Active() {
		t.Error("releasing the second button should not end a drag started by the first")
	}

	d.End(ButtonLeft)
	if d.Active() {
		t.Error("releasing the first button should end the drag")
	}
}

func TestDragCancel(t *testing.T) {
	var d Drag
	d.Begin(ButtonMiddle)
	d.Cancel()
	if d.Active() {
		t.Error("Cancel should stop the drag")
	}
	d.Begin(ButtonLeft)
	if !d.Active() {
		t.Error("a new drag should start after Cancel")
	}
}
