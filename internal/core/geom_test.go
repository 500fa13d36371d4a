package core

import "testing"

func TestCenteredRect(t *testing.T) {
	tests := []struct {
		name         string
		sw, sh, w, h int
		want         Rect
	}{
		{"fits", 80, 24, 20, 10, NewRect(30, 7, 20, 10)},
		{"odd remainder", 11, 5, 4, 2, NewRect(3, 1, 4, 2)},
		{"larger than screen", 10, 4, 20, 8, NewRect(0, 0, 20, 8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CenteredRect(tc.sw, tc.sh, tc.w, tc.h)
			if got != tc.want {
				t.Errorf("CenteredRect() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 2, 3, 3)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 2, true},
		{4, 4, true},
		{5, 4, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestColorActions(t *testing.T) {
	for i := 0; i < 6; i++ {
		a := ColorAction(i)
		got, ok := a.ColorIndex()
		if !ok || got != i {
			t.Errorf("ColorAction(%d).ColorIndex() = %d, %v", i, got, ok)
		}
	}
	if ColorAction(6) != ActionNone || ColorAction(-1) != ActionNone {
		t.Error("out of range color should map to ActionNone")
	}
	if _, ok := ActionConfirm.ColorIndex(); ok {
		t.Error("ActionConfirm is not a color action")
	}
	if ActionColor3.String() != "Color3" {
		t.Errorf("ActionColor3.String() = %q", ActionColor3.String())
	}
}

func TestInputFramePickedColor(t *testing.T) {
	f := NewInputFrame()
	if _, ok := f.PickedColor(); ok {
		t.Error("empty frame should have no picked color")
	}

	f.Set(ActionColor4)
	f.Set(ActionColor2)
	if c, ok := f.PickedColor(); !ok || c != 1 {
		t.Errorf("PickedColor() = %d, %v; expected 1, true", c, ok)
	}

	f.Clear()
	if f.Has(ActionColor2) {
		t.Error("Clear should reset actions")
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(0) != ColorRed || TileColor(5) != ColorOrange {
		t.Error("unexpected palette mapping")
	}
	if TileColor(6) != ColorGray || TileColor(-1) != ColorGray {
		t.Error("out of range index should map to gray")
	}
}
