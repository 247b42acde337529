package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectSplitColumns(t *testing.T) {
	tests := []struct {
		name      string
		r         Rect
		n         int
		wantWidth []int
	}{
		{"even split", NewRect(0, 0, 20, 5), 4, []int{5, 5, 5, 5}},
		{"remainder to last", NewRect(2, 0, 22, 5), 5, []int{4, 4, 4, 4, 6}},
		{"single column", NewRect(0, 0, 7, 1), 1, []int{7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cols := tc.r.SplitColumns(tc.n)
			if len(cols) != tc.n {
				t.Fatalf("SplitColumns(%d) returned %d columns", tc.n, len(cols))
			}
			x := tc.r.X
			for i, c := range cols {
				if c.W != tc.wantWidth[i] {
					t.Errorf("column %d width = %d, expected %d", i, c.W, tc.wantWidth[i])
				}
				if c.X != x {
					t.Errorf("column %d starts at %d, expected %d", i, c.X, x)
				}
				x += c.W
			}
			if x != tc.r.Right() {
				t.Errorf("columns end at %d, expected %d", x, tc.r.Right())
			}
		})
	}

	if cols := NewRect(0, 0, 10, 1).SplitColumns(0); cols != nil {
		t.Errorf("SplitColumns(0) should return nil, got %v", cols)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestSimpleRNGDeterministic(t *testing.T) {
	a := NewSimpleRNG(99)
	b := NewSimpleRNG(99)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestSimpleRNGRanges(t *testing.T) {
	r := NewSimpleRNG(7)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := r.Intn(5)
		if n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %d, out of range", n)
		}
		seen[n] = true

		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f, out of range", f)
		}
	}
	if len(seen) != 5 {
		t.Errorf("Intn(5) hit %d distinct values in 1000 draws, expected 5", len(seen))
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestSimpleRNGRead(t *testing.T) {
	buf := make([]byte, 13)
	n, err := NewSimpleRNG(3).Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read() = (%d, %v), expected (%d, nil)", n, err, len(buf))
	}

	again := make([]byte, 13)
	NewSimpleRNG(3).Read(again)
	if string(buf) != string(again) {
		t.Error("Read() with the same seed should produce the same bytes")
	}
}
