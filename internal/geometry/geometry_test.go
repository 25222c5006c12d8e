package geometry

import (
	"math"
	"testing"
)

func TestVolume(t *testing.T) {
	g, err := New(4, 5, Point{}, 5)
	if err != nil {
		t.Fatal(err)
	}

	want := math.Pi * (25 - 16) * 5
	if math.Abs(g.Volume()-want) > 1e-9 {
		t.Errorf("expected volume %g, got %g", want, g.Volume())
	}
}

func TestRadialMidpoint(t *testing.T) {
	g, err := New(4, 5, Point{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if g.RadialMidpoint() != 4.5 {
		t.Errorf("expected midpoint 4.5, got %g", g.RadialMidpoint())
	}
}

func TestNewRejectsBadRadii(t *testing.T) {
	cases := []struct {
		name       string
		inner, out float64
		length     float64
	}{
		{"negative inner", -1, 5, 5},
		{"outer inside inner", 5, 4, 5},
		{"nan radius", math.NaN(), 5, 5},
		{"negative length", 4, 5, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.inner, c.out, Point{}, c.length); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCopyKeepsShape(t *testing.T) {
	src, err := New(4, 5, Point{X: 1}, 5)
	if err != nil {
		t.Fatal(err)
	}

	cp := Copy(src, Point{X: 9})
	if cp.InnerRadius() != 4 || cp.OuterRadius() != 5 || cp.Length() != 5 {
		t.Error("copy should keep radii and length")
	}
	if cp.Centroid().X != 9 {
		t.Errorf("copy should take the new centroid, got %v", cp.Centroid())
	}
	if src.Centroid().X != 1 {
		t.Error("source centroid must not change")
	}
}
