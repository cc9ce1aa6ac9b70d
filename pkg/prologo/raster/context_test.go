package raster

import (
	"image"
	"image/color"
	"math"
	"testing"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func newTestContext(w, h int) *RasterContext {
	fb := NewFrameBuffer(w, h)
	fb.Fill(red)
	return NewRasterContext(fb)
}

func TestFrameBuffer_FillAndRect(t *testing.T) {
	fb := NewFrameBuffer(40, 30)
	fb.Fill(red)
	fb.FillRect(image.Rect(0, 20, 40, 40), blue)

	if got := fb.GetPixel(5, 5); got != red {
		t.Errorf("pixel(5,5) = %v, want red", got)
	}
	if got := fb.GetPixel(5, 25); got != blue {
		t.Errorf("pixel(5,25) = %v, want blue", got)
	}
	if got := fb.GetPixel(5, 19); got != red {
		t.Errorf("pixel(5,19) = %v, want red", got)
	}
	if got := fb.GetPixel(100, 100); got != (color.RGBA{}) {
		t.Errorf("out of bounds pixel = %v, want zero", got)
	}
}

func TestFillCircle(t *testing.T) {
	rc := newTestContext(100, 100)
	rc.FillCircle(50, 50, 20, blue)

	fb := rc.FrameBuffer()
	if got := fb.GetPixel(50, 50); got != blue {
		t.Errorf("center = %v, want blue", got)
	}
	if got := fb.GetPixel(50, 33); got != blue {
		t.Errorf("inside edge = %v, want blue", got)
	}
	if got := fb.GetPixel(50, 25); got != red {
		t.Errorf("outside = %v, want red", got)
	}
	// 対角方向（r*cos45 ≈ 14.1 より外）
	if got := fb.GetPixel(66, 66); got != red {
		t.Errorf("corner = %v, want red", got)
	}
}

func TestFillSquare(t *testing.T) {
	rc := newTestContext(100, 100)
	rc.FillSquare(50, 50, 10, blue)

	fb := rc.FrameBuffer()
	for _, p := range []image.Point{{41, 41}, {58, 58}, {50, 50}} {
		if got := fb.GetPixel(p.X, p.Y); got != blue {
			t.Errorf("pixel %v = %v, want blue", p, got)
		}
	}
	for _, p := range []image.Point{{39, 50}, {61, 50}, {50, 61}} {
		if got := fb.GetPixel(p.X, p.Y); got != red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
}

func TestDrawLine(t *testing.T) {
	rc := newTestContext(100, 100)
	rc.DrawLine(10, 50, 90, 50, 6, blue)

	fb := rc.FrameBuffer()
	if got := fb.GetPixel(50, 50); got != blue {
		t.Errorf("on line = %v, want blue", got)
	}
	if got := fb.GetPixel(50, 45); got != red {
		t.Errorf("above line = %v, want red", got)
	}
	if got := fb.GetPixel(5, 50); got != red {
		t.Errorf("before start = %v, want red", got)
	}
}

func TestFillPolygon_Degenerate(t *testing.T) {
	rc := newTestContext(10, 10)
	rc.FillPolygon([]Point{{1, 1}, {5, 5}}, blue)
	rc.FillCircle(5, 5, 0, blue)
	rc.DrawLine(1, 1, 8, 8, 0, blue)

	fb := rc.FrameBuffer()
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := fb.GetPixel(x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestRegularPolygon(t *testing.T) {
	pts := RegularPolygon(0, 0, 10, 6, -90)
	if len(pts) != 6 {
		t.Fatalf("len = %d", len(pts))
	}
	if math.Abs(pts[0].X) > 1e-9 || math.Abs(pts[0].Y+10) > 1e-9 {
		t.Errorf("first vertex = %+v, want (0,-10)", pts[0])
	}
	for i, p := range pts {
		if r := math.Hypot(p.X, p.Y); math.Abs(r-10) > 1e-9 {
			t.Errorf("vertex %d radius = %f", i, r)
		}
	}
}

func TestStarPolygon(t *testing.T) {
	pts := StarPolygon(0, 0, 10, 4, 5, -90)
	if len(pts) != 10 {
		t.Fatalf("len = %d", len(pts))
	}
	for i, p := range pts {
		want := 10.0
		if i%2 == 1 {
			want = 4
		}
		if r := math.Hypot(p.X, p.Y); math.Abs(r-want) > 1e-9 {
			t.Errorf("vertex %d radius = %f, want %f", i, r, want)
		}
	}
}
