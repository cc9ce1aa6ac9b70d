package style

import (
	"image/color"
	"testing"
)

func TestTextColor(t *testing.T) {
	tests := []struct {
		name string
		bg   color.RGBA
		want color.RGBA
	}{
		{"white background", color.RGBA{255, 255, 255, 255}, Black},
		{"black background", color.RGBA{0, 0, 0, 255}, White},
		{"boundary 128 resolves to white", color.RGBA{128, 128, 128, 255}, White},
		{"just above boundary", color.RGBA{129, 128, 128, 255}, Black},
		{"acme blue", color.RGBA{0x4A, 0x90, 0xE2, 255}, Black},
		{"pure red", color.RGBA{255, 0, 0, 255}, White},
		{"pure green", color.RGBA{0, 255, 0, 255}, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextColor(tt.bg); got != tt.want {
				t.Errorf("TextColor(%v) = %v, want %v", tt.bg, got, tt.want)
			}
		})
	}
}

func TestBrightness(t *testing.T) {
	// (74*299 + 144*587 + 226*114) = 132418
	if got := Brightness(color.RGBA{0x4A, 0x90, 0xE2, 255}); got != 132418 {
		t.Errorf("Brightness(#4A90E2) = %d, want 132418", got)
	}
	if got := Brightness(color.RGBA{128, 128, 128, 255}); got != 128000 {
		t.Errorf("Brightness(gray) = %d, want 128000", got)
	}
}

func TestTextColor_Exhaustive(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				bg := color.RGBA{uint8(r), uint8(g), uint8(b), 255}
				lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
				want := White
				if lum > 128.0005 {
					want = Black
				} else if lum < 127.9995 {
					want = White
				} else {
					continue
				}
				if got := TextColor(bg); got != want {
					t.Fatalf("TextColor(%v) = %v, want %v (brightness %.3f)", bg, got, want, lum)
				}
			}
		}
	}
}

func TestResolver_FontStyle(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		in   string
		want FontStyle
	}{
		{"serif", Serif},
		{"Sans-Serif", SansSerif},
		{"sans_serif", SansSerif},
		{"modern", Modern},
		{"playful", Playful},
		{" elegant ", Elegant},
		{"cursive", SansSerif},
		{"", SansSerif},
	}
	for _, tt := range tests {
		if got := r.FontStyle(tt.in); got != tt.want {
			t.Errorf("FontStyle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := len(r.GetDiagnostics().Warnings); got != 2 {
		t.Errorf("warnings = %d, want 2 (cursive, empty)", got)
	}
}

func TestResolver_IconChoice(t *testing.T) {
	r := NewResolver()

	for _, c := range IconChoices {
		if got := r.IconChoice(string(c)); got != c {
			t.Errorf("IconChoice(%q) = %q", c, got)
		}
	}
	if got := r.IconChoice("Letter Based"); got != LetterBased {
		t.Errorf("IconChoice(Letter Based) = %q, want %q", got, LetterBased)
	}
	if got := r.IconChoice("nonexistent"); got != NoIcon {
		t.Errorf("IconChoice(nonexistent) = %q, want no icon", got)
	}
	if len(r.GetDiagnostics().Warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one", r.GetDiagnostics().Warnings)
	}
}
