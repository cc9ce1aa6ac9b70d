package request

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/shinya/prologo/pkg/prologo/style"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#4A90E2", color.RGBA{0x4A, 0x90, 0xE2, 255}, false},
		{"4a90e2", color.RGBA{0x4A, 0x90, 0xE2, 255}, false},
		{" #50E3C2 ", color.RGBA{0x50, 0xE3, 0xC2, 255}, false},
		{"#000000", color.RGBA{0, 0, 0, 255}, false},
		{"#GGG", color.RGBA{}, true},
		{"#FFF", color.RGBA{}, true},
		{"#12345G", color.RGBA{}, true},
		{"#1234567", color.RGBA{}, true},
		{"", color.RGBA{}, true},
		{"+12345", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("ParseHexColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatHexColor(t *testing.T) {
	if got := FormatHexColor(color.RGBA{0x4A, 0x90, 0xE2, 255}); got != "#4A90E2" {
		t.Errorf("FormatHexColor = %q", got)
	}
}

func TestParse(t *testing.T) {
	resolver := style.NewResolver()
	req, err := Parse(Fields{
		CompanyName:    "  Acme ",
		Tagline:        "Build Better",
		PrimaryColor:   "#4A90E2",
		SecondaryColor: "#50E3C2",
		FontStyle:      "cursive",
		IconChoice:     "nonexistent",
	}, resolver)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if req.CompanyName != "Acme" {
		t.Errorf("CompanyName = %q, want Acme", req.CompanyName)
	}
	if !req.HasTagline() {
		t.Error("HasTagline = false")
	}
	if req.FontStyle != style.SansSerif {
		t.Errorf("FontStyle = %q, want sans-serif", req.FontStyle)
	}
	if req.Icon != style.NoIcon {
		t.Errorf("Icon = %q, want no icon", req.Icon)
	}
	if len(resolver.GetDiagnostics().Warnings) != 2 {
		t.Errorf("warnings = %v", resolver.GetDiagnostics().Warnings)
	}
}

func TestParse_InvalidColor(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
	}{
		{"short primary", Fields{PrimaryColor: "#GGG", SecondaryColor: "#50E3C2"}},
		{"bad secondary", Fields{PrimaryColor: "#4A90E2", SecondaryColor: "#50E3CZ"}},
		{"missing primary", Fields{SecondaryColor: "#50E3C2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse(tt.fields, nil)
			if !errors.Is(err, ErrInvalidColor) {
				t.Fatalf("Parse error = %v, want ErrInvalidColor", err)
			}
			if req != nil {
				t.Error("expected nil request")
			}
		})
	}
}

func TestParse_LongText(t *testing.T) {
	name := strings.Repeat("x", 300)
	tagline := strings.Repeat("y", 600)
	req, err := Parse(Fields{
		CompanyName:    name,
		Tagline:        tagline,
		PrimaryColor:   "#4A90E2",
		SecondaryColor: "#50E3C2",
	}, nil)
	if err != nil {
		t.Fatalf("Parse failed for long text: %v", err)
	}
	if req.CompanyName != name || req.Tagline != tagline {
		t.Error("long text was altered")
	}
}
