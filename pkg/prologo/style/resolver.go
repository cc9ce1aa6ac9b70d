package style

import (
	"fmt"
	"image/color"
	"strings"
)

// FontStyle はロゴ文字のフォントスタイルを表します
type FontStyle string

const (
	Serif     FontStyle = "serif"
	SansSerif FontStyle = "sans-serif"
	Modern    FontStyle = "modern"
	Playful   FontStyle = "playful"
	Elegant   FontStyle = "elegant"
)

// FontStyles は既知のフォントスタイル一覧です
var FontStyles = []FontStyle{Serif, SansSerif, Modern, Playful, Elegant}

// IconChoice はアイコンの種類を表します
type IconChoice string

const (
	Abstract    IconChoice = "abstract"
	Geometric   IconChoice = "geometric"
	LetterBased IconChoice = "letter-based"
	Minimal     IconChoice = "minimal"
	Tech        IconChoice = "tech"
	// NoIcon は未知のアイコン指定の解決先です
	NoIcon IconChoice = ""
)

// IconChoices は既知のアイコン一覧です
var IconChoices = []IconChoice{Abstract, Geometric, LetterBased, Minimal, Tech}

var (
	Black = color.RGBA{0, 0, 0, 255}
	White = color.RGBA{255, 255, 255, 255}
)

// brightnessThreshold は輝度しきい値（千分率）です
const brightnessThreshold = 128 * 1000

// Brightness はBT.601の輝度を千分率の整数で返します（0〜255000）
func Brightness(c color.RGBA) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}

// TextColor は背景色に対して読みやすい文字色（黒または白）を返します
func TextColor(bg color.RGBA) color.RGBA {
	if Brightness(bg) > brightnessThreshold {
		return Black
	}
	return White
}

// Diagnostics は診断情報を表します
type Diagnostics struct {
	Warnings []string
}

// Resolver はリクエストのスタイル指定を解決します
type Resolver struct {
	diagnostics *Diagnostics
}

// NewResolver は新しいスタイル解決器を作成します
func NewResolver() *Resolver {
	return &Resolver{diagnostics: &Diagnostics{}}
}

// FontStyle はフォントスタイル名を解決します。未知の値はsans-serifになります
func (r *Resolver) FontStyle(name string) FontStyle {
	s := FontStyle(normalize(name))
	for _, known := range FontStyles {
		if s == known {
			return s
		}
	}
	r.warn("unknown font style %q, using %s", name, SansSerif)
	return SansSerif
}

// IconChoice はアイコン名を解決します。未知の値はNoIconになります
func (r *Resolver) IconChoice(name string) IconChoice {
	c := IconChoice(normalize(name))
	for _, known := range IconChoices {
		if c == known {
			return c
		}
	}
	r.warn("unknown icon choice %q, no icon rendered", name)
	return NoIcon
}

// GetDiagnostics は収集した診断情報を返します
func (r *Resolver) GetDiagnostics() *Diagnostics {
	return r.diagnostics
}

func (r *Resolver) warn(format string, args ...any) {
	r.diagnostics.Warnings = append(r.diagnostics.Warnings, fmt.Sprintf(format, args...))
}

// normalize は大文字小文字と区切り文字の揺れを吸収します
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
