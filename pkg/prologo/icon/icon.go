// Package icon はロゴ中央に置くアイコンを描画します
//
// アイコンは abstract, geometric, letter-based, minimal, tech の5種類に限られ、
// Render が唯一の分岐点です。各形状の寸法はすべて Size に対する比率で表されます。
package icon

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shinya/prologo/pkg/prologo/font"
	"github.com/shinya/prologo/pkg/prologo/raster"
	"github.com/shinya/prologo/pkg/prologo/style"
)

// Variant はアイコンの種類を表します
type Variant int

const (
	None Variant = iota
	Abstract
	Geometric
	LetterBased
	Minimal
	Tech
)

// Variants は描画可能な全種類です
var Variants = []Variant{Abstract, Geometric, LetterBased, Minimal, Tech}

var variantNames = map[Variant]style.IconChoice{
	Abstract:    style.Abstract,
	Geometric:   style.Geometric,
	LetterBased: style.LetterBased,
	Minimal:     style.Minimal,
	Tech:        style.Tech,
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return string(name)
	}
	return "none"
}

// FromChoice はアイコン指定から種類を返します。未知の指定はNoneです
func FromChoice(c style.IconChoice) Variant {
	for v, name := range variantNames {
		if name == c {
			return v
		}
	}
	return None
}

// DefaultLetter は社名が空のときの頭文字です
const DefaultLetter = "A"

var upper = cases.Upper(language.Und)

// Initial は社名の最初の文字を大文字にして返します
func Initial(companyName string) string {
	name := strings.TrimSpace(companyName)
	if name == "" {
		return DefaultLetter
	}
	r, _ := utf8.DecodeRuneInString(name)
	return upper.String(string(r))
}

// Params はアイコン描画の引数を表します
// First は主となる形状の色、Second はアクセントの色です
type Params struct {
	CX, CY float64
	Size   float64
	First  color.Color
	Second color.Color
	Letter string       // letter-based のみ
	Font   *font.Handle // letter-based のみ
}

// Render は種類に応じてアイコンを描画します。Noneは何も描きません
func Render(rc *raster.RasterContext, v Variant, p Params) {
	switch v {
	case Abstract:
		renderAbstract(rc, p)
	case Geometric:
		renderGeometric(rc, p)
	case LetterBased:
		renderLetter(rc, p)
	case Minimal:
		renderMinimal(rc, p)
	case Tech:
		renderTech(rc, p)
	case None:
	}
}
