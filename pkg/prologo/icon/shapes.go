package icon

import (
	"math"

	"github.com/shinya/prologo/pkg/prologo/raster"
)

// starInnerRatio は正五芒星 {5/2} の内半径と外半径の比です
var starInnerRatio = math.Cos(2*math.Pi/5) / math.Cos(math.Pi/5)

// 上向きの頂点から始める
const pointUp = -90

// renderAbstract は五芒星と中央の円を描画します
func renderAbstract(rc *raster.RasterContext, p Params) {
	outer := 0.8 * p.Size
	rc.FillPolygon(raster.StarPolygon(p.CX, p.CY, outer, outer*starInnerRatio, 5, pointUp), p.First)
	rc.FillCircle(p.CX, p.CY, 0.4*p.Size, p.Second)
}

// renderGeometric は正六角形と30度回転した正三角形を描画します
func renderGeometric(rc *raster.RasterContext, p Params) {
	rc.FillPolygon(raster.RegularPolygon(p.CX, p.CY, 0.8*p.Size, 6, pointUp), p.First)
	rc.FillPolygon(raster.RegularPolygon(p.CX, p.CY, 0.5*p.Size, 3, pointUp+30), p.Second)
}

// renderLetter は円と中央の頭文字を描画します
func renderLetter(rc *raster.RasterContext, p Params) {
	rc.FillCircle(p.CX, p.CY, p.Size, p.First)
	if p.Font == nil {
		return
	}

	letter := p.Letter
	if letter == "" {
		letter = DefaultLetter
	}
	b := p.Font.Bounds(letter)
	x := int(math.Round(p.CX - float64(b.Left+b.Right)/2))
	y := int(math.Round(p.CY - float64(b.Top+b.Bottom)/2))
	rc.DrawText(p.Font, x, y, letter, p.Second)
}

// renderMinimal は正方形と中央の円を描画します
func renderMinimal(rc *raster.RasterContext, p Params) {
	rc.FillSquare(p.CX, p.CY, 0.8*p.Size, p.First)
	rc.FillCircle(p.CX, p.CY, 0.5*p.Size, p.Second)
}

// renderTech は正方形、中央の十字線、四隅の円を描画します
func renderTech(rc *raster.RasterContext, p Params) {
	half := 0.8 * p.Size
	stroke := 0.1 * p.Size
	rc.FillSquare(p.CX, p.CY, half, p.First)

	rc.DrawLine(p.CX-half, p.CY, p.CX+half, p.CY, stroke, p.Second)
	rc.DrawLine(p.CX, p.CY-half, p.CX, p.CY+half, stroke, p.Second)

	for _, c := range [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		rc.FillCircle(p.CX+c[0]*half, p.CY+c[1]*half, 0.2*p.Size, p.Second)
	}
}
