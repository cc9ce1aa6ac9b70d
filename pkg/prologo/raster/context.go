package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/shinya/prologo/pkg/prologo/font"
)

// Point はピクセル座標の点を表します
type Point struct {
	X, Y float64
}

// RasterContext は図形をフレームバッファに描画するコンテキストです
type RasterContext struct {
	fb *FrameBuffer
}

// NewRasterContext は新しいラスタリングコンテキストを作成します
func NewRasterContext(fb *FrameBuffer) *RasterContext {
	return &RasterContext{fb: fb}
}

// FrameBuffer は描画先のフレームバッファを返します
func (rc *RasterContext) FrameBuffer() *FrameBuffer {
	return rc.fb
}

// Width はキャンバス幅を返します
func (rc *RasterContext) Width() int { return rc.fb.Bounds().Dx() }

// Height はキャンバス高さを返します
func (rc *RasterContext) Height() int { return rc.fb.Bounds().Dy() }

// newRasterizer はキャンバスと同じ大きさのラスタライザーを作成します
func (rc *RasterContext) newRasterizer() *vector.Rasterizer {
	return vector.NewRasterizer(rc.Width(), rc.Height())
}

// rasterizeAndComposite はラスタライザーの内容を単色で合成します
func (rc *RasterContext) rasterizeAndComposite(rz *vector.Rasterizer, col color.Color) {
	alpha := image.NewAlpha(rc.fb.Bounds())
	rz.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
	img := rc.fb.Image()
	draw.DrawMask(img, img.Bounds(), image.NewUniform(col), image.Point{}, alpha, image.Point{}, draw.Over)
}

// FillPolygon は多角形を塗りつぶします
func (rc *RasterContext) FillPolygon(points []Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	rz := rc.newRasterizer()
	addPolygon(rz, points)
	rc.rasterizeAndComposite(rz, col)
}

// FillCircle は円を塗りつぶします
func (rc *RasterContext) FillCircle(cx, cy, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	rz := rc.newRasterizer()
	addEllipse(rz, float32(cx), float32(cy), float32(r), float32(r))
	rc.rasterizeAndComposite(rz, col)
}

// FillRect は実数座標の矩形を塗りつぶします
func (rc *RasterContext) FillRect(x1, y1, x2, y2 float64, col color.Color) {
	if x2 <= x1 || y2 <= y1 {
		return
	}
	rz := rc.newRasterizer()
	addPolygon(rz, []Point{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}})
	rc.rasterizeAndComposite(rz, col)
}

// FillSquare は中心と半幅で指定された正方形を塗りつぶします
func (rc *RasterContext) FillSquare(cx, cy, half float64, col color.Color) {
	rc.FillRect(cx-half, cy-half, cx+half, cy+half, col)
}

// DrawLine は太さwidthの線分を描画します（端は平ら）
func (rc *RasterContext) DrawLine(x1, y1, x2, y2, width float64, col color.Color) {
	if width <= 0 {
		return
	}
	rz := rc.newRasterizer()
	addThickLine(rz, float32(x1), float32(y1), float32(x2), float32(y2), float32(width))
	rc.rasterizeAndComposite(rz, col)
}

// DrawText は描画原点(x, y)をベースライン左端としてテキストを描画します
func (rc *RasterContext) DrawText(h *font.Handle, x, y int, text string, col color.Color) {
	h.DrawString(rc.fb.Image(), x, y, text, col)
}

// RegularPolygon は中心(cx, cy)、半径rの正n角形の頂点を返します
// rotation は最初の頂点の角度（度、0で右方向、時計回り）です
func RegularPolygon(cx, cy, r float64, n int, rotation float64) []Point {
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		a := (rotation + float64(i)*360/float64(n)) * math.Pi / 180
		pts[i] = Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}

// StarPolygon は外半径outer、内半径innerのn芒星の頂点を返します
func StarPolygon(cx, cy, outer, inner float64, n int, rotation float64) []Point {
	pts := make([]Point, 0, 2*n)
	step := 180 / float64(n)
	for i := 0; i < 2*n; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := (rotation + float64(i)*step) * math.Pi / 180
		pts = append(pts, Point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return pts
}

// addPolygon はラスタライザーに閉じた多角形パスを追加します
func addPolygon(rz *vector.Rasterizer, points []Point) {
	rz.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		rz.LineTo(float32(p.X), float32(p.Y))
	}
	rz.ClosePath()
}

// addEllipse はラスタライザーに楕円パスを追加します（時計回り）
func addEllipse(rz *vector.Rasterizer, cx, cy, rx, ry float32) {
	const k = float32(0.5522847498) // 4/3 * (sqrt(2)-1) ≈ bezier circle approximation
	rz.MoveTo(cx+rx, cy)
	rz.CubeTo(cx+rx, cy+k*ry, cx+k*rx, cy+ry, cx, cy+ry)
	rz.CubeTo(cx-k*rx, cy+ry, cx-rx, cy+k*ry, cx-rx, cy)
	rz.CubeTo(cx-rx, cy-k*ry, cx-k*rx, cy-ry, cx, cy-ry)
	rz.CubeTo(cx+k*rx, cy-ry, cx+rx, cy-k*ry, cx+rx, cy)
	rz.ClosePath()
}

// addThickLine は太い線をラスタライザーに追加します
func addThickLine(rz *vector.Rasterizer, x1, y1, x2, y2, width float32) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length == 0 {
		return
	}
	// 法線方向
	nx := -dy / length * (width / 2)
	ny := dx / length * (width / 2)

	rz.MoveTo(x1+nx, y1+ny)
	rz.LineTo(x2+nx, y2+ny)
	rz.LineTo(x2-nx, y2-ny)
	rz.LineTo(x1-nx, y1-ny)
	rz.ClosePath()
}
