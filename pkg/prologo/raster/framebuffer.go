package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FrameBuffer は画像の描画バッファ（キャンバス）を表します
// FrameBuffer は一回の描画処理が専有し、呼び出し間で共有しません
type FrameBuffer struct {
	img *image.RGBA
}

// NewFrameBuffer は新しいフレームバッファを作成します
// 背景は塗りつぶさず、最初の描画段階で上書きされる前提です
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Fill はフレームバッファ全体を単色で塗りつぶします
func (fb *FrameBuffer) Fill(c color.Color) {
	draw.Draw(fb.img, fb.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect は整数座標の矩形を単色で塗りつぶします（範囲外はクリップ）
func (fb *FrameBuffer) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(fb.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(fb.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// SetPixel は指定された座標にピクセルを設定します
func (fb *FrameBuffer) SetPixel(x, y int, c color.Color) {
	if (image.Point{x, y}).In(fb.img.Bounds()) {
		fb.img.Set(x, y, c)
	}
}

// GetPixel は指定された座標のピクセルを取得します
func (fb *FrameBuffer) GetPixel(x, y int) color.RGBA {
	if (image.Point{x, y}).In(fb.img.Bounds()) {
		return fb.img.RGBAAt(x, y)
	}
	return color.RGBA{}
}

// Bounds はフレームバッファの境界を返します
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return fb.img.Bounds()
}

// Image は内部の画像を返します
func (fb *FrameBuffer) Image() *image.RGBA {
	return fb.img
}
