package font

import (
	"image"
	"image/color"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BuiltinFamily は組み込みフォールバックフォントのファミリ名です
const BuiltinFamily = "Go Regular"

// basicFamily は最終手段のビットマップフォントのファミリ名です
const basicFamily = "BasicFont"

const hinting = xfont.HintingFull

// Handle はサイズ確定済みのフォントを表します
// Handle は一回の描画処理の中でのみ使用し、並行利用はできません
type Handle struct {
	Family   string
	Size     float64
	Face     xfont.Face
	Fallback bool  // 組み込みフォントにフォールバックしたか
	Reason   error // フォールバックの理由
}

// Box はグリフの外接矩形を描画原点（ベースライン左端）からの相対座標で表します
type Box struct {
	Left, Top, Right, Bottom int
}

// Width は外接矩形の幅を返します
func (b Box) Width() int { return b.Right - b.Left }

// Height は外接矩形の高さを返します
func (b Box) Height() int { return b.Bottom - b.Top }

// Empty は外接矩形が空かを返します
func (b Box) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

func newBasicHandle(size float64, reason error) *Handle {
	return &Handle{
		Family:   basicFamily,
		Size:     size,
		Face:     basicfont.Face7x13,
		Fallback: true,
		Reason:   reason,
	}
}

// Bounds は文字列を描画したときのグリフの外接矩形を返します
// 空文字列の場合はゼロ値を返します
func (h *Handle) Bounds(text string) Box {
	if text == "" {
		return Box{}
	}
	b, _ := xfont.BoundString(h.Face, text)
	return Box{
		Left:   b.Min.X.Floor(),
		Top:    b.Min.Y.Floor(),
		Right:  b.Max.X.Ceil(),
		Bottom: b.Max.Y.Ceil(),
	}
}

// Advance は文字列の送り幅をピクセルで返します
func (h *Handle) Advance(text string) int {
	return xfont.MeasureString(h.Face, text).Ceil()
}

// DrawString は描画原点(x, y)をベースライン左端として文字列を描画します
func (h *Handle) DrawString(dst draw.Image, x, y int, text string, c color.Color) {
	if text == "" {
		return
	}
	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: h.Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Close はフェイスのリソースを解放します
func (h *Handle) Close() error {
	if h.Face == nil || h.Family == basicFamily {
		return nil
	}
	return h.Face.Close()
}
