package layout

import (
	"fmt"

	"github.com/shinya/prologo/pkg/prologo/font"
)

// 既定のレイアウト値
const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultIconCenterY   = 200
	DefaultIconSize      = 100
	DefaultNameOffset    = 40
	DefaultTaglineOffset = 20
	DefaultBandHeight    = 50
	DefaultNameSize      = 72
	DefaultTaglineSize   = 36
	DefaultLetterScale   = 1.5
)

// Config はキャンバスと固定オフセットのレイアウト設定を表します
// 文字とアイコン、フッター帯の重なりは検出しません
type Config struct {
	Width         int     // キャンバス幅
	Height        int     // キャンバス高さ
	IconCenterY   int     // アイコン中心のY座標（X座標はキャンバス中央）
	IconSize      float64 // アイコンの基準サイズ
	NameOffset    int     // アイコン下端から社名上端までの距離
	TaglineOffset int     // 社名下端からタグライン上端までの距離
	BandHeight    int     // フッター帯の高さ
	NameSize      float64 // 社名のフォントサイズ（pt）
	TaglineSize   float64 // タグラインのフォントサイズ（pt）
	LetterScale   float64 // 頭文字アイコンのフォントサイズ倍率
}

// Default は既定のレイアウト設定を返します
func Default() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		IconCenterY:   DefaultIconCenterY,
		IconSize:      DefaultIconSize,
		NameOffset:    DefaultNameOffset,
		TaglineOffset: DefaultTaglineOffset,
		BandHeight:    DefaultBandHeight,
		NameSize:      DefaultNameSize,
		TaglineSize:   DefaultTaglineSize,
		LetterScale:   DefaultLetterScale,
	}
}

// Validate はレイアウト設定の妥当性を検証します
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if c.IconSize <= 0 {
		return fmt.Errorf("invalid icon size %v", c.IconSize)
	}
	if c.NameSize <= 0 || c.TaglineSize <= 0 {
		return fmt.Errorf("invalid font sizes name=%v tagline=%v", c.NameSize, c.TaglineSize)
	}
	if c.BandHeight < 0 || c.BandHeight > c.Height {
		return fmt.Errorf("invalid band height %d", c.BandHeight)
	}
	if c.LetterScale <= 0 {
		return fmt.Errorf("invalid letter scale %v", c.LetterScale)
	}
	return nil
}

// IconCenter はアイコン中心の座標を返します
func (c Config) IconCenter() (x, y float64) {
	return float64(c.Width) / 2, float64(c.IconCenterY)
}

// IconBottom はアイコン下端のY座標を返します
// 実際に描かれた形状ではなく、中心と基準サイズから求めた固定値です
func (c Config) IconBottom() int {
	return c.IconCenterY + int(c.IconSize)
}

// NameTop は社名の外接矩形上端のY座標を返します
func (c Config) NameTop() int {
	return c.IconBottom() + c.NameOffset
}

// TaglineTop は社名の下端からタグライン上端のY座標を返します
func (c Config) TaglineTop(nameBottom int) int {
	return nameBottom + c.TaglineOffset
}

// Band はフッター帯の矩形を返します
func (c Config) Band() (x0, y0, x1, y1 int) {
	return 0, c.Height - c.BandHeight, c.Width, c.Height
}

// Placement は文字列の描画原点と外接矩形を表します
type Placement struct {
	X, Y   int      // 描画原点（ベースライン左端）
	Bounds font.Box // 描画原点からの外接矩形
}

// Top は外接矩形上端のキャンバス座標を返します
func (p Placement) Top() int { return p.Y + p.Bounds.Top }

// Bottom は外接矩形下端のキャンバス座標を返します
func (p Placement) Bottom() int { return p.Y + p.Bounds.Bottom }

// CenterX は外接矩形をキャンバス幅の中央に置く描画原点のX座標を返します
func CenterX(b font.Box, width int) int {
	return (width-b.Width())/2 - b.Left
}

// Place は外接矩形の上端をtopに合わせ、水平方向に中央寄せした配置を返します
// 空文字列は幅と高さ0の配置になり、下端はtopと一致します
func Place(h *font.Handle, text string, width, top int) Placement {
	b := h.Bounds(text)
	return Placement{
		X:      CenterX(b, width),
		Y:      top - b.Top,
		Bounds: b,
	}
}
