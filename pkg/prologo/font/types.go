package font

import "github.com/shinya/prologo/pkg/prologo/style"

// FontSource はフォントの供給源を表します
type FontSource struct {
	Family string // ファミリ名（例: "DejaVu Sans"）
	Style  string // "Regular","Italic","Bold","BoldItalic"
	Data   []byte // TTF/OTF (任意: メモリ登録用)
	Path   string // ファイル登録用（Data or Path のいずれか）
}

// Fallback は既定フォントへのフォールバックを表します
type Fallback struct {
	Style  style.FontStyle // 要求されたフォントスタイル
	Family string          // 解決しようとしたファミリ名
	Err    error           // フォールバックの理由
}

// DefaultFamilies はフォントスタイルごとの既定ファミリです
var DefaultFamilies = map[style.FontStyle]string{
	style.Serif:     "DejaVu Serif",
	style.SansSerif: "DejaVu Sans",
	style.Modern:    "Montserrat",
	style.Playful:   "Comic Neue",
	style.Elegant:   "Playfair Display",
}

// DefaultDPI はポイントとピクセルを一致させるDPIです
const DefaultDPI = 72
