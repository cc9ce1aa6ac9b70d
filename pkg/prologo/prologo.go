// Package prologo はロゴ合成エンジンの公開APIです
//
// 6つのフォーム値（社名、タグライン、2色、フォントスタイル、アイコン）から
// 800x600のロゴ画像を合成し、PNGとして書き出します。
package prologo

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/shinya/prologo/pkg/prologo/export"
	"github.com/shinya/prologo/pkg/prologo/font"
	"github.com/shinya/prologo/pkg/prologo/layout"
	"github.com/shinya/prologo/pkg/prologo/renderer"
	"github.com/shinya/prologo/pkg/prologo/request"
	"github.com/shinya/prologo/pkg/prologo/style"
)

// Fields はロゴリクエストのフォーム値です
type Fields = request.Fields

// FontSource はフォントの供給源を表します
type FontSource = font.FontSource

// ErrInvalidColor は色指定が6桁の16進数でない場合のエラーです
var ErrInvalidColor = request.ErrInvalidColor

// Options はレンダリングオプションを表します
type Options struct {
	Layout         layout.Config // ゼロ値で既定のレイアウト
	Fonts          *font.Manager // nilでグローバルフォントマネージャー
	Logger         *slog.Logger  // nilで slog.Default()
	SystemFontScan bool          // trueで初回の描画前にOSのフォントをスキャン
}

// Diagnostics は診断情報を表します
type Diagnostics struct {
	Warnings     []string // 既定値に解決されたスタイル指定など
	MissingFonts []string // 組み込みフォントにフォールバックしたファミリ
}

// グローバルフォントマネージャー
var globalFontManager = font.NewManager()

// RegisterFonts はフォントを登録します
func RegisterFonts(fonts ...FontSource) error {
	return globalFontManager.RegisterFonts(fonts...)
}

// ClearFontCache はフォントキャッシュをクリアします
func ClearFontCache() {
	globalFontManager.ClearCache()
}

// ScanSystemFonts はOSのフォントディレクトリをスキャンします
func ScanSystemFonts() error {
	return globalFontManager.ScanSystemFonts()
}

// Render はフォーム値からロゴ画像を合成します
// 返すエラーは色指定の誤りなど呼び出し側の入力エラーのみです
func Render(fields Fields, opts Options) (*image.RGBA, Diagnostics, error) {
	res, diag, err := render(fields, opts)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	return res.Image, diag, nil
}

// RenderPNG はロゴを合成しPNGにエンコードします
func RenderPNG(fields Fields, opts Options) ([]byte, Diagnostics, error) {
	res, diag, err := render(fields, opts)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	pngData, err := export.Encode(res.Image)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	return pngData, diag, nil
}

// Filename は書き出し時刻 t に対応するファイル名を返します
func Filename(t time.Time) string {
	return export.Filename(t)
}

func render(fields Fields, opts Options) (*renderer.Result, Diagnostics, error) {
	var diag Diagnostics

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fonts := opts.Fonts
	if fonts == nil {
		fonts = globalFontManager
	}
	cfg := opts.Layout
	if cfg == (layout.Config{}) {
		cfg = layout.Default()
	}

	resolver := style.NewResolver()
	req, err := request.Parse(fields, resolver)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	// システムフォントのスキャンはマネージャーごとに一度だけ
	if opts.SystemFontScan {
		if err := fonts.EnsureSystemFonts(); err != nil {
			// 警告として記録するが、処理は続行
			diag.Warnings = append(diag.Warnings, fmt.Sprintf("system font scan failed: %v", err))
		}
	}

	p, err := renderer.NewPipeline(cfg, fonts, logger)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	res, err := p.Run(req)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	diag.Warnings = append(diag.Warnings, resolver.GetDiagnostics().Warnings...)
	diag.MissingFonts = res.MissingFonts
	for _, w := range diag.Warnings {
		logger.Debug("request resolved with default", "warning", w)
	}
	return res, diag, nil
}
