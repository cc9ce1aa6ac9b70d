package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/shinya/prologo/pkg/prologo"
	"github.com/shinya/prologo/pkg/prologo/config"
	"github.com/shinya/prologo/pkg/prologo/export"
	"github.com/shinya/prologo/pkg/prologo/font"
	"github.com/shinya/prologo/pkg/prologo/logger"
)

// pipeName は標準出力を表す出力先名です
const pipeName = "-"

func main() {
	// コマンドラインオプションの定義
	var (
		name           = flag.String("name", "", "社名")
		tagline        = flag.String("tagline", "", "タグライン")
		primary        = flag.String("primary", "#4A90E2", "背景色（#RRGGBB）")
		secondary      = flag.String("secondary", "#50E3C2", "アクセント色（#RRGGBB）")
		fontStyle      = flag.String("font", "sans-serif", "フォントスタイル")
		iconChoice     = flag.String("icon", "geometric", "アイコン")
		outputFile     = flag.String("out", "", "出力PNGファイル（-で標準出力）")
		thumb          = flag.Int("thumb", 0, "サムネイルの幅（0で出力しない）")
		batchFile      = flag.String("batch", "", "一括生成するリクエストのTOMLファイル")
		jobs           = flag.Int("jobs", 4, "一括生成の並列数")
		configFile     = flag.String("config", "prologo.toml", "設定ファイル")
		fontDir        = flag.String("font-dir", "", "追加のフォントディレクトリ（カンマ区切り）")
		systemFontScan = flag.Bool("system-font-scan", false, "システムフォントのスキャンを有効にする")
		logFile        = flag.String("log-file", "", "ログファイル")
		logLevel       = flag.String("log-level", "", "ログレベル（trace, debug, info, warn, error）")
		help           = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	if *help {
		printUsage()
		return
	}

	// .env は無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("設定ファイルの読み込みに失敗: %v", err)
	}
	cfg.ApplyEnv()
	if *fontDir != "" {
		for _, dir := range strings.Split(*fontDir, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				cfg.Fonts.Dirs = append(cfg.Fonts.Dirs, dir)
			}
		}
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *systemFontScan {
		cfg.Fonts.SystemScan = true
	}

	lg, closer := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	slog.SetDefault(lg)

	err = run(cfg, lg, runFlags{
		fields: prologo.Fields{
			CompanyName:    *name,
			Tagline:        *tagline,
			PrimaryColor:   *primary,
			SecondaryColor: *secondary,
			FontStyle:      *fontStyle,
			IconChoice:     *iconChoice,
		},
		out:   *outputFile,
		thumb: *thumb,
		batch: *batchFile,
		jobs:  *jobs,
	})
	// 終了前にログファイルを閉じる
	if cerr := closer.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "ログファイルのクローズに失敗: %v\n", cerr)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// runFlags はロゴ生成に関するコマンドライン指定です
type runFlags struct {
	fields prologo.Fields
	out    string
	thumb  int
	batch  string
	jobs   int
}

// run は単体生成または一括生成を実行します
func run(cfg *config.Config, lg *slog.Logger, f runFlags) error {
	opts, err := newOptions(cfg, lg)
	if err != nil {
		return fmt.Errorf("フォントの準備に失敗: %w", err)
	}

	if f.batch != "" {
		if err := runBatch(f.batch, f.jobs, f.thumb, opts); err != nil {
			return fmt.Errorf("一括生成に失敗: %w", err)
		}
		return nil
	}

	out := f.out
	if out == "" {
		out = export.Filename(time.Now())
	}

	// 標準出力に書く場合、メッセージは標準エラー出力へ
	status := io.Writer(os.Stdout)
	if out == pipeName {
		status = os.Stderr
	}

	diag, err := renderOne(f.fields, out, f.thumb, opts)
	if err != nil {
		return fmt.Errorf("レンダリングに失敗: %w", err)
	}
	printDiagnostics(status, diag)

	if out != pipeName {
		fmt.Fprintf(status, "生成完了: %s (%dx%d)\n", out, opts.Layout.Width, opts.Layout.Height)
	}
	return nil
}

// newOptions は設定からフォントマネージャーとレンダリングオプションを作成します
func newOptions(cfg *config.Config, lg *slog.Logger) (prologo.Options, error) {
	fm := font.NewManager(
		font.WithLogger(lg),
		font.WithFamilies(cfg.FontFamilies()),
		font.WithDPI(cfg.Fonts.DPI),
	)
	if len(cfg.Fonts.Dirs) > 0 {
		if err := fm.ScanDirs(cfg.Fonts.Dirs...); err != nil {
			return prologo.Options{}, err
		}
	}
	if cfg.Fonts.SystemScan {
		if err := fm.ScanSystemFonts(); err != nil {
			// 警告として記録するが、処理は続行
			lg.Warn("system font scan failed", "error", err)
		}
	}
	lg.Debug("fonts available", "families", len(fm.ListFonts()))

	return prologo.Options{
		Layout: cfg.LayoutConfig(),
		Fonts:  fm,
		Logger: lg,
	}, nil
}

// renderOne はロゴを生成して out に書き出します
func renderOne(fields prologo.Fields, out string, thumbWidth int, opts prologo.Options) (prologo.Diagnostics, error) {
	img, diag, err := prologo.Render(fields, opts)
	if err != nil {
		return diag, err
	}
	pngData, err := export.Encode(img)
	if err != nil {
		return diag, err
	}

	if err := writeOutput(out, pngData); err != nil {
		return diag, err
	}

	if thumbWidth > 0 {
		if out == pipeName {
			diag.Warnings = append(diag.Warnings, "thumbnail skipped when writing to stdout")
			return diag, nil
		}
		small, err := export.Thumbnail(img, thumbWidth)
		if err != nil {
			return diag, err
		}
		thumbData, err := export.Encode(small)
		if err != nil {
			return diag, err
		}
		if err := writeOutput(thumbnailPath(out), thumbData); err != nil {
			return diag, err
		}
	}
	return diag, nil
}

// writeOutput はPNGデータをファイルまたは標準出力に書き込みます
func writeOutput(out string, data []byte) error {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("出力ファイルの書き込みに失敗: %w", err)
	}
	return nil
}

// thumbnailPath は logo.png に対して logo_thumb.png を返します
func thumbnailPath(out string) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_thumb" + ext
}

// printDiagnostics は診断情報を表示します
func printDiagnostics(w io.Writer, diag prologo.Diagnostics) {
	if len(diag.Warnings) > 0 {
		fmt.Fprintln(w, "警告:")
		for _, warning := range diag.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	if len(diag.MissingFonts) > 0 {
		fmt.Fprintln(w, "不足フォント（組み込みフォントで代用）:")
		for _, f := range diag.MissingFonts {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}

// printUsage は使用方法を表示します
func printUsage() {
	fmt.Print(`ProLogo - ロゴ生成ツール

使用方法:
  prologo -name <社名> [オプション]
  prologo -batch <リクエストファイル> [オプション]

オプション:
  -name string
        社名
  -tagline string
        タグライン（省略可）
  -primary string
        背景色（デフォルト: #4A90E2）
  -secondary string
        アイコンとフッター帯の色（デフォルト: #50E3C2）
  -font string
        serif, sans-serif, modern, playful, elegant（デフォルト: sans-serif）
  -icon string
        abstract, geometric, letter-based, minimal, tech（デフォルト: geometric）
  -out string
        出力PNGファイル（デフォルト: prologo_<YYYYMMDDHHMMSS>.png）
        - を指定するとパイプへ出力
  -thumb int
        指定幅のサムネイルを <出力名>_thumb.png に書き出す
  -batch string
        [[logo]] を並べたTOMLファイルから一括生成
  -jobs int
        一括生成の並列数（デフォルト: 4）
  -config string
        設定ファイル（デフォルト: prologo.toml、無ければ既定値）
  -font-dir string
        追加のフォントディレクトリ（カンマ区切り）
  -system-font-scan
        システムフォントのスキャンを有効にする
  -log-file string
        ログファイル（ローテーションあり）
  -log-level string
        trace, debug, info, warn, error
  -help
        このヘルプを表示

環境変数（.env からも読み込み）:
  PROLOGO_FONT_DIRS, PROLOGO_LOG_LEVEL, PROLOGO_LOG_FILE

例:
  prologo -name Acme -tagline "Build Better" -icon geometric -out acme.png
  prologo -name Zephyr -icon letter-based -font elegant -thumb 200
  prologo -name Acme -out - | display
  prologo -batch logos.toml -jobs 8
`)
}
