// Package config はprologoの設定ファイル（TOML）を読み込みます
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/shinya/prologo/pkg/prologo/font"
	"github.com/shinya/prologo/pkg/prologo/layout"
	"github.com/shinya/prologo/pkg/prologo/style"
)

// ErrInvalidConfig は設定値が不正な場合のエラーです
var ErrInvalidConfig = errors.New("invalid config")

// 環境変数名
const (
	EnvFontDirs = "PROLOGO_FONT_DIRS"
	EnvLogLevel = "PROLOGO_LOG_LEVEL"
	EnvLogFile  = "PROLOGO_LOG_FILE"
)

// Config は設定ファイル全体を表します
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Layout LayoutSection `toml:"layout"`
	Fonts  FontsConfig  `toml:"fonts"`
	Log    LogConfig    `toml:"log"`
}

// ///////////////////////////////////////////////

// CanvasConfig はキャンバスの大きさです
type CanvasConfig struct {
	// 幅（ピクセル）
	Width int `toml:"width"`
	// 高さ（ピクセル）
	Height int `toml:"height"`
}

// LayoutSection は固定オフセットです
type LayoutSection struct {
	// アイコン中心のY座標
	IconCenterY int `toml:"icon_center_y"`
	// アイコンの基準サイズ
	IconSize float64 `toml:"icon_size"`
	// アイコン下端から社名上端まで
	NameOffset int `toml:"name_offset"`
	// 社名下端からタグライン上端まで
	TaglineOffset int `toml:"tagline_offset"`
	// フッター帯の高さ
	BandHeight int `toml:"band_height"`
	// 頭文字アイコンの倍率
	LetterScale float64 `toml:"letter_scale"`
}

// FontsConfig はフォント関連の設定です
type FontsConfig struct {
	// 社名のサイズ（pt）
	NameSize float64 `toml:"name_size"`
	// タグラインのサイズ（pt）
	TaglineSize float64 `toml:"tagline_size"`
	DPI         float64 `toml:"dpi"`
	// 追加でスキャンするフォントディレクトリ
	Dirs []string `toml:"dirs"`
	// OSのフォントディレクトリをスキャンするか
	SystemScan bool `toml:"system_scan"`
	// スタイルごとのファミリ名の上書き
	Families map[string]string `toml:"families"`
}

// LogConfig はログ出力の設定です
type LogConfig struct {
	Level string `toml:"level"`
	// 空なら標準エラー出力
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////

// DefaultConfig は既定値の設定を返します
func DefaultConfig() *Config {
	d := layout.Default()
	return &Config{
		Canvas: CanvasConfig{Width: d.Width, Height: d.Height},
		Layout: LayoutSection{
			IconCenterY:   d.IconCenterY,
			IconSize:      d.IconSize,
			NameOffset:    d.NameOffset,
			TaglineOffset: d.TaglineOffset,
			BandHeight:    d.BandHeight,
			LetterScale:   d.LetterScale,
		},
		Fonts: FontsConfig{
			NameSize:    d.NameSize,
			TaglineSize: d.TaglineSize,
			DPI:         font.DefaultDPI,
		},
		Log: LogConfig{Level: "info", MaxSizeMB: 10},
	}
}

// Load は設定ファイルを読み込みます。ファイルが無ければ既定値を返します
// ファイルに書かれていない項目は既定値のままです
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv は環境変数で設定を上書きします
// PROLOGO_FONT_DIRS はOSのパス区切り文字で複数指定できます
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvFontDirs); v != "" {
		for _, dir := range filepath.SplitList(v) {
			if dir = strings.TrimSpace(dir); dir != "" {
				c.Fonts.Dirs = append(c.Fonts.Dirs, dir)
			}
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
}

// Validate は設定値を検証します
func (c *Config) Validate() error {
	if err := c.LayoutConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Fonts.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %v", ErrInvalidConfig, c.Fonts.DPI)
	}
	for name := range c.Fonts.Families {
		if !isFontStyle(style.FontStyle(name)) {
			return fmt.Errorf("%w: unknown font style %q in [fonts.families]", ErrInvalidConfig, name)
		}
	}
	return nil
}

// LayoutConfig はレイアウト設定に変換します
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		Width:         c.Canvas.Width,
		Height:        c.Canvas.Height,
		IconCenterY:   c.Layout.IconCenterY,
		IconSize:      c.Layout.IconSize,
		NameOffset:    c.Layout.NameOffset,
		TaglineOffset: c.Layout.TaglineOffset,
		BandHeight:    c.Layout.BandHeight,
		NameSize:      c.Fonts.NameSize,
		TaglineSize:   c.Fonts.TaglineSize,
		LetterScale:   c.Layout.LetterScale,
	}
}

// FontFamilies はスタイルごとのファミリ名の上書きを返します
func (c *Config) FontFamilies() map[style.FontStyle]string {
	out := make(map[style.FontStyle]string, len(c.Fonts.Families))
	for name, family := range c.Fonts.Families {
		out[style.FontStyle(name)] = family
	}
	return out
}

func isFontStyle(s style.FontStyle) bool {
	for _, known := range style.FontStyles {
		if s == known {
			return true
		}
	}
	return false
}
