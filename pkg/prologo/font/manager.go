package font

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/sync/singleflight"

	"github.com/shinya/prologo/pkg/prologo/style"
)

// ErrFontNotFound は要求されたファミリが登録されていない場合のエラーです
var ErrFontNotFound = errors.New("font family not registered")

// fontGlob はスキャン対象のフォントファイルパターンです
const fontGlob = "**/*.{ttf,otf,TTF,OTF}"

// FontInfo はフォントの情報を表します
type FontInfo struct {
	Family string
	Style  string
	Path   string
	Data   []byte
}

// Manager はフォントの管理を行います
// 解析済みフォントはファミリごとに一度だけ読み込まれ、並行参照に対して安全です
type Manager struct {
	mu       sync.RWMutex
	fonts    map[string]map[string]*FontInfo // family(lower) -> style -> FontInfo
	parsed   map[string]*opentype.Font       // family(lower) -> 解析済みフォント
	failed   map[string]error                // family(lower) -> 読み込み失敗理由
	families map[style.FontStyle]string
	dpi      float64

	group      singleflight.Group
	logger     *slog.Logger
	onFallback func(Fallback)

	defaultOnce sync.Once
	defaultFont *opentype.Font
	defaultErr  error

	scanMu     sync.Mutex
	scanned    bool
	systemDirs func() []string
}

// Option はManagerの設定を変更します
type Option func(*Manager)

// WithLogger はログ出力先を設定します
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithFamilies はフォントスタイルとファミリの対応を上書きします
func WithFamilies(families map[style.FontStyle]string) Option {
	return func(m *Manager) {
		for s, f := range families {
			if f != "" {
				m.families[s] = f
			}
		}
	}
}

// WithDPI はフェイス生成時のDPIを設定します
func WithDPI(dpi float64) Option {
	return func(m *Manager) {
		if dpi > 0 {
			m.dpi = dpi
		}
	}
}

// WithFallbackHook はフォールバック発生時に呼ばれる関数を設定します
func WithFallbackHook(fn func(Fallback)) Option {
	return func(m *Manager) {
		m.onFallback = fn
	}
}

// NewManager は新しいフォントマネージャーを作成します
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		fonts:      make(map[string]map[string]*FontInfo),
		parsed:     make(map[string]*opentype.Font),
		failed:     make(map[string]error),
		families:   make(map[style.FontStyle]string, len(DefaultFamilies)),
		dpi:        DefaultDPI,
		logger:     slog.Default(),
		systemDirs: getSystemFontPaths,
	}
	for s, f := range DefaultFamilies {
		m.families[s] = f
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterFonts はフォントを登録します
// フォントの解析は最初に解決されたときに行われます
func (m *Manager) RegisterFonts(fonts ...FontSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, font := range fonts {
		if font.Family == "" {
			return fmt.Errorf("font family cannot be empty")
		}
		if font.Data == nil && font.Path == "" {
			return fmt.Errorf("font %s: no font data or path provided", font.Family)
		}

		key := familyKey(font.Family)
		st := normalizeStyle(font.Style)

		if m.fonts[key] == nil {
			m.fonts[key] = make(map[string]*FontInfo)
		}
		m.fonts[key][st] = &FontInfo{
			Family: font.Family,
			Style:  st,
			Path:   font.Path,
			Data:   font.Data,
		}

		// 再登録されたファミリは次回解決時に読み直す
		delete(m.parsed, key)
		delete(m.failed, key)

		m.logger.Debug("font registered", "family", font.Family, "style", st, "path", font.Path)
	}

	return nil
}

// ClearCache はフォントキャッシュをクリアします
func (m *Manager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts = make(map[string]map[string]*FontInfo)
	m.parsed = make(map[string]*opentype.Font)
	m.failed = make(map[string]error)

	// 登録済みフォントを消したので次回は再スキャンする
	m.scanMu.Lock()
	m.scanned = false
	m.scanMu.Unlock()
}

// Family はフォントスタイルに対応するファミリ名を返します
func (m *Manager) Family(fs style.FontStyle) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.families[fs]; ok {
		return f
	}
	return m.families[style.SansSerif]
}

// Resolve はフォントスタイルとサイズからハンドルを作成します
// ファミリが利用できない場合は組み込みフォントへ黙ってフォールバックします
func (m *Manager) Resolve(fs style.FontStyle, size float64) *Handle {
	family := m.Family(fs)

	f, err := m.load(family)
	if err == nil {
		var face xfont.Face
		if face, err = m.newFace(f, size); err == nil {
			return &Handle{Family: family, Size: size, Face: face}
		}
	}

	fb := Fallback{Style: fs, Family: family, Err: err}
	m.logger.Warn("font fallback", "style", fs, "family", family, "error", err)
	if m.onFallback != nil {
		m.onFallback(fb)
	}

	return m.fallbackHandle(size, err)
}

// fallbackHandle は組み込みフォントのハンドルを返します
func (m *Manager) fallbackHandle(size float64, reason error) *Handle {
	f, err := m.builtin()
	if err == nil {
		var face xfont.Face
		if face, err = m.newFace(f, size); err == nil {
			return &Handle{Family: BuiltinFamily, Size: size, Face: face, Fallback: true, Reason: reason}
		}
	}
	// 組み込みフォントすら使えない場合はbasicfontを使用
	m.logger.Error("builtin font unavailable, using basicfont", "error", err)
	return newBasicHandle(size, reason)
}

// builtin は組み込みのGo Regularフォントを一度だけ解析して返します
func (m *Manager) builtin() (*opentype.Font, error) {
	m.defaultOnce.Do(func() {
		m.defaultFont, m.defaultErr = opentype.Parse(goregular.TTF)
	})
	return m.defaultFont, m.defaultErr
}

func (m *Manager) newFace(f *opentype.Font, size float64) (xfont.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     m.dpi,
		Hinting: hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %.1fpt: %w", size, err)
	}
	return face, nil
}

// load はファミリの解析済みフォントを返します
// 同じファミリの同時読み込みは一つにまとめられます
func (m *Manager) load(family string) (*opentype.Font, error) {
	key := familyKey(family)

	m.mu.RLock()
	if f, ok := m.parsed[key]; ok {
		m.mu.RUnlock()
		return f, nil
	}
	if err, ok := m.failed[key]; ok {
		m.mu.RUnlock()
		return nil, err
	}
	info, err := m.lookup(key, family)
	m.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		f, err := parseFontInfo(info)

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			m.failed[key] = err
			return nil, err
		}
		m.parsed[key] = f
		m.logger.Info("font loaded", "family", info.Family, "style", info.Style)
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*opentype.Font), nil
}

// lookup は登録済みのフォント情報を返します（呼び出し側でロックを保持）
func (m *Manager) lookup(key, family string) (*FontInfo, error) {
	styles, ok := m.fonts[key]
	if !ok || len(styles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, family)
	}
	if info, ok := styles["Regular"]; ok {
		return info, nil
	}
	// Regularがなければスタイル名順で最初のものを使う
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return styles[names[0]], nil
}

// parseFontInfo はフォントデータを読み込んで解析します
func parseFontInfo(info *FontInfo) (*opentype.Font, error) {
	data := info.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(info.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", info.Path, err)
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s %s: %w", info.Family, info.Style, err)
	}
	return f, nil
}

// ListFonts は登録されているフォントの一覧を返します
func (m *Manager) ListFonts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var fonts []string
	for _, styles := range m.fonts {
		for _, info := range styles {
			fonts = append(fonts, fmt.Sprintf("%s %s", info.Family, info.Style))
		}
	}
	sort.Strings(fonts)
	return fonts
}

// ScanSystemFonts はシステムフォントをスキャンします
func (m *Manager) ScanSystemFonts() error {
	err := m.ScanDirs(m.systemDirs()...)

	m.scanMu.Lock()
	m.scanned = true
	m.scanMu.Unlock()
	return err
}

// EnsureSystemFonts はまだスキャンしていなければシステムフォントをスキャンします
// ClearCache の後は再びスキャンします
func (m *Manager) EnsureSystemFonts() error {
	m.scanMu.Lock()
	done := m.scanned
	m.scanMu.Unlock()
	if done {
		return nil
	}

	_, err, _ := m.group.Do("\x00system-scan", func() (any, error) {
		m.scanMu.Lock()
		done := m.scanned
		m.scanMu.Unlock()
		if done {
			return nil, nil
		}
		return nil, m.ScanSystemFonts()
	})
	return err
}

// ScanDirs は指定されたディレクトリ以下のフォントを登録します
// 読めないディレクトリやファイルは警告を出して読み飛ばします
func (m *Manager) ScanDirs(dirs ...string) error {
	m.logger.Debug("scanning font directories", "paths", dirs)

	count := 0
	for _, dir := range dirs {
		n, err := m.scanDirectory(dir)
		if err != nil {
			m.logger.Warn("failed to scan font directory", "path", dir, "error", err)
			continue
		}
		count += n
	}

	m.logger.Info("font scan completed", "registered", count)
	return nil
}

// scanDirectory は指定されたディレクトリ内のフォントをスキャンします
func (m *Manager) scanDirectory(dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, err
	}

	matches, err := doublestar.Glob(os.DirFS(dir), fontGlob, doublestar.WithFilesOnly())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rel := range matches {
		path := filepath.Join(dir, filepath.FromSlash(rel))

		family, st, err := extractFontInfo(path)
		if err != nil {
			m.logger.Debug("skipping font", "path", path, "error", err)
			continue
		}

		if err := m.RegisterFonts(FontSource{Family: family, Style: st, Path: path}); err != nil {
			m.logger.Warn("skipping font", "path", path, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

// getSystemFontPaths はプラットフォーム別のフォントパスを返します
func getSystemFontPaths() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(os.Getenv("HOME"), ".local/share/fonts"),
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
			filepath.Join(os.Getenv("HOME"), "Library/Fonts"),
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("WINDIR"), "Fonts"),
		}
	default:
		return []string{}
	}
}

// normalizeStyle はスタイル名を正規化します
func normalizeStyle(style string) string {
	style = strings.ToLower(style)

	switch {
	case strings.Contains(style, "bold") && (strings.Contains(style, "italic") || strings.Contains(style, "oblique")):
		return "BoldItalic"
	case strings.Contains(style, "bold"):
		return "Bold"
	case strings.Contains(style, "italic") || strings.Contains(style, "oblique"):
		return "Italic"
	default:
		return "Regular"
	}
}

func familyKey(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

// extractFontInfo はフォントファイルのnameテーブルからファミリとスタイルを読み取ります
// nameテーブルが読めない場合はファイル名から推測します
func extractFontInfo(path string) (family, st string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		// フォントコレクション等は対象外
		return "", "", fmt.Errorf("parse %s: %w", path, err)
	}

	var buf sfnt.Buffer
	family, ferr := f.Name(&buf, sfnt.NameIDFamily)
	sub, serr := f.Name(&buf, sfnt.NameIDSubfamily)

	guessFamily, guessStyle := guessFromFilename(path)
	if ferr != nil || family == "" {
		family = guessFamily
	}
	st = guessStyle
	if serr == nil && sub != "" {
		st = normalizeStyle(sub)
	}
	return family, st, nil
}

// guessFromFilename はファイル名からファミリとスタイルを推測します
func guessFromFilename(path string) (family, st string) {
	filename := filepath.Base(path)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	st = normalizeStyle(name)

	// ファミリ名の推測（スタイル文字列を除去）
	family = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	for _, suffix := range []string{"Bold Italic", "BoldItalic", "Bold", "Italic", "Oblique", "Regular"} {
		idx := strings.Index(strings.ToLower(family), strings.ToLower(suffix))
		if idx >= 0 {
			family = family[:idx] + family[idx+len(suffix):]
		}
	}
	family = strings.Join(strings.Fields(family), " ")

	if family == "" {
		family = "Unknown"
	}
	return family, st
}
