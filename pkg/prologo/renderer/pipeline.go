package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/shinya/prologo/pkg/prologo/font"
	"github.com/shinya/prologo/pkg/prologo/icon"
	"github.com/shinya/prologo/pkg/prologo/layout"
	"github.com/shinya/prologo/pkg/prologo/raster"
	"github.com/shinya/prologo/pkg/prologo/request"
	"github.com/shinya/prologo/pkg/prologo/style"
)

// Stage は合成パイプラインの段階を表します
type Stage int

const (
	FillBackground Stage = iota
	RenderIcon
	PlaceCompanyText
	PlaceTagline
	DrawFooterBand
)

func (s Stage) String() string {
	switch s {
	case FillBackground:
		return "FillBackground"
	case RenderIcon:
		return "RenderIcon"
	case PlaceCompanyText:
		return "PlaceCompanyText"
	case PlaceTagline:
		return "PlaceTagline"
	case DrawFooterBand:
		return "DrawFooterBand"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Plan はリクエストに対して実行する段階を順に返します
// タグラインが空の場合のみ PlaceTagline を省きます
func Plan(req *request.Request) []Stage {
	stages := []Stage{FillBackground, RenderIcon, PlaceCompanyText}
	if req.HasTagline() {
		stages = append(stages, PlaceTagline)
	}
	return append(stages, DrawFooterBand)
}

// Result は合成結果を表します
type Result struct {
	Image        *image.RGBA
	TextColor    color.RGBA
	Stages       []Stage  // 実行した段階
	MissingFonts []string // フォールバックしたファミリ
	Name         layout.Placement
	Tagline      *layout.Placement
}

// Pipeline はリクエストから一枚のラスタ画像を合成します
// Pipeline 自体は状態を持たず、並行して Run を呼び出せます
type Pipeline struct {
	layout layout.Config
	fonts  *font.Manager
	logger *slog.Logger
}

// NewPipeline は新しいパイプラインを作成します
func NewPipeline(cfg layout.Config, fonts *font.Manager, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if fonts == nil {
		return nil, errors.New("font manager is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{layout: cfg, fonts: fonts, logger: logger}, nil
}

// run は一回の合成処理の状態です
type run struct {
	req       *request.Request
	rc        *raster.RasterContext
	textColor color.RGBA
	handles   []*font.Handle
	result    *Result
}

// Run はリクエストを合成してラスタ画像を返します
func (p *Pipeline) Run(req *request.Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}

	fb := raster.NewFrameBuffer(p.layout.Width, p.layout.Height)
	r := &run{
		req:       req,
		rc:        raster.NewRasterContext(fb),
		textColor: style.TextColor(req.Primary),
		result:    &Result{Image: fb.Image()},
	}
	r.result.TextColor = r.textColor
	defer r.closeFonts()

	for _, stage := range Plan(req) {
		p.logger.Debug("pipeline stage", "stage", stage, "company", req.CompanyName)
		switch stage {
		case FillBackground:
			p.fillBackground(r)
		case RenderIcon:
			p.renderIcon(r)
		case PlaceCompanyText:
			p.placeCompanyText(r)
		case PlaceTagline:
			p.placeTagline(r)
		case DrawFooterBand:
			p.drawFooterBand(r)
		}
		r.result.Stages = append(r.result.Stages, stage)
	}

	return r.result, nil
}

func (p *Pipeline) fillBackground(r *run) {
	r.rc.FrameBuffer().Fill(r.req.Primary)
}

// renderIcon はアイコンを描画します
// abstract/geometric/minimal は (secondary, primary)、letter-based/tech は
// (secondary, 文字色) の組で描き、背景に対する見やすさを保ちます
func (p *Pipeline) renderIcon(r *run) {
	v := icon.FromChoice(r.req.Icon)
	if v == icon.None {
		return
	}

	cx, cy := p.layout.IconCenter()
	params := icon.Params{
		CX:    cx,
		CY:    cy,
		Size:  p.layout.IconSize,
		First: r.req.Secondary,
	}

	switch v {
	case icon.Abstract, icon.Geometric, icon.Minimal:
		params.Second = r.req.Primary
	case icon.LetterBased, icon.Tech:
		params.Second = r.textColor
	}

	if v == icon.LetterBased {
		params.Letter = icon.Initial(r.req.CompanyName)
		params.Font = p.resolve(r, p.layout.IconSize*p.layout.LetterScale)
	}

	icon.Render(r.rc, v, params)
}

func (p *Pipeline) placeCompanyText(r *run) {
	h := p.resolve(r, p.layout.NameSize)
	pl := layout.Place(h, r.req.CompanyName, p.layout.Width, p.layout.NameTop())
	r.rc.DrawText(h, pl.X, pl.Y, r.req.CompanyName, r.textColor)
	r.result.Name = pl
}

func (p *Pipeline) placeTagline(r *run) {
	h := p.resolve(r, p.layout.TaglineSize)
	top := p.layout.TaglineTop(r.result.Name.Bottom())
	pl := layout.Place(h, r.req.Tagline, p.layout.Width, top)
	r.rc.DrawText(h, pl.X, pl.Y, r.req.Tagline, r.textColor)
	r.result.Tagline = &pl
}

// drawFooterBand は下端に二次色の帯を描画します。文字と重なっても上書きします
func (p *Pipeline) drawFooterBand(r *run) {
	x0, y0, x1, y1 := p.layout.Band()
	r.rc.FrameBuffer().FillRect(image.Rect(x0, y0, x1, y1), r.req.Secondary)
}

// resolve はリクエストのフォントスタイルでハンドルを取得し、フォールバックを記録します
func (p *Pipeline) resolve(r *run, size float64) *font.Handle {
	h := p.fonts.Resolve(r.req.FontStyle, size)
	r.handles = append(r.handles, h)
	if h.Fallback {
		family := p.fonts.Family(r.req.FontStyle)
		for _, f := range r.result.MissingFonts {
			if f == family {
				return h
			}
		}
		r.result.MissingFonts = append(r.result.MissingFonts, family)
	}
	return h
}

func (r *run) closeFonts() {
	for _, h := range r.handles {
		_ = h.Close()
	}
}
