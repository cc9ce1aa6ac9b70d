package request

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shinya/prologo/pkg/prologo/style"
)

var (
	// ErrInvalidRequest はリクエスト全体が不正な場合のエラーです
	ErrInvalidRequest = errors.New("invalid logo request")
	// ErrInvalidColor は色指定が6桁の16進数でない場合のエラーです
	ErrInvalidColor = errors.New("invalid color format")
)

// Fields は呼び出し側から受け取る生のフォーム値を表します
type Fields struct {
	CompanyName    string // 長さの上限なし。はみ出した部分は描画されません
	Tagline        string
	PrimaryColor   string `validate:"required,rgbhex"`
	SecondaryColor string `validate:"required,rgbhex"`
	FontStyle      string
	IconChoice     string
}

// Request は解決済みのロゴリクエストを表します
type Request struct {
	CompanyName string
	Tagline     string
	Primary     color.RGBA
	Secondary   color.RGBA
	FontStyle   style.FontStyle
	Icon        style.IconChoice
}

// HasTagline はタグラインが指定されているかを返します
func (r *Request) HasTagline() bool {
	return r.Tagline != ""
}

var hexColorRe = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(strings.TrimSpace(fl.Field().String()))
	}); err != nil {
		panic(fmt.Sprintf("register rgbhex validation: %v", err))
	}
	return v
}

// Parse はフォーム値を検証しRequestに変換します
// 未知のフォントスタイルやアイコンは resolver によって既定値に解決されます
func Parse(f Fields, resolver *style.Resolver) (*Request, error) {
	if err := validate.Struct(f); err != nil {
		return nil, translate(err)
	}

	primary, err := ParseHexColor(f.PrimaryColor)
	if err != nil {
		return nil, fmt.Errorf("primary color: %w", err)
	}
	secondary, err := ParseHexColor(f.SecondaryColor)
	if err != nil {
		return nil, fmt.Errorf("secondary color: %w", err)
	}

	if resolver == nil {
		resolver = style.NewResolver()
	}

	return &Request{
		CompanyName: strings.TrimSpace(f.CompanyName),
		Tagline:     strings.TrimSpace(f.Tagline),
		Primary:     primary,
		Secondary:   secondary,
		FontStyle:   resolver.FontStyle(f.FontStyle),
		Icon:        resolver.IconChoice(f.IconChoice),
	}, nil
}

// translate はvalidatorのエラーをパッケージのエラーに変換します
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "rgbhex", "required":
		if fe.Field() == "PrimaryColor" || fe.Field() == "SecondaryColor" {
			return fmt.Errorf("%w: %s %q must be 6 hex digits", ErrInvalidColor, fe.Field(), fe.Value())
		}
	}
	return fmt.Errorf("%w: %s failed %s", ErrInvalidRequest, fe.Field(), fe.Tag())
}

// ParseHexColor は "#RRGGBB" または "RRGGBB" 形式の色を解析します
func ParseHexColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q must be 6 hex digits", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// FormatHexColor は色を "#RRGGBB" 形式に変換します
func FormatHexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
