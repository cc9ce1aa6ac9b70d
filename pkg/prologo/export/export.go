package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/disintegration/imaging"
)

const (
	// FilenamePrefix はダウンロードファイル名の接頭辞です
	FilenamePrefix = "prologo"
	// Extension は出力形式の拡張子です
	Extension = "png"
	// ContentType は出力形式のMIMEタイプです
	ContentType = "image/png"

	timestampLayout = "20060102150405"
)

// Encode は画像を可逆なPNG形式でエンコードします
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename は書き出し時刻からファイル名 prologo_<YYYYMMDDHHMMSS>.png を返します
// 時刻は呼び出し側が書き出す瞬間のものを渡します
func Filename(t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", FilenamePrefix, t.Format(timestampLayout), Extension)
}

// Thumbnail は幅widthに縮小したプレビュー画像を返します（縦横比は維持）
func Thumbnail(img image.Image, width int) (*image.NRGBA, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid thumbnail width %d", width)
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos), nil
}
