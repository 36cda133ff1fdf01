// Package picture turns an uploaded image into the square full-size picture and
// thumbnail preview a profile picture update carries.
package picture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"wa-directory/errors"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	FullSize    = 640
	PreviewSize = 96
	jpegQuality = 85
	// MaxSide bounds both dimensions of an upload, checked before decoding pixels.
	MaxSide = 4096
)

var supported = []string{"image/jpeg", "image/png", "image/webp"}

type ProfilePicture struct {
	Img     []byte
	Preview []byte
}

// Generate crops the centre square of raw and renders both sizes as JPEG.
func Generate(raw []byte) (ProfilePicture, error) {
	mtype := mimetype.Detect(raw)
	if !mimetype.EqualsAny(mtype.String(), supported...) {
		return ProfilePicture{}, fmt.Errorf("%w: %s", errors.ErrUnsupportedImage, mtype.String())
	}
	config, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return ProfilePicture{}, fmt.Errorf("%w: %v", errors.ErrUnsupportedImage, err)
	}
	if config.Width > MaxSide || config.Height > MaxSide {
		return ProfilePicture{}, fmt.Errorf("%w: %dx%d exceeds %d pixels per side",
			errors.ErrUnsupportedImage, config.Width, config.Height, MaxSide)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return ProfilePicture{}, fmt.Errorf("%w: %v", errors.ErrUnsupportedImage, err)
	}
	square := centerSquare(src.Bounds())

	img, err := render(src, square, FullSize)
	if err != nil {
		return ProfilePicture{}, err
	}
	preview, err := render(src, square, PreviewSize)
	if err != nil {
		return ProfilePicture{}, err
	}
	return ProfilePicture{Img: img, Preview: preview}, nil
}

func centerSquare(b image.Rectangle) image.Rectangle {
	side := min(b.Dx(), b.Dy())
	x := b.Min.X + (b.Dx()-side)/2
	y := b.Min.Y + (b.Dy()-side)/2
	return image.Rect(x, y, x+side, y+side)
}

func render(src image.Image, from image.Rectangle, size int) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, from, draw.Src, nil)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("jpeg encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
