package picture

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"wa-directory/errors"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerate_Renders_Square_Sizes(t *testing.T) {
	req := require.New(t)

	// Given a landscape png
	raw := pngBytes(t, 300, 200)

	picture, err := Generate(raw)
	req.NoError(err)

	full, err := jpeg.DecodeConfig(bytes.NewReader(picture.Img))
	req.NoError(err)
	req.Equal(FullSize, full.Width)
	req.Equal(FullSize, full.Height)

	preview, err := jpeg.DecodeConfig(bytes.NewReader(picture.Preview))
	req.NoError(err)
	req.Equal(PreviewSize, preview.Width)
	req.Equal(PreviewSize, preview.Height)
}

func TestGenerate_Rejects_Non_Images(t *testing.T) {
	req := require.New(t)

	_, err := Generate([]byte("%PDF-1.4 definitely not a picture"))

	req.ErrorIs(err, errors.ErrUnsupportedImage)
}

func TestCenterSquare(t *testing.T) {
	req := require.New(t)
	req.Equal(image.Rect(50, 0, 250, 200), centerSquare(image.Rect(0, 0, 300, 200)))
	req.Equal(image.Rect(0, 10, 100, 110), centerSquare(image.Rect(0, 0, 100, 120)))
}

func TestGenerate_Rejects_Oversized_Images(t *testing.T) {
	req := require.New(t)

	_, err := Generate(pngBytes(t, MaxSide+1, 1))

	req.ErrorIs(err, errors.ErrUnsupportedImage)
}

func TestGenerate_Rejects_Header_Claiming_Huge_Dimensions(t *testing.T) {
	req := require.New(t)

	// Given a tiny png whose header claims 100000x100000 pixels
	raw := pngBytes(t, 2, 2)
	binary.BigEndian.PutUint32(raw[16:20], 100000)
	binary.BigEndian.PutUint32(raw[20:24], 100000)
	binary.BigEndian.PutUint32(raw[29:33], crc32.ChecksumIEEE(raw[12:29]))

	// When
	_, err := Generate(raw)

	// Then it is refused before any pixel buffer is allocated
	req.ErrorIs(err, errors.ErrUnsupportedImage)
	req.ErrorContains(err, "exceeds")
}
