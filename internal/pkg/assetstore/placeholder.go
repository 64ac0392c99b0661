package assetstore

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
)

// placeholderJPEG renders the shared fallback thumbnail: a flat dark tile in
// the catalog's 4:3 card ratio. Generated at startup rather than shipped as a
// binary asset so a fresh deployment is self-contained.
func placeholderJPEG() []byte {
	const w, h = 320, 240
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 0x24, G: 0x28, B: 0x33, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}

	var buf bytes.Buffer
	// Encoding a flat RGBA image cannot fail; ignore the error.
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80})
	return buf.Bytes()
}
