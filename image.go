package iching

import (
	"image"
	"image/png"
	"io"
)

// ToImage converts an ImageData raster to a stdlib image.Image, adapted
// from the teacher's (ashokshau/qrcode) WritePNG, which painted QR modules
// straight into an image.Paletted; this builds an image.Gray instead,
// taking each pixel's red channel, which for the renderer's output is
// always 0 or 255.
func (e *Encoded) ToImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, e.ImageData.Width, e.ImageData.Height))
	for i := 0; i < e.ImageData.Width*e.ImageData.Height; i++ {
		o := i * 4
		img.Pix[i] = e.ImageData.Data[o]
	}
	return img
}

// WritePNG encodes the rendered image as a PNG, mirroring the teacher's
// WritePNG entry point.
func (e *Encoded) WritePNG(w io.Writer) error {
	return png.Encode(w, e.ToImage())
}

// ImageDataFromImage converts any image.Image into the RGBA ImageData
// Decode expects, for callers that loaded a PNG/JPEG through the stdlib
// image package themselves; decoding the file format itself stays out of
// this package's scope per spec.md §1.
func ImageDataFromImage(img image.Image) ImageData {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	data := make([]byte, 4*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			o := (y*width + x) * 4
			data[o] = byte(r >> 8)
			data[o+1] = byte(g >> 8)
			data[o+2] = byte(b >> 8)
			data[o+3] = byte(a >> 8)
		}
	}
	return ImageData{Width: width, Height: height, Data: data}
}
