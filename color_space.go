package jpegdsp

import (
	"image"
	"image/color"
)

// RGBToYCbCr converts a pixel with the full range BT.601 matrix used by JFIF.
func RGBToYCbCr(r, g, b uint8) (y, cb, cr uint8) {
	rf, gf, bf := float32(r), float32(g), float32(b)
	y = clampToByte(0.299*rf + 0.587*gf + 0.114*bf)
	cb = clampToByte(-0.168736*rf - 0.331264*gf + 0.5*bf + 128)
	cr = clampToByte(0.5*rf - 0.418688*gf - 0.081312*bf + 128)
	return y, cb, cr
}

// Luma returns the Y component of a pixel.
func Luma(r, g, b uint8) uint8 {
	return clampToByte(0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b))
}

// IsGray reports whether img has a grayscale color model.
func IsGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	m := img.ColorModel()
	return m == color.GrayModel || m == color.Gray16Model
}

// GrayPlane returns the luminance of img at its own size.
func GrayPlane(img image.Image) Plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewPlane(w, h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			copy(out.Pix[y*w:(y+1)*w], src.Pix[y*src.Stride:])
		}
	case *image.YCbCr:
		for y := 0; y < h; y++ {
			copy(out.Pix[y*w:(y+1)*w], src.Y[y*src.YStride:])
		}
	default:
		forEachRGB(img, func(x, y int, r, g, b uint8) {
			out.Pix[y*w+x] = Luma(r, g, b)
		})
	}
	return out
}

// YCbCrPlanes converts img to full resolution Y, Cb and Cr planes.
func YCbCrPlanes(img image.Image) [3]Plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := [3]Plane{NewPlane(w, h), NewPlane(w, h), NewPlane(w, h)}

	if src, ok := img.(*image.YCbCr); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				out[0].Pix[y*w+x] = src.Y[yi]
				out[1].Pix[y*w+x] = src.Cb[ci]
				out[2].Pix[y*w+x] = src.Cr[ci]
			}
		}
		return out
	}

	forEachRGB(img, func(x, y int, r, g, b uint8) {
		i := y*w + x
		out[0].Pix[i], out[1].Pix[i], out[2].Pix[i] = RGBToYCbCr(r, g, b)
	})
	return out
}

// forEachRGB visits every pixel of img with coordinates relative to its
// bounds. Alpha is ignored.
func forEachRGB(img image.Image, fn func(x, y int, r, g, b uint8)) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				fn(x, y, row[4*x], row[4*x+1], row[4*x+2])
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				fn(x, y, row[4*x], row[4*x+1], row[4*x+2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				fn(x, y, c.R, c.G, c.B)
			}
		}
	}
}
