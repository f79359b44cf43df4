package jpegdsp

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/spakin/netpbm"
	_ "github.com/xfmoulet/qoi"
)

// DecodeImage decodes any registered image format: PNG, GIF, JPEG,
// PBM/PGM/PPM/PAM and QOI. It returns the format name.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// LoadImage reads and decodes an image file.
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return DecodeImage(f)
}
