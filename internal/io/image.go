package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// CoverArtNames are the file names searched for by FindCoverArt, in order.
var CoverArtNames = []string{"cover.jpg", "folder.jpg", "cover.jpeg", "folder.jpeg", "cover.png", "folder.png"}

// FindCoverArt returns the path of the first CoverArtNames entry present in
// dir, or "" if there is none.
func FindCoverArt(dir string) string {
	for _, name := range CoverArtNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// ImageService prepares cover art for embedding in tags.
//
// Example usage:
//
//	svc := NewImageService(1000, true)
//	art, err := svc.Load(ctx, "/music/Kind of Blue/cover.png")
//	// art is JPEG data no larger than 1000x1000
type ImageService struct {
	maxSize int
	toJPEG  bool
}

// NewImageService creates an ImageService.
//
// maxSize bounds both dimensions of the prepared image (0 disables
// resizing); toJPEG re-encodes every image as JPEG.
func NewImageService(maxSize int, toJPEG bool) *ImageService {
	return &ImageService{maxSize: maxSize, toJPEG: toJPEG}
}

// Load reads the image at path and prepares it with Prepare.
func (s *ImageService) Load(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Prepare(ctx, data)
}

// Prepare resizes data to the configured maximum size and converts it to
// JPEG if configured. Data that needs neither is returned unchanged.
func (s *ImageService) Prepare(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if s.maxSize > 0 && (cfg.Width > s.maxSize || cfg.Height > s.maxSize) {
		return s.ResizeImage(ctx, data, s.maxSize, s.maxSize)
	}
	if s.toJPEG && format != "jpeg" {
		return s.ConvertToJPEG(ctx, data)
	}
	return data, nil
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and the result is JPEG-encoded. The
// Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// Resize to fit within 1000x1000, maintaining aspect ratio
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(dst)
}

// ConvertToJPEG converts an image to JPEG format with 90% quality.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img)
}

// fitWithin scales width x height down to fit maxWidth x maxHeight,
// preserving the aspect ratio. Smaller images are returned unchanged.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
