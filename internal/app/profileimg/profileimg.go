// Package profileimg normalizes profile photos for the account screen:
// any JPEG or PNG input becomes a square JPEG thumbnail of fixed size,
// center-cropped so faces are not stretched.
package profileimg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registers the PNG decoder

	"golang.org/x/image/draw"
)

const (
	// ThumbnailSize is the side of the stored square, in pixels.
	ThumbnailSize = 256

	jpegQuality = 85

	// maxInputBytes caps the accepted source photo.
	maxInputBytes = 8 << 20
)

var (
	// ErrUnsupportedFormat is returned for anything but JPEG and PNG.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrTooLarge is returned when the source exceeds maxInputBytes.
	ErrTooLarge = errors.New("image too large")
)

// Normalize decodes a photo, center-crops it square, scales it to
// ThumbnailSize and re-encodes it as JPEG.
func Normalize(data []byte) ([]byte, error) {
	if len(data) > maxInputBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	square := centerCrop(src.Bounds())
	thumb := image.NewRGBA(image.Rect(0, 0, ThumbnailSize, ThumbnailSize))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), src, square, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// centerCrop returns the largest centered square inside bounds.
func centerCrop(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	side := w
	if h < side {
		side = h
	}
	x0 := bounds.Min.X + (w-side)/2
	y0 := bounds.Min.Y + (h-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}
