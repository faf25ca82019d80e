package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadSize bounds a single product image.
	MaxUploadSize = 10 << 20
	// maxWidth is the widest edge kept after downscaling.
	maxWidth = 1600
	quality  = 85
)

var (
	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

func isExtensionAllowed(ext string) bool {
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// PrepareImage validates and normalizes an uploaded product image:
// decode (jpeg/png/gif/webp), downscale anything wider than maxWidth,
// re-encode as JPEG. The result is what gets pushed to the object
// store.
func PrepareImage(reader io.Reader, header *multipart.FileHeader) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext) {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}
	if header.Size > MaxUploadSize {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, header.Size)
	}

	img, _, err := image.Decode(io.LimitReader(reader, MaxUploadSize))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(header.Filename), ext) + ".jpg"
	return buf.Bytes(), name, nil
}
