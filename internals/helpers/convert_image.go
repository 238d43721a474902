// file: internals/helpers/convert_image.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Gallery images are normalized server-side: decoded, capped to maxWidth,
// then re-encoded as WebP so the stored asset is small and uniform.
const (
	galleryMaxWidth  = 1600
	galleryWebPQual  = 82
	maxUploadBytes   = 8 << 20 // 8MB raw upload cap
)

// ConvertImageToWebP reads an uploaded image and returns the WebP bytes.
func ConvertImageToWebP(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > maxUploadBytes {
		return nil, fmt.Errorf("image exceeds %dMB upload limit", maxUploadBytes>>20)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded image: %w", err)
	}
	defer src.Close()

	raw := new(bytes.Buffer)
	if _, err := io.Copy(raw, src); err != nil {
		return nil, fmt.Errorf("read uploaded image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > galleryMaxWidth {
		img = imaging.Resize(img, galleryMaxWidth, 0, imaging.Lanczos)
	}

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Quality: galleryWebPQual}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename builds "<folder>/<yyyymmdd>-<uuid>-<name>" so
// repeated uploads of the same file never collide.
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}
