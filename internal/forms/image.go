package forms

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var extensions = map[string]string{
	"gif":  ".gif",
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
	"bmp":  ".bmp",
	"tiff": ".tiff",
}

// Image is an uploaded file read into memory. Format is set once Check succeeds.
type Image struct {
	Filename string
	Data     []byte
	TooLarge bool
	Format   string
}

// ReadImage reads the optional file field. It returns nil when nothing was uploaded.
// At most maxBytes are kept; a bigger upload is marked TooLarge.
func ReadImage(r *http.Request, field string, maxBytes int64) (*Image, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", field, err)
	}
	defer file.Close()

	return readImage(file, header, maxBytes)
}

func readImage(file multipart.File, header *multipart.FileHeader, maxBytes int64) (*Image, error) {
	if header.Filename == "" && header.Size == 0 {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}

	img := &Image{Filename: header.Filename}
	if int64(len(data)) > maxBytes {
		img.TooLarge = true
		return img, nil
	}
	img.Data = data
	return img, nil
}

// Check verifies that the upload decodes as a supported image and records its format.
func (img *Image) Check() string {
	if img.TooLarge {
		return "The image is too large."
	}
	if len(img.Data) == 0 {
		return "The submitted file is empty."
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	}
	img.Format = format
	return ""
}

// Ext is the file extension matching the decoded format.
func (img *Image) Ext() string {
	if ext, ok := extensions[img.Format]; ok {
		return ext
	}
	return ".img"
}
