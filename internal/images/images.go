// Package images validates uploaded files before they are sent to a model.
package images

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/models"
)

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/jpg":  true,
}

// File is an uploaded file with a declared content type
type File interface {
	ContentType() string
	Open() (io.ReadCloser, error)
}

// Validate checks the declared content type and, if it is accepted, reads
// the whole file. Rejected files are never read.
func Validate(f File) (models.ImagePayload, error) {
	declared := f.ContentType()
	if !Accepted(declared) {
		return models.ImagePayload{}, apperror.NewValidationError(
			"unsupported image type %q: only JPEG and PNG images are supported", declared)
	}

	rc, err := f.Open()
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("open upload: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("read upload: %w", err)
	}

	return models.ImagePayload{
		Data:     data,
		MIMEType: declared,
	}, nil
}

// Accepted reports whether a declared content type is a supported image.
// Case and parameters such as "; charset=binary" are ignored.
func Accepted(contentType string) bool {
	return accepted[mediaType(contentType)]
}

// MediaType returns the canonical form of an accepted content type:
// lower case, without parameters, with the "image/jpg" alias mapped to
// "image/jpeg". Providers with a strict media type list need this form.
func MediaType(contentType string) string {
	mt := mediaType(contentType)
	if mt == "image/jpg" {
		return "image/jpeg"
	}
	return mt
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = contentType
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// Multipart adapts a multipart form file
type Multipart struct {
	Header *multipart.FileHeader
}

func (m Multipart) ContentType() string {
	return m.Header.Header.Get("Content-Type")
}

func (m Multipart) Open() (io.ReadCloser, error) {
	return m.Header.Open()
}

// Bytes is an in-memory upload, used by the websocket channel
type Bytes struct {
	MIMEType string
	Data     []byte
}

func (b Bytes) ContentType() string {
	return b.MIMEType
}

func (b Bytes) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}
