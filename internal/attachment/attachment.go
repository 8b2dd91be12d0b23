// Package attachment turns local files into submission attachments.
package attachment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/csheth/mailtriage/internal/submission"
)

// FromPath stats path and returns an attachment that reopens it on demand.
// When declared is empty the media type is sniffed from the file content.
func FromPath(path, declared string) (*submission.Attachment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("attachment path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	mediaType := strings.TrimSpace(declared)
	if mediaType == "" {
		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			return nil, fmt.Errorf("detect media type of %s: %w", path, err)
		}
		mediaType = MediaTypeOf(mtype)
	}

	return &submission.Attachment{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// MediaTypeOf returns the type/subtype of a detected MIME without parameters.
func MediaTypeOf(mtype *mimetype.MIME) string {
	if mtype == nil {
		return ""
	}
	base, _, _ := strings.Cut(mtype.String(), ";")
	return strings.TrimSpace(base)
}
