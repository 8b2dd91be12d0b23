package submission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	MediaTypePlainText = "text/plain"
	MediaTypePDF       = "application/pdf"

	// MaxAttachmentBytes matches the upload cap enforced by the service.
	MaxAttachmentBytes = 5 << 20
)

var (
	ErrRejectedFormat     = errors.New("attachment format is not supported")
	ErrAttachmentTooLarge = errors.New("attachment exceeds size limit")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Attachment is a file picked by the user. MediaType is the declared type,
// Open is called at most once per cycle.
type Attachment struct {
	Name      string
	MediaType string
	Open      func() (io.ReadCloser, error)
}

// Input is everything the user provided for one cycle.
type Input struct {
	Text string
	File *Attachment
}

// PayloadKind tags where the submitted text came from.
type PayloadKind int

const (
	FromTypedText PayloadKind = iota
	FromFileContent
	RejectedFormat
	IgnoredUnsupportedFile
)

func (k PayloadKind) String() string {
	switch k {
	case FromTypedText:
		return "typed_text"
	case FromFileContent:
		return "file_content"
	case RejectedFormat:
		return "rejected_format"
	case IgnoredUnsupportedFile:
		return "ignored_unsupported_file"
	default:
		return fmt.Sprintf("payload_kind(%d)", int(k))
	}
}

// Payload is the resolved text for one cycle.
type Payload struct {
	Kind   PayloadKind
	Text   string
	Reason string
}

// ResolvePayload picks the text to submit. Plain-text attachments win over
// typed text, PDFs are rejected with ErrRejectedFormat, and any other type is
// ignored in favour of the typed text.
func ResolvePayload(ctx context.Context, in Input) (Payload, error) {
	if in.File == nil {
		return Payload{Kind: FromTypedText, Text: in.Text}, nil
	}
	switch baseMediaType(in.File.MediaType) {
	case MediaTypePlainText:
		text, err := readAttachment(ctx, in.File)
		if err != nil {
			return Payload{Kind: FromFileContent}, err
		}
		return Payload{Kind: FromFileContent, Text: text}, nil
	case MediaTypePDF:
		return Payload{
			Kind:   RejectedFormat,
			Reason: fmt.Sprintf("%s is a PDF document", displayName(in.File)),
		}, ErrRejectedFormat
	default:
		return Payload{
			Kind:   IgnoredUnsupportedFile,
			Text:   in.Text,
			Reason: fmt.Sprintf("%s has unsupported type %q", displayName(in.File), in.File.MediaType),
		}, nil
	}
}

func readAttachment(ctx context.Context, file *Attachment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if file.Open == nil {
		return "", fmt.Errorf("attachment %s has no content", displayName(file))
	}
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open attachment %s: %w", displayName(file), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxAttachmentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read attachment %s: %w", displayName(file), err)
	}
	if len(data) > MaxAttachmentBytes {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", ErrAttachmentTooLarge, displayName(file), MaxAttachmentBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return decodeText(data)
}

// decodeText reads UTF-8 and falls back to Latin-1 for legacy exports.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode latin-1 text: %w", err)
	}
	return string(decoded), nil
}

func baseMediaType(value string) string {
	base, _, _ := strings.Cut(value, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

func displayName(file *Attachment) string {
	if file.Name == "" {
		return "attachment"
	}
	return file.Name
}
