package submission

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textFile(name, mediaType, content string) *Attachment {
	return &Attachment{
		Name:      name,
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestResolvePayload(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		wantKind PayloadKind
		wantText string
		wantErr  error
	}{
		{
			name:     "typed text only",
			in:       Input{Text: "Hello"},
			wantKind: FromTypedText,
			wantText: "Hello",
		},
		{
			name:     "empty typed text is forwarded",
			in:       Input{},
			wantKind: FromTypedText,
			wantText: "",
		},
		{
			name:     "plain text file wins",
			in:       Input{Text: "ignored", File: textFile("mail.txt", "text/plain", "from file")},
			wantKind: FromFileContent,
			wantText: "from file",
		},
		{
			name:     "plain text with charset parameter",
			in:       Input{Text: "ignored", File: textFile("mail.txt", "text/plain; charset=utf-8", "from file")},
			wantKind: FromFileContent,
			wantText: "from file",
		},
		{
			name:     "pdf rejected",
			in:       Input{Text: "typed", File: textFile("mail.pdf", "application/pdf", "%PDF-1.4")},
			wantKind: RejectedFormat,
			wantErr:  ErrRejectedFormat,
		},
		{
			name:     "other type falls back to typed text",
			in:       Input{Text: "typed", File: textFile("photo.png", "image/png", "\x89PNG")},
			wantKind: IgnoredUnsupportedFile,
			wantText: "typed",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolvePayload(context.Background(), tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantKind, got.Kind)
			assert.Equal(t, tc.wantText, got.Text)
		})
	}
}

func TestResolvePayloadDecodesLatin1(t *testing.T) {
	latin1 := []byte{'O', 'l', 0xE1, ',', ' ', 'a', 'c', 0xE7, 0xE3, 'o'}
	file := &Attachment{
		Name:      "legado.txt",
		MediaType: "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(latin1)), nil
		},
	}
	got, err := ResolvePayload(context.Background(), Input{File: file})
	require.NoError(t, err)
	assert.Equal(t, "Olá, acção", got.Text)
}

func TestResolvePayloadStripsUTF8BOM(t *testing.T) {
	got, err := ResolvePayload(context.Background(), Input{File: textFile("bom.txt", "text/plain", "\xEF\xBB\xBFolá")})
	require.NoError(t, err)
	assert.Equal(t, "olá", got.Text)
}

func TestResolvePayloadRejectsOversizedFile(t *testing.T) {
	big := strings.Repeat("a", MaxAttachmentBytes+1)
	_, err := ResolvePayload(context.Background(), Input{File: textFile("big.txt", "text/plain", big)})
	require.ErrorIs(t, err, ErrAttachmentTooLarge)
}

func TestResolvePayloadPropagatesOpenErrors(t *testing.T) {
	boom := errors.New("permission denied")
	file := &Attachment{
		Name:      "locked.txt",
		MediaType: "text/plain",
		Open:      func() (io.ReadCloser, error) { return nil, boom },
	}
	_, err := ResolvePayload(context.Background(), Input{File: file})
	require.ErrorIs(t, err, boom)
}

func TestResolvePayloadStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ResolvePayload(ctx, Input{File: textFile("mail.txt", "text/plain", "x")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPayloadKindString(t *testing.T) {
	assert.Equal(t, "typed_text", FromTypedText.String())
	assert.Equal(t, "ignored_unsupported_file", IgnoredUnsupportedFile.String())
	assert.Equal(t, "payload_kind(9)", PayloadKind(9).String())
}
