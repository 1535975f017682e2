package sniff

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHead(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want ProofType
		mime string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, TypeJPEG, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00}, TypePNG, "image/png"},
		{"pdf", []byte("%PDF-1.7\n"), TypePDF, "application/pdf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := DetectHead(tc.head)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Type)
			assert.Equal(t, tc.mime, res.MIME)
		})
	}
}

func TestDetectHeadRejectsUnknown(t *testing.T) {
	for _, head := range [][]byte{
		nil,
		{},
		[]byte("GIF89a"),
		[]byte("<svg xmlns="),
		[]byte("plain text receipt"),
	} {
		_, err := DetectHead(head)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	}
}

func TestMimeTypeFromHTTP(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, "", MimeTypeFromHTTP(h))

	h.Set("Content-Type", "image/png")
	assert.Equal(t, "image/png", MimeTypeFromHTTP(h))

	h.Set("Content-Type", "application/pdf; charset=binary")
	assert.Equal(t, "application/pdf", MimeTypeFromHTTP(h))
}
