package media

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDataURL(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	payload := base64.StdEncoding.EncodeToString(raw)

	img := FromDataURL("data:image/webp;base64,"+payload, "assinatura.png")
	require.NotNil(t, img)
	assert.Equal(t, "assinatura.png", img.OriginalName)
	assert.Equal(t, "image/webp", img.MimeType)
	assert.Equal(t, payload, img.Buffer)

	decoded, err := base64.StdEncoding.DecodeString(img.Buffer)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestFromDataURLDefaultsMime(t *testing.T) {
	img := FromDataURL("data:;base64,aGVsbG8=", "foto.png")
	require.NotNil(t, img)
	assert.Equal(t, "image/png", img.MimeType)

	img = FromDataURL("data:,aGVsbG8=", "foto.png")
	require.NotNil(t, img)
	assert.Equal(t, "image/png", img.MimeType)
}

func TestFromDataURLSizeApproximation(t *testing.T) {
	// Size is derived from the payload length, not the decoded byte count,
	// so padded payloads round up.
	tests := []struct {
		payload string
		size    int64
	}{
		{"aGVsbG8=", 6}, // "hello" is 5 bytes decoded
		{"aGVsbG8h", 6}, // "hello!" is exactly 6
		{"", 0},
	}
	for _, tt := range tests {
		img := FromDataURL("data:image/png;base64,"+tt.payload, "x.png")
		require.NotNil(t, img)
		assert.Equal(t, tt.size, img.Size, "payload %q", tt.payload)
	}
}

func TestFromDataURLRejectsNonDataURL(t *testing.T) {
	assert.Nil(t, FromDataURL("", "x.png"))
	assert.Nil(t, FromDataURL("https://example.com/a.png", "x.png"))
	assert.Nil(t, FromDataURL("data:image/png;base64", "x.png")) // no comma
}

func TestFromFilePart(t *testing.T) {
	raw := []byte("fake image bytes")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="cancel-photo"; filename="fachada.jpg"`},
		"Content-Type":        {"image/jpeg"},
	})
	require.NoError(t, err)
	_, err = part.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(&body, w.Boundary())
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll()

	fhs := form.File["cancel-photo"]
	require.Len(t, fhs, 1)

	img, err := FromFilePart(fhs[0])
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, "fachada.jpg", img.OriginalName)
	assert.Equal(t, "image/jpeg", img.MimeType)
	assert.Equal(t, int64(len(raw)), img.Size)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), img.Buffer)
}

func TestFromFilePartNil(t *testing.T) {
	img, err := FromFilePart(nil)
	assert.NoError(t, err)
	assert.Nil(t, img)
}
