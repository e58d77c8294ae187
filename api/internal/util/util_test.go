package util

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  ```json\n42\n```  ", "42"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripCodeFences(tc.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "ab…", Truncate("abcdef", 2))
	assert.Equal(t, "abc", Truncate("abc", 0))

	// The cut never lands inside a multi-byte rune. "√x = 2" starts
	// with the 3-byte √, so a 2-byte limit must back off to zero
	// rather than emit half a rune.
	got := Truncate("√x = 2", 2)
	assert.True(t, utf8.ValidString(got), "got %q", got)
	assert.Equal(t, "…", got)
}

func TestSniffMime(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	pdf := []byte("%PDF-1.7")

	assert.Equal(t, "image/jpeg", SniffMimeHTTP(jpeg))
	assert.Equal(t, "image/png", SniffMimeHTTP(png))
	assert.Equal(t, "application/octet-stream", SniffMimeHTTP([]byte("hi")))

	assert.Equal(t, "JPEG", SniffMimeForOCR(jpeg))
	assert.Equal(t, "PNG", SniffMimeForOCR(png))
	assert.Equal(t, "PDF", SniffMimeForOCR(pdf))
	assert.Equal(t, "", SniffMimeForOCR([]byte("hi")))
}

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	b, mime, err := DecodeBase64MaybeDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.Equal(t, "image/png", mime)

	b, mime, err = DecodeBase64MaybeDataURL("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.Equal(t, "", mime)

	_, _, err = DecodeBase64MaybeDataURL("!!not base64!!")
	require.Error(t, err)
}

func TestPickMIME(t *testing.T) {
	assert.Equal(t, "image/webp", PickMIME("image/webp", "image/png", nil))
	assert.Equal(t, "image/png", PickMIME("", "image/png", nil))
	assert.Equal(t, "image/jpeg", PickMIME("", "", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}))
	assert.Equal(t, "image/jpeg", PickMIME("", "", nil))
}

func TestSHA256Hex(t *testing.T) {
	// Stable well-known digest of the empty input.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SHA256Hex(nil))
	assert.Len(t, SHA256Hex([]byte("x")), 64)
	assert.NotEqual(t, SHA256Hex([]byte("a")), SHA256Hex([]byte("b")))
}
