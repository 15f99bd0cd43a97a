package texpack

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speed-of-light/internal/light"
)

func TestRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "sun-sprite:48", Width: 96, Height: 96, Pix: light.NewBuilder().PlasmaPixels(96, 0)},
		{Name: "ember-glow", Width: 48, Height: 48, Pix: light.EmberGlowPixels(48)},
		{Name: "flat", Width: 4, Height: 4, Pix: solid(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, entries))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(entries))

	for i, e := range entries {
		assert.Equal(t, e.Name, got[i].Name)
		assert.Equal(t, e.Width, got[i].Width)
		assert.Equal(t, e.Height, got[i].Height)
		assert.Equal(t, e.Pix, got[i].Pix)
	}
}

func TestCompressibleEntriesShrink(t *testing.T) {
	// a uniform sprite compresses well below its raw size
	entries := []Entry{
		{Name: "flat", Width: 64, Height: 64, Pix: solid(64, 64, color.RGBA{R: 200, A: 255})},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, entries))
	assert.Less(t, buf.Len(), 64*64*4/2)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("NOTAPACK\x00\x00\x00\x00")))
	assert.Error(t, err)
}

func TestEncodeRejectsDimensionMismatch(t *testing.T) {
	entries := []Entry{{Name: "broken", Width: 8, Height: 8, Pix: make([]color.RGBA, 3)}}
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, entries))
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []Entry{
		{Name: "flat", Width: 8, Height: 8, Pix: solid(8, 8, color.RGBA{A: 255})},
	}))

	_, err := Decode(bytes.NewReader(buf.Bytes()[:buf.Len()-4]))
	assert.Error(t, err)
}

func solid(w, h int, c color.RGBA) []color.RGBA {
	pix := make([]color.RGBA, w*h)
	for i := range pix {
		pix[i] = c
	}
	return pix
}
