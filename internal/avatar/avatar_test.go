package avatar

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("Maria Souza")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"))

	// Deterministic for the same name.
	again, err := Generate("Maria Souza")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestInitialsOf(t *testing.T) {
	assert.Equal(t, "MS", initialsOf("maria souza"))
	assert.Equal(t, "JPD", initialsOf("João Pedro da Silva Ramos"))
	assert.Equal(t, "?", initialsOf("   "))
}

func TestResizeDataURL(t *testing.T) {
	img := imaging.New(1200, 800, color.NRGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	in := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	out, err := ResizeDataURL(in)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	decoded, err := imaging.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 500)
	assert.LessOrEqual(t, bounds.Dy(), 500)
}

func TestResizeDataURLRejectsGarbage(t *testing.T) {
	_, err := ResizeDataURL("not a data url")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = ResizeDataURL("data:image/png;base64,%%%%")
	assert.ErrorIs(t, err, ErrInvalidImage)
}
