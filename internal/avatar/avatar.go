// Package avatar renders default profile images and resizes uploaded ones.
package avatar

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"hash/fnv"
	"image/color"
	"image/draw"
	"image/png"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
)

const size = 500

var ErrInvalidImage = errors.New("invalid base64 image")

var dataURLPattern = regexp.MustCompile(`^data:image/([a-zA-Z]+);base64,(.+)$`)

// Palette for generated avatars; the user's name picks the shade.
var backgrounds = []color.NRGBA{
	{0x1a, 0x1b, 0x1d, 0xff},
	{0x2d, 0x3a, 0x4a, 0xff},
	{0x3b, 0x2f, 0x4f, 0xff},
	{0x1f, 0x3d, 0x33, 0xff},
	{0x4a, 0x2d, 0x2d, 0xff},
}

// Generate produces a 500×500 PNG data URL used as the default profile image
// for a freshly registered user. The initials drive a deterministic
// background so the same name always renders the same avatar.
func Generate(name string) (string, error) {
	initials := initialsOf(name)

	h := fnv.New32a()
	h.Write([]byte(initials))
	bg := backgrounds[int(h.Sum32())%len(backgrounds)]

	img := imaging.New(size, size, bg)
	stampInitials(img, initials)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ResizeDataURL shrinks a base64 image data URL to fit within 500×500 and
// re-encodes it as JPEG quality 70, mirroring what the mobile client expects
// back for profile photos.
func ResizeDataURL(dataURL string) (string, error) {
	matches := dataURLPattern.FindStringSubmatch(dataURL)
	if matches == nil {
		return "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", ErrInvalidImage
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", ErrInvalidImage
	}

	resized := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(70)); err != nil {
		return "", fmt.Errorf("encode resized image: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func initialsOf(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(strings.ToUpper(word))[0]
		b.WriteRune(r)
		if b.Len() >= 3 {
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

// stampInitials draws a crude block glyph per initial. There is no font
// renderer in the dependency set, so letters are boxed ticks rather than
// typeset text; the frontend mostly replaces these with real photos anyway.
func stampInitials(img draw.Image, initials string) {
	n := len([]rune(initials))
	if n == 0 {
		return
	}
	fg := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	blockW := size / (n*2 + 1)
	y0, y1 := size/3, size*2/3
	for i := 0; i < n; i++ {
		x0 := blockW * (i*2 + 1)
		for y := y0; y < y1; y++ {
			for x := x0; x < x0+blockW; x++ {
				img.Set(x, y, fg)
			}
		}
	}
}
