// Package avatar builds placeholder avatars for team members. The same name
// always yields the same URL and the same image.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
)

const (
	DefaultSize = 128
	MaxSize     = 512
	grid        = 5
)

var ErrInvalidSize = errors.New("invalid avatar size")

// URLBuilder prefixes avatar paths with an optional base URL.
type URLBuilder struct {
	Base string
}

// URLFor returns the avatar URL for name.
func (b URLBuilder) URLFor(name string) string {
	return strings.TrimRight(b.Base, "/") + "/avatars/" + Slug(name) + ".png"
}

// URLFor returns the site-relative avatar URL for name.
func URLFor(name string) string { return URLBuilder{}.URLFor(name) }

// Slug lowercases name and keeps letters and digits, joining runs of
// anything else with a single dash.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "member"
	}
	return b.String()
}

// Render draws a mirrored 5x5 block pattern seeded by the slug of name and
// scales it to size x size pixels, PNG encoded.
func Render(name string, size int) ([]byte, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	h := fnv.New64a()
	h.Write([]byte(Slug(name)))
	sum := h.Sum64()

	fg := color.NRGBA{R: uint8(sum >> 56), G: uint8(sum >> 48), B: uint8(sum >> 40), A: 255}
	bg := color.NRGBA{R: 240, G: 240, B: 240, A: 255}

	img := imaging.New(grid, grid, bg)
	bit := 0
	for y := 0; y < grid; y++ {
		for x := 0; x <= grid/2; x++ {
			if sum>>(bit%40)&1 == 1 {
				img.SetNRGBA(x, y, fg)
				img.SetNRGBA(grid-1-x, y, fg)
			}
			bit++
		}
	}

	var out image.Image = imaging.Resize(img, size, size, imaging.NearestNeighbor)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}
