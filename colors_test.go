package moss

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromColor(t *testing.T) {
	assert.Equal(t, White, FromColor(color.White))
	assert.Equal(t, Black, FromColor(color.Black))
	assert.Equal(t, Red, FromColor(color.RGBA{R: 255, A: 255}))

	// Non-opaque sources keep their channels premultiplied.
	half := FromColor(color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	for i := range half {
		assert.InDelta(t, 128.0/255.0, half[i], 1e-4)
	}
}

func TestWithAlpha(t *testing.T) {
	assert.Equal(t, Color{1, 0, 0, 0.25}, Red.WithAlpha(0.25))
	// Value receiver, so the palette var stays opaque.
	assert.Equal(t, float32(1), Red[3])
}
