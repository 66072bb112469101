// Package atlasgen supplies the texture atlas used by the demo programs,
// either procedurally generated or loaded from a PNG on disk.
package atlasgen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"

	"golang.org/x/image/colornames"

	"github.com/hubastard/moss"
)

// Procedural atlas layout: four 32px terrain tiles in a 64x64 image.
const (
	Size   = 64
	TilePx = 32
)

// Tile indices into Rects.
const (
	Grass = iota
	Dirt
	Water
	Flower
	TileCount
)

// Rects returns the source rectangle of each terrain tile.
func Rects() [TileCount]moss.Rect {
	return [TileCount]moss.Rect{
		Grass:  {X: 0, Y: 0, W: TilePx, H: TilePx},
		Dirt:   {X: TilePx, Y: 0, W: TilePx, H: TilePx},
		Water:  {X: 0, Y: TilePx, W: TilePx, H: TilePx},
		Flower: {X: TilePx, Y: TilePx, W: TilePx, H: TilePx},
	}
}

// Load returns the atlas image: the PNG at path when path is non-empty,
// otherwise a procedural atlas seeded with seed.
func Load(path string, seed int64) (*image.RGBA, error) {
	if path == "" {
		return Build(seed), nil
	}
	return LoadPNG(path)
}

// Build generates the procedural atlas. Each tile is a flat base color with
// per-pixel jitter; the flower tile scatters blossoms over grass.
func Build(seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))

	fillTile(img, 0, 0, colornames.Forestgreen, rng)
	fillTile(img, TilePx, 0, colornames.Saddlebrown, rng)
	fillTile(img, 0, TilePx, colornames.Steelblue, rng)
	fillTile(img, TilePx, TilePx, colornames.Forestgreen, rng)
	for i := 0; i < 24; i++ {
		x := TilePx + rng.Intn(TilePx)
		y := TilePx + rng.Intn(TilePx)
		img.SetRGBA(x, y, colornames.Hotpink)
	}
	return img
}

// LoadPNG returns the decoded image repacked with tight rows
// (stride == 4*width), which is what the GL upload path expects.
func LoadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return toTightRGBA(img), nil
}

// --- internals ---

func fillTile(img *image.RGBA, x0, y0 int, base color.RGBA, rng *rand.Rand) {
	for y := y0; y < y0+TilePx; y++ {
		for x := x0; x < x0+TilePx; x++ {
			img.SetRGBA(x, y, jitter(base, rng, 12))
		}
	}
}

func jitter(c color.RGBA, rng *rand.Rand, amp int) color.RGBA {
	d := rng.Intn(2*amp+1) - amp
	return color.RGBA{
		R: clampByte(int(c.R) + d),
		G: clampByte(int(c.G) + d),
		B: clampByte(int(c.B) + d),
		A: 0xff,
	}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func toTightRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
