// Command forest renders a procedurally generated tile map with a single
// static mesh. The map is built once into a moss buffer; edits rewrite only
// the touched quad slots and the world is re-composited from the same
// vertex storage.
//
// Controls: WASD/arrows pan, Q/E zoom, Escape quits.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/hubastard/moss"
	"github.com/hubastard/moss/cmd/internal/atlasgen"
	"github.com/hubastard/moss/ebitenmesh"
	"github.com/hubastard/moss/tilemap"
)

// Water quads get a cold, slightly translucent cast over the atlas pixels.
var waterTint = moss.FromColor(colornames.Lightblue).WithAlpha(0.92)

func tintFor(tile int) moss.Color {
	if tile == atlasgen.Water {
		return waterTint
	}
	return moss.White
}

type game struct {
	cfg   Config
	grid  tilemap.Grid
	rects [atlasgen.TileCount]moss.Rect

	builder *moss.Builder[ebiten.Vertex]
	mesh    *ebitenmesh.Mesh
	atlas   *ebiten.Image
	world   *ebiten.Image
	dirty   bool

	camX, camY float64
	zoom       float64
	rng        *rand.Rand
	tick       int
}

func newGame(cfg Config) (*game, error) {
	img, err := atlasgen.Load(cfg.Atlas.Path, cfg.Map.Seed)
	if err != nil {
		return nil, err
	}
	atlasSize := mgl32.Vec2{float32(img.Bounds().Dx()), float32(img.Bounds().Dy())}

	g := &game{
		cfg: cfg,
		grid: tilemap.Grid{
			Cols: cfg.Map.Cols, Rows: cfg.Map.Rows,
			TileW: cfg.Map.TileSize, TileH: cfg.Map.TileSize,
		},
		rects: atlasgen.Rects(),
		atlas: ebiten.NewImageFromImage(img),
		rng:   rand.New(rand.NewSource(cfg.Map.Seed)),
		dirty: true,
		zoom:  1,
	}

	g.builder, err = ebitenmesh.NewBuilder(atlasSize, cfg.Atlas.HalfTexel, g.grid.QuadCount())
	if err != nil {
		return nil, err
	}

	// Terrain pass. Flower cells are remembered and rewritten below with a
	// rotated quad.
	var flowers []int
	err = tilemap.Fill(g.builder, g.grid, func(col, row int) moss.Tile {
		tile := g.pickTerrain()
		if tile == atlasgen.Flower {
			flowers = append(flowers, g.grid.QuadIndex(col, row))
		}
		return moss.Tile{Pos: g.grid.CellPos(col, row), Color: tintFor(tile), Src: g.rects[tile]}
	})
	if err != nil {
		return nil, err
	}
	for _, i := range flowers {
		if err := g.setFlower(i); err != nil {
			return nil, err
		}
	}

	g.mesh, err = ebitenmesh.Compile(g.builder)
	if err != nil {
		return nil, err
	}

	world := g.grid.Size()
	g.world = ebiten.NewImage(int(world.X()), int(world.Y()))
	g.camX, g.camY = float64(world.X())/2, float64(world.Y())/2
	return g, nil
}

func (g *game) pickTerrain() int {
	switch r := g.rng.Float32(); {
	case r < 0.15:
		return atlasgen.Water
	case r < 0.35:
		return atlasgen.Dirt
	case r < 0.40:
		return atlasgen.Flower
	default:
		return atlasgen.Grass
	}
}

// setFlower rewrites slot i with a flower quad rotated around the cell
// center.
func (g *game) setFlower(i int) error {
	ts := g.cfg.Map.TileSize
	col, row := i%g.grid.Cols, i/g.grid.Cols
	return g.builder.Set(i, moss.TransformedTile{
		Pos:      g.grid.CellPos(col, row),
		Origin:   mgl32.Vec2{ts / 2, ts / 2},
		Size:     mgl32.Vec2{ts, ts},
		Rotation: (g.rng.Float32() - 0.5) * 0.6,
		Color:    moss.White,
		Src:      g.rects[atlasgen.Flower],
	})
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	pan := 6.0 / g.zoom
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.zoom = max(g.zoom*0.98, 0.25)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.zoom = min(g.zoom*1.02, 8)
	}

	g.tick++
	if g.cfg.Map.MutateEvery > 0 && g.tick%g.cfg.Map.MutateEvery == 0 {
		g.mutate()
	}
	return nil
}

// mutate rewrites a short random run of quad slots with new terrain. Only
// those slots change; the rest of the buffer is untouched.
func (g *game) mutate() {
	total := g.grid.QuadCount()
	first := g.rng.Intn(total)
	count := min(1+g.rng.Intn(8), total-first)

	for i := first; i < first+count; i++ {
		col, row := i%g.grid.Cols, i/g.grid.Cols
		terrain := g.pickTerrain()
		tile := moss.Tile{
			Pos:   g.grid.CellPos(col, row),
			Color: tintFor(terrain),
			Src:   g.rects[terrain],
		}
		if err := g.builder.SetTile(i, tile); err != nil {
			log.Error("requad failed", "quad", i, "err", err)
			return
		}
	}
	g.dirty = true
	log.Debug("requad", "first", first, "count", count,
		"vertices", count*g.builder.VerticesPerQuad())
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.world.Clear()
		g.mesh.Draw(g.world, g.atlas, nil)
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-g.camX, -g.camY)
	op.GeoM.Scale(g.zoom, g.zoom)
	op.GeoM.Translate(float64(g.cfg.Window.Width)/2, float64(g.cfg.Window.Height)/2)
	screen.DrawImage(g.world, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"tps %.0f  quads %d\nWASD pan / QE zoom / Esc quit",
		ebiten.ActualTPS(), g.grid.QuadCount()))
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func main() {
	configPath := flag.String("config", "forest.toml", "path to the demo config")
	flag.Parse()
	log.SetLevel(log.DebugLevel)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	g, err := newGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Info("map ready",
		"cols", cfg.Map.Cols, "rows", cfg.Map.Rows,
		"quads", g.grid.QuadCount(), "vertices", len(g.mesh.Vertices))

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetVsyncEnabled(cfg.Window.Vsync)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
