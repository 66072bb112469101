// Command forestgl renders the demo tile map through raw OpenGL: one
// static vertex buffer uploaded once, then patched in place with ranged
// BufferSubData updates when tiles change.
//
// Controls: WASD pan, Q/E zoom, Space rewrites a random quad run,
// F toggles wireframe, Escape quits.
package main

import (
	"math/rand"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/moss"
	"github.com/hubastard/moss/cmd/internal/atlasgen"
	"github.com/hubastard/moss/glmesh"
	"github.com/hubastard/moss/tilemap"
)

const (
	winW, winH = 960, 640
	mapCols    = 48
	mapRows    = 32
	tileSize   = 32
	mapSeed    = 1
)

func init() { runtime.LockOSThread() }

// camera is a Y-down orthographic view: pos is the world point at screen
// center, halfH the half height of the visible world slice.
type camera struct {
	pos    mgl32.Vec2
	halfH  float32
	aspect float32
}

func (c *camera) vp() mgl32.Mat4 {
	halfW := c.halfH * c.aspect
	// Y grows downward, so the ortho bottom is the larger Y.
	return mgl32.Ortho2D(
		c.pos.X()-halfW, c.pos.X()+halfW,
		c.pos.Y()+c.halfH, c.pos.Y()-c.halfH)
}

func main() {
	log.SetLevel(log.DebugLevel)
	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(winW, winH, "moss forestgl", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatal(err)
	}
	log.Info("GL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	// Atlas texture.
	img := atlasgen.Build(mapSeed)
	tex, err := glmesh.NewTexture(img.Bounds().Dx(), img.Bounds().Dy(), img.Pix)
	if err != nil {
		log.Fatal(err)
	}
	atlasSize := mgl32.Vec2{float32(tex.W), float32(tex.H)}

	// Build the map into a single static buffer.
	grid := tilemap.Grid{Cols: mapCols, Rows: mapRows, TileW: tileSize, TileH: tileSize}
	builder, err := moss.New(atlasSize, true, grid.QuadCount(), moss.Canonical)
	if err != nil {
		log.Fatal(err)
	}
	rects := atlasgen.Rects()
	rng := rand.New(rand.NewSource(mapSeed))
	pick := func() moss.Rect {
		switch r := rng.Float32(); {
		case r < 0.15:
			return rects[atlasgen.Water]
		case r < 0.35:
			return rects[atlasgen.Dirt]
		case r < 0.40:
			return rects[atlasgen.Flower]
		default:
			return rects[atlasgen.Grass]
		}
	}
	err = tilemap.Fill(builder, grid, func(col, row int) moss.Tile {
		return moss.Tile{Pos: grid.CellPos(col, row), Color: moss.White, Src: pick()}
	})
	if err != nil {
		log.Fatal(err)
	}

	mesh, err := glmesh.Upload(builder)
	if err != nil {
		log.Fatal(err)
	}
	pipeline, err := glmesh.DefaultPipeline()
	if err != nil {
		log.Fatal(err)
	}
	log.Info("map uploaded", "quads", grid.QuadCount(), "vertices", builder.VertexLimit())

	world := grid.Size()
	cam := camera{
		pos:    mgl32.Vec2{world.X() / 2, world.Y() / 2},
		halfH:  world.Y() / 2,
		aspect: float32(winW) / float32(winH),
	}

	// Space rewrites a short random run of quads and re-uploads exactly
	// that vertex range.
	mutate := func() {
		first := rng.Intn(grid.QuadCount())
		count := min(1+rng.Intn(8), grid.QuadCount()-first)
		for i := first; i < first+count; i++ {
			col, row := i%grid.Cols, i/grid.Cols
			tile := moss.Tile{Pos: grid.CellPos(col, row), Color: moss.White, Src: pick()}
			if err := builder.SetTile(i, tile); err != nil {
				log.Error("requad failed", "quad", i, "err", err)
				return
			}
		}
		if err := mesh.UpdateQuads(builder, first, count); err != nil {
			log.Error("re-upload failed", "err", err)
			return
		}
		log.Debug("requad", "first", first, "count", count)
	}

	wireframe := false
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeySpace:
			mutate()
		case glfw.KeyF:
			wireframe = !wireframe
			if wireframe {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
			} else {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
			}
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
		if h > 0 {
			cam.aspect = float32(w) / float32(h)
		}
	})

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.08, 0.09, 0.10, 1)

	for !win.ShouldClose() {
		glfw.PollEvents()

		pan := cam.halfH * 0.02
		if win.GetKey(glfw.KeyA) == glfw.Press {
			cam.pos[0] -= pan
		}
		if win.GetKey(glfw.KeyD) == glfw.Press {
			cam.pos[0] += pan
		}
		if win.GetKey(glfw.KeyW) == glfw.Press {
			cam.pos[1] -= pan
		}
		if win.GetKey(glfw.KeyS) == glfw.Press {
			cam.pos[1] += pan
		}
		if win.GetKey(glfw.KeyQ) == glfw.Press {
			cam.halfH = min(cam.halfH*1.02, world.Y()*2)
		}
		if win.GetKey(glfw.KeyE) == glfw.Press {
			cam.halfH = max(cam.halfH*0.98, tileSize)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		pipeline.Use()
		pipeline.SetMat4("uVP", cam.vp())
		pipeline.SetInt("uAtlas", 0)
		tex.Bind(0)
		mesh.Draw()

		win.SwapBuffers()
	}

	mesh.Destroy()
	tex.Destroy()
	pipeline.Destroy()
}
