package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/akmonengine/impulse"
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 960
	screenHeight = 640
	margin       = 40
)

//go:embed demo.yaml
var demoScene []byte

var (
	staticColor  = color.RGBA{0x70, 0x70, 0x80, 0xff}
	dynamicColor = color.RGBA{0x40, 0xc0, 0x70, 0xff}
	contactColor = color.RGBA{0xe0, 0x40, 0x40, 0xff}
	normalColor  = color.RGBA{0xf0, 0xd0, 0x40, 0xff}
)

// camera maps world coordinates (y up) to screen pixels (y down)
type camera struct {
	center mgl64.Vec2
	scale  float64
}

// fitCamera frames the union of the bodies' bounds
func fitCamera(world *impulse.World) camera {
	var bounds actor.AABB
	first := true
	world.Each(func(_ actor.Handle, body *actor.RigidBody) {
		if first {
			bounds, first = body.AABB(), false
			return
		}
		bounds = bounds.Union(body.AABB())
	})

	size := bounds.Size()
	scale := min((screenWidth-2*margin)/max(size.X(), 1), (screenHeight-2*margin)/max(size.Y(), 1))

	return camera{center: bounds.Center(), scale: scale}
}

func (c camera) toScreen(p mgl64.Vec2) (float32, float32) {
	x := (p.X()-c.center.X())*c.scale + screenWidth/2
	y := screenHeight/2 - (p.Y()-c.center.Y())*c.scale
	return float32(x), float32(y)
}

type Game struct {
	world    *impulse.World
	camera   camera
	timeStep float64
	paused   bool
	steps    int
	contacts int
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyN) {
		return nil
	}

	g.world.Step(g.timeStep)
	g.steps++

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Each(func(_ actor.Handle, body *actor.RigidBody) {
		clr := dynamicColor
		if body.IsStatic() {
			clr = staticColor
		}
		g.drawBody(screen, body, clr)
	})

	for _, m := range g.world.Contacts() {
		for i := 0; i < m.Count; i++ {
			point := m.Points[i]
			x, y := g.camera.toScreen(point)
			nx, ny := g.camera.toScreen(point.Add(m.Normal.Mul(0.5)))
			vector.StrokeLine(screen, x, y, nx, ny, 1, normalColor, true)
			vector.DrawFilledCircle(screen, x, y, 3, contactColor, true)
		}
	}

	status := "running"
	if g.paused {
		status = "paused (N to step)"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("bodies: %d  contacts: %d  step: %d  %s\nSPACE: pause",
		g.world.Len(), len(g.world.Contacts()), g.steps, status))
}

func (g *Game) drawBody(screen *ebiten.Image, body *actor.RigidBody, clr color.Color) {
	position := body.Transform.Position

	switch shape := body.Shape.(type) {
	case *actor.Circle:
		x, y := g.camera.toScreen(position)
		r := float32(shape.Radius * g.camera.scale)
		vector.StrokeCircle(screen, x, y, r, 1.5, clr, true)

		// Orientation marker
		tip := body.Transform.ToWorld(mgl64.Vec2{shape.Radius, 0})
		tx, ty := g.camera.toScreen(tip)
		vector.StrokeLine(screen, x, y, tx, ty, 1, clr, true)
	case *actor.Polygon:
		for i := range shape.Vertices {
			ax, ay := g.camera.toScreen(shape.WorldVertex(i, position))
			bx, by := g.camera.toScreen(shape.WorldVertex((i+1)%len(shape.Vertices), position))
			vector.StrokeLine(screen, ax, ay, bx, by, 1.5, clr, true)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	scenePath := flag.String("scene", "", "YAML scene file (built-in demo when empty)")
	flag.Parse()

	var (
		s   *scene.Scene
		err error
	)
	if *scenePath == "" {
		s, err = scene.Load(bytes.NewReader(demoScene))
	} else {
		s, err = scene.LoadFile(*scenePath)
	}
	if err != nil {
		log.Fatal(err)
	}

	world := s.NewWorld()
	if _, err := s.Build(world); err != nil {
		log.Fatal(err)
	}

	game := &Game{
		world:    world,
		camera:   fitCamera(world),
		timeStep: s.TimeStep(),
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("impulse sandbox")
	ebiten.SetTPS(int(1/game.timeStep + 0.5))
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
