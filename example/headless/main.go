package main

import (
	"bytes"
	_ "embed"
	"flag"
	"log"
	"os"

	"github.com/akmonengine/impulse"
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/scene"
)

//go:embed default.yaml
var defaultScene []byte

type options struct {
	scenePath string
	steps     int
	dt        float64
	seed      uint64
	seedSet   bool
	report    int
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("headless", flag.ContinueOnError)
	fs.StringVar(&opts.scenePath, "scene", "", "YAML scene file (built-in scene when empty)")
	fs.IntVar(&opts.steps, "steps", 300, "number of steps to simulate")
	fs.Float64Var(&opts.dt, "dt", 0, "fixed time step in seconds (scene value when 0)")
	fs.Uint64Var(&opts.seed, "seed", 0, "seed for random bodies (scene value when unset)")
	fs.IntVar(&opts.report, "report", 60, "log body poses every n steps")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	return opts, nil
}

// apply overrides the scene values given on the command line
func (o options) apply(s *scene.Scene) {
	if o.seedSet {
		s.World.Seed = o.seed
	}
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	s, err := loadScene(opts.scenePath)
	if err != nil {
		log.Fatal(err)
	}
	opts.apply(s)

	world := s.NewWorld()
	handles, err := s.Build(world)
	if err != nil {
		log.Fatal(err)
	}

	names := make(map[actor.Handle]string, len(handles))
	for i, h := range handles {
		names[h] = s.Bodies[i].Name
	}

	world.Events.Subscribe(impulse.COLLISION_ENTER, func(event impulse.Event) {
		a, b := event.Bodies()
		log.Printf("%s: %s <-> %s", event.Type(), names[a], names[b])
	})
	world.Events.Subscribe(impulse.COLLISION_EXIT, func(event impulse.Event) {
		a, b := event.Bodies()
		log.Printf("%s: %s <-> %s", event.Type(), names[a], names[b])
	})

	timeStep := s.TimeStep()
	if opts.dt > 0 {
		timeStep = opts.dt
	}

	log.Printf("simulating %d bodies for %d steps of %.4fs", world.Len(), opts.steps, timeStep)
	for step := 1; step <= opts.steps; step++ {
		world.Step(timeStep)

		if opts.report > 0 && step%opts.report == 0 {
			logPoses(world, step, names)
		}
	}
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Load(bytes.NewReader(defaultScene))
	}
	return scene.LoadFile(path)
}

func logPoses(world *impulse.World, step int, names map[actor.Handle]string) {
	log.Printf("step %d: %d contacts", step, len(world.Contacts()))
	world.Each(func(h actor.Handle, body *actor.RigidBody) {
		if body.IsStatic() {
			return
		}
		log.Printf("  %-10s pos=(%.3f, %.3f) rot=%.3f vel=(%.3f, %.3f)",
			names[h],
			body.Transform.Position.X(), body.Transform.Position.Y(),
			body.Transform.Orientation,
			body.Kinematics.Velocity.X(), body.Kinematics.Velocity.Y())
	})
}
