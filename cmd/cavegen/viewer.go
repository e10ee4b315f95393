package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/level"
	"github.com/lixenwraith/cavegen/preview"
	"github.com/lixenwraith/cavegen/segment"
	"github.com/lixenwraith/cavegen/world"
)

const (
	// jumpCells is the probe step for the H/J/K/L keys
	jumpCells = 8

	// statusRows is reserved at the bottom of the screen
	statusRows = 1
)

// viewer is the interactive world browser: a probe moves through the world
// and the segment streamer follows it
type viewer struct {
	screen tcell.Screen

	gen           *world.Generator
	width, height int
	difficulty    float64
	seeds         *rand.Rand

	world    *world.World
	streamer *segment.Streamer
	view     preview.View
	message  string
}

func newViewer(gen *world.Generator, width, height int, difficulty float64, seed int64, colors level.Colors) (*viewer, error) {
	v := &viewer{
		gen:        gen,
		width:      width,
		height:     height,
		difficulty: difficulty,
		seeds:      rand.New(rand.NewSource(seed)),
		view: preview.View{
			Options:    preview.Options{Nodes: true},
			Wall:       colors.Wall,
			Background: colors.Background,
		},
	}
	if err := v.load(seed); err != nil {
		return nil, err
	}
	return v, nil
}

// load generates a world for seed and puts the probe on its start node
func (v *viewer) load(seed int64) error {
	w, err := v.gen.Generate(v.width, v.height, v.difficulty, seed)
	if err != nil {
		return err
	}
	v.world = w
	v.streamer = w.NewStreamer()
	v.view.Probe = w.Start()
	v.view.Loaded = v.streamer.Loaded()
	v.message = fmt.Sprintf("seed %d", seed)
	log.Printf("viewer: world %s seed=%d blocks=%d segments=%d connected=%t",
		w.ID, seed, len(w.Blocks), len(w.Layout.Segments), w.Connected)
	return nil
}

// run owns the terminal until the user quits
func (v *viewer) run() (err error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "screen")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "screen init")
	}
	v.screen = s

	defer func() {
		if r := recover(); r != nil {
			s.Fini()
			log.Printf("viewer panic: %v", r)
			err = errors.Errorf("viewer panic: %v", r)
			return
		}
		s.Fini()
	}()

	v.draw()
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.handle(ev) {
			return nil
		}
		v.draw()
	}
}

// handle applies one event; false means quit
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.move(-1, 0)
		case tcell.KeyRight:
			v.move(1, 0)
		case tcell.KeyUp:
			v.move(0, -1)
		case tcell.KeyDown:
			v.move(0, 1)
		case tcell.KeyRune:
			return v.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'H':
		v.move(-jumpCells, 0)
	case 'L':
		v.move(jumpCells, 0)
	case 'K':
		v.move(0, -jumpCells)
	case 'J':
		v.move(0, jumpCells)
	case 'n':
		if err := v.load(v.seeds.Int63()); err != nil {
			v.message = err.Error()
			log.Printf("viewer: regenerate: %v", err)
		}
	case 'b':
		v.view.ShowBlocks = !v.view.ShowBlocks
	case 'g':
		v.view.Segments = !v.view.Segments
	case 'r':
		v.view.Route = !v.view.Route
	}
	return true
}

// move shifts the probe, clamped to the world, and streams segments
func (v *viewer) move(dx, dy int) {
	p := cave.Point{
		X: min(max(v.view.Probe.X+dx, 0), v.world.Width-1),
		Y: min(max(v.view.Probe.Y+dy, 0), v.world.Height-1),
	}
	v.view.Probe = p

	tr, moved, err := v.streamer.Update(p)
	switch {
	case errors.Is(err, segment.ErrNotAdjacent):
		// Jumps wider than a segment skip the neighbour ring
		idx, lerr := v.world.Layout.Locate(p)
		if lerr != nil {
			v.message = lerr.Error()
			return
		}
		log.Printf("viewer: %v, reset to %d", err, idx)
		v.streamer.Reset(idx)
	case err != nil:
		v.message = err.Error()
		return
	case moved:
		log.Printf("viewer: segment %d -> %d load=%v unload=%v +blocks=%d -blocks=%d",
			tr.From, tr.To, tr.Load, tr.Unload, len(tr.AddBlocks), len(tr.RemoveBlocks))
	}
	v.view.Loaded = v.streamer.Loaded()
}

func (v *viewer) draw() {
	sw, sh := v.screen.Size()
	rows := max(sh-statusRows, 0)

	v.view.Center(sw, rows)
	v.screen.Clear()
	preview.Draw(v.screen, v.world, v.view, rows)

	preview.DrawText(v.screen, 0, sh-1, tcell.StyleDefault.Reverse(true), v.statusLine())
	v.screen.Show()
}

func (v *viewer) statusLine() string {
	p := v.view.Probe
	active := v.world.Segment(v.streamer.Active())
	return fmt.Sprintf(" %s  (%d,%d)  seg %d  blocks %d  %s  [arrows/HJKL move, n new, b blocks, g grid, r route, q quit]",
		v.world.ID.String()[:8], p.X, p.Y, active.ID, len(v.streamer.LoadedBlocks()), v.message)
}
