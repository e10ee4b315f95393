// Command cavegen generates cave worlds. It prints them as text, runs the whole
// campaign, or opens an interactive viewer that streams segments around a
// movable probe
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/level"
	"github.com/lixenwraith/cavegen/parameter"
	"github.com/lixenwraith/cavegen/preview"
	"github.com/lixenwraith/cavegen/status"
	"github.com/lixenwraith/cavegen/world"
)

type options struct {
	width, height int
	difficulty    float64
	seed          int64

	configPath  string
	catalogPath string
	levelKey    string

	dump       bool
	dumpConfig bool
	campaign   bool
	stats      bool
	route      bool
	debug      bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("cavegen", flag.ContinueOnError)
	fs.IntVar(&o.width, "width", parameter.DefaultWorldWidth, "world width in cells")
	fs.IntVar(&o.height, "height", parameter.DefaultWorldHeight, "world height in cells")
	fs.Float64Var(&o.difficulty, "difficulty", 0, "difficulty in [0, 1]")
	fs.Int64Var(&o.seed, "seed", 0, "generation seed, 0 picks one from the clock")
	fs.StringVar(&o.configPath, "config", "", "TOML generation config, overlaid on the defaults")
	fs.StringVar(&o.catalogPath, "catalog", "", "TOML level catalog, the built-in campaign when empty")
	fs.StringVar(&o.levelKey, "level", "", "generate the catalog level with this key")
	fs.BoolVar(&o.dump, "dump", false, "print the world as text and exit")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "print the effective config as TOML and exit")
	fs.BoolVar(&o.campaign, "campaign", false, "generate every playable catalog level and print a summary")
	fs.BoolVar(&o.stats, "stats", false, "print generation metrics")
	fs.BoolVar(&o.route, "route", false, "show the start to end route in text output")
	fs.BoolVar(&o.debug, "debug", false, "write a debug log to "+logDir+"/"+logFileName)
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}
	return o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	logFile := setupLogging(o.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(o, os.Stdout); err != nil {
		log.Printf("cavegen: %v", err)
		fmt.Fprintf(os.Stderr, "cavegen: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run(o options, out io.Writer) error {
	cfg := world.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = world.LoadConfig(o.configPath); err != nil {
			return err
		}
	}

	if o.dumpConfig {
		data, err := cfg.MarshalTOML()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	catalog := level.DefaultCatalog()
	if o.catalogPath != "" {
		var err error
		if catalog, err = level.LoadCatalog(o.catalogPath); err != nil {
			return err
		}
	}

	stats := status.NewRegistry()

	if o.campaign {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runCampaign(ctx, catalog, cfg, o, stats, out)
	}

	colors := level.RandomPalette(rand.New(rand.NewSource(o.seed)))
	if o.levelKey != "" {
		e, ok := catalog.Lookup(o.levelKey)
		if !ok {
			return errors.Errorf("unknown level %q", o.levelKey)
		}
		if !e.Playable() {
			return errors.Errorf("level %q is a cutscene", o.levelKey)
		}
		o.width, o.height, o.difficulty = e.Width, e.Height, e.Difficulty
		colors = e.ColorsFor(rand.New(rand.NewSource(o.seed)))
	}

	gen := &world.Generator{Config: cfg, Stats: stats}

	if o.dump {
		w, err := gen.Generate(o.width, o.height, o.difficulty, o.seed)
		if err != nil {
			return err
		}
		log.Printf("generated %s seed=%d %dx%d", w.ID, w.Seed, w.Width, w.Height)
		fmt.Fprint(out, preview.ASCII(w, preview.Options{Nodes: true, Route: o.route}))
		return writeStats(o, stats, out)
	}

	v, err := newViewer(gen, o.width, o.height, o.difficulty, o.seed, colors)
	if err != nil {
		return err
	}
	if err := v.run(); err != nil {
		return err
	}
	return writeStats(o, stats, out)
}

func runCampaign(ctx context.Context, c *level.Catalog, cfg world.Config, o options, stats *status.Registry, out io.Writer) error {
	levels, err := level.GenerateCampaign(ctx, c, cfg, o.seed, stats)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tNAME\tSIZE\tDIFF\tNODES\tBLOCKS\tSEGMENTS\tCONNECTED\tID")
	for _, lv := range levels {
		w := lv.World
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%.2f\t%d\t%d\t%d\t%t\t%s\n",
			lv.Entry.Key, lv.Entry.Name, w.Width, w.Height, w.Difficulty,
			len(w.Nodes()), len(w.Blocks), len(w.Layout.Segments), w.Connected, w.ID)
		log.Printf("campaign level %s seed=%d id=%s", lv.Entry.Key, lv.Seed, w.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writeStats(o, stats, out)
}

func writeStats(o options, stats *status.Registry, out io.Writer) error {
	if !o.stats {
		return nil
	}
	fmt.Fprintln(out)
	_, err := stats.Snapshot().WriteTo(out)
	return err
}
