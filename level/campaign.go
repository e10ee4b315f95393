package level

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/cavegen/ident"
	"github.com/lixenwraith/cavegen/parameter"
	"github.com/lixenwraith/cavegen/status"
	"github.com/lixenwraith/cavegen/world"
)

// Generated is one playable level of a campaign with its world
type Generated struct {
	Entry  Entry
	Seed   int64
	Colors Colors
	World  *world.World
}

// GenerateCampaign builds a world for every playable level, in parallel
// Per-level seeds are drawn from seed up front, so the result does not depend
// on scheduling. Blocks and segments share one id source across all levels,
// and every world reports into stats when it is non-nil
func GenerateCampaign(ctx context.Context, c *Catalog, cfg world.Config, seed int64, stats *status.Registry) ([]Generated, error) {
	levels := c.Levels()
	out := make([]Generated, len(levels))

	seeds := rand.New(rand.NewSource(seed))
	for i, e := range levels {
		out[i].Entry = e
		out[i].Seed = seeds.Int63()
	}

	gen := &world.Generator{
		Config: cfg,
		IDs:    ident.NewSource(0),
		Stats:  stats,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parameter.CampaignParallelism)
	for i := range out {
		lv := &out[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, err := gen.Generate(lv.Entry.Width, lv.Entry.Height, lv.Entry.Difficulty, lv.Seed)
			if err != nil {
				return errors.Wrapf(err, "level %s", lv.Entry.Key)
			}
			lv.World = w
			lv.Colors = lv.Entry.ColorsFor(rand.New(rand.NewSource(lv.Seed)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
