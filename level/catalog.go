// Package level holds the campaign table: playable levels with their world
// size, difficulty and colors, interleaved with cutscene entries
package level

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cavegen/cave"
	"github.com/lixenwraith/cavegen/toml"
)

// ErrCatalog wraps every malformed catalog
var ErrCatalog = errors.New("invalid level catalog")

//go:embed catalog.toml
var defaultCatalog []byte

// Colors is a wall and background color pair, 0xRRGGBB
type Colors struct {
	Wall       uint32 `toml:"wall,hex"`
	Background uint32 `toml:"background,hex"`
}

// Entry is one step of the campaign. Entries with a size are playable levels;
// entries with a Cutscene index are story slides
type Entry struct {
	Key        string  `toml:"key"`
	Next       string  `toml:"next,omitempty"`
	Cutscene   string  `toml:"cutscene,omitempty"`
	Name       string  `toml:"name,omitempty"`
	Background string  `toml:"background,omitempty"`
	Difficulty float64 `toml:"difficulty,omitempty"`
	Width      int     `toml:"width,omitempty"`
	Height     int     `toml:"height,omitempty"`

	// Colors is nil when the level takes a random palette
	Colors *Colors `toml:"colors"`
}

// Playable reports whether the entry is a level rather than a cutscene
func (e Entry) Playable() bool {
	return e.Width > 0 && e.Height > 0
}

// Catalog is the ordered campaign table
type Catalog struct {
	Entries []Entry `toml:"level"`

	index map[string]int
}

// DefaultCatalog returns the built-in campaign
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog decodes and validates a TOML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.UnmarshalStrict(data, &c); err != nil {
		return nil, decodeError{err}
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return &c, nil
}

// decodeError is an ErrCatalog that still matches the toml sentinel behind it
type decodeError struct {
	cause error
}

func (e decodeError) Error() string {
	return ErrCatalog.Error() + ": " + e.cause.Error()
}

func (e decodeError) Unwrap() []error {
	return []error{ErrCatalog, e.cause}
}

// LoadCatalog reads a catalog file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

func (c *Catalog) build() error {
	if len(c.Entries) == 0 {
		return errors.Wrap(ErrCatalog, "no entries")
	}

	c.index = make(map[string]int, len(c.Entries))
	for i, e := range c.Entries {
		if e.Key == "" {
			return errors.Wrapf(ErrCatalog, "entry %d has no key", i)
		}
		if _, dup := c.index[e.Key]; dup {
			return errors.Wrapf(ErrCatalog, "duplicate key %q", e.Key)
		}
		c.index[e.Key] = i

		switch {
		case e.Playable() && e.Cutscene != "":
			return errors.Wrapf(ErrCatalog, "%q has both a size and a cutscene", e.Key)
		case !e.Playable() && e.Cutscene == "":
			return errors.Wrapf(ErrCatalog, "%q has neither a size nor a cutscene", e.Key)
		case !(e.Difficulty >= 0 && e.Difficulty <= 1):
			return errors.Wrapf(ErrCatalog, "%q difficulty %g outside [0, 1]", e.Key, e.Difficulty)
		}
	}

	for _, e := range c.Entries {
		if e.Next == "" {
			continue
		}
		if _, ok := c.index[e.Next]; !ok {
			return errors.Wrapf(ErrCatalog, "%q continues to unknown %q", e.Key, e.Next)
		}
	}
	return nil
}

// Lookup finds an entry by key
func (c *Catalog) Lookup(key string) (Entry, bool) {
	i, ok := c.index[key]
	if !ok {
		return Entry{}, false
	}
	return c.Entries[i], true
}

// Levels returns the playable entries in table order
func (c *Catalog) Levels() []Entry {
	var out []Entry
	for _, e := range c.Entries {
		if e.Playable() {
			out = append(out, e)
		}
	}
	return out
}

// Chain follows Next links from key, stopping at the last entry or at the
// first entry already visited
func (c *Catalog) Chain(key string) []Entry {
	var out []Entry
	seen := make(map[string]bool)
	for key != "" && !seen[key] {
		e, ok := c.Lookup(key)
		if !ok {
			break
		}
		seen[key] = true
		out = append(out, e)
		key = e.Next
	}
	return out
}

// Palettes is the pool random level colors are drawn from
var Palettes = []Colors{
	{Wall: 0x4a4e69, Background: 0x5a5e79},
	{Wall: 0x8c1c13, Background: 0xbf4342},
	{Wall: 0x0b2545, Background: 0x13315c},
	{Wall: 0x774936, Background: 0x8a5a44},
	{Wall: 0x450920, Background: 0xa53860},
	{Wall: 0x081c15, Background: 0x1b4332},
	{Wall: 0x240046, Background: 0x3c096c},
}

// RandomPalette picks one of Palettes with a single draw
func RandomPalette(rng cave.Rand) Colors {
	i := int(rng.Float64() * float64(len(Palettes)))
	return Palettes[min(i, len(Palettes)-1)]
}

// ColorsFor returns the entry's colors, or a random palette when unset
func (e Entry) ColorsFor(rng cave.Rand) Colors {
	if e.Colors != nil {
		return *e.Colors
	}
	return RandomPalette(rng)
}
