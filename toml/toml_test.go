package toml

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRange struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

type testLevel struct {
	Name       string  `toml:"name"`
	Width      int     `toml:"width"`
	Difficulty float64 `toml:"difficulty"`
	Color      uint32  `toml:"color,hex"`
}

type testConfig struct {
	Seed      int64       `toml:"seed"`
	Fill      string      `toml:"fill"`
	Debug     bool        `toml:"debug"`
	Threshold int         `toml:"threshold"`
	Width     testRange   `toml:"edge_width"`
	Tags      []string    `toml:"tags,omitempty"`
	Levels    []testLevel `toml:"level"`
	Internal  string      `toml:"-"`
}

const document = `
# generation settings
seed = -42
fill = "simplex"   # noise source
debug = true
threshold = 4

[edge_width]
min = 5
max = 10.5

[[level]]
name = "1.1"
width = 90
difficulty = 0.3
color = 0x582f0e

[[level]]
name = "2.1"
width = 80
difficulty = 5e-1
color = 0x7f4f24
`

func TestUnmarshal_Document(t *testing.T) {
	var cfg testConfig
	require.NoError(t, UnmarshalStrict([]byte(document), &cfg))

	assert.Equal(t, int64(-42), cfg.Seed)
	assert.Equal(t, "simplex", cfg.Fill)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 4, cfg.Threshold)
	assert.Equal(t, testRange{Min: 5, Max: 10.5}, cfg.Width, "integer widens to float")

	require.Len(t, cfg.Levels, 2)
	assert.Equal(t, testLevel{Name: "1.1", Width: 90, Difficulty: 0.3, Color: 0x582f0e}, cfg.Levels[0])
	assert.Equal(t, 0.5, cfg.Levels[1].Difficulty)
	assert.Equal(t, uint32(0x7f4f24), cfg.Levels[1].Color)
}

func TestUnmarshal_KeepsDefaults(t *testing.T) {
	cfg := testConfig{Fill: "uniform", Threshold: 4}
	require.NoError(t, Unmarshal([]byte("threshold = 5\n"), &cfg))

	assert.Equal(t, "uniform", cfg.Fill)
	assert.Equal(t, 5, cfg.Threshold)
}

func TestUnmarshalStrict_UnknownKeys(t *testing.T) {
	input := "thresold = 5\n[edge_width]\nmin = 1\nmax = 2\n"

	var loose testConfig
	require.NoError(t, Unmarshal([]byte(input), &loose))
	assert.Equal(t, 2.0, loose.Width.Max)

	var strict testConfig
	err := UnmarshalStrict([]byte(input), &strict)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKey))
	assert.Contains(t, err.Error(), "thresold")
}

func TestUnmarshalStrict_NestedUnknownKey(t *testing.T) {
	var cfg testConfig
	err := UnmarshalStrict([]byte("[edge_width]\nmin = 1\nmid = 3\n"), &cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKey))
	assert.Contains(t, err.Error(), "edge_width.mid")
}

func TestDecode_TypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"string into int", `threshold = "four"`},
		{"float into int", `threshold = 4.5`},
		{"int into bool", `debug = 1`},
		{"scalar into table", `edge_width = 3`},
		{"negative into uint", "[[level]]\ncolor = -1"},
		{"overflow uint32", "[[level]]\ncolor = 0x1ffffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg testConfig
			err := Unmarshal([]byte(tt.input), &cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrType), "%v", err)
		})
	}
}

func TestDecode_TargetValidation(t *testing.T) {
	var cfg testConfig
	assert.Error(t, Decode(map[string]any{}, cfg))
	assert.Error(t, Decode(map[string]any{}, (*testConfig)(nil)))
}

func TestDecode_MapsAndPointers(t *testing.T) {
	type target struct {
		Ranges map[string]*testRange `toml:"ranges"`
		Extra  map[string]any        `toml:"extra"`
	}
	input := `
[ranges.width]
min = 1
max = 2

[ranges.ampl]
min = 3
max = 4

[extra]
note = "x"
count = 7
`
	var out target
	require.NoError(t, UnmarshalStrict([]byte(input), &out))

	require.Len(t, out.Ranges, 2)
	assert.Equal(t, 4.0, out.Ranges["ampl"].Max)
	assert.Equal(t, "x", out.Extra["note"])
	assert.Equal(t, int64(7), out.Extra["count"])
}

func TestParser_Syntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"duplicate key", "a = 1\na = 2"},
		{"missing equals", "a 1"},
		{"unterminated string", `a = "abc`},
		{"bad integer", "a = 12-3"},
		{"bad float", "a = 1.2.3"},
		{"table over value", "a = 1\n[a]"},
		{"two values on a line", "a = 1 b = 2"},
		{"unclosed header", "[a\nb = 1"},
		{"unclosed array", "a = [1, 2"},
		{"stray character", "a = @"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser([]byte(tt.input)).Parse()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax), "%v", err)
		})
	}
}

func TestParser_ErrorNamesToken(t *testing.T) {
	_, err := NewParser([]byte("a = 12-3")).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `integer "12-3"`)

	_, err = NewParser([]byte("a = [1\n")).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end of input")

	assert.Equal(t, "']'", Token{Type: TokenRBracket, Literal: "]"}.String())
	assert.Equal(t, "token(99)", TokenType(99).String())
}

func TestParser_Structures(t *testing.T) {
	input := `
title = "caves"
a.b.c = 1
inline = { x = 1, y = [2, 3], z = { w = "deep" } }
multi = [
  1,
  2,
]
hex = 0xff
oct = 0o17
bin = 0b101

[[run]]
n = 1
[run.sub]
k = true

[[run]]
n = 2
`
	doc, err := NewParser([]byte(input)).Parse()
	require.NoError(t, err)

	assert.Equal(t, "caves", doc["title"])
	assert.Equal(t, int64(1), doc["a"].(map[string]any)["b"].(map[string]any)["c"])

	inline := doc["inline"].(map[string]any)
	assert.Equal(t, []any{int64(2), int64(3)}, inline["y"])
	assert.Equal(t, "deep", inline["z"].(map[string]any)["w"])

	assert.Equal(t, []any{int64(1), int64(2)}, doc["multi"])
	assert.Equal(t, int64(255), doc["hex"])
	assert.Equal(t, int64(15), doc["oct"])
	assert.Equal(t, int64(5), doc["bin"])

	runs := doc["run"].([]map[string]any)
	require.Len(t, runs, 2)
	assert.Equal(t, true, runs[0]["sub"].(map[string]any)["k"])
	assert.Equal(t, int64(2), runs[1]["n"])
}

func TestLexer_Classification(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"42", TokenInteger},
		{"-7", TokenInteger},
		{"0x582f0e", TokenInteger},
		{"0.39", TokenFloat},
		{"1e-3", TokenFloat},
		{"true", TokenBool},
		{"fuel_distance", TokenIdent},
		{"e", TokenIdent},
		{"123abc", TokenIdent},
		{`"quoted"`, TokenString},
	}
	for _, tt := range tests {
		tok := NewLexer([]byte(tt.input)).NextToken()
		assert.Equal(t, tt.want, tok.Type, "%s", tt.input)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	in := testConfig{
		Seed:      7,
		Fill:      "uniform",
		Threshold: 4,
		Width:     testRange{Min: 5, Max: 10},
		Levels: []testLevel{
			{Name: "1.1", Width: 90, Difficulty: 0.3, Color: 0x582f0e},
			{Name: "cut \"scene\"", Width: 0, Difficulty: 0, Color: 0},
		},
		Internal: "hidden",
	}

	out, err := Marshal(in)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "color = 0x582f0e")
	assert.Contains(t, text, "max = 10.0")
	assert.NotContains(t, text, "hidden")
	assert.NotContains(t, text, "tags", "omitempty")
	assert.Less(t, strings.Index(text, "threshold"), strings.Index(text, "[edge_width]"), "scalars first")

	var back testConfig
	require.NoError(t, UnmarshalStrict(out, &back))
	in.Internal = ""
	assert.Equal(t, in, back)
}

func TestMarshal_MapsAndQuoting(t *testing.T) {
	out, err := Marshal(map[string]any{
		"b":     1,
		"a":     "x",
		"1.1":   true,
		"true":  2,
		"table": map[string]int{"z": 1},
	})
	require.NoError(t, err)

	want := `"1.1" = true
a = "x"
b = 1
"true" = 2

[table]
z = 1
`
	assert.Equal(t, want, string(out))
}

func TestMarshal_RootValidation(t *testing.T) {
	_, err := Marshal(42)
	assert.Error(t, err)

	_, err = Marshal((*testConfig)(nil))
	assert.Error(t, err)
}
