package toml

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Marshal returns the TOML encoding of v, which must be a struct or a
// string-keyed map (or a pointer to one)
//
// Struct fields keep declaration order, map keys are sorted. Scalars of a
// table precede its sub-tables. Nil pointers are skipped, `omitempty` skips
// zero values, and `hex` writes integers as 0x-prefixed hex
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes TOML documents to a stream
type Encoder struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes v as one document
func (e *Encoder) Encode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errors.New("toml: cannot encode nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return errors.Errorf("toml: root must be a struct or map, got %s", rv.Kind())
	}

	e.buf.Reset()
	if err := e.table(rv, ""); err != nil {
		return err
	}
	_, err := e.w.Write(e.buf.Bytes())
	return err
}

type entry struct {
	key string
	val reflect.Value
	hex bool
}

func (e *Encoder) table(rv reflect.Value, prefix string) error {
	entries, err := collect(rv)
	if err != nil {
		return err
	}

	var tables []entry
	for _, en := range entries {
		if isTable(en.val) {
			tables = append(tables, en)
			continue
		}
		e.key(en.key)
		e.buf.WriteString(" = ")
		if err := e.value(en.val, en.hex); err != nil {
			return errors.Wrapf(err, "key %s", join(prefix, en.key))
		}
		e.buf.WriteByte('\n')
	}

	for _, en := range tables {
		full := join(prefix, quoteKey(en.key))
		if en.val.Kind() == reflect.Slice || en.val.Kind() == reflect.Array {
			for i := 0; i < en.val.Len(); i++ {
				elem := indirect(en.val.Index(i))
				if !elem.IsValid() {
					continue
				}
				fmt.Fprintf(&e.buf, "\n[[%s]]\n", full)
				if err := e.table(elem, full); err != nil {
					return err
				}
			}
			continue
		}
		fmt.Fprintf(&e.buf, "\n[%s]\n", full)
		if err := e.table(en.val, full); err != nil {
			return err
		}
	}
	return nil
}

// collect lists the encodable entries of a struct or map in output order
func collect(rv reflect.Value) ([]entry, error) {
	var out []entry

	if rv.Kind() == reflect.Map {
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.Errorf("toml: map key must be string, got %s", rv.Type().Key())
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			if v := indirect(rv.MapIndex(k)); v.IsValid() {
				out = append(out, entry{key: k.String(), val: v})
			}
		}
		return out, nil
	}

	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		v := indirect(rv.Field(i))
		if !v.IsValid() {
			continue
		}
		if hasOption(opts, "omitempty") && v.IsZero() {
			continue
		}
		out = append(out, entry{key: name, val: v, hex: hasOption(opts, "hex")})
	}
	return out, nil
}

func (e *Encoder) value(v reflect.Value, hex bool) error {
	switch v.Kind() {
	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(v.Bool()))

	case reflect.String:
		e.str(v.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if hex && v.Int() >= 0 {
			fmt.Fprintf(&e.buf, "0x%06x", v.Int())
		} else {
			e.buf.WriteString(strconv.FormatInt(v.Int(), 10))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if hex {
			fmt.Fprintf(&e.buf, "0x%06x", v.Uint())
		} else {
			e.buf.WriteString(strconv.FormatUint(v.Uint(), 10))
		}

	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(v.Float(), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		e.buf.WriteString(s)

	case reflect.Slice, reflect.Array:
		e.buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			elem := indirect(v.Index(i))
			if !elem.IsValid() {
				return errors.New("nil array element")
			}
			if err := e.value(elem, hex); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')

	default:
		return errors.Errorf("unsupported type %s", v.Type())
	}
	return nil
}

func (e *Encoder) key(k string) {
	e.buf.WriteString(quoteKey(k))
}

func (e *Encoder) str(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&e.buf, `\u%04X`, r)
			} else {
				e.buf.WriteRune(r)
			}
		}
	}
	e.buf.WriteByte('"')
}

// indirect unwraps interfaces and pointers; nil yields an invalid Value
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isTable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct, reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return false
		}
		elem := indirect(v.Index(0))
		return elem.Kind() == reflect.Struct || elem.Kind() == reflect.Map
	}
	return false
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// quoteKey quotes keys the lexer would not read back as a bare key: anything
// outside A-Za-z0-9_-, booleans, and words starting like a number
func quoteKey(s string) string {
	bare := s != "" && s != "true" && s != "false"
	for _, r := range s {
		if !(isAlpha(r) || isDigit(r) || r == '_' || r == '-') {
			bare = false
			break
		}
	}
	if bare && (isDigit(rune(s[0])) || s[0] == '-' || s[0] == '+') {
		bare = false
	}
	if bare {
		return s
	}
	return strconv.Quote(s)
}
