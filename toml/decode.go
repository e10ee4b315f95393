package toml

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownKey is returned by strict decoding for keys with no matching
	// struct field
	ErrUnknownKey = errors.New("unknown key")

	// ErrType is returned when a value cannot be stored in the target field
	ErrType = errors.New("type mismatch")
)

// Unmarshal parses data and decodes it into v, ignoring unknown keys
func Unmarshal(data []byte, v any) error {
	return Decoder{}.Unmarshal(data, v)
}

// UnmarshalStrict is Unmarshal that rejects keys no struct field claims
func UnmarshalStrict(data []byte, v any) error {
	return Decoder{Strict: true}.Unmarshal(data, v)
}

// Decode maps a parsed document onto v, ignoring unknown keys
func Decode(data any, v any) error {
	return Decoder{}.Decode(data, v)
}

// Decoder maps parsed documents onto Go values via `toml` tags, falling back
// to field names
type Decoder struct {
	Strict bool
}

// Unmarshal parses data and decodes it into v
func (d Decoder) Unmarshal(data []byte, v any) error {
	doc, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return d.Decode(doc, v)
}

// Decode stores data into the value v points to. Fields absent from data keep
// their current value, so callers can pre-fill defaults
func (d Decoder) Decode(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return errors.New("decode target must be a non-nil pointer")
	}
	return d.decodeValue(data, val.Elem(), "")
}

func (d Decoder) decodeValue(data any, val reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	switch val.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return d.decodeValue(data, val.Elem(), path)

	case reflect.Struct:
		m, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, "table", data)
		}
		return d.decodeStruct(m, val, path)

	case reflect.Slice:
		items, ok := asList(data)
		if !ok {
			return mismatch(path, "array", data)
		}
		out := reflect.MakeSlice(val.Type(), len(items), len(items))
		for i, item := range items {
			if err := d.decodeValue(item, out.Index(i), join(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return errors.Errorf("%s: only string-keyed maps are supported", path)
		}
		m, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, "table", data)
		}
		if val.IsNil() {
			val.Set(reflect.MakeMap(val.Type()))
		}
		for k, item := range m {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := d.decodeValue(item, elem, join(path, k)); err != nil {
				return err
			}
			val.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), elem)
		}

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return mismatch(path, "integer", data)
		}
		if val.OverflowInt(n) {
			return errors.Wrapf(ErrType, "%s: %d overflows %s", path, n, val.Type())
		}
		val.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := data.(int64)
		if !ok {
			return mismatch(path, "integer", data)
		}
		if n < 0 || val.OverflowUint(uint64(n)) {
			return errors.Wrapf(ErrType, "%s: %d out of range for %s", path, n, val.Type())
		}
		val.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		switch n := data.(type) {
		case float64:
			if val.Kind() == reflect.Float32 && math.Abs(n) > math.MaxFloat32 {
				return errors.Wrapf(ErrType, "%s: %g overflows float32", path, n)
			}
			val.SetFloat(n)
		case int64:
			val.SetFloat(float64(n))
		default:
			return mismatch(path, "float", data)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return mismatch(path, "string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return mismatch(path, "boolean", data)
		}
		val.SetBool(b)

	default:
		return errors.Wrapf(ErrType, "%s: unsupported field kind %s", path, val.Kind())
	}

	return nil
}

func (d Decoder) decodeStruct(data map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	claimed := make(map[string]bool, len(data))

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := fieldKey(field)
		if key == "-" {
			continue
		}
		item, ok := data[key]
		if !ok {
			continue
		}
		claimed[key] = true
		if err := d.decodeValue(item, val.Field(i), join(path, key)); err != nil {
			return err
		}
	}

	if d.Strict && len(claimed) < len(data) {
		var unknown []string
		for k := range data {
			if !claimed[k] {
				unknown = append(unknown, join(path, k))
			}
		}
		sort.Strings(unknown)
		return errors.Wrap(ErrUnknownKey, strings.Join(unknown, ", "))
	}
	return nil
}

func fieldKey(f reflect.StructField) string {
	tag := f.Tag.Get("toml")
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

func asList(data any) ([]any, bool) {
	switch v := data.(type) {
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func mismatch(path, want string, got any) error {
	return errors.Wrapf(ErrType, "%s: expected %s, got %T", path, want, got)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
