package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tables maps a language code to its nested translation table.
type Tables map[string]map[string]any

//go:embed locales/*
var embeddedLocales embed.FS

// DefaultTables loads the translation tables shipped with the binary.
func DefaultTables() (Tables, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return LoadTables(sub)
}

// LoadTables reads every .json, .yaml and .yml file at the root of fsys. The file name
// without its extension is the language code, e.g. en.json holds the "en" table.
func LoadTables(fsys fs.FS) (Tables, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read locale directory: %w", err)
	}

	tables := make(Tables)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		code := strings.TrimSuffix(name, path.Ext(name))
		if code == "" {
			continue
		}
		if _, exists := tables[code]; exists {
			return nil, fmt.Errorf("locale %s: language %q defined twice", name, code)
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}

		table := map[string]any{}
		if ext == ".json" {
			err = json.Unmarshal(data, &table)
		} else {
			err = yaml.Unmarshal(data, &table)
		}
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		tables[code] = table
	}

	if len(tables) == 0 {
		return nil, errNoTables
	}
	return tables, nil
}

// Languages returns the sorted language codes that have a table.
func (t Tables) Languages() []string {
	out := make([]string, 0, len(t))
	for code := range t {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// resolve walks the dot-delimited key through table. It returns false when a segment is
// missing or a non-table value is reached with segments left.
func resolve(table map[string]any, key string) (any, bool) {
	if table == nil {
		return nil, false
	}

	var current any = table
	for _, segment := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// display turns a resolved value into text. Falsy values (empty string, nil, false, zero)
// and nested tables are not displayable, so an intentionally empty string reads as missing.
func display(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, value != ""
	case bool:
		if !value {
			return "", false
		}
		return "true", true
	case map[string]any, []any:
		return "", false
	default:
		rv := reflect.ValueOf(value)
		if isNumber(rv.Kind()) && rv.IsZero() {
			return "", false
		}
		return fmt.Sprintf("%v", value), true
	}
}

// isNumber covers every integer, unsigned and float kind a JSON or YAML decoder may produce.
func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
