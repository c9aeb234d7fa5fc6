// Package preferences persists small user preferences, such as the selected language,
// as key=value lines.
package preferences

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const fileName = "preferences.conf"

// File is a preference store backed by a key=value file.
type File struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

type Config struct {
	// Dir is the directory holding preferences.conf. It is created if missing.
	Dir string
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Dir == "" {
		errGrp = append(errGrp, errors.New("preferences directory is required"))
	}
	return errors.Join(errGrp...)
}

// New opens the preference file in cfg.Dir, loading any saved values.
func New(cfg *Config) (*File, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	f := &File{
		path:   filepath.Join(cfg.Dir, fileName),
		values: make(map[string]string),
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open preferences file: %w", err)
	}
	defer file.Close()

	values, err := parse(file)
	if err != nil {
		return fmt.Errorf("error reading preferences file: %w", err)
	}
	f.values = values
	log.Debug().Str("path", f.path).Int("entries", len(values)).Msg("preferences loaded")
	return nil
}

// Path returns the location of the preference file.
func (f *File) Path() string {
	return f.path
}

// Get returns the saved value for key.
func (f *File) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Set saves value under key and rewrites the file.
func (f *File) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, "=\n") {
		return fmt.Errorf("invalid preference key %q", key)
	}
	if strings.Contains(value, "\n") {
		return fmt.Errorf("preference %q: value cannot span lines", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.values[key]
	f.values[key] = value
	if err := f.flush(); err != nil {
		if existed {
			f.values[key] = previous
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// flush writes every value to a temp file and renames it over the preference file.
// Callers hold the write lock.
func (f *File) flush() error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), fileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp preferences file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp, f.values); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp preferences file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}
	return nil
}

func parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		values[key] = strings.TrimSpace(parts[1])
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func write(w io.Writer, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("# verifyboard user preferences\n"); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", k, values[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
