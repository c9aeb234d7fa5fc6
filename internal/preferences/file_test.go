package preferences

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		got, err := New(&Config{})
		require.Error(t, err)
		require.Nil(t, got)
	})

	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "prefs")
		got, err := New(&Config{Dir: dir})
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, fileName), got.Path())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})

	t.Run("loads existing file", func(t *testing.T) {
		dir := t.TempDir()
		content := "# comment\n\nlanguage = hi\nbroken line\n=orphan\ntheme=dark\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0644))

		got, err := New(&Config{Dir: dir})
		require.NoError(t, err)

		v, ok := got.Get("language")
		require.True(t, ok)
		require.Equal(t, "hi", v)

		v, ok = got.Get("theme")
		require.True(t, ok)
		require.Equal(t, "dark", v)

		_, ok = got.Get("broken line")
		require.False(t, ok)
	})
}

func TestFile_Set(t *testing.T) {
	dir := t.TempDir()
	store, err := New(&Config{Dir: dir})
	require.NoError(t, err)

	_, ok := store.Get("language")
	require.False(t, ok)

	require.NoError(t, store.Set("language", "pa"))
	require.NoError(t, store.Set("language", "hi"))
	require.NoError(t, store.Set("page_size", "25"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "# verifyboard user preferences\nlanguage=hi\npage_size=25\n", string(data))

	// a second store sees the persisted values
	reopened, err := New(&Config{Dir: dir})
	require.NoError(t, err)
	v, ok := reopened.Get("language")
	require.True(t, ok)
	require.Equal(t, "hi", v)

	// no temp files are left behind
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestFile_SetInvalid(t *testing.T) {
	store, err := New(&Config{Dir: t.TempDir()})
	require.NoError(t, err)

	tests := map[string]struct {
		key   string
		value string
	}{
		"empty key":      {key: " ", value: "x"},
		"key with equal": {key: "a=b", value: "x"},
		"multi line":     {key: "language", value: "en\nhi"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Error(t, store.Set(tt.key, tt.value))
		})
	}

	_, ok := store.Get("language")
	require.False(t, ok)
}

func TestFile_SetRollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := New(&Config{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, store.Set("language", "en"))

	// point the store at a directory that no longer exists
	store.path = filepath.Join(dir, "gone", fileName)

	require.Error(t, store.Set("language", "hi"))
	v, _ := store.Get("language")
	require.Equal(t, "en", v)

	require.Error(t, store.Set("theme", "dark"))
	_, ok := store.Get("theme")
	require.False(t, ok)
}

func TestParse(t *testing.T) {
	got, err := parse(strings.NewReader("a=1\n b = 2 \nc=x=y\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": "2", "c": "x=y"}, got)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	_, ok := m.Get("language")
	require.False(t, ok)

	require.NoError(t, m.Set("language", "hi"))
	v, ok := m.Get("language")
	require.True(t, ok)
	require.Equal(t, "hi", v)
}

func TestDir(t *testing.T) {
	dir, err := Dir()
	require.NoError(t, err)
	require.Equal(t, appDir, filepath.Base(dir))
}
