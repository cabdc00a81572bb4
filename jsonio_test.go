package cliutil

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes numbers as json.Number", func(t *testing.T) {
		got, err := LoadJSON(ctx, strings.NewReader(`{"n": 12345678901234567890, "f": 1.5}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"n": json.Number("12345678901234567890"), "f": json.Number("1.5")}, got)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		_, err := LoadJSON(ctx, strings.NewReader(`{} {}`))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("allows trailing whitespace", func(t *testing.T) {
		got, err := LoadJSON(ctx, strings.NewReader("[1]\n\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{json.Number("1")}, got)
	})

	t.Run("reader failure is a parse error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := LoadJSON(ctx, iotest.ErrReader(boom))
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, boom)
	})
}

func TestLoadJSONString(t *testing.T) {
	ctx := context.Background()

	got, err := LoadJSONString(ctx, `"plain"`)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	_, err = LoadJSONString(ctx, `{"a":`)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, `{"a":`, perr.Input)
	assert.Contains(t, perr.Error(), "Error loading JSON")

	long := strings.Repeat("x", 200)
	_, err = LoadJSONString(ctx, long)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, strings.Repeat("x", snippetLimit)+"...", perr.Input)
}

func TestDumpJSON(t *testing.T) {
	out, err := DumpJSON(map[string]any{"b": 1, "a": "<x>"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"<x>","b":1}`, out)

	_, err = DumpJSON(make(chan int))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	t.Run("reads a regular file", func(t *testing.T) {
		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("missing path", func(t *testing.T) {
		missing := filepath.Join(dir, "nope")
		_, err := ReadFile(missing)
		require.Error(t, err)
		assert.Equal(t, "Path ["+missing+"] is not a file", err.Error())
		assert.ErrorIs(t, err, ErrFile)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadFile(dir)
		var ferr *FileError
		require.True(t, errors.As(err, &ferr))
		assert.Equal(t, dir, ferr.Path)
		assert.ErrorIs(t, err, errNotRegular)
	})
}
