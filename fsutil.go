package cliutil

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
)

const dirMode = 0o775

// TempDir creates a temporary directory, passes it to fn and removes it
// recursively once fn returns. Removal errors are ignored.
func TempDir(fn func(dir string) error) error {
	dir, err := os.MkdirTemp("", "cliutil-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	return fn(dir)
}

// TempText creates a temporary file, passes the open handle to fn, then
// closes and removes it. Close and removal errors are ignored.
func TempText(fn func(f *os.File) error) error {
	f, err := os.CreateTemp("", "cliutil-")
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
		_ = os.RemoveAll(f.Name())
	}()
	return fn(f)
}

// EnsureDir creates dir and any missing parents when it does not exist.
func EnsureDir(ctx context.Context, dir string) error {
	_, err := os.Stat(dir)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &FileError{Path: dir, Msg: "Unable to inspect directory [" + dir + "]", Err: err}
	}

	zerolog.Ctx(ctx).Info().Str("dir", dir).Msgf("Creating directory: %q", dir)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return &FileError{Path: dir, Msg: "Unable to create directory [" + dir + "]", Err: err}
	}
	return nil
}
