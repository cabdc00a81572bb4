package cliutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/hatsunemiku3939/cliutil/pkg/jsonschema"
)

var errNotRegular = errors.New("not a regular file")

// LoadJSON decodes exactly one JSON value from r. Numbers decode as
// json.Number. Any failure, including trailing data, is a *ParseError.
func LoadJSON(ctx context.Context, r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Unhandled exception while loading JSON")
		return nil, &ParseError{Err: err}
	}
	return decodeJSON(ctx, data)
}

// LoadJSONString is LoadJSON for in-memory text.
func LoadJSONString(ctx context.Context, s string) (any, error) {
	return decodeJSON(ctx, []byte(s))
}

func decodeJSON(ctx context.Context, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	err := dec.Decode(&v)
	if err == nil {
		if _, tokErr := dec.Token(); tokErr != io.EOF {
			err = fmt.Errorf("invalid data after top-level value at offset %d", dec.InputOffset())
		}
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("input", snippet(string(data))).Msg("Unhandled exception while loading JSON")
		return nil, &ParseError{Input: snippet(string(data)), Err: err}
	}
	return v, nil
}

// DumpJSON renders v as compact JSON without HTML escaping.
func DumpJSON(v any) (string, error) {
	return jsonschema.Encode(v)
}

// ReadFile returns the contents of a regular file.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &FileError{Path: path, Msg: fmt.Sprintf("Path [%s] is not a file", path), Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &FileError{Path: path, Msg: fmt.Sprintf("Path [%s] is not a file", path), Err: errNotRegular}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Msg: fmt.Sprintf("Unable to open file [%s]", path), Err: err}
	}
	return string(data), nil
}
