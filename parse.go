package cliutil

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// ParseInt parses a base-10 integer, ignoring surrounding whitespace.
func ParseInt(ctx context.Context, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("input", s).Msg("Unhandled exception while parsing string as int")
		return 0, &IntegerParseError{Input: s, Err: err}
	}
	return n, nil
}
