package cliutil

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{" -7\n", -7, false},
		{"+3", 3, false},
		{"", 0, true},
		{"4.2", 0, true},
		{"ten", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseInt(ctx, tc.in)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			var ierr *IntegerParseError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, tc.in, ierr.Input)
			assert.ErrorIs(t, err, ErrIntegerParse)
			assert.ErrorIs(t, err, strconv.ErrSyntax)
			assert.Equal(t, "Error parsing string as int", err.Error())
		})
	}
}
