package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateOfBirth(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"canonical passes through", "1992-08-12", "1992-08-12"},
		{"compact full year", "19920812", "1992-08-12"},
		{"two digit year maps to 1900s", "920812", "1992-08-12"},
		{"two digit year maps to 2000s", "250101", "2025-01-01"},
		{"boundary year 30 is 1930", "300101", "1930-01-01"},
		{"boundary year 29 is 2029", "290101", "2029-01-01"},
		{"surrounding whitespace trimmed", " 1995-05-10 ", "1995-05-10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDateOfBirth(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeDateOfBirthRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"abc",
		"2023-02-30", // not a real calendar date
		"20230230",
		"230230",
		"1992/08/12",
		"1992-8-12",
		"199208123",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := NormalizeDateOfBirth(in)
			assert.Error(t, err)
		})
	}
}
