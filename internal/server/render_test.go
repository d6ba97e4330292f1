package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{25, "$25"},
		{999, "$999"},
		{1000, "$1,000"},
		{25500.75, "$25,501"},
		{1234567, "$1,234,567"},
		{-4200, "-$4,200"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, formatUSD(tc.amount))
	}
}

func TestDisplayNameFromEmail(t *testing.T) {
	assert.Equal(t, "jordan", displayNameFromEmail("jordan@example.com"))
	assert.Equal(t, "no-at-sign", displayNameFromEmail("no-at-sign"))
	assert.Equal(t, "", displayNameFromEmail(""))
}

func TestValidateRegisterInput(t *testing.T) {
	t.Run("valid input has no errors", func(t *testing.T) {
		errs := validateRegisterInput("Ada", "Lovelace", "ada@example.com", "Sup3r$ecretPass", "Sup3r$ecretPass")
		assert.Empty(t, errs)
	})

	t.Run("weak password flagged", func(t *testing.T) {
		errs := validateRegisterInput("Ada", "Lovelace", "ada@example.com", "password", "password")
		assert.Contains(t, errs, "password")
	})

	t.Run("mismatched confirmation flagged", func(t *testing.T) {
		errs := validateRegisterInput("Ada", "Lovelace", "ada@example.com", "Sup3r$ecretPass", "different")
		assert.Contains(t, errs, "confirm_password")
	})

	t.Run("missing names and bad email flagged", func(t *testing.T) {
		errs := validateRegisterInput("", "", "nope", "Sup3r$ecretPass", "Sup3r$ecretPass")
		assert.Contains(t, errs, "given_name")
		assert.Contains(t, errs, "family_name")
		assert.Contains(t, errs, "email")
	})
}
