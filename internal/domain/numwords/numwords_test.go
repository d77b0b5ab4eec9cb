package numwords_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonu0702/cozy-api/internal/domain/numwords"
)

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "Zero Only"},
		{"single digit", "7", "Seven Only"},
		{"teen", "14", "Fourteen Only"},
		{"round ten", "40", "Forty Only"},
		{"hundred with remainder", "567", "Five Hundred Sixty Seven Only"},
		{"round thousand", "1000", "One Thousand Only"},
		{"one lakh", "100000", "One Lakh Only"},
		{"one crore", "10000000", "One Crore Only"},
		{"full grouping", "1234567", "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven Only"},
		{"crore grouping", "123456789", "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Only"},
		{"hole in the middle", "10000500", "One Crore Five Hundred Only"},
		{"thousand crore", "10000000000", "One Thousand Crore Only"},
		{"lakh crore", "1000000000000", "One Lakh Crore Only"},
		{"full grouping above crore", "12345678901",
			"One Thousand Two Hundred Thirty Four Crore Fifty Six Lakh Seventy Eight Thousand Nine Hundred One Only"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := numwords.AmountToWords(decimal.RequireFromString(tc.amount))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Paise are rounded to the nearest rupee before spelling out.
func TestAmountToWords_RoundsFractions(t *testing.T) {
	got, err := numwords.AmountToWords(decimal.RequireFromString("99.50"))
	require.NoError(t, err)
	assert.Equal(t, "One Hundred Only", got)

	got, err = numwords.AmountToWords(decimal.RequireFromString("99.49"))
	require.NoError(t, err)
	assert.Equal(t, "Ninety Nine Only", got)
}

func TestAmountToWords_RejectsNegative(t *testing.T) {
	_, err := numwords.AmountToWords(decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, numwords.ErrNegativeAmount)
}
