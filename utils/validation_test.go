package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidObjectID(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want bool
	}{
		{"valid lowercase", "64a7f0c2e4b0a1b2c3d4e5f6", true},
		{"valid uppercase", "64A7F0C2E4B0A1B2C3D4E5F6", true},
		{"too short", "64a7f0c2e4b0a1b2c3d4e5f", false},
		{"too long", "64a7f0c2e4b0a1b2c3d4e5f6a", false},
		{"non-hex char", "64a7f0c2e4b0a1b2c3d4e5zz", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidObjectID(tc.id))
		})
	}
}

func TestParseLeadingPrice(t *testing.T) {
	cases := []struct {
		name       string
		priceRange string
		want       float64
	}{
		{"plain number", "350000", 350000},
		{"range with dash", "350000 - 420000", 350000},
		{"thousands separators", "350,000 - 420,000 USD", 350000},
		{"currency prefix", "$299000 to $350000", 299000},
		{"decimal", "1250.50 per month", 1250.50},
		{"no numeral", "negotiable", 0},
		{"empty", "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLeadingPrice(tc.priceRange))
		})
	}
}
