package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`\d[\d,]*(\.\d+)?`)

// IsValidObjectID reports whether id is a 24-character hex document id.
func IsValidObjectID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ParseLeadingPrice extracts the first numeral from a free-text price range
// ("350,000 - 420,000 USD" -> 350000). A string with no parsable numeral
// yields 0.
func ParseLeadingPrice(priceRange string) float64 {
	match := leadingNumber.FindString(priceRange)
	if match == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0
	}
	return n
}
