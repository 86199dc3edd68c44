package surveys

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	slugSuffixLength = 6
	base36           = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases title and collapses every run of characters outside
// [a-z0-9] into a single dash.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// NewSlug builds the public slug for a survey: the slugified title followed by
// a random base36 suffix.
func NewSlug(title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "untitled"
	}

	suffix, err := randomBase36(slugSuffixLength)
	if err != nil {
		return "", fmt.Errorf("error generating slug suffix: %w", err)
	}

	return base + "-" + suffix, nil
}

func randomBase36(length int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(base36)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(base36[n.Int64()])
	}
	return b.String(), nil
}
