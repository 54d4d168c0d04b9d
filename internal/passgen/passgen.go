// Package passgen generates random passwords from a configurable character
// pool. Sampling uses crypto/rand: the output feeds directly into credential
// material, so a non-cryptographic source is not acceptable here.
package passgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Length bounds for generated passwords. Requests outside the range are
// clamped rather than rejected.
const (
	MinLength = 8
	MaxLength = 32
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
	symbols = "!@#$%^&*()_+~`|}{[]:;?><,./-="

	// Characters easily confused with one another in common fonts.
	lookalikes = "Il1O0"
)

// Categories selects which character classes contribute to the pool.
type Categories struct {
	Letters bool
	Digits  bool
	Symbols bool
}

// Generate draws length characters independently and uniformly at random
// from the pool assembled from the selected categories. When
// excludeLookalikes is set, the characters I, l, 1, O and 0 are removed
// from the pool before sampling. An empty pool (no category selected)
// yields an empty string; this is a defined result, not an error.
func Generate(length int, cats Categories, excludeLookalikes bool) (string, error) {
	if length < MinLength {
		length = MinLength
	}
	if length > MaxLength {
		length = MaxLength
	}

	var pool string
	if cats.Letters {
		pool += letters
	}
	if cats.Digits {
		pool += digits
	}
	if cats.Symbols {
		pool += symbols
	}

	if excludeLookalikes {
		pool = stripChars(pool, lookalikes)
	}

	if pool == "" {
		return "", nil
	}

	password := make([]byte, length)
	for i := range password {
		idx, err := randInt(len(pool))
		if err != nil {
			return "", err
		}
		password[i] = pool[idx]
	}

	return string(password), nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("error reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

func stripChars(input, toRemove string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !strings.ContainsRune(toRemove, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
