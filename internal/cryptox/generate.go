package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"
)

// Classes selects the character classes a generated password draws from.
type Classes struct {
	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool
}

// AllClasses enables every class.
func AllClasses() Classes {
	return Classes{Lower: true, Upper: true, Digits: true, Symbols: true}
}

// Alphabet returns the union of the enabled classes. With nothing enabled it
// falls back to letters and digits.
func (c Classes) Alphabet() string {
	var s string
	if c.Lower {
		s += lowerChars
	}
	if c.Upper {
		s += upperChars
	}
	if c.Digits {
		s += digitChars
	}
	if c.Symbols {
		s += Punctuation
	}
	if s == "" {
		s = lowerChars + upperChars + digitChars
	}
	return s
}

// GeneratePassword draws length characters uniformly from the alphabet of
// classes using crypto/rand.
func GeneratePassword(length int, classes Classes) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: %d", common.ErrInvalidLength, length)
	}

	alphabet := classes.Alphabet()
	size := big.NewInt(int64(len(alphabet)))

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
