package cryptox

import (
	"math"
	"strings"
	"unicode"
)

// Punctuation is the ASCII punctuation set used by the strength checker and
// the generator.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// MinStrongLength is the length that earns the length criterion.
const MinStrongLength = 12

type Tier string

const (
	TierWeak       Tier = "Weak"
	TierModerate   Tier = "Moderate"
	TierStrong     Tier = "Strong"
	TierVeryStrong Tier = "Very Strong"
)

// StrengthReport is the outcome of CheckStrength.
type StrengthReport struct {
	Tier        Tier
	Score       int // 0..5, one point per satisfied criterion
	EntropyBits float64
	Suggestions []string
}

// CheckStrength scores password against five criteria: lowercase, uppercase,
// digit, punctuation and length >= MinStrongLength.
//
// Entropy is length * log2(charset), where charset adds 26/26/10/len(Punctuation)
// for each class actually present. An empty password has zero entropy.
func CheckStrength(password string) StrengthReport {
	var hasLower, hasUpper, hasDigit, hasPunct bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(Punctuation, r):
			hasPunct = true
		}
	}
	length := len([]rune(password))

	var r StrengthReport
	charset := 0
	if hasLower {
		r.Score++
		charset += 26
	} else {
		r.Suggestions = append(r.Suggestions, "Add lowercase letters")
	}
	if hasUpper {
		r.Score++
		charset += 26
	} else {
		r.Suggestions = append(r.Suggestions, "Add uppercase letters")
	}
	if hasDigit {
		r.Score++
		charset += 10
	} else {
		r.Suggestions = append(r.Suggestions, "Add digits")
	}
	if hasPunct {
		r.Score++
		charset += len(Punctuation)
	} else {
		r.Suggestions = append(r.Suggestions, "Add special characters")
	}
	if length >= MinStrongLength {
		r.Score++
	} else {
		r.Suggestions = append(r.Suggestions, "Use at least 12 characters")
	}

	if length > 0 && charset > 0 {
		r.EntropyBits = float64(length) * math.Log2(float64(charset))
	}
	r.Tier = tierFor(r.Score)
	return r
}

func tierFor(score int) Tier {
	switch {
	case score <= 2:
		return TierWeak
	case score == 3:
		return TierModerate
	case score == 4:
		return TierStrong
	default:
		return TierVeryStrong
	}
}
