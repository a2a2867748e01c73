package cryptox

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		score    int
		tier     Tier
	}{
		{"empty", "", 0, TierWeak},
		{"lower only", "abc", 1, TierWeak},
		{"long lower", "aaaaaaaaaaaa", 2, TierWeak},
		{"lower upper digit", "Abc123", 3, TierModerate},
		{"four classes short", "Abc1!", 4, TierStrong},
		{"everything", "Abc12345!@#$", 5, TierVeryStrong},
		{"long no symbols", "Abcdefgh1234", 4, TierStrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckStrength(tt.password)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.tier, r.Tier)
			assert.Len(t, r.Suggestions, 5-tt.score)
		})
	}
}

func TestCheckStrength_Entropy(t *testing.T) {
	assert.Zero(t, CheckStrength("").EntropyBits)
	assert.Zero(t, CheckStrength("    ").EntropyBits, "no counted class means zero charset")

	r := CheckStrength("abc")
	assert.InDelta(t, 3*math.Log2(26), r.EntropyBits, 1e-9)

	r = CheckStrength("Abc12345!@#$")
	assert.InDelta(t, 12*math.Log2(26+26+10+32), r.EntropyBits, 1e-9)
}

func TestCheckStrength_SuggestionsNameMissingClasses(t *testing.T) {
	r := CheckStrength("abc")
	joined := strings.Join(r.Suggestions, "|")
	assert.Contains(t, joined, "uppercase")
	assert.Contains(t, joined, "digits")
	assert.Contains(t, joined, "special")
	assert.Contains(t, joined, "12 characters")
	assert.NotContains(t, joined, "lowercase")
}

func TestPunctuationSetSize(t *testing.T) {
	assert.Len(t, Punctuation, 32)
}
