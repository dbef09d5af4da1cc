package search

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_Parse(t *testing.T) {
	rules, err := DefaultRules()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(rules.rulesFor(ActionPrice)), 18)
	assert.NotEmpty(t, rules.rulesFor(ActionBlock))
	assert.NotEmpty(t, rules.rulesFor(ActionNormalize))
	assert.NotEmpty(t, rules.UpstreamFilter.AllowedTypes)
}

func TestRules_FirstMatchWinsInTableOrder(t *testing.T) {
	rules := MustDefaultRules()

	rule, ok := rules.First(ActionPrice, "David Lloyd Studio Wimbledon")
	require.True(t, ok)
	assert.Equal(t, "david lloyd studio", rule.Pattern)

	rule, ok = rules.First(ActionPrice, "David Lloyd Chigwell")
	require.True(t, ok)
	assert.Equal(t, "david lloyd", rule.Pattern)

	rule, ok = rules.First(ActionPrice, "The Gym Group Leeds")
	require.True(t, ok)
	assert.Equal(t, "the gym group", rule.Pattern)

	_, ok = rules.First(ActionPrice, "")
	assert.False(t, ok)
}

func TestParseRules_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown action", `listing_rules: [{pattern: "x", action: explode}]`},
		{"price without monthly", `listing_rules: [{pattern: "x", action: price}]`},
		{"normalize without display", `listing_rules: [{pattern: "x", action: normalize}]`},
		{"bad regex", `listing_rules: [{pattern: "(", action: normalize, payload: {display: "X"}}]`},
		{"empty pattern", `listing_rules: [{pattern: "", action: block}]`},
		{"not yaml", `listing_rules: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRules), "got %v", err)
		})
	}
}

func TestLoadRules_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `listing_rules:
  - {pattern: "Local Gym", action: price, payload: {monthly: 15}}
placeholder_addresses: ["nowhere"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	rule, ok := rules.First(ActionPrice, "THE LOCAL GYM")
	require.True(t, ok)
	assert.Equal(t, 15.0, rule.Payload.Monthly)
	assert.True(t, rules.IsPlaceholderAddress("Nowhere", ""))

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRules_IsPlaceholderAddress(t *testing.T) {
	rules := MustDefaultRules()

	assert.True(t, rules.IsPlaceholderAddress("", "Leeds"))
	assert.True(t, rules.IsPlaceholderAddress("  ", ""))
	assert.True(t, rules.IsPlaceholderAddress("Leeds", "leeds"))
	assert.True(t, rules.IsPlaceholderAddress("United Kingdom", "Leeds"))
	assert.False(t, rules.IsPlaceholderAddress("12 Briggate, Leeds", "Leeds"))
}
