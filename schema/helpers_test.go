package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVillageKeyFor tests grouping key construction.
func TestVillageKeyFor(t *testing.T) {
	t.Run("full location", func(t *testing.T) {
		c := &Claim{State: "Madhya Pradesh", District: "Mandla", Village: "Salghati"}
		assert.Equal(t, "Madhya Pradesh|Mandla|Salghati", VillageKeyFor(c).String())
	})

	t.Run("missing components substituted", func(t *testing.T) {
		c := &Claim{Village: "Salghati"}
		assert.Equal(t, "unknown|unknown|Salghati", VillageKeyFor(c).String())
	})

	t.Run("whitespace treated as missing", func(t *testing.T) {
		c := &Claim{State: "  ", Village: "v"}
		assert.Equal(t, "unknown|unknown|v", VillageKeyFor(c).String())
	})
}

// TestLocationLabel tests human-readable location rendering.
func TestLocationLabel(t *testing.T) {
	full := &Claim{State: "Madhya Pradesh", District: "Mandla", Village: "Salghati"}
	assert.Equal(t, "Salghati, Mandla, Madhya Pradesh", LocationLabel(full))

	partial := &Claim{District: "Mandla"}
	assert.Equal(t, "Mandla", LocationLabel(partial))

	assert.Equal(t, "Unknown", LocationLabel(&Claim{}))
}

// TestClamp01 tests score bounding.
func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 0.0, Clamp01(0.0))
	assert.Equal(t, 0.5, Clamp01(0.5))
	assert.Equal(t, 1.0, Clamp01(1.0))
	assert.Equal(t, 1.0, Clamp01(1.5))
}
