package schema

import "strings"

// VillageKeyFor builds the grouping key for a claim, substituting the
// UnknownPlace sentinel for any missing component.
func VillageKeyFor(c *Claim) VillageKey {
	return VillageKey{
		State:    orUnknown(c.State),
		District: orUnknown(c.District),
		Village:  orUnknown(c.Village),
	}
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownPlace
	}
	return s
}

// LocationLabel renders a human-readable location for a claim, skipping
// components that are missing. Returns "Unknown" when nothing is known.
func LocationLabel(c *Claim) string {
	var parts []string
	for _, p := range []string{c.Village, c.District, c.State} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, ", ")
}

// Clamp01 bounds a score to the [0,1] interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
