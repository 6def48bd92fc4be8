// Package schema has configs, models and shared constants for all parts of sifarish.
package schema

import "strings"

// UnknownPlace is the sentinel used for missing location components so that
// claims lacking a state, district or village still group deterministically.
const UnknownPlace = "unknown"

// Flag is a tri-state indicator for optional claim attributes. Absent data is
// represented explicitly as unknown rather than silently treated as false.
type Flag string

// All flag states supported.
const (
	FlagUnknown Flag = "unknown" // default
	FlagYes     Flag = "yes"
	FlagNo      Flag = "no"
)

// IsYes reports whether the flag is affirmatively set.
func (f Flag) IsYes() bool { return f == FlagYes }

// IsNo reports whether the flag is affirmatively unset.
func (f Flag) IsNo() bool { return f == FlagNo }

// Known reports whether the flag carries any information at all.
func (f Flag) Known() bool { return f == FlagYes || f == FlagNo }

// AssetFlags captures what is known about a claimant's household assets.
// Each field is tri-state; ingestion sources rarely report all of them.
type AssetFlags struct {
	Housing         Flag `json:"housing"`          // has pucca housing
	WaterSource     Flag `json:"water_source"`     // has a well, pond or other water body
	ForestLand      Flag `json:"forest_land"`      // holds forest land under the claim
	ProduceGatherer Flag `json:"produce_gatherer"` // household collects minor forest produce
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Claim is one Forest Rights Act land-rights record. Claims are read-only
// inputs to the engine; they are never mutated.
type Claim struct {
	ID            string     // Unique claim identifier
	HolderName    string     // Patta holder name (optional)
	LandArea      any        // Number, or free text with an embedded numeral ("2.5 acres")
	Village       string     // Village name (optional)
	District      string     // District name (optional)
	State         string     // State name (optional)
	TribalGroup   string     // Tribal affiliation; empty means not tribal
	ClaimType     string     // e.g. "individual-forest-rights" or "community-forest-resource"
	Assets        AssetFlags // Known household asset indicators
	ForestProduce []string   // Minor forest produce gathered by the claimant
	WaterIndex    *float64   // Reported water-scarcity index 0-100, nil = unreported
	Coordinates   *GeoPoint  // Claim location, nil if not geotagged
}

// IsTribal reports whether the claim carries any tribal affiliation.
func (c *Claim) IsTribal() bool { return strings.TrimSpace(c.TribalGroup) != "" }

// IsCommunity reports whether the claim is a community forest resource claim.
func (c *Claim) IsCommunity() bool { return c.ClaimType == CommunityForestResource }

// TypeLabel returns the display label used for claim-type filtering.
func (c *Claim) TypeLabel() string {
	if c.IsCommunity() {
		return CommunityLabel
	}
	return IndividualLabel
}

// HasForestProduceEvidence reports direct evidence of forest-produce activity
// on the claim itself (produce list or gatherer asset flag).
func (c *Claim) HasForestProduceEvidence() bool {
	return len(c.ForestProduce) > 0 || c.Assets.ProduceGatherer.IsYes()
}

// Scheme is a welfare-scheme definition. The Meta map is opaque policy
// metadata that the scoring heuristics never consume.
type Scheme struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Ministry    string            `json:"ministry,omitempty" yaml:"ministry,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Meta        map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// VillageKey identifies one (state, district, village) group. Missing
// components are filled with UnknownPlace before the key is built.
type VillageKey struct {
	State    string
	District string
	Village  string
}

// String renders the canonical "state|district|village" map key.
func (k VillageKey) String() string {
	return k.State + "|" + k.District + "|" + k.Village
}

// VillageAggregate summarizes all claims grouped under one village key.
// It is derived data, recomputed from scratch on every pipeline run.
type VillageAggregate struct {
	Key              VillageKey    `json:"key"`
	Count            int           `json:"count"`              // Number of member claims
	AvgArea          float64       `json:"avg_area"`           // Mean parsed land area in acres
	HasForestProduce bool          `json:"has_forest_produce"` // Any member shows forest-produce evidence
	WaterIndex       float64       `json:"water_index"`        // 0-100, higher means more abundant
	PriorityLevel    PriorityLevel `json:"priority_level"`     // Derived village urgency tier
}

// RuleResult is what an eligibility rule reports for a single claim.
type RuleResult struct {
	Eligible bool    `json:"eligible"`
	Score    float64 `json:"score"`  // Bounded utility in [0,1]
	Reason   string  `json:"reason"` // Human-readable explanation, set whether eligible or not
}

// SchemeMatch is one (claim, scheme) pairing that passed its eligibility
// predicate with a positive score.
type SchemeMatch struct {
	SchemeID   string  `json:"scheme_id"`
	SchemeName string  `json:"scheme_name"`
	Ministry   string  `json:"ministry,omitempty"`
	Score      float64 `json:"score"` // Urgency-adjusted score in [0,1]
	Reason     string  `json:"reason"`
}

// RecommendationRow is the per-claim output of the pipeline: ranked scheme
// suggestions plus a globally assigned priority tier. Rows are created once
// per run and never mutated afterwards.
type RecommendationRow struct {
	ID               string        `json:"id"`       // Fresh unique id per pipeline run
	ClaimID          string        `json:"claim_id"` // Originating claim
	HolderName       string        `json:"holder_name,omitempty"`
	Location         string        `json:"location"` // "village, district, state" display label
	SuggestedSchemes []SchemeMatch `json:"suggested_schemes"`
	Score            float64       `json:"score"`    // Max suggested-scheme score when matches exist
	Priority         PriorityLevel `json:"priority"` // Assigned by global rank, thirds
	Beneficiaries    int           `json:"beneficiaries"`
	Claim            *Claim        `json:"-"` // Back-reference to the source claim
}

// BestMatchScore returns the top suggested-scheme score, or 0 when the row
// has no suggestions.
func (r *RecommendationRow) BestMatchScore() float64 {
	if len(r.SuggestedSchemes) == 0 {
		return 0
	}
	return r.SuggestedSchemes[0].Score
}
