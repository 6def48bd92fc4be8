// Package core has the recommendation pipeline, ranking and query logic.
package core

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vanadhikar/sifarish/core/agg"
	"github.com/vanadhikar/sifarish/core/rules"
	"github.com/vanadhikar/sifarish/schema"
)

// maxSuggestedSchemes caps the suggestions carried per row in multi-scheme mode.
const maxSuggestedSchemes = 3

// GenerateRecommendations runs the full pipeline: aggregate villages, build
// the rule registry, filter the claim population, score each surviving claim
// and assign priority tiers by global rank. The output contains one row per
// surviving claim, in the same order as the input claim collection — order
// preservation is a contract, not incidental.
//
// Nil claim or scheme collections fail fast; past that boundary every input
// shape produces a row (missing fields degrade to defaults).
func GenerateRecommendations(claims []schema.Claim, schemes []schema.Scheme, filters schema.Filters, params schema.RuleParams) ([]schema.RecommendationRow, error) {
	if claims == nil {
		return nil, errors.New("invalid argument: claims collection is required")
	}
	if schemes == nil {
		return nil, errors.New("invalid argument: schemes collection is required")
	}

	aggs := agg.AggregateVillages(claims)
	registry, catalog := rules.Build(schemes, aggs, params)

	rows := make([]schema.RecommendationRow, 0, len(claims))
	for i := range claims {
		c := &claims[i]
		if !matchesFilters(c, filters, aggs) {
			continue
		}
		rows = append(rows, scoreClaim(c, registry, catalog, filters.SchemeID, aggs, params))
	}

	ApplyPriorityTiers(rows)
	return rows, nil
}

// matchesFilters applies every non-empty facet as a simultaneous condition.
func matchesFilters(c *schema.Claim, f schema.Filters, aggs map[string]schema.VillageAggregate) bool {
	if f.State != "" && c.State != f.State {
		return false
	}
	if f.District != "" && c.District != f.District {
		return false
	}
	if f.Village != "" && c.Village != f.Village {
		return false
	}
	if f.TribalGroup != "" && c.TribalGroup != f.TribalGroup {
		return false
	}
	if f.ClaimType != "" && c.TypeLabel() != f.ClaimType {
		return false
	}
	if f.WaterLevel != "" && waterBucket(agg.EffectiveWaterIndex(c, aggs)) != f.WaterLevel {
		return false
	}
	if f.IncomeLevel != "" && incomeBucket(agg.ParseArea(c.LandArea)) != f.IncomeLevel {
		return false
	}
	if f.Priority != "" && villagePriority(c, aggs) != f.Priority {
		return false
	}
	if f.Search != "" && !matchesSearch(c, f.Search) {
		return false
	}
	return true
}

// waterBucket maps an effective water index to its filter bucket.
func waterBucket(idx float64) schema.WaterLevel {
	switch {
	case idx > 70:
		return schema.HighWater
	case idx > 40:
		return schema.MediumWater
	default:
		return schema.LowWater
	}
}

// incomeBucket maps a parsed landholding to its income proxy bucket.
func incomeBucket(area float64) schema.IncomeLevel {
	switch {
	case area <= 1.0:
		return schema.BelowPovertyIncome
	case area <= 2.5:
		return schema.LowIncome
	default:
		return schema.MediumIncome
	}
}

// villagePriority returns the claim's village tier, medium when the village
// has no aggregate.
func villagePriority(c *schema.Claim, aggs map[string]schema.VillageAggregate) schema.PriorityLevel {
	if va, ok := aggs[schema.VillageKeyFor(c).String()]; ok {
		return va.PriorityLevel
	}
	return schema.MediumPriority
}

// matchesSearch does a case-insensitive substring search over the claim's
// holder name and location fields.
func matchesSearch(c *schema.Claim, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{c.HolderName, c.Village, c.District, c.State} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// scoreClaim produces one recommendation row. With a selected scheme id only
// that scheme's rule runs; otherwise every registered rule runs and the top
// matches are kept.
func scoreClaim(c *schema.Claim, registry rules.Registry, catalog []schema.Scheme, schemeID string, aggs map[string]schema.VillageAggregate, params schema.RuleParams) schema.RecommendationRow {
	urgency := villageUrgency(c, aggs, params)

	var matches []schema.SchemeMatch
	if schemeID != "" {
		if m, ok := evaluateScheme(c, registry, catalog, schemeID, urgency); ok {
			matches = []schema.SchemeMatch{m}
		}
	} else {
		for _, s := range catalog {
			if m, ok := evaluateScheme(c, registry, catalog, s.ID, urgency); ok {
				matches = append(matches, m)
			}
		}
		sortMatchesDesc(matches)
		if len(matches) > maxSuggestedSchemes {
			matches = matches[:maxSuggestedSchemes]
		}
	}

	score := urgency * params.NoMatchFactor
	if len(matches) > 0 {
		score = matches[0].Score
	}

	return schema.RecommendationRow{
		ID:               uuid.NewString(),
		ClaimID:          c.ID,
		HolderName:       c.HolderName,
		Location:         schema.LocationLabel(c),
		SuggestedSchemes: matches,
		Score:            schema.Clamp01(score),
		Beneficiaries:    1,
		Claim:            c,
	}
}

// evaluateScheme runs one scheme's rule against one claim and blends in the
// village urgency. Rules that decline or score zero yield no match.
func evaluateScheme(c *schema.Claim, registry rules.Registry, catalog []schema.Scheme, schemeID string, urgency float64) (schema.SchemeMatch, bool) {
	rule, ok := registry.Get(schemeID)
	if !ok {
		return schema.SchemeMatch{}, false
	}
	res := rule(c)
	if !res.Eligible || res.Score <= 0 {
		return schema.SchemeMatch{}, false
	}

	var name, ministry string
	for _, s := range catalog {
		if s.ID == schemeID {
			name, ministry = s.Name, s.Ministry
			break
		}
	}
	return schema.SchemeMatch{
		SchemeID:   schemeID,
		SchemeName: name,
		Ministry:   ministry,
		Score:      schema.Clamp01(res.Score + urgency),
		Reason:     res.Reason,
	}, true
}

// villageUrgency computes the bonus score term for a claim's village: up to
// UrgencyWaterWeight from water scarcity, a flat produce bonus, and up to
// UrgencySizeWeight scaled by village claim count.
func villageUrgency(c *schema.Claim, aggs map[string]schema.VillageAggregate, params schema.RuleParams) float64 {
	va, ok := aggs[schema.VillageKeyFor(c).String()]
	if !ok {
		return 0
	}

	scarcity := (params.UrgencyWaterPivot - va.WaterIndex) / params.UrgencyWaterPivot
	if scarcity < 0 {
		scarcity = 0
	}
	urgency := scarcity * params.UrgencyWaterWeight

	if va.HasForestProduce {
		urgency += params.UrgencyProduceBonus
	}

	size := float64(va.Count) / params.UrgencySizeSpan
	if size > params.UrgencySizeWeight {
		size = params.UrgencySizeWeight
	}
	return urgency + size
}

// sortMatchesDesc orders matches by adjusted score, highest first. The sort
// is stable so equal-scoring schemes keep catalog order.
func sortMatchesDesc(matches []schema.SchemeMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}
