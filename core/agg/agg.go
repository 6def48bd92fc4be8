// Package agg has village-level aggregation logic for claim data.
package agg

import (
	"regexp"
	"strconv"

	"github.com/vanadhikar/sifarish/schema"
)

// Water-index heuristics. When no claim in a village reports an index, a
// coarse coordinate-based estimate stands in until real hydrological data is
// wired up. 0 means fully scarce, 100 fully abundant.
const (
	WaterScarceEstimate   = 35.0 // interior uplands: lat > 22, lon > 78
	WaterAbundantEstimate = 75.0 // coastal south-west: lat < 21, lon < 78
	WaterMixedEstimate    = 55.0 // everything in between
	WaterNeutralDefault   = 50.0 // nothing known at all

	scarceLatFloor   = 22.0
	scarceLonFloor   = 78.0
	abundantLatCeil  = 21.0
	abundantLonCeil  = 78.0
)

// Priority derivation thresholds for villages.
const (
	smallHoldingAcres  = 1.0 // parsed area at or below this counts as a small holder
	highLowAreaRatio   = 0.7
	mediumLowAreaRatio = 0.5
	highWaterCeil      = 40.0
	mediumWaterCeil    = 60.0
)

// numberPattern matches the first integer or decimal substring in free text.
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseArea extracts a numeric land area from a raw claim value. Numbers pass
// through; strings are scanned for the first decimal or integer substring;
// anything else yields 0.
func ParseArea(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if m := numberPattern.FindString(t); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return f
			}
		}
		return 0
	default:
		return 0
	}
}

// AggregateVillages groups claims by (state, district, village) and computes
// per-village summary statistics. It is a pure function of the claim set;
// malformed or missing fields degrade to documented defaults rather than
// erroring.
func AggregateVillages(claims []schema.Claim) map[string]schema.VillageAggregate {
	groups := make(map[string][]*schema.Claim)
	keys := make(map[string]schema.VillageKey)
	for i := range claims {
		k := schema.VillageKeyFor(&claims[i])
		ks := k.String()
		groups[ks] = append(groups[ks], &claims[i])
		keys[ks] = k
	}

	aggs := make(map[string]schema.VillageAggregate, len(groups))
	for ks, members := range groups {
		aggs[ks] = summarizeVillage(keys[ks], members)
	}
	return aggs
}

// summarizeVillage computes the aggregate for one claim group.
func summarizeVillage(key schema.VillageKey, members []*schema.Claim) schema.VillageAggregate {
	var areaSum float64
	var smallHolders int
	hasProduce := false

	for _, c := range members {
		area := ParseArea(c.LandArea)
		areaSum += area
		if area <= smallHoldingAcres {
			smallHolders++
		}
		if c.HasForestProduceEvidence() || c.Assets.ForestLand.IsYes() {
			hasProduce = true
		}
	}

	count := len(members)
	waterIndex := villageWaterIndex(members)
	lowAreaRatio := float64(smallHolders) / float64(count)

	return schema.VillageAggregate{
		Key:              key,
		Count:            count,
		AvgArea:          areaSum / float64(count),
		HasForestProduce: hasProduce,
		WaterIndex:       waterIndex,
		PriorityLevel:    derivePriority(lowAreaRatio, waterIndex),
	}
}

// villageWaterIndex averages reported indices when any claim has one,
// otherwise falls back to coordinate estimates, otherwise the neutral default.
func villageWaterIndex(members []*schema.Claim) float64 {
	var reportedSum float64
	var reported int
	for _, c := range members {
		if c.WaterIndex != nil {
			reportedSum += *c.WaterIndex
			reported++
		}
	}
	if reported > 0 {
		return reportedSum / float64(reported)
	}

	var estimateSum float64
	var estimated int
	for _, c := range members {
		if c.Coordinates != nil {
			estimateSum += EstimateWaterIndex(c.Coordinates)
			estimated++
		}
	}
	if estimated > 0 {
		return estimateSum / float64(estimated)
	}
	return WaterNeutralDefault
}

// EstimateWaterIndex derives a coarse water index from coordinates.
func EstimateWaterIndex(p *schema.GeoPoint) float64 {
	switch {
	case p.Lat > scarceLatFloor && p.Lon > scarceLonFloor:
		return WaterScarceEstimate
	case p.Lat < abundantLatCeil && p.Lon < abundantLonCeil:
		return WaterAbundantEstimate
	default:
		return WaterMixedEstimate
	}
}

// derivePriority maps the small-holder ratio and water index to a tier.
func derivePriority(lowAreaRatio, waterIndex float64) schema.PriorityLevel {
	switch {
	case lowAreaRatio >= highLowAreaRatio && waterIndex <= highWaterCeil:
		return schema.HighPriority
	case lowAreaRatio >= mediumLowAreaRatio || waterIndex <= mediumWaterCeil:
		return schema.MediumPriority
	default:
		return schema.LowPriority
	}
}

// EffectiveWaterIndex resolves a single claim's water index the same way the
// aggregator does: the village aggregate value when one exists, else the
// coordinate estimate, else the neutral default.
func EffectiveWaterIndex(c *schema.Claim, aggs map[string]schema.VillageAggregate) float64 {
	if agg, ok := aggs[schema.VillageKeyFor(c).String()]; ok {
		return agg.WaterIndex
	}
	if c.Coordinates != nil {
		return EstimateWaterIndex(c.Coordinates)
	}
	return WaterNeutralDefault
}
