// Package rules builds the per-scheme eligibility rule registry.
package rules

import (
	"fmt"

	"github.com/vanadhikar/sifarish/core/agg"
	"github.com/vanadhikar/sifarish/schema"
)

// Rule scores one claim against one scheme. Rules are pure: the village
// aggregates and parameters they consult are captured at build time.
type Rule func(c *schema.Claim) schema.RuleResult

// Registry maps scheme ids to their scoring rules. It is a plain value built
// once per (catalog, aggregates, params) triple; nothing in it is shared or
// mutated between pipeline runs.
type Registry struct {
	rules map[string]Rule
}

// Get returns the rule for a scheme id.
func (r Registry) Get(schemeID string) (Rule, bool) {
	rule, ok := r.rules[schemeID]
	return rule, ok
}

// Len returns the number of registered rules.
func (r Registry) Len() int { return len(r.rules) }

// IDs returns all registered scheme ids in unspecified order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	return ids
}

// Build constructs the rule registry for a scheme catalog. It returns the
// registry together with an augmented copy of the catalog: well-known default
// schemes missing from the input are appended to the copy so the registry
// always covers them. The caller's slice is never modified, and re-adding an
// id that already exists is a no-op.
func Build(schemes []schema.Scheme, aggs map[string]schema.VillageAggregate, params schema.RuleParams) (Registry, []schema.Scheme) {
	augmented := make([]schema.Scheme, len(schemes))
	copy(augmented, schemes)

	seen := make(map[string]struct{}, len(augmented))
	for _, s := range augmented {
		seen[s.ID] = struct{}{}
	}
	for _, def := range DefaultCatalog() {
		if _, ok := seen[def.ID]; ok {
			continue
		}
		augmented = append(augmented, def)
		seen[def.ID] = struct{}{}
	}

	reg := Registry{rules: make(map[string]Rule, len(augmented))}
	for _, s := range augmented {
		reg.rules[s.ID] = buildRule(Classify(s), aggs, params)
	}
	return reg, augmented
}

// buildRule returns the scoring function for a scheme class.
func buildRule(class SchemeClass, aggs map[string]schema.VillageAggregate, params schema.RuleParams) Rule {
	switch class {
	case AgricultureIncome:
		return agricultureRule(params)
	case EmploymentGuarantee:
		return employmentRule(params)
	case WaterAccess:
		return waterRule(aggs, params)
	case ForestProduce:
		return produceRule(aggs, params)
	case Housing:
		return housingRule(params)
	case CommunityForest:
		return communityRule(aggs, params)
	case SkillDevelopment:
		return skillRule(params)
	default:
		return fallbackRule(params)
	}
}

func agricultureRule(p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		area := agg.ParseArea(c.LandArea)
		if area <= 0 {
			return schema.RuleResult{Reason: "No recorded landholding to support"}
		}
		score := schema.Clamp01(p.AgricultureBase + (area/p.AgricultureAreaSpan)*p.AgricultureAreaWeight)
		return schema.RuleResult{
			Eligible: true,
			Score:    score,
			Reason:   fmt.Sprintf("Landholding of %.1f acres qualifies for income support", area),
		}
	}
}

func employmentRule(p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		if c.Village == "" {
			return schema.RuleResult{Reason: "No village recorded for job card registration"}
		}
		area := agg.ParseArea(c.LandArea)
		if area == 0 {
			return schema.RuleResult{
				Eligible: true,
				Score:    schema.Clamp01(p.EmploymentLandless),
				Reason:   "Landless household, strong candidate for wage employment",
			}
		}
		if area > p.EmploymentMaxArea {
			return schema.RuleResult{Reason: fmt.Sprintf("Holding of %.1f acres exceeds the marginal-farmer limit", area)}
		}
		score := (p.EmploymentSpan - area) / p.EmploymentSpan
		if score < p.EmploymentFloor {
			score = p.EmploymentFloor
		}
		return schema.RuleResult{
			Eligible: true,
			Score:    schema.Clamp01(score),
			Reason:   fmt.Sprintf("Marginal holding of %.1f acres, wage employment supplements income", area),
		}
	}
}

func waterRule(aggs map[string]schema.VillageAggregate, p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		idx := agg.EffectiveWaterIndex(c, aggs)
		if idx > p.WaterIndexCutoff && c.Assets.WaterSource.IsYes() {
			return schema.RuleResult{Reason: "Village water availability is adequate and household has its own source"}
		}
		score := schema.Clamp01((p.WaterOffset-idx)/p.WaterSpan + p.WaterBase)
		return schema.RuleResult{
			Eligible: true,
			Score:    score,
			Reason:   fmt.Sprintf("Village water index %.0f indicates need for assured water access", idx),
		}
	}
}

func produceRule(aggs map[string]schema.VillageAggregate, p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		if !c.IsTribal() {
			return schema.RuleResult{Reason: "Scheme is limited to tribal households"}
		}
		direct := c.HasForestProduceEvidence()
		village := false
		if va, ok := aggs[schema.VillageKeyFor(c).String()]; ok {
			village = va.HasForestProduce
		}
		if !direct && !village {
			return schema.RuleResult{Reason: "No forest-produce activity recorded for claim or village"}
		}
		if direct {
			return schema.RuleResult{
				Eligible: true,
				Score:    schema.Clamp01(p.ProduceDirect),
				Reason:   "Household gathers minor forest produce",
			}
		}
		return schema.RuleResult{
			Eligible: true,
			Score:    schema.Clamp01(p.ProduceIndirect),
			Reason:   "Village shows forest-produce activity",
		}
	}
}

func housingRule(p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		if c.Assets.Housing.IsYes() {
			return schema.RuleResult{Reason: "Household already has pucca housing"}
		}
		area := agg.ParseArea(c.LandArea)
		if area > p.HousingMaxArea {
			return schema.RuleResult{Reason: fmt.Sprintf("Holding of %.1f acres is above the housing-assistance cutoff", area)}
		}
		return schema.RuleResult{
			Eligible: true,
			Score:    schema.Clamp01(p.HousingScore),
			Reason:   "No pucca housing on record for a small holder",
		}
	}
}

func communityRule(aggs map[string]schema.VillageAggregate, p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		if !c.Assets.ForestLand.IsYes() && !c.IsCommunity() {
			return schema.RuleResult{Reason: "Neither forest land nor a community claim on record"}
		}
		if !c.IsTribal() {
			return schema.RuleResult{Reason: "Community forest rights support is limited to tribal claimants"}
		}
		count := 0
		if va, ok := aggs[schema.VillageKeyFor(c).String()]; ok {
			count = va.Count
		}
		if count < p.CommunityMinVillage {
			return schema.RuleResult{Reason: fmt.Sprintf("Village has only %d claims, below the community threshold of %d", count, p.CommunityMinVillage)}
		}
		return schema.RuleResult{
			Eligible: true,
			Score:    schema.Clamp01(p.CommunityScore),
			Reason:   fmt.Sprintf("Tribal claim with forest interest in a village of %d claims", count),
		}
	}
}

func skillRule(p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		area := agg.ParseArea(c.LandArea)
		if area > p.SkillMaxArea {
			return schema.RuleResult{Reason: fmt.Sprintf("Holding of %.1f acres suggests farm income is primary", area)}
		}
		return schema.RuleResult{
			Eligible: true,
			Score:    schema.Clamp01(p.SkillScore),
			Reason:   "Small or no landholding, skill training can diversify income",
		}
	}
}

func fallbackRule(p schema.RuleParams) Rule {
	return func(c *schema.Claim) schema.RuleResult {
		if !c.IsTribal() {
			return schema.RuleResult{Reason: "No heuristic for this scheme and claimant is not tribal"}
		}
		area := agg.ParseArea(c.LandArea)
		if area <= 0 {
			return schema.RuleResult{Reason: "No heuristic for this scheme and no landholding recorded"}
		}
		return schema.RuleResult{
			Eligible: true,
			Score:    schema.Clamp01(p.FallbackScore),
			Reason:   "Tribal landholder, general welfare eligibility assumed",
		}
	}
}
