package schema

// RuleParams holds every tunable constant used by the eligibility rules and
// the urgency blend. The defaults reproduce the heuristics the dashboard
// shipped with; individual values can be overridden from the YAML config.
// Only the shape of each formula (monotonicity, bounds, relative ordering of
// scheme classes) is load-bearing.
type RuleParams struct {
	// Agricultural income support: base + (area/span)*weight, clamped.
	AgricultureBase       float64
	AgricultureAreaSpan   float64
	AgricultureAreaWeight float64

	// Rural employment guarantee: landless score, else max(floor, (span-area)/span).
	EmploymentLandless float64
	EmploymentMaxArea  float64
	EmploymentFloor    float64
	EmploymentSpan     float64

	// Water access: (offset - waterIndex)/span + base, clamped.
	WaterIndexCutoff float64
	WaterOffset      float64
	WaterSpan        float64
	WaterBase        float64

	// Forest-produce livelihood.
	ProduceDirect   float64
	ProduceIndirect float64

	// Housing.
	HousingScore   float64
	HousingMaxArea float64

	// Community forest rights.
	CommunityScore      float64
	CommunityMinVillage int

	// Skill development.
	SkillScore   float64
	SkillMaxArea float64

	// Generic fallback for unmatched schemes.
	FallbackScore float64

	// Village urgency blend.
	UrgencyWaterWeight  float64 // up to this much from water scarcity
	UrgencyWaterPivot   float64 // index at which the water term reaches zero
	UrgencyProduceBonus float64 // added when the village has forest produce
	UrgencySizeWeight   float64 // cap on the village-size term
	UrgencySizeSpan     float64 // claim count at which the size term saturates

	// Row score when no scheme matched: urgency * NoMatchFactor.
	NoMatchFactor float64

	// A suggested scheme counts as "eligible" above this score.
	EligibilityThreshold float64
}

// DefaultRuleParams returns the stock heuristic constants.
func DefaultRuleParams() RuleParams {
	return RuleParams{
		AgricultureBase:       0.6,
		AgricultureAreaSpan:   10.0,
		AgricultureAreaWeight: 0.4,

		EmploymentLandless: 0.9,
		EmploymentMaxArea:  2.0,
		EmploymentFloor:    0.5,
		EmploymentSpan:     2.5,

		WaterIndexCutoff: 60.0,
		WaterOffset:      70.0,
		WaterSpan:        50.0,
		WaterBase:        0.4,

		ProduceDirect:   0.85,
		ProduceIndirect: 0.65,

		HousingScore:   0.75,
		HousingMaxArea: 1.0,

		CommunityScore:      0.8,
		CommunityMinVillage: 10,

		SkillScore:   0.6,
		SkillMaxArea: 1.5,

		FallbackScore: 0.4,

		UrgencyWaterWeight:  0.3,
		UrgencyWaterPivot:   50.0,
		UrgencyProduceBonus: 0.1,
		UrgencySizeWeight:   0.15,
		UrgencySizeSpan:     100.0,

		NoMatchFactor: 0.8,

		EligibilityThreshold: 0.3,
	}
}
