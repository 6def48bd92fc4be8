package rules

import (
	"strings"

	"github.com/vanadhikar/sifarish/schema"
)

// SchemeClass identifies which scoring heuristic a scheme maps to.
type SchemeClass string

// All scheme classes with a hand-written heuristic. Schemes matching none of
// them get the generic fallback rule.
const (
	AgricultureIncome   SchemeClass = "agriculture-income"
	EmploymentGuarantee SchemeClass = "employment-guarantee"
	WaterAccess         SchemeClass = "water-access"
	ForestProduce       SchemeClass = "forest-produce"
	Housing             SchemeClass = "housing"
	CommunityForest     SchemeClass = "community-forest"
	SkillDevelopment    SchemeClass = "skill-development"
	Fallback            SchemeClass = "fallback"
)

// namePatterns maps case-insensitive name substrings to scheme classes.
// Order matters: the first match wins, and more specific phrases come first.
var namePatterns = []struct {
	substr string
	class  SchemeClass
}{
	{"community forest", CommunityForest},
	{"van dhan", ForestProduce},
	{"forest produce", ForestProduce},
	{"kisan", AgricultureIncome},
	{"income support", AgricultureIncome},
	{"rozgar", EmploymentGuarantee},
	{"employment", EmploymentGuarantee},
	{"jal", WaterAccess},
	{"water", WaterAccess},
	{"awas", Housing},
	{"housing", Housing},
	{"kaushal", SkillDevelopment},
	{"skill", SkillDevelopment},
}

// idClasses maps well-known scheme ids to classes, used when the name gives
// no signal.
var idClasses = map[string]SchemeClass{
	"pm-kisan":           AgricultureIncome,
	"mgnrega":            EmploymentGuarantee,
	"jal-jeevan-mission": WaterAccess,
	"van-dhan-yojana":    ForestProduce,
	"pm-awas-gramin":     Housing,
	"cfr-support":        CommunityForest,
	"pm-kaushal-vikas":   SkillDevelopment,
}

// Classify determines the scoring heuristic for a scheme, matching on the
// display name first and the id second.
func Classify(s schema.Scheme) SchemeClass {
	name := strings.ToLower(s.Name)
	for _, p := range namePatterns {
		if strings.Contains(name, p.substr) {
			return p.class
		}
	}
	if class, ok := idClasses[strings.ToLower(s.ID)]; ok {
		return class
	}
	return Fallback
}

// DefaultCatalog returns the built-in scheme definitions. Build appends any
// of these missing from the caller's catalog so every well-known scheme id
// resolves to a rule.
func DefaultCatalog() []schema.Scheme {
	return []schema.Scheme{
		{
			ID:       "pm-kisan",
			Name:     "PM-KISAN Income Support",
			Ministry: "Ministry of Agriculture and Farmers Welfare",
		},
		{
			ID:       "mgnrega",
			Name:     "Mahatma Gandhi National Rural Employment Guarantee Scheme",
			Ministry: "Ministry of Rural Development",
		},
		{
			ID:       "jal-jeevan-mission",
			Name:     "Jal Jeevan Mission",
			Ministry: "Ministry of Jal Shakti",
		},
		{
			ID:       "van-dhan-yojana",
			Name:     "Van Dhan Vikas Yojana",
			Ministry: "Ministry of Tribal Affairs",
		},
		{
			ID:       "pm-awas-gramin",
			Name:     "Pradhan Mantri Awas Yojana (Gramin)",
			Ministry: "Ministry of Rural Development",
		},
		{
			ID:       "cfr-support",
			Name:     "Community Forest Rights Support",
			Ministry: "Ministry of Tribal Affairs",
		},
		{
			ID:       "pm-kaushal-vikas",
			Name:     "Pradhan Mantri Kaushal Vikas Yojana",
			Ministry: "Ministry of Skill Development and Entrepreneurship",
		},
	}
}
