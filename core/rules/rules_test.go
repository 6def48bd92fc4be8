package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanadhikar/sifarish/schema"
)

// buildFixture returns a registry over the default catalog with one
// ten-claim tribal village in the aggregates.
func buildFixture(t *testing.T) (Registry, []schema.Scheme, map[string]schema.VillageAggregate) {
	t.Helper()
	aggs := map[string]schema.VillageAggregate{
		"unknown|unknown|Salghati": {
			Key:              schema.VillageKey{State: "unknown", District: "unknown", Village: "Salghati"},
			Count:            10,
			WaterIndex:       30,
			HasForestProduce: true,
		},
	}
	reg, catalog := Build([]schema.Scheme{}, aggs, schema.DefaultRuleParams())
	return reg, catalog, aggs
}

// TestClassify tests the name and id pattern matching.
func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		scheme schema.Scheme
		want   SchemeClass
	}{
		{"kisan name", schema.Scheme{ID: "x", Name: "PM-KISAN Income Support"}, AgricultureIncome},
		{"employment name", schema.Scheme{ID: "x", Name: "Rural Employment Guarantee"}, EmploymentGuarantee},
		{"water name", schema.Scheme{ID: "x", Name: "Jal Jeevan Mission"}, WaterAccess},
		{"van dhan before kisan", schema.Scheme{ID: "x", Name: "Van Dhan Vikas Yojana"}, ForestProduce},
		{"community forest first", schema.Scheme{ID: "x", Name: "Community Forest Water Support"}, CommunityForest},
		{"housing name", schema.Scheme{ID: "x", Name: "Awas Yojana"}, Housing},
		{"skill name", schema.Scheme{ID: "x", Name: "Kaushal Vikas"}, SkillDevelopment},
		{"id fallback", schema.Scheme{ID: "mgnrega", Name: "Job Card Scheme"}, EmploymentGuarantee},
		{"no signal", schema.Scheme{ID: "state-bonus", Name: "Tendu Patta Bonus"}, Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.scheme))
		})
	}
}

// TestBuild tests registry construction and catalog augmentation.
func TestBuild(t *testing.T) {
	params := schema.DefaultRuleParams()

	t.Run("defaults appended to empty catalog", func(t *testing.T) {
		reg, catalog := Build([]schema.Scheme{}, nil, params)
		assert.Equal(t, len(DefaultCatalog()), len(catalog))
		assert.Equal(t, len(catalog), reg.Len())
		for _, s := range catalog {
			_, ok := reg.Get(s.ID)
			assert.True(t, ok, "missing rule for %s", s.ID)
		}
	})

	t.Run("existing id not duplicated", func(t *testing.T) {
		custom := []schema.Scheme{{ID: "pm-kisan", Name: "Custom Kisan Variant"}}
		_, catalog := Build(custom, nil, params)
		count := 0
		for _, s := range catalog {
			if s.ID == "pm-kisan" {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, "Custom Kisan Variant", catalog[0].Name)
	})

	t.Run("caller slice untouched", func(t *testing.T) {
		custom := make([]schema.Scheme, 1, 8)
		custom[0] = schema.Scheme{ID: "only", Name: "Only Scheme"}
		_, _ = Build(custom, nil, params)
		assert.Len(t, custom, 1)
	})

	t.Run("unknown id gets fallback rule", func(t *testing.T) {
		reg, _ := Build([]schema.Scheme{{ID: "mystery", Name: "Mystery"}}, nil, params)
		rule, ok := reg.Get("mystery")
		require.True(t, ok)
		res := rule(&schema.Claim{ID: "c", TribalGroup: "Gond", LandArea: 1.0})
		assert.True(t, res.Eligible)
		assert.Equal(t, params.FallbackScore, res.Score)
	})
}

// TestAgricultureRule tests the income support heuristic.
func TestAgricultureRule(t *testing.T) {
	reg, _, _ := buildFixture(t)
	rule, ok := reg.Get("pm-kisan")
	require.True(t, ok)

	t.Run("no landholding declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c"})
		assert.False(t, res.Eligible)
		assert.NotEmpty(t, res.Reason)
	})

	t.Run("score grows with area", func(t *testing.T) {
		small := rule(&schema.Claim{ID: "c", LandArea: 1.0})
		large := rule(&schema.Claim{ID: "c", LandArea: 5.0})
		require.True(t, small.Eligible)
		require.True(t, large.Eligible)
		assert.Greater(t, large.Score, small.Score)
		assert.LessOrEqual(t, large.Score, 1.0)
	})

	t.Run("free text area parsed", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", LandArea: "2.5 acres"})
		assert.True(t, res.Eligible)
	})
}

// TestEmploymentRule tests the wage employment heuristic.
func TestEmploymentRule(t *testing.T) {
	reg, _, _ := buildFixture(t)
	rule, ok := reg.Get("mgnrega")
	require.True(t, ok)
	params := schema.DefaultRuleParams()

	t.Run("no village declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c"})
		assert.False(t, res.Eligible)
	})

	t.Run("landless scores highest", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", Village: "Salghati"})
		assert.True(t, res.Eligible)
		assert.Equal(t, params.EmploymentLandless, res.Score)
	})

	t.Run("above marginal limit declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", Village: "Salghati", LandArea: 3.0})
		assert.False(t, res.Eligible)
	})

	t.Run("marginal holding floors out", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", Village: "Salghati", LandArea: 2.0})
		assert.True(t, res.Eligible)
		assert.Equal(t, params.EmploymentFloor, res.Score)
	})
}

// TestWaterRule tests the water access heuristic.
func TestWaterRule(t *testing.T) {
	reg, _, _ := buildFixture(t)
	rule, ok := reg.Get("jal-jeevan-mission")
	require.True(t, ok)

	t.Run("scarce village qualifies", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", Village: "Salghati"})
		assert.True(t, res.Eligible)
		assert.Greater(t, res.Score, 0.5)
	})

	t.Run("adequate water with own source declines", func(t *testing.T) {
		w80 := 80.0
		c := schema.Claim{
			ID: "c", Village: "Wetside", WaterIndex: &w80,
			Assets: schema.AssetFlags{WaterSource: schema.FlagYes},
		}
		// Wetside is not in the aggregates, so the claim's own index is
		// irrelevant; use a direct coordinate estimate instead.
		c.Coordinates = &schema.GeoPoint{Lat: 19.0, Lon: 75.0}
		res := rule(&c)
		assert.False(t, res.Eligible)
	})
}

// TestProduceRule tests the forest produce heuristic.
func TestProduceRule(t *testing.T) {
	reg, _, _ := buildFixture(t)
	rule, ok := reg.Get("van-dhan-yojana")
	require.True(t, ok)
	params := schema.DefaultRuleParams()

	t.Run("non-tribal declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", ForestProduce: []string{"mahua"}})
		assert.False(t, res.Eligible)
	})

	t.Run("direct evidence scores higher", func(t *testing.T) {
		direct := rule(&schema.Claim{ID: "c", TribalGroup: "Gond", ForestProduce: []string{"mahua"}})
		require.True(t, direct.Eligible)
		assert.Equal(t, params.ProduceDirect, direct.Score)

		indirect := rule(&schema.Claim{ID: "c", TribalGroup: "Gond", Village: "Salghati"})
		require.True(t, indirect.Eligible)
		assert.Equal(t, params.ProduceIndirect, indirect.Score)
	})

	t.Run("no evidence anywhere declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", TribalGroup: "Gond", Village: "Dryside"})
		assert.False(t, res.Eligible)
	})
}

// TestHousingRule tests the housing assistance heuristic.
func TestHousingRule(t *testing.T) {
	reg, _, _ := buildFixture(t)
	rule, ok := reg.Get("pm-awas-gramin")
	require.True(t, ok)

	t.Run("existing pucca housing declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", Assets: schema.AssetFlags{Housing: schema.FlagYes}})
		assert.False(t, res.Eligible)
	})

	t.Run("large holding declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", LandArea: 2.0})
		assert.False(t, res.Eligible)
	})

	t.Run("small holder without housing qualifies", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", LandArea: 0.5, Assets: schema.AssetFlags{Housing: schema.FlagNo}})
		assert.True(t, res.Eligible)
	})
}

// TestCommunityRule tests the community forest rights heuristic.
func TestCommunityRule(t *testing.T) {
	reg, _, _ := buildFixture(t)
	rule, ok := reg.Get("cfr-support")
	require.True(t, ok)

	t.Run("no forest interest declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", TribalGroup: "Gond", Village: "Salghati"})
		assert.False(t, res.Eligible)
	})

	t.Run("non-tribal declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", ClaimType: schema.CommunityForestResource, Village: "Salghati"})
		assert.False(t, res.Eligible)
	})

	t.Run("small village declines", func(t *testing.T) {
		res := rule(&schema.Claim{
			ID: "c", TribalGroup: "Gond", Village: "Dryside",
			ClaimType: schema.CommunityForestResource,
		})
		assert.False(t, res.Eligible)
	})

	t.Run("tribal community claim in large village qualifies", func(t *testing.T) {
		res := rule(&schema.Claim{
			ID: "c", TribalGroup: "Gond", Village: "Salghati",
			ClaimType: schema.CommunityForestResource,
		})
		assert.True(t, res.Eligible)
	})
}

// TestSkillRule tests the skill development heuristic.
func TestSkillRule(t *testing.T) {
	reg, _, _ := buildFixture(t)
	rule, ok := reg.Get("pm-kaushal-vikas")
	require.True(t, ok)

	t.Run("large holding declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", LandArea: 2.0})
		assert.False(t, res.Eligible)
	})

	t.Run("small holding qualifies", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", LandArea: 1.0})
		assert.True(t, res.Eligible)
	})
}

// TestFallbackRule tests the generic heuristic for unmatched schemes.
func TestFallbackRule(t *testing.T) {
	reg, _ := Build([]schema.Scheme{{ID: "mystery", Name: "Mystery"}}, nil, schema.DefaultRuleParams())
	rule, ok := reg.Get("mystery")
	require.True(t, ok)

	t.Run("non-tribal declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", LandArea: 1.0})
		assert.False(t, res.Eligible)
	})

	t.Run("tribal without land declines", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", TribalGroup: "Gond"})
		assert.False(t, res.Eligible)
	})

	t.Run("tribal landholder qualifies", func(t *testing.T) {
		res := rule(&schema.Claim{ID: "c", TribalGroup: "Gond", LandArea: 1.0})
		assert.True(t, res.Eligible)
	})
}
