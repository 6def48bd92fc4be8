package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/vanadhikar/sifarish/core/agg"
	"github.com/vanadhikar/sifarish/core/rules"
	"github.com/vanadhikar/sifarish/schema"
)

// Pagination defaults.
const (
	DefaultPageSize = 20

	memoTTL     = 5 * time.Minute
	memoCleanup = 10 * time.Minute
)

// QueryService is a stateful facade over the recommendation pipeline. It owns
// the filter, sort and pagination state for one logical session and exposes
// derived read-only views. Recomputation is pure and synchronous; repeated
// runs with the same filter state are served from a fingerprint-keyed memo so
// hosts can call it per keystroke without re-running the pipeline.
//
// A QueryService is owned by a single session and is not safe for concurrent
// mutation without external synchronization.
type QueryService struct {
	claims  []schema.Claim
	schemes []schema.Scheme
	params  schema.RuleParams

	filters  schema.Filters
	sortKey  schema.SortKey
	sortDir  schema.SortDir
	page     int
	pageSize int

	aggs map[string]schema.VillageAggregate
	memo *gocache.Cache
}

// NewQueryService builds a query service over immutable claim and scheme
// snapshots. Nil collections are rejected; empty ones are fine.
func NewQueryService(claims []schema.Claim, schemes []schema.Scheme, params schema.RuleParams) (*QueryService, error) {
	if claims == nil {
		return nil, errors.New("invalid argument: claims collection is required")
	}
	if schemes == nil {
		return nil, errors.New("invalid argument: schemes collection is required")
	}
	return &QueryService{
		claims:   claims,
		schemes:  schemes,
		params:   params,
		sortKey:  schema.SortByScore,
		sortDir:  schema.SortDesc,
		page:     1,
		pageSize: DefaultPageSize,
		memo:     gocache.New(memoTTL, memoCleanup),
	}, nil
}

// SetFilters replaces the filter state and resets pagination to page 1.
func (s *QueryService) SetFilters(f schema.Filters) {
	s.filters = f
	s.page = 1
}

// Filters returns the current filter state.
func (s *QueryService) Filters() schema.Filters { return s.filters }

// SetSort updates the sort state. Unknown keys and directions fall back to
// the defaults (score, descending).
func (s *QueryService) SetSort(key schema.SortKey, dir schema.SortDir) {
	if _, ok := schema.ValidSortKeys[key]; !ok {
		key = schema.SortByScore
	}
	if _, ok := schema.ValidSortDirs[dir]; !ok {
		dir = schema.SortDesc
	}
	s.sortKey = key
	s.sortDir = dir
}

// Sort returns the current sort key and direction.
func (s *QueryService) Sort() (schema.SortKey, schema.SortDir) { return s.sortKey, s.sortDir }

// SetPage moves to a 1-indexed page. Values below 1 clamp to 1.
func (s *QueryService) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// SetPageSize changes the page size and resets to page 1.
func (s *QueryService) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	s.pageSize = size
	s.page = 1
}

// PageNumber returns the current 1-indexed page.
func (s *QueryService) PageNumber() int { return s.page }

// PageSize returns the current page size.
func (s *QueryService) PageSize() int { return s.pageSize }

// Rows returns the full filtered row set in the current sort order.
func (s *QueryService) Rows() []schema.RecommendationRow {
	return SortRows(s.compute(), s.sortKey, s.sortDir)
}

// Page returns the current page slice of the sorted row set.
func (s *QueryService) Page() []schema.RecommendationRow {
	rows := s.Rows()
	start := (s.page - 1) * s.pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + s.pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Stats summarizes the current filtered row set.
func (s *QueryService) Stats() schema.Stats {
	rows := s.compute()

	stats := schema.Stats{
		Total:      len(rows),
		ByPriority: make(map[schema.PriorityLevel]int),
		ByScheme:   make(map[string]int),
	}
	for i := range rows {
		r := &rows[i]
		if r.BestMatchScore() > s.params.EligibilityThreshold {
			stats.Eligible++
		}
		stats.ByPriority[r.Priority]++
		for _, m := range r.SuggestedSchemes {
			stats.ByScheme[m.SchemeName]++
		}
	}

	stats.TotalPages = (stats.Total + s.pageSize - 1) / s.pageSize
	if stats.TotalPages < 1 {
		stats.TotalPages = 1
	}
	return stats
}

// Locations returns the cascading filter option lists for the claim
// population: districts scoped to the selected state, villages scoped to the
// selected state and district, plus the full state and tribe lists. Each list
// is deduplicated and sorted.
func (s *QueryService) Locations() schema.LocationOptions {
	states := make(map[string]struct{})
	districts := make(map[string]struct{})
	villages := make(map[string]struct{})
	tribes := make(map[string]struct{})

	for i := range s.claims {
		c := &s.claims[i]
		if c.State != "" {
			states[c.State] = struct{}{}
		}
		if c.TribalGroup != "" {
			tribes[c.TribalGroup] = struct{}{}
		}
		if c.District != "" && (s.filters.State == "" || c.State == s.filters.State) {
			districts[c.District] = struct{}{}
		}
		if c.Village != "" &&
			(s.filters.State == "" || c.State == s.filters.State) &&
			(s.filters.District == "" || c.District == s.filters.District) {
			villages[c.Village] = struct{}{}
		}
	}

	return schema.LocationOptions{
		States:    sortedKeys(states),
		Districts: sortedKeys(districts),
		Villages:  sortedKeys(villages),
		Tribes:    sortedKeys(tribes),
	}
}

// Aggregates returns the village aggregates for the claim population,
// computed once per service since claims are immutable snapshots.
func (s *QueryService) Aggregates() map[string]schema.VillageAggregate {
	if s.aggs == nil {
		s.aggs = agg.AggregateVillages(s.claims)
	}
	return s.aggs
}

// Catalog returns the scheme catalog augmented with built-in defaults.
func (s *QueryService) Catalog() []schema.Scheme {
	_, catalog := rules.Build(s.schemes, s.Aggregates(), s.params)
	return catalog
}

// compute returns the filtered, tiered row set for the current filter state,
// serving repeated calls from the fingerprint memo.
func (s *QueryService) compute() []schema.RecommendationRow {
	key := fingerprint(s.filters)
	if cached, ok := s.memo.Get(key); ok {
		return cached.([]schema.RecommendationRow)
	}

	rows, err := GenerateRecommendations(s.claims, s.schemes, s.filters, s.params)
	if err != nil {
		// Inputs were validated at construction; nothing to do but stay empty.
		rows = []schema.RecommendationRow{}
	}
	if s.filters.OnlyEligible {
		rows = dropIneligible(rows, s.params.EligibilityThreshold)
	}

	s.memo.Set(key, rows, gocache.DefaultExpiration)
	return rows
}

// dropIneligible removes rows whose best suggested-scheme score does not
// clear the eligibility threshold.
func dropIneligible(rows []schema.RecommendationRow, threshold float64) []schema.RecommendationRow {
	kept := make([]schema.RecommendationRow, 0, len(rows))
	for i := range rows {
		if rows[i].BestMatchScore() > threshold {
			kept = append(kept, rows[i])
		}
	}
	return kept
}

// fingerprint derives a stable memo key from the filter state.
func fingerprint(f schema.Filters) string {
	raw, _ := json.Marshal(f)
	sum := sha256.Sum256(raw)
	return "sifarish:v1:" + hex.EncodeToString(sum[:])
}

// sortedKeys returns a set's members in lexicographic order.
func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
