package schema

// Filters holds the user-selected facets for a pipeline run. Every condition
// is applied only when its value is non-empty, and all active conditions must
// hold simultaneously.
type Filters struct {
	State        string        `json:"state,omitempty"`
	District     string        `json:"district,omitempty"`
	Village      string        `json:"village,omitempty"`
	TribalGroup  string        `json:"tribal_group,omitempty"`
	ClaimType    string        `json:"claim_type,omitempty"` // "Community" or "Individual"
	WaterLevel   WaterLevel    `json:"water_level,omitempty"`
	IncomeLevel  IncomeLevel   `json:"income_level,omitempty"`
	Priority     PriorityLevel `json:"priority,omitempty"`
	Search       string        `json:"search,omitempty"` // case-insensitive substring match
	SchemeID     string        `json:"scheme_id,omitempty"`
	OnlyEligible bool          `json:"only_eligible,omitempty"`
}

// Stats summarizes the filtered recommendation set.
type Stats struct {
	Total      int                   `json:"total"`
	Eligible   int                   `json:"eligible"` // rows with any suggested scheme above the eligibility threshold
	ByPriority map[PriorityLevel]int `json:"by_priority"`
	ByScheme   map[string]int        `json:"by_scheme"` // scheme name -> count of rows suggesting it
	TotalPages int                   `json:"total_pages"`
}

// LocationOptions lists the cascading filter choices for the current claim
// population: districts are scoped to the selected state, villages to the
// selected state and district. All lists are deduplicated and sorted.
type LocationOptions struct {
	States    []string `json:"states"`
	Districts []string `json:"districts"`
	Villages  []string `json:"villages"`
	Tribes    []string `json:"tribes"`
}
