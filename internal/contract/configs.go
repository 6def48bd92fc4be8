package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanadhikar/sifarish/schema"
)

// Default values for configuration.
const (
	DefaultLimit     = 25
	MaxLimit         = 1000
	DefaultPageSize  = 20
	MaxPageSize      = 500
	DefaultPrecision = 2
)

// Config holds the runtime configuration for a recommendation run.
// This struct is the final, validated config.
type Config struct {
	ClaimsPath  string // Path to the claims file (JSON or CSV)
	SchemesPath string // Optional path to a scheme catalog (YAML or JSON)

	Filters schema.Filters
	SortKey schema.SortKey
	SortDir schema.SortDir

	Page     int
	PageSize int
	Limit    int // Result cap for villages/schemes listings

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Params is the final heuristic parameter set: defaults overlaid with
	// any overrides from the config file.
	Params schema.RuleParams
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ParamsRawInput holds heuristic parameter overrides from the YAML config
// file. Pointer fields distinguish "not set" from zero.
type ParamsRawInput struct {
	AgricultureBase       *float64 `mapstructure:"agriculture_base"`
	AgricultureAreaSpan   *float64 `mapstructure:"agriculture_area_span"`
	AgricultureAreaWeight *float64 `mapstructure:"agriculture_area_weight"`
	EmploymentLandless    *float64 `mapstructure:"employment_landless"`
	EmploymentMaxArea     *float64 `mapstructure:"employment_max_area"`
	EmploymentFloor       *float64 `mapstructure:"employment_floor"`
	EmploymentSpan        *float64 `mapstructure:"employment_span"`
	WaterIndexCutoff      *float64 `mapstructure:"water_index_cutoff"`
	WaterOffset           *float64 `mapstructure:"water_offset"`
	WaterSpan             *float64 `mapstructure:"water_span"`
	WaterBase             *float64 `mapstructure:"water_base"`
	ProduceDirect         *float64 `mapstructure:"produce_direct"`
	ProduceIndirect       *float64 `mapstructure:"produce_indirect"`
	HousingScore          *float64 `mapstructure:"housing_score"`
	HousingMaxArea        *float64 `mapstructure:"housing_max_area"`
	CommunityScore        *float64 `mapstructure:"community_score"`
	CommunityMinVillage   *int     `mapstructure:"community_min_village"`
	SkillScore            *float64 `mapstructure:"skill_score"`
	SkillMaxArea          *float64 `mapstructure:"skill_max_area"`
	FallbackScore         *float64 `mapstructure:"fallback_score"`
	UrgencyWaterWeight    *float64 `mapstructure:"urgency_water_weight"`
	UrgencyWaterPivot     *float64 `mapstructure:"urgency_water_pivot"`
	UrgencyProduceBonus   *float64 `mapstructure:"urgency_produce_bonus"`
	UrgencySizeWeight     *float64 `mapstructure:"urgency_size_weight"`
	UrgencySizeSpan       *float64 `mapstructure:"urgency_size_span"`
	NoMatchFactor         *float64 `mapstructure:"no_match_factor"`
	EligibilityThreshold  *float64 `mapstructure:"eligibility_threshold"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ClaimsPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Schemes        string `mapstructure:"schemes"`
	State          string `mapstructure:"state"`
	District       string `mapstructure:"district"`
	Village        string `mapstructure:"village"`
	Tribe          string `mapstructure:"tribe"`
	ClaimType      string `mapstructure:"claim-type"`
	Water          string `mapstructure:"water"`
	Income         string `mapstructure:"income"`
	Priority       string `mapstructure:"priority"`
	Search         string `mapstructure:"search"`
	Scheme         string `mapstructure:"scheme"`
	EligibleOnly   bool   `mapstructure:"eligible-only"`
	Sort           string `mapstructure:"sort"`
	Order          string `mapstructure:"order"`
	Page           int    `mapstructure:"page"`
	PageSize       int    `mapstructure:"page-size"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Heuristic parameter overrides from config file ---
	Params ParamsRawInput `mapstructure:"params"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateInputPaths(cfg, input); err != nil {
		return err
	}
	if err := validateFilters(cfg, input); err != nil {
		return err
	}
	if err := validateSortAndPaging(cfg, input); err != nil {
		return err
	}
	if err := validateOutput(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	processParams(cfg, input)
	return nil
}

// validateInputPaths checks the claims and schemes file paths.
func validateInputPaths(cfg *Config, input *ConfigRawInput) error {
	path := strings.TrimSpace(input.ClaimsPathStr)
	if path == "" {
		return fmt.Errorf("claims file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve claims path %q: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("claims file %q is not accessible: %w", abs, err)
	}
	cfg.ClaimsPath = abs

	if input.Schemes != "" {
		abs, err := filepath.Abs(input.Schemes)
		if err != nil {
			return fmt.Errorf("cannot resolve schemes path %q: %w", input.Schemes, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("schemes file %q is not accessible: %w", abs, err)
		}
		cfg.SchemesPath = abs
	}
	return nil
}

// validateFilters checks the facet values and assembles the Filters struct.
func validateFilters(cfg *Config, input *ConfigRawInput) error {
	f := schema.Filters{
		State:        strings.TrimSpace(input.State),
		District:     strings.TrimSpace(input.District),
		Village:      strings.TrimSpace(input.Village),
		TribalGroup:  strings.TrimSpace(input.Tribe),
		Search:       strings.TrimSpace(input.Search),
		SchemeID:     strings.TrimSpace(input.Scheme),
		OnlyEligible: input.EligibleOnly,
	}

	if input.ClaimType != "" {
		switch strings.ToLower(input.ClaimType) {
		case "community":
			f.ClaimType = schema.CommunityLabel
		case "individual":
			f.ClaimType = schema.IndividualLabel
		default:
			return fmt.Errorf("invalid claim type %q. must be community or individual", input.ClaimType)
		}
	}

	if input.Water != "" {
		w := schema.WaterLevel(strings.ToLower(input.Water))
		if _, ok := schema.ValidWaterLevels[w]; !ok {
			return fmt.Errorf("invalid water level %q. must be high, medium or low", input.Water)
		}
		f.WaterLevel = w
	}

	if input.Income != "" {
		in := schema.IncomeLevel(strings.ToLower(input.Income))
		if _, ok := schema.ValidIncomeLevels[in]; !ok {
			return fmt.Errorf("invalid income level %q. must be below-poverty, low or medium", input.Income)
		}
		f.IncomeLevel = in
	}

	if input.Priority != "" {
		p := schema.PriorityLevel(strings.ToLower(input.Priority))
		if _, ok := schema.ValidPriorityLevels[p]; !ok {
			return fmt.Errorf("invalid priority level %q. must be high, medium or low", input.Priority)
		}
		f.Priority = p
	}

	cfg.Filters = f
	return nil
}

// validateSortAndPaging checks sort/order and pagination inputs.
func validateSortAndPaging(cfg *Config, input *ConfigRawInput) error {
	key := schema.SortKey(strings.ToLower(input.Sort))
	if key == "" {
		key = schema.SortByScore
	}
	if _, ok := schema.ValidSortKeys[key]; !ok {
		return fmt.Errorf("invalid sort key %q. must be score, priority or name", input.Sort)
	}
	cfg.SortKey = key

	dir := schema.SortDir(strings.ToLower(input.Order))
	if dir == "" {
		dir = schema.SortDesc
	}
	if _, ok := schema.ValidSortDirs[dir]; !ok {
		return fmt.Errorf("invalid sort order %q. must be asc or desc", input.Order)
	}
	cfg.SortDir = dir

	if input.Page < 1 {
		cfg.Page = 1
	} else {
		cfg.Page = input.Page
	}

	switch {
	case input.PageSize < 1:
		cfg.PageSize = DefaultPageSize
	case input.PageSize > MaxPageSize:
		return fmt.Errorf("page size cannot exceed %d", MaxPageSize)
	default:
		cfg.PageSize = input.PageSize
	}

	switch {
	case input.Limit < 1:
		cfg.Limit = DefaultLimit
	case input.Limit > MaxLimit:
		return fmt.Errorf("limit cannot exceed %d", MaxLimit)
	default:
		cfg.Limit = input.Limit
	}
	return nil
}

// validateOutput checks output mode, file, width and color settings.
func validateOutput(cfg *Config, input *ConfigRawInput) error {
	mode := schema.OutputMode(strings.ToLower(input.Output))
	if mode == "" {
		mode = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("invalid output mode %q. must be text, csv, json or parquet", input.Output)
	}
	cfg.Output = mode
	cfg.OutputFile = input.OutputFile

	if input.Precision < 1 {
		cfg.Precision = 1
	} else if input.Precision > 3 {
		cfg.Precision = 3
	} else {
		cfg.Precision = input.Precision
	}

	if input.Width < 0 {
		cfg.Width = 0
	} else {
		cfg.Width = input.Width
	}

	cfg.UseColors = parseBoolish(input.Color, true)
	return nil
}

// parseBoolish interprets yes/no/true/false/1/0 with a fallback default.
func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}

// validateBackendConfig checks the run-store backend selection.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q. must be sqlite, mysql, postgresql or none", input.StoreBackend)
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(backend, input.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// processParams overlays config-file overrides onto the default heuristic
// parameters.
func processParams(cfg *Config, input *ConfigRawInput) {
	p := schema.DefaultRuleParams()
	o := &input.Params

	setFloat(&p.AgricultureBase, o.AgricultureBase)
	setFloat(&p.AgricultureAreaSpan, o.AgricultureAreaSpan)
	setFloat(&p.AgricultureAreaWeight, o.AgricultureAreaWeight)
	setFloat(&p.EmploymentLandless, o.EmploymentLandless)
	setFloat(&p.EmploymentMaxArea, o.EmploymentMaxArea)
	setFloat(&p.EmploymentFloor, o.EmploymentFloor)
	setFloat(&p.EmploymentSpan, o.EmploymentSpan)
	setFloat(&p.WaterIndexCutoff, o.WaterIndexCutoff)
	setFloat(&p.WaterOffset, o.WaterOffset)
	setFloat(&p.WaterSpan, o.WaterSpan)
	setFloat(&p.WaterBase, o.WaterBase)
	setFloat(&p.ProduceDirect, o.ProduceDirect)
	setFloat(&p.ProduceIndirect, o.ProduceIndirect)
	setFloat(&p.HousingScore, o.HousingScore)
	setFloat(&p.HousingMaxArea, o.HousingMaxArea)
	setFloat(&p.CommunityScore, o.CommunityScore)
	if o.CommunityMinVillage != nil {
		p.CommunityMinVillage = *o.CommunityMinVillage
	}
	setFloat(&p.SkillScore, o.SkillScore)
	setFloat(&p.SkillMaxArea, o.SkillMaxArea)
	setFloat(&p.FallbackScore, o.FallbackScore)
	setFloat(&p.UrgencyWaterWeight, o.UrgencyWaterWeight)
	setFloat(&p.UrgencyWaterPivot, o.UrgencyWaterPivot)
	setFloat(&p.UrgencyProduceBonus, o.UrgencyProduceBonus)
	setFloat(&p.UrgencySizeWeight, o.UrgencySizeWeight)
	setFloat(&p.UrgencySizeSpan, o.UrgencySizeSpan)
	setFloat(&p.NoMatchFactor, o.NoMatchFactor)
	setFloat(&p.EligibilityThreshold, o.EligibilityThreshold)

	cfg.Params = p
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
