package claimio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vanadhikar/sifarish/schema"
)

// loadClaimsCSV reads a header-driven CSV claim export. Column order does not
// matter; unknown columns are ignored and missing columns degrade the same
// way absent JSON fields do.
func loadClaimsCSV(path string) ([]schema.Claim, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open claims file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse claims file %q: %w", path, err)
	}
	if len(records) == 0 {
		return []schema.Claim{}, nil
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	claims := make([]schema.Claim, 0, len(records)-1)
	for rowIdx, record := range records[1:] {
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		c := schema.Claim{
			ID:          field("id"),
			HolderName:  field("holder_name"),
			Village:     field("village"),
			District:    field("district"),
			State:       field("state"),
			TribalGroup: field("tribal_group"),
			ClaimType:   field("claim_type"),
			Assets: schema.AssetFlags{
				Housing:         csvFlag(field("housing")),
				WaterSource:     csvFlag(field("water_source")),
				ForestLand:      csvFlag(field("forest_land")),
				ProduceGatherer: csvFlag(field("produce_gatherer")),
			},
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("claim-%d", rowIdx+1)
		}
		if area := field("land_area"); area != "" {
			c.LandArea = area
		}
		if produce := field("forest_produce"); produce != "" {
			for _, name := range strings.Split(produce, ";") {
				if name = strings.TrimSpace(name); name != "" {
					c.ForestProduce = append(c.ForestProduce, name)
				}
			}
		}
		if raw := field("water_index"); raw != "" {
			if idx, err := strconv.ParseFloat(raw, 64); err == nil {
				c.WaterIndex = clampWaterIndex(&idx)
			}
		}
		if lat, latErr := strconv.ParseFloat(field("lat"), 64); latErr == nil {
			if lon, lonErr := strconv.ParseFloat(field("lon"), 64); lonErr == nil {
				c.Coordinates = &schema.GeoPoint{Lat: lat, Lon: lon}
			}
		}
		claims = append(claims, c)
	}
	return claims, nil
}

// csvFlag maps an empty cell to unknown and anything else through the shared
// truthiness rules.
func csvFlag(raw string) schema.Flag {
	if raw == "" {
		return schema.FlagUnknown
	}
	if truthy(raw) {
		return schema.FlagYes
	}
	return schema.FlagNo
}
