// Package claimio loads claim populations and scheme catalogs from files.
//
// Claim records arrive from the dashboard's ingestion pipeline in loosely
// shaped JSON or CSV: land areas may be numbers or free text, forest-produce
// indicators may be lists, maps or booleans, and coordinates come as either
// [lon, lat] pairs or {lat, lon} objects. This package normalizes all of that
// into the typed schema.Claim structure; anything unparseable degrades to the
// documented defaults instead of failing the load.
package claimio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanadhikar/sifarish/internal/contract"
	"github.com/vanadhikar/sifarish/schema"
	"gopkg.in/yaml.v3"
)

// FileSource loads claims and schemes from local files, dispatching on the
// file extension.
type FileSource struct{}

var _ contract.ClaimSource = FileSource{} // Compile-time check

// NewFileSource returns a file-backed claim source.
func NewFileSource() FileSource { return FileSource{} }

// LoadClaims reads a claim population from a JSON array or CSV file.
func (FileSource) LoadClaims(path string) ([]schema.Claim, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadClaimsCSV(path)
	case ".json":
		return loadClaimsJSON(path)
	default:
		return nil, fmt.Errorf("unsupported claims format %q: use .json or .csv", filepath.Ext(path))
	}
}

// LoadSchemes reads a scheme catalog from a YAML or JSON file.
func (FileSource) LoadSchemes(path string) ([]schema.Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schemes file: %w", err)
	}

	var schemes []schema.Scheme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schemes); err != nil {
			return nil, fmt.Errorf("failed to parse YAML scheme catalog %q: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &schemes); err != nil {
			return nil, fmt.Errorf("failed to parse JSON scheme catalog %q: %w", path, err)
		}
	}

	for i, s := range schemes {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("scheme at index %d has no id", i)
		}
	}
	return schemes, nil
}

// rawClaim mirrors the loosely shaped ingestion output.
type rawClaim struct {
	ID            string         `json:"id"`
	HolderName    string         `json:"holder_name"`
	LandArea      any            `json:"land_area"`
	Village       string         `json:"village"`
	District      string         `json:"district"`
	State         string         `json:"state"`
	TribalGroup   string         `json:"tribal_group"`
	ClaimType     string         `json:"claim_type"`
	Assets        map[string]any `json:"assets"`
	ForestProduce any            `json:"forest_produce"`
	WaterIndex    *float64       `json:"water_index"`
	Coordinates   any            `json:"coordinates"`
}

// loadClaimsJSON reads and normalizes a JSON claim array.
func loadClaimsJSON(path string) ([]schema.Claim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read claims file: %w", err)
	}

	var raws []rawClaim
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse claims file %q: %w", path, err)
	}

	claims := make([]schema.Claim, 0, len(raws))
	for i, r := range raws {
		c := normalizeClaim(&r)
		if c.ID == "" {
			c.ID = fmt.Sprintf("claim-%d", i+1)
		}
		claims = append(claims, c)
	}
	return claims, nil
}

// normalizeClaim converts one raw record into the typed claim structure.
func normalizeClaim(r *rawClaim) schema.Claim {
	return schema.Claim{
		ID:            strings.TrimSpace(r.ID),
		HolderName:    strings.TrimSpace(r.HolderName),
		LandArea:      r.LandArea,
		Village:       strings.TrimSpace(r.Village),
		District:      strings.TrimSpace(r.District),
		State:         strings.TrimSpace(r.State),
		TribalGroup:   strings.TrimSpace(r.TribalGroup),
		ClaimType:     strings.TrimSpace(r.ClaimType),
		Assets:        normalizeAssets(r.Assets),
		ForestProduce: normalizeProduce(r.ForestProduce),
		WaterIndex:    clampWaterIndex(r.WaterIndex),
		Coordinates:   normalizeCoordinates(r.Coordinates),
	}
}

// assetKeys maps ingestion asset names to their canonical flags.
var assetKeys = map[string]func(*schema.AssetFlags) *schema.Flag{
	"housing":          func(a *schema.AssetFlags) *schema.Flag { return &a.Housing },
	"pucca_house":      func(a *schema.AssetFlags) *schema.Flag { return &a.Housing },
	"water_source":     func(a *schema.AssetFlags) *schema.Flag { return &a.WaterSource },
	"water_body":       func(a *schema.AssetFlags) *schema.Flag { return &a.WaterSource },
	"well":             func(a *schema.AssetFlags) *schema.Flag { return &a.WaterSource },
	"forest_land":      func(a *schema.AssetFlags) *schema.Flag { return &a.ForestLand },
	"produce_gatherer": func(a *schema.AssetFlags) *schema.Flag { return &a.ProduceGatherer },
	"mfp_collection":   func(a *schema.AssetFlags) *schema.Flag { return &a.ProduceGatherer },
}

// normalizeAssets converts a free-form asset map into tri-state flags.
// Unlisted assets stay unknown rather than defaulting to no.
func normalizeAssets(raw map[string]any) schema.AssetFlags {
	flags := schema.AssetFlags{
		Housing:         schema.FlagUnknown,
		WaterSource:     schema.FlagUnknown,
		ForestLand:      schema.FlagUnknown,
		ProduceGatherer: schema.FlagUnknown,
	}
	for key, value := range raw {
		get, ok := assetKeys[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		if truthy(value) {
			*get(&flags) = schema.FlagYes
		} else {
			*get(&flags) = schema.FlagNo
		}
	}
	return flags
}

// normalizeProduce converts a list, map or boolean-ish produce indicator
// into a name list. Maps contribute their keys; a bare truthy scalar becomes
// a single unspecified entry.
func normalizeProduce(raw any) []string {
	switch t := raw.(type) {
	case []any:
		var names []string
		for _, v := range t {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				names = append(names, strings.TrimSpace(s))
			}
		}
		return names
	case map[string]any:
		var names []string
		for k, v := range t {
			if truthy(v) {
				names = append(names, k)
			}
		}
		return names
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{strings.TrimSpace(t)}
	case bool:
		if t {
			return []string{"minor forest produce"}
		}
		return nil
	default:
		return nil
	}
}

// normalizeCoordinates accepts either a [lon, lat] pair or a {lat, lon}
// object. Anything else is treated as not geotagged.
func normalizeCoordinates(raw any) *schema.GeoPoint {
	switch t := raw.(type) {
	case []any:
		if len(t) != 2 {
			return nil
		}
		lon, okLon := asFloat(t[0])
		lat, okLat := asFloat(t[1])
		if !okLon || !okLat {
			return nil
		}
		return &schema.GeoPoint{Lat: lat, Lon: lon}
	case map[string]any:
		lat, okLat := asFloat(firstOf(t, "lat", "latitude"))
		lon, okLon := asFloat(firstOf(t, "lon", "lng", "longitude"))
		if !okLat || !okLon {
			return nil
		}
		return &schema.GeoPoint{Lat: lat, Lon: lon}
	default:
		return nil
	}
}

// clampWaterIndex bounds a reported index to [0,100].
func clampWaterIndex(v *float64) *float64 {
	if v == nil {
		return nil
	}
	idx := *v
	if idx < 0 {
		idx = 0
	}
	if idx > 100 {
		idx = 100
	}
	return &idx
}

// truthy interprets loose boolean-ish scalars.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true", "1", "y":
			return true
		default:
			return false
		}
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

// asFloat extracts a numeric value from a JSON scalar.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// firstOf returns the first present key from a raw object.
func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
