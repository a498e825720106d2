package filter

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/JAOCruz/nayib/internal/models"
)

// Filter is the set of predicates a solares page applies to its parcels.
// Zero lower bounds and zero or infinite upper bounds mean "no bound", so the
// zero Filter keeps every parcel like Default does.
type Filter struct {
	Location    string
	AreaMin     float64
	AreaMax     float64
	PriceMin    float64
	PriceMax    float64
	LegalStatus string
}

// Default returns a filter that keeps every parcel.
func Default() Filter {
	return Filter{
		AreaMax:  math.Inf(1),
		PriceMax: math.Inf(1),
	}
}

// IsDefault reports whether the filter keeps every parcel.
func (f Filter) IsDefault() bool {
	return f.Location == "" && f.LegalStatus == "" && !f.areaBounded() && !f.priceBounded()
}

func (f Filter) areaBounded() bool {
	return f.AreaMin > 0 || !math.IsInf(upper(f.AreaMax), 1)
}

func (f Filter) priceBounded() bool {
	return f.PriceMin > 0 || !math.IsInf(upper(f.PriceMax), 1)
}

// upper normalizes a maximum, non-positive means unbounded.
func upper(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// Allows checks whether a parcel in the named location passes every predicate.
func (f Filter) Allows(location string, parcel models.Parcel) bool {
	// Location is a case-insensitive substring match
	if f.Location != "" && !strings.Contains(strings.ToLower(location), strings.ToLower(f.Location)) {
		return false
	}

	// Area on request fails any active area bound
	if f.areaBounded() {
		area, ok := parcel.AreaM2.Float()
		if !ok || area < f.AreaMin || area > upper(f.AreaMax) {
			return false
		}
	}

	// Price on request is excluded as soon as a price bound is active
	if f.priceBounded() {
		price, ok := parcel.UnitPrice()
		if !ok || price < f.PriceMin || price > upper(f.PriceMax) {
			return false
		}
	}

	if f.LegalStatus != "" && parcel.LegalStatus != f.LegalStatus {
		return false
	}

	return true
}

// Entry is a parcel that passed the filter, tagged with its location and its
// position inside the original location group.
type Entry struct {
	Location string
	Currency string
	Index    int
	Parcel   models.Parcel
}

// Group is a run of entries sharing a location.
type Group struct {
	Location string
	Entries  []Entry
}

// Select filters every group and flattens the survivors into one sequence,
// preserving the catalog order.
func Select(groups []models.LocationGroup, f Filter) []Entry {
	var entries []Entry
	for _, group := range groups {
		for i, parcel := range group.Solares {
			if !f.Allows(group.Ubicacion, parcel) {
				continue
			}
			entries = append(entries, Entry{
				Location: group.Ubicacion,
				Currency: group.CurrencyFor(parcel),
				Index:    i,
				Parcel:   parcel,
			})
		}
	}
	return entries
}

// Apply filters the parcels of each group and drops groups left empty. The
// input is not modified.
func Apply(groups []models.LocationGroup, f Filter) []models.LocationGroup {
	var result []models.LocationGroup
	for _, group := range groups {
		var kept []models.Parcel
		for _, parcel := range group.Solares {
			if f.Allows(group.Ubicacion, parcel) {
				kept = append(kept, parcel)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered := group
		filtered.Solares = kept
		result = append(result, filtered)
	}
	return result
}

// Regroup collects entries back into location groups, ordered by the first
// time each location appears.
func Regroup(entries []Entry) []Group {
	var groups []Group
	positions := make(map[string]int)
	for _, entry := range entries {
		pos, ok := positions[entry.Location]
		if !ok {
			pos = len(groups)
			positions[entry.Location] = pos
			groups = append(groups, Group{Location: entry.Location})
		}
		groups[pos].Entries = append(groups[pos].Entries, entry)
	}
	return groups
}

type filterJSON struct {
	Location    string   `json:"location,omitempty"`
	AreaMin     float64  `json:"area_min"`
	AreaMax     *float64 `json:"area_max"`
	PriceMin    float64  `json:"price_min"`
	PriceMax    *float64 `json:"price_max"`
	LegalStatus string   `json:"legal_status,omitempty"`
}

// MarshalJSON writes unbounded maxima as null, JSON has no infinity.
func (f Filter) MarshalJSON() ([]byte, error) {
	out := filterJSON{
		Location:    f.Location,
		AreaMin:     f.AreaMin,
		PriceMin:    f.PriceMin,
		LegalStatus: f.LegalStatus,
	}
	if areaMax := upper(f.AreaMax); !math.IsInf(areaMax, 1) {
		out.AreaMax = &areaMax
	}
	if priceMax := upper(f.PriceMax); !math.IsInf(priceMax, 1) {
		out.PriceMax = &priceMax
	}
	return json.Marshal(out)
}
