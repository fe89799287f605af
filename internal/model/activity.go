package model

import "strings"

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningHours carries the provider's open-now flag for a place.
type OpeningHours struct {
	OpenNow *bool `json:"open_now"`
}

// Review is a single user review attached to a place after a details fetch.
type Review struct {
	Author string   `json:"author"`
	Rating *float64 `json:"rating"`
	Text   string   `json:"text"`
	Time   *int64   `json:"time"`
}

// Activity represents one point of interest returned by the provider.
//
// Optional fields are pointers and serialize as null when absent; list
// fields are always non-nil so they serialize as empty arrays. Distance
// stays nil until the distance-matrix stage fills it.
type Activity struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Address          string        `json:"address"`
	Location         Location      `json:"location"`
	Rating           *float64      `json:"rating"`
	UserRatingsTotal *int          `json:"user_ratings_total"`
	Types            []string      `json:"types"`
	OpeningHours     *OpeningHours `json:"opening_hours"`
	PriceLevel       *int          `json:"price_level"`
	Photos           []string      `json:"photos"`
	Reviews          []Review      `json:"reviews"`
	Distance         *float64      `json:"distance"`
}

// IsOpenNow reports whether the place is currently open according to the
// provider's opening-hours metadata. Unknown counts as closed.
func (a *Activity) IsOpenNow() bool {
	return a.OpeningHours != nil && a.OpeningHours.OpenNow != nil && *a.OpeningHours.OpenNow
}

// PriceSymbol renders the price level as a dollar-sign string ("$$$"),
// or "N/A" when the provider reported none.
func (a *Activity) PriceSymbol() string {
	if a.PriceLevel == nil || *a.PriceLevel <= 0 {
		return "N/A"
	}
	return strings.Repeat("$", *a.PriceLevel)
}

// HasType reports whether the activity carries the given type tag.
func (a *Activity) HasType(t string) bool {
	for _, typ := range a.Types {
		if typ == t {
			return true
		}
	}
	return false
}
