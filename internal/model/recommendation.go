package model

import (
	"sort"
	"time"
)

// Sort criteria accepted by the recommendation pipeline.
const (
	SortByRating   = "rating"
	SortByDistance = "distance"
	SortByReviews  = "reviews"
)

// RecommendParams holds the inputs of one recommendation run.
type RecommendParams struct {
	Query        string
	Types        []string
	RadiusMeters int
	MaxPerType   int
	SortBy       string
}

// QueryInfo echoes the inputs of a pipeline run, or carries an error
// marker when the location query could not be resolved.
type QueryInfo struct {
	Query         string   `json:"query"`
	ActivityTypes []string `json:"activity_types,omitempty"`
	Radius        int      `json:"radius,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// TravelRecommendation is the immutable snapshot produced by one
// recommendation run. TotalCount always equals len(Activities).
// Consumers derive filtered or reordered views; the snapshot itself is
// never mutated after construction.
type TravelRecommendation struct {
	Activities     []Activity `json:"activities"`
	TotalCount     int        `json:"total_count"`
	SearchLocation *Location  `json:"search_location"`
	Timestamp      time.Time  `json:"timestamp"`
	QueryInfo      *QueryInfo `json:"query_info"`
}

// TopRated returns the n best activities ordered by (rating, review
// count) descending, without mutating the snapshot.
func (r *TravelRecommendation) TopRated(n int) []Activity {
	out := make([]Activity, len(r.Activities))
	copy(out, r.Activities)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ratingOrZero(&out[i]), ratingOrZero(&out[j])
		if ri != rj {
			return ri > rj
		}
		return countOrZero(&out[i]) > countOrZero(&out[j])
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// FilterByType returns the activities whose type list contains t.
func (r *TravelRecommendation) FilterByType(t string) []Activity {
	var out []Activity
	for _, a := range r.Activities {
		if a.HasType(t) {
			out = append(out, a)
		}
	}
	return out
}

func ratingOrZero(a *Activity) float64 {
	if a.Rating == nil {
		return 0
	}
	return *a.Rating
}

func countOrZero(a *Activity) int {
	if a.UserRatingsTotal == nil {
		return 0
	}
	return *a.UserRatingsTotal
}
