// Package recommend turns a free-text location query into a ranked,
// deduplicated travel recommendation, and provides the pure route and
// personalization transforms over activity lists.
package recommend

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nvaler/tripscout/internal/config"
	"github.com/nvaler/tripscout/internal/model"
)

// Provider is the slice of the places client the pipeline depends on.
type Provider interface {
	Geocode(ctx context.Context, query string) (*model.Location, error)
	SearchNearby(ctx context.Context, location model.Location, activityType string, radiusMeters, maxResults int) ([]model.Activity, error)
	GetDetails(ctx context.Context, placeID string) (*model.Activity, error)
	ComputeDistances(ctx context.Context, origin model.Location, activities []model.Activity) []model.Activity
}

// Recommender runs the aggregation pipeline against a provider.
type Recommender struct {
	provider Provider
	defaults config.SearchConfig
	log      zerolog.Logger
}

// NewRecommender builds a pipeline over the given provider. Zero-value
// request fields fall back to the configured search defaults.
func NewRecommender(provider Provider, defaults config.SearchConfig, log zerolog.Logger) *Recommender {
	return &Recommender{
		provider: provider,
		defaults: defaults,
		log:      log.With().Str("component", "recommend").Logger(),
	}
}

// Recommend executes one pipeline run: geocode, per-type search fan-out,
// distance fill, dedup, sort. A query that resolves to no location is a
// normal outcome reported in the snapshot's query_info, not an error.
func (r *Recommender) Recommend(ctx context.Context, params model.RecommendParams) *model.TravelRecommendation {
	params = r.applyDefaults(params)
	r.log.Info().Str("query", params.Query).Strs("types", params.Types).Msg("starting recommendation")

	location, err := r.provider.Geocode(ctx, params.Query)
	if err != nil || location == nil {
		if err != nil {
			r.log.Error().Err(err).Str("query", params.Query).Msg("geocoding failed")
		}
		return &model.TravelRecommendation{
			Activities: []model.Activity{},
			TotalCount: 0,
			Timestamp:  time.Now(),
			QueryInfo: &model.QueryInfo{
				Query: params.Query,
				Error: "Location not found",
			},
		}
	}

	// One search per requested type, concurrent behind a semaphore.
	// Results stay slotted by type index so deduplication keeps the
	// first occurrence from the earliest-listed type.
	perType := make([][]model.Activity, len(params.Types))
	sem := make(chan struct{}, r.defaults.Concurrency)
	var wg sync.WaitGroup
	for i, activityType := range params.Types {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, activityType string) {
			defer wg.Done()
			defer func() { <-sem }()

			activities, err := r.provider.SearchNearby(ctx, *location, activityType, params.RadiusMeters, params.MaxPerType)
			if err != nil {
				r.log.Warn().Err(err).Str("type", activityType).Msg("search failed for type")
				return
			}
			perType[i] = activities
		}(i, activityType)
	}
	wg.Wait()

	var all []model.Activity
	for _, activities := range perType {
		all = append(all, activities...)
	}
	r.log.Info().Int("total", len(all)).Msg("searches complete")

	all = r.provider.ComputeDistances(ctx, *location, all)

	unique := dedupe(all)
	SortActivities(unique, params.SortBy)

	r.log.Info().Int("unique", len(unique)).Msg("recommendation ready")
	return &model.TravelRecommendation{
		Activities:     unique,
		TotalCount:     len(unique),
		SearchLocation: location,
		Timestamp:      time.Now(),
		QueryInfo: &model.QueryInfo{
			Query:         params.Query,
			ActivityTypes: params.Types,
			Radius:        params.RadiusMeters,
			SortBy:        params.SortBy,
		},
	}
}

// PlaceDetails fetches the extended record for one known identifier.
func (r *Recommender) PlaceDetails(ctx context.Context, placeID string) (*model.Activity, error) {
	return r.provider.GetDetails(ctx, placeID)
}

func (r *Recommender) applyDefaults(params model.RecommendParams) model.RecommendParams {
	if len(params.Types) == 0 {
		params.Types = r.defaults.Types
	}
	if params.RadiusMeters <= 0 {
		params.RadiusMeters = r.defaults.RadiusMeters
	}
	if params.MaxPerType <= 0 {
		params.MaxPerType = r.defaults.MaxPerType
	}
	if params.SortBy == "" {
		params.SortBy = r.defaults.SortBy
	}
	return params
}

// dedupe keeps the first occurrence of each place identifier.
func dedupe(activities []model.Activity) []model.Activity {
	seen := make(map[string]struct{}, len(activities))
	unique := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		if _, ok := seen[a.PlaceID]; ok {
			continue
		}
		seen[a.PlaceID] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}

// SortActivities orders activities in place by the given criterion:
// rating (descending rating, then review count), distance (ascending,
// missing last) or reviews (descending review count). Ties keep their
// input order.
func SortActivities(activities []model.Activity, sortBy string) {
	switch sortBy {
	case model.SortByDistance:
		sort.SliceStable(activities, func(i, j int) bool {
			return distanceOrInf(&activities[i]) < distanceOrInf(&activities[j])
		})
	case model.SortByReviews:
		sort.SliceStable(activities, func(i, j int) bool {
			return countOrZero(&activities[i]) > countOrZero(&activities[j])
		})
	case model.SortByRating:
		sort.SliceStable(activities, func(i, j int) bool {
			ri, rj := ratingOrZero(&activities[i]), ratingOrZero(&activities[j])
			if ri != rj {
				return ri > rj
			}
			return countOrZero(&activities[i]) > countOrZero(&activities[j])
		})
	}
}

func ratingOrZero(a *model.Activity) float64 {
	if a.Rating == nil {
		return 0
	}
	return *a.Rating
}

func countOrZero(a *model.Activity) int {
	if a.UserRatingsTotal == nil {
		return 0
	}
	return *a.UserRatingsTotal
}

func distanceOrInf(a *model.Activity) float64 {
	if a.Distance == nil {
		return math.Inf(1)
	}
	return *a.Distance
}
