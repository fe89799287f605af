package recommend

import (
	"slices"
	"sort"

	"github.com/nvaler/tripscout/internal/model"
)

// ratingWeight is how much of an activity's star rating feeds the
// personalization score on top of the category preference sum.
const ratingWeight = 0.2

// Score computes the preference-weighted score of one activity: the sum
// of the preference weights for each of its type tags, plus
// ratingWeight times its rating.
func Score(preferences map[string]float64, a *model.Activity) float64 {
	score := 0.0
	for _, t := range a.Types {
		score += preferences[t]
	}
	if a.Rating != nil {
		score += *a.Rating * ratingWeight
	}
	return score
}

// PersonalizedRecommend reorders activities by descending
// preference-weighted score. Ties keep their input order. The input
// slice is not mutated and no provider call is made.
func PersonalizedRecommend(preferences map[string]float64, activities []model.Activity) []model.Activity {
	out := slices.Clone(activities)
	sort.SliceStable(out, func(i, j int) bool {
		return Score(preferences, &out[i]) > Score(preferences, &out[j])
	})
	return out
}
