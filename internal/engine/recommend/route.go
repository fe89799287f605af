package recommend

import (
	"slices"

	"github.com/nvaler/tripscout/internal/engine/geo"
	"github.com/nvaler/tripscout/internal/model"
)

// PlanRoute orders activities with a greedy nearest-neighbor walk from
// start: repeatedly visit the closest unvisited stop. The result is a
// permutation of the input; ties go to the first minimal element. An
// empty list or invalid start returns the input unchanged. Not optimal —
// O(n²) is fine at the tens-of-stops scale this targets.
func PlanRoute(activities []model.Activity, start model.Location) []model.Activity {
	if len(activities) == 0 || !geo.ValidLocation(&start) {
		return activities
	}

	remaining := slices.Clone(activities)
	route := make([]model.Activity, 0, len(activities))
	current := start

	for len(remaining) > 0 {
		nearest := 0
		nearestDist := geo.Distance(current, remaining[0].Location)
		for i := 1; i < len(remaining); i++ {
			if d := geo.Distance(current, remaining[i].Location); d < nearestDist {
				nearest, nearestDist = i, d
			}
		}
		route = append(route, remaining[nearest])
		current = remaining[nearest].Location
		remaining = slices.Delete(remaining, nearest, nearest+1)
	}

	return route
}
