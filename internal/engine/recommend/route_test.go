package recommend

import (
	"testing"

	"github.com/nvaler/tripscout/internal/model"
)

func at(id string, lat, lng float64) model.Activity {
	return model.Activity{PlaceID: id, Location: model.Location{Lat: lat, Lng: lng}}
}

func TestPlanRoute(t *testing.T) {
	t.Parallel()

	// Stops strung west to east along a parallel; starting west of all of
	// them, the greedy walk visits them in longitude order regardless of
	// the input order.
	activities := []model.Activity{
		at("far", 35.0, 139.30),
		at("near", 35.0, 139.10),
		at("mid", 35.0, 139.20),
	}
	start := model.Location{Lat: 35.0, Lng: 139.0}

	route := PlanRoute(activities, start)

	want := []string{"near", "mid", "far"}
	for i, id := range want {
		if route[i].PlaceID != id {
			t.Fatalf("route[%d] = %s, want %s (route: %v)", i, route[i].PlaceID, id, ids(route))
		}
	}

	// The input must not be reordered.
	if activities[0].PlaceID != "far" {
		t.Error("PlanRoute mutated the input slice")
	}
}

func TestPlanRouteIsPermutation(t *testing.T) {
	t.Parallel()

	activities := []model.Activity{
		at("a", 35.71, 139.79),
		at("b", 35.66, 139.70),
		at("c", 35.68, 139.75),
		at("d", 35.62, 139.73),
	}

	route := PlanRoute(activities, model.Location{Lat: 35.68, Lng: 139.77})

	if len(route) != len(activities) {
		t.Fatalf("route has %d stops, want %d", len(route), len(activities))
	}
	seen := make(map[string]int)
	for _, a := range route {
		seen[a.PlaceID]++
	}
	for _, a := range activities {
		if seen[a.PlaceID] != 1 {
			t.Errorf("stop %s appears %d times in the route", a.PlaceID, seen[a.PlaceID])
		}
	}
}

func TestPlanRouteEdgeCases(t *testing.T) {
	t.Parallel()

	if got := PlanRoute(nil, model.Location{Lat: 35, Lng: 139}); len(got) != 0 {
		t.Errorf("empty input: got %d stops", len(got))
	}

	// Invalid start returns the input unchanged.
	activities := []model.Activity{at("b", 35.0, 139.2), at("a", 35.0, 139.1)}
	got := PlanRoute(activities, model.Location{Lat: 200, Lng: 0})
	if got[0].PlaceID != "b" || got[1].PlaceID != "a" {
		t.Errorf("invalid start reordered the input: %v", ids(got))
	}

	single := PlanRoute([]model.Activity{at("only", 35.7, 139.7)}, model.Location{Lat: 35, Lng: 139})
	if len(single) != 1 || single[0].PlaceID != "only" {
		t.Errorf("single stop route = %v", ids(single))
	}
}

func TestSortActivitiesMissingDistanceLast(t *testing.T) {
	t.Parallel()

	d1, d2 := 500.0, 100.0
	activities := []model.Activity{
		{PlaceID: "far", Distance: &d1},
		{PlaceID: "unknown"},
		{PlaceID: "near", Distance: &d2},
	}

	SortActivities(activities, model.SortByDistance)

	want := []string{"near", "far", "unknown"}
	for i, id := range want {
		if activities[i].PlaceID != id {
			t.Fatalf("position %d = %s, want %s", i, activities[i].PlaceID, id)
		}
	}
}
