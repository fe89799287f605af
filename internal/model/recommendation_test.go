package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func sampleRecommendation() *TravelRecommendation {
	activities := []Activity{
		{PlaceID: "a", Name: "Cafe", Rating: ptr(4.0), UserRatingsTotal: ptr(100), Types: []string{"cafe"}},
		{PlaceID: "b", Name: "Museum", Rating: ptr(4.8), UserRatingsTotal: ptr(2000), Types: []string{"museum", "tourist_attraction"}},
		{PlaceID: "c", Name: "Park", Rating: nil, UserRatingsTotal: nil, Types: []string{"park"}},
		{PlaceID: "d", Name: "Gallery", Rating: ptr(4.8), UserRatingsTotal: ptr(500), Types: []string{"museum"}},
	}
	return &TravelRecommendation{
		Activities:     activities,
		TotalCount:     len(activities),
		SearchLocation: &Location{Lat: 35.68, Lng: 139.77},
		Timestamp:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		QueryInfo:      &QueryInfo{Query: "Tokyo"},
	}
}

func TestTopRated(t *testing.T) {
	t.Parallel()

	rec := sampleRecommendation()
	top := rec.TopRated(2)

	if len(top) != 2 {
		t.Fatalf("TopRated(2) returned %d activities", len(top))
	}
	// Equal ratings break the tie on review count.
	if top[0].PlaceID != "b" || top[1].PlaceID != "d" {
		t.Errorf("TopRated order = %s, %s, want b, d", top[0].PlaceID, top[1].PlaceID)
	}
	// The snapshot must stay untouched.
	if rec.Activities[0].PlaceID != "a" {
		t.Error("TopRated mutated the snapshot")
	}

	if got := rec.TopRated(10); len(got) != 4 {
		t.Errorf("TopRated(10) returned %d activities, want all 4", len(got))
	}
}

func TestFilterByType(t *testing.T) {
	t.Parallel()

	rec := sampleRecommendation()

	museums := rec.FilterByType("museum")
	if len(museums) != 2 {
		t.Fatalf("FilterByType(museum) returned %d, want 2", len(museums))
	}
	if museums[0].PlaceID != "b" || museums[1].PlaceID != "d" {
		t.Errorf("FilterByType order = %s, %s, want b, d", museums[0].PlaceID, museums[1].PlaceID)
	}
	if got := rec.FilterByType("zoo"); len(got) != 0 {
		t.Errorf("FilterByType(zoo) returned %d, want 0", len(got))
	}
}

func TestRecommendationJSONRoundTrip(t *testing.T) {
	t.Parallel()

	rec := sampleRecommendation()

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got TravelRecommendation
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.TotalCount != rec.TotalCount || len(got.Activities) != len(rec.Activities) {
		t.Errorf("counts lost: total=%d activities=%d", got.TotalCount, len(got.Activities))
	}
	if got.SearchLocation == nil || got.SearchLocation.Lat != 35.68 {
		t.Errorf("search location lost: %+v", got.SearchLocation)
	}
	if !got.Timestamp.Equal(rec.Timestamp) {
		t.Errorf("timestamp lost: %v", got.Timestamp)
	}
	if got.QueryInfo == nil || got.QueryInfo.Query != "Tokyo" {
		t.Errorf("query info lost: %+v", got.QueryInfo)
	}
	// Nil rating on an element must survive as nil, not zero.
	if got.Activities[2].Rating != nil {
		t.Errorf("nil rating round-tripped to %v", *got.Activities[2].Rating)
	}
}
