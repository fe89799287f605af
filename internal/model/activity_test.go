package model

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func ptr[T any](v T) *T { return &v }

func TestActivityJSONRoundTrip(t *testing.T) {
	t.Parallel()

	a := Activity{
		PlaceID:          "ChIJ123",
		Name:             "Senso-ji",
		Address:          "2 Chome-3-1 Asakusa",
		Location:         Location{Lat: 35.7148, Lng: 139.7967},
		Rating:           ptr(4.5),
		UserRatingsTotal: ptr(65000),
		Types:            []string{"tourist_attraction", "place_of_worship"},
		OpeningHours:     &OpeningHours{OpenNow: ptr(true)},
		PriceLevel:       nil,
		Photos:           []string{},
		Reviews:          []Review{{Author: "Anonymous", Rating: ptr(5.0), Text: "great"}},
		Distance:         ptr(1234.5),
	}

	data, err := json.Marshal(&a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	// Absent optionals must serialize as explicit nulls, never be omitted.
	s := string(data)
	if !strings.Contains(s, `"price_level":null`) {
		t.Errorf("price_level not serialized as null: %s", s)
	}
	if strings.Contains(s, `"photos":null`) {
		t.Errorf("empty photos serialized as null, want []: %s", s)
	}

	var got Activity
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.PlaceID != a.PlaceID || got.Name != a.Name {
		t.Errorf("identity fields lost: %+v", got)
	}
	if got.Rating == nil || *got.Rating != 4.5 {
		t.Errorf("rating lost: %v", got.Rating)
	}
	if got.PriceLevel != nil {
		t.Errorf("nil price_level round-tripped to %v", *got.PriceLevel)
	}
	if got.Distance == nil || *got.Distance != 1234.5 {
		t.Errorf("distance lost: %v", got.Distance)
	}
	if len(got.Reviews) != 1 || got.Reviews[0].Author != "Anonymous" {
		t.Errorf("reviews lost: %+v", got.Reviews)
	}
	if !got.IsOpenNow() {
		t.Error("open_now flag lost in round trip")
	}
}

func TestIsOpenNow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hours *OpeningHours
		want  bool
	}{
		{"no hours", nil, false},
		{"unknown", &OpeningHours{}, false},
		{"open", &OpeningHours{OpenNow: ptr(true)}, true},
		{"closed", &OpeningHours{OpenNow: ptr(false)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := Activity{OpeningHours: tt.hours}
			if got := a.IsOpenNow(); got != tt.want {
				t.Errorf("IsOpenNow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level *int
		want  string
	}{
		{"missing", nil, "N/A"},
		{"free", ptr(0), "N/A"},
		{"cheap", ptr(1), "$"},
		{"expensive", ptr(4), "$$$$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := Activity{PriceLevel: tt.level}
			if got := a.PriceSymbol(); got != tt.want {
				t.Errorf("PriceSymbol() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasType(t *testing.T) {
	t.Parallel()

	a := Activity{Types: []string{"museum", "tourist_attraction"}}
	if !a.HasType("museum") {
		t.Error("HasType(museum) = false")
	}
	if a.HasType("restaurant") {
		t.Error("HasType(restaurant) = true")
	}
}
