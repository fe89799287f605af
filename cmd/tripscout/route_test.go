package main

import (
	"testing"

	"github.com/nvaler/tripscout/internal/model"
)

func TestResolveStart(t *testing.T) {
	t.Parallel()

	saved := &model.Location{Lat: 35.68, Lng: 139.77}

	tests := []struct {
		name     string
		rec      *model.TravelRecommendation
		lat, lng float64
		explicit bool
		want     model.Location
		wantErr  bool
	}{
		{
			name:     "explicit coordinates win",
			rec:      &model.TravelRecommendation{SearchLocation: saved},
			lat:      48.85, lng: 2.35,
			explicit: true,
			want:     model.Location{Lat: 48.85, Lng: 2.35},
		},
		{
			name:     "explicit zero zero is a real start",
			rec:      &model.TravelRecommendation{SearchLocation: saved},
			explicit: true,
			want:     model.Location{},
		},
		{
			name: "falls back to the saved search location",
			rec:  &model.TravelRecommendation{SearchLocation: saved},
			want: *saved,
		},
		{
			name:    "no flags and no saved location",
			rec:     &model.TravelRecommendation{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveStart(tt.rec, tt.lat, tt.lng, tt.explicit)
			if tt.wantErr {
				if err == nil {
					t.Fatal("resolveStart = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveStart: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveStart = %+v, want %+v", got, tt.want)
			}
		})
	}
}
