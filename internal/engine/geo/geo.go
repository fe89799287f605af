package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/nvaler/tripscout/internal/model"
)

// Distance returns the great-circle distance between two locations in
// meters.
func Distance(a, b model.Location) float64 {
	return orbgeo.DistanceHaversine(point(a), point(b))
}

// ValidLocation reports whether loc is a usable coordinate pair.
// A nil location (missing or unparsable in the source data) is invalid.
func ValidLocation(loc *model.Location) bool {
	if loc == nil {
		return false
	}
	if loc.Lat < -90 || loc.Lat > 90 {
		return false
	}
	if loc.Lng < -180 || loc.Lng > 180 {
		return false
	}
	return true
}

// FormatDistance renders meters as "850m" below one kilometer and
// "4.21km" from one kilometer up.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	return fmt.Sprintf("%.2fkm", meters/1000)
}

func point(l model.Location) orb.Point {
	return orb.Point{l.Lng, l.Lat} // orb.Point is [lng, lat]
}
