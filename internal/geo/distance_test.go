package geo

import (
	"math"
	"testing"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	wellington := domain.Coordinate{Latitude: -41.29, Longitude: 174.78}
	islandBay := domain.Coordinate{Latitude: -41.40, Longitude: 174.78}

	t.Run("zero for identical points", func(t *testing.T) {
		if d := Distance(wellington, wellington); d != 0 {
			t.Fatalf("expected 0, got %v", d)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := Distance(wellington, islandBay)
		ba := Distance(islandBay, wellington)
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("expected symmetric distances, got %v and %v", ab, ba)
		}
	})

	t.Run("known distance along a meridian", func(t *testing.T) {
		// 0.11 degrees of latitude is roughly 12.2 km.
		d := Distance(wellington, islandBay)
		if d < 12.0 || d > 12.5 {
			t.Fatalf("expected ~12.2km, got %v", d)
		}
	})

	t.Run("nan propagates", func(t *testing.T) {
		d := Distance(domain.Coordinate{Latitude: math.NaN()}, wellington)
		if !math.IsNaN(d) {
			t.Fatalf("expected NaN, got %v", d)
		}
	})
}
