package retrieval

import (
	"strings"
)

// outOfRegionCities are places the assistant refuses to cover. Questions that
// mention one are answered with a fixed refusal before any retrieval happens.
var outOfRegionCities = []string{
	"malang", "surabaya", "banyuwangi", "bali", "jakarta", "bandung", "jogja",
}

// RegionGuard rejects questions about places outside the served region.
type RegionGuard struct {
	blocked []string
}

// NewRegionGuard creates a guard with the default blocked city list.
func NewRegionGuard() *RegionGuard {
	return &RegionGuard{blocked: outOfRegionCities}
}

// OutOfRegion reports whether the normalized question names a blocked city.
func (g *RegionGuard) OutOfRegion(normalizedQuery string) bool {
	lowered := strings.ToLower(normalizedQuery)
	for _, city := range g.blocked {
		if strings.Contains(lowered, city) {
			return true
		}
	}
	return false
}
