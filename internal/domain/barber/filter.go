package barber

import (
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-connect/internal/geo"
	"github.com/BruksfildServices01/barber-connect/internal/httperr"
	"github.com/BruksfildServices01/barber-connect/internal/models"
)

// SearchRadiusKm is the fixed radius of a location search.
const SearchRadiusKm = 10.0

// Filter narrows the barber listing. Zero value matches everything.
type Filter struct {
	Near   *geo.Point
	Search string
}

// ParseFilter builds a Filter from raw query parameters. Coordinates are only
// applied when both are present.
func ParseFilter(lat, lng, search string) (Filter, error) {
	f := Filter{Search: strings.TrimSpace(search)}

	lat = strings.TrimSpace(lat)
	lng = strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return f, nil
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Filter{}, httperr.NewBadRequest("invalid_lat", "lat must be a number.")
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Filter{}, httperr.NewBadRequest("invalid_lng", "lng must be a number.")
	}

	p := geo.Point{Lat: la, Lng: ln}
	if !p.Valid() {
		return Filter{}, httperr.NewBadRequest("invalid_coordinates", "Coordinates are out of range.")
	}

	f.Near = &p
	return f, nil
}

// Matches applies the exact filter semantics to one profile.
func (f Filter) Matches(p *models.BarberProfile) bool {
	if f.Near != nil {
		if !p.HasLocation() {
			return false
		}
		at := geo.Point{Lat: *p.Latitude, Lng: *p.Longitude}
		if geo.DistanceKm(*f.Near, at) > SearchRadiusKm {
			return false
		}
	}

	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}

	return true
}

// Shop name contains the text (case-insensitive) or a service is named exactly the text.
func matchesSearch(p *models.BarberProfile, search string) bool {
	if strings.Contains(strings.ToLower(p.ShopName), strings.ToLower(search)) {
		return true
	}
	_, ok := p.FindService(search)
	return ok
}
