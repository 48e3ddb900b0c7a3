package config

import (
	"fmt"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// PropertyRegistry reads display data from an ini file with one section per
// location:
//
//	[Bondi]
//	name      = Bondi Beach Apartment
//	latitude  = -33.8915
//	longitude = 151.2767
type PropertyRegistry struct {
	cfg *ini.File
}

func NewPropertyRegistry(path string) (*PropertyRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load property registry: %w", err)
	}
	return &PropertyRegistry{cfg: cfg}, nil
}

// Locations lists the sections that carry at least one key.
func (r *PropertyRegistry) Locations() []string {
	var out []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			out = append(out, section.Name())
		}
	}
	return out
}

// Describe fills p's name and coordinates from its location's section.
// Unknown locations and unparsable coordinates leave p unchanged.
func (r *PropertyRegistry) Describe(p domain.Property) domain.Property {
	section, err := r.cfg.GetSection(p.Location)
	if err != nil {
		return p
	}
	if name := section.Key("name").String(); name != "" {
		p.Name = name
	}
	if !section.HasKey("latitude") || !section.HasKey("longitude") {
		return p
	}
	lat, err := section.Key("latitude").Float64()
	if err != nil {
		return p
	}
	long, err := section.Key("longitude").Float64()
	if err != nil {
		return p
	}
	p.Coordinates = domain.Coordinates{Latitude: lat, Longitude: long}
	p.HasCoordinates = true
	return p
}
