package domain

import "fmt"

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Property is a distinct (location, type) pair seen in the dataset.
type Property struct {
	Location       string
	Type           string
	Name           string
	Coordinates    Coordinates
	HasCoordinates bool
}

func (p Property) Key() string {
	return fmt.Sprintf("%s|%s", p.Location, p.Type)
}

// Selection is the set of locations a view is scoped to.
type Selection []string

func (s Selection) IsEmpty() bool {
	return len(s) == 0
}

func (s Selection) Contains(location string) bool {
	for _, l := range s {
		if l == location {
			return true
		}
	}
	return false
}

// Set returns the selection as a lookup set.
func (s Selection) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, l := range s {
		set[l] = struct{}{}
	}
	return set
}
